package client

import (
	"time"

	"landctl/internal/types"
)

type StatusResponse struct {
	Status string `json:"status"`
}

type SubmitRequest struct {
	HeadSHA string `json:"head_sha"`
}

type SubmitResponse struct {
	ID int `json:"id"`
}

type CancelRequest struct {
	Status string `json:"status"`
}

type QueueResponse struct {
	Jobs []JobPayload `json:"jobs"`
}

type JobPayload struct {
	ID         int       `json:"id"`
	Status     string    `json:"status"`
	Repository string    `json:"repository,omitempty"`
	Requester  string    `json:"requester,omitempty"`
	Revisions  []string  `json:"revisions,omitempty"`
	URL        string    `json:"url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p JobPayload) toLandingJob() *types.LandingJob {
	return &types.LandingJob{
		ID:         p.ID,
		Status:     types.ParseJobStatus(p.Status),
		Repository: p.Repository,
		Requester:  p.Requester,
		Revisions:  append([]string(nil), p.Revisions...),
		URL:        p.URL,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
