package types

import (
	"strings"
	"time"
)

type JobStatus string

const (
	StatusNone       JobStatus = "none"
	StatusCreated    JobStatus = "created"
	StatusSubmitted  JobStatus = "submitted"
	StatusInProgress JobStatus = "in progress"
	StatusDeferred   JobStatus = "deferred"
	StatusLanded     JobStatus = "landed"
	StatusFailed     JobStatus = "failed"
	StatusCancelled  JobStatus = "cancelled"
)

// ParseJobStatus maps a wire status to a JobStatus. The service spells
// statuses in several casings and separators; unknown values pass
// through normalized so callers can still display them.
func ParseJobStatus(raw string) JobStatus {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "_", " ")
	switch normalized {
	case "", string(StatusNone):
		return StatusNone
	case string(StatusCreated):
		return StatusCreated
	case string(StatusSubmitted):
		return StatusSubmitted
	case string(StatusInProgress):
		return StatusInProgress
	case string(StatusDeferred):
		return StatusDeferred
	case string(StatusLanded):
		return StatusLanded
	case string(StatusFailed):
		return StatusFailed
	case string(StatusCancelled):
		return StatusCancelled
	default:
		return JobStatus(normalized)
	}
}

// Pending reports whether the job is queued or being worked on.
func (s JobStatus) Pending() bool {
	switch s {
	case StatusCreated, StatusSubmitted, StatusInProgress, StatusDeferred:
		return true
	default:
		return false
	}
}

// Terminal reports whether the job reached the one state no new
// landing request can follow.
func (s JobStatus) Terminal() bool {
	return s == StatusLanded
}

// Cancellable reports whether the job can still be withdrawn. A job
// that a worker already picked up runs to completion either way.
func (s JobStatus) Cancellable() bool {
	switch s {
	case StatusCreated, StatusSubmitted, StatusDeferred:
		return true
	default:
		return false
	}
}

func (s JobStatus) Display() string {
	switch s {
	case StatusNone:
		return "No landing job"
	case StatusCreated, StatusSubmitted:
		return "Landing queued"
	case StatusInProgress:
		return "In progress"
	case StatusDeferred:
		return "Deferred"
	case StatusLanded:
		return "Successfully landed"
	case StatusFailed:
		return "Failed to land"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

type LandingJob struct {
	ID         int       `json:"id"`
	Status     JobStatus `json:"status"`
	Repository string    `json:"repository,omitempty"`
	Requester  string    `json:"requester,omitempty"`
	Revisions  []string  `json:"revisions,omitempty"`
	URL        string    `json:"url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SubmitOutcome string

const (
	SubmitCreated  SubmitOutcome = "created"
	SubmitRejected SubmitOutcome = "rejected"
	SubmitUnknown  SubmitOutcome = "unknown"
)

type SubmitReceipt struct {
	Outcome SubmitOutcome `json:"outcome"`
	JobID   int           `json:"job_id,omitempty"`
	Reason  string        `json:"reason,omitempty"`
}
