package types

import "time"

type PullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title,omitempty"`
	Body      string     `json:"body,omitempty"`
	HTMLURL   string     `json:"html_url,omitempty"`
	BaseRef   string     `json:"base_ref,omitempty"`
	HeadSHA   string     `json:"head_sha,omitempty"`
	Draft     bool       `json:"draft,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
}
