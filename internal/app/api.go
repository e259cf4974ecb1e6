package app

import (
	"context"

	"landctl/internal/store"
	"landctl/internal/types"
)

// LandingAPI is the slice of the HTTP client the landing view needs.
type LandingAPI interface {
	Anonymous() bool
	BaseURL() string
	FetchLandingJobDetail(ctx context.Context, repo string, pull int) (*types.LandingJob, error)
	FetchChecks(ctx context.Context, repo string, pull int) (*types.ChecksResult, error)
	FetchPullRequest(ctx context.Context, repo string, pull int) (*types.PullRequest, error)
	SubmitLandingJob(ctx context.Context, repo string, pull int, headSHA string) (*types.SubmitReceipt, error)
	CancelLandingJob(ctx context.Context, id int) error
	FetchQueue(ctx context.Context) ([]*types.LandingJob, error)
}

// HistorySink records submit attempts. A nil sink disables recording.
type HistorySink interface {
	Append(ctx context.Context, record store.LandingRecord) (store.LandingRecord, error)
}
