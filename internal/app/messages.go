package app

import (
	"time"

	"landctl/internal/store"
	"landctl/internal/types"
)

type jobStatusMsg struct {
	generation int
	job        *types.LandingJob
	err        error
}

type checksMsg struct {
	generation int
	checks     *types.ChecksResult
	err        error
}

type submitResultMsg struct {
	generation int
	receipt    *types.SubmitReceipt
	err        error
}

type pullInfoMsg struct {
	pull *types.PullRequest
	err  error
}

type queueMsg struct {
	jobs []*types.LandingJob
	err  error
}

type cancelResultMsg struct {
	jobID int
	err   error
}

type historySavedMsg struct {
	record store.LandingRecord
	err    error
}

type tickMsg time.Time
