package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"landctl/internal/store"
	"landctl/internal/types"
)

func fetchJobStatusCmd(ctx context.Context, api LandingAPI, repo string, pull, generation int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		job, err := api.FetchLandingJobDetail(ctx, repo, pull)
		return jobStatusMsg{generation: generation, job: job, err: err}
	}
}

func fetchChecksCmd(ctx context.Context, api LandingAPI, repo string, pull, generation int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		checks, err := api.FetchChecks(ctx, repo, pull)
		return checksMsg{generation: generation, checks: checks, err: err}
	}
}

func submitLandingCmd(ctx context.Context, api LandingAPI, repo string, pull int, headSHA string, generation int) tea.Cmd {
	return func() tea.Msg {
		if headSHA == "" {
			return submitResultMsg{generation: generation, err: errors.New("head revision unknown; reload and try again")}
		}
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		receipt, err := api.SubmitLandingJob(ctx, repo, pull, headSHA)
		return submitResultMsg{generation: generation, receipt: receipt, err: err}
	}
}

func fetchPullInfoCmd(ctx context.Context, api LandingAPI, repo string, pull int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		info, err := api.FetchPullRequest(ctx, repo, pull)
		return pullInfoMsg{pull: info, err: err}
	}
}

func fetchQueueCmd(ctx context.Context, api LandingAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		jobs, err := api.FetchQueue(ctx)
		return queueMsg{jobs: jobs, err: err}
	}
}

func cancelJobCmd(ctx context.Context, api LandingAPI, jobID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		err := api.CancelLandingJob(ctx, jobID)
		return cancelResultMsg{jobID: jobID, err: err}
	}
}

func appendHistoryCmd(history HistorySink, record store.LandingRecord) tea.Cmd {
	if history == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		saved, err := history.Append(ctx, record)
		return historySavedMsg{record: saved, err: err}
	}
}

func historyRecordForReceipt(repo string, pull int, headSHA string, receipt types.SubmitReceipt) store.LandingRecord {
	return store.LandingRecord{
		Repo:       repo,
		PullNumber: pull,
		HeadSHA:    headSHA,
		JobID:      receipt.JobID,
		Outcome:    receipt.Outcome,
		Reason:     receipt.Reason,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
