package main

import (
	"context"

	"landctl/internal/app"
	landingclient "landctl/internal/client"
	"landctl/internal/types"
)

type clientFactory func() (commandClient, error)

type commandClient interface {
	Anonymous() bool
	BaseURL() string
	FetchLandingJobDetail(ctx context.Context, repo string, pull int) (*types.LandingJob, error)
	FetchChecks(ctx context.Context, repo string, pull int) (*types.ChecksResult, error)
	FetchPullRequest(ctx context.Context, repo string, pull int) (*types.PullRequest, error)
	SubmitLandingJob(ctx context.Context, repo string, pull int, headSHA string) (*types.SubmitReceipt, error)
	CancelLandingJob(ctx context.Context, id int) error
	FetchQueue(ctx context.Context) ([]*types.LandingJob, error)
	FetchJob(ctx context.Context, id int) (*types.LandingJob, error)
	RunUI(opts app.Options) error
}

type landingClientAdapter struct {
	client *landingclient.Client
}

func newLandingClient() (commandClient, error) {
	client, err := landingclient.New()
	if err != nil {
		return nil, err
	}
	return &landingClientAdapter{client: client}, nil
}

func (c *landingClientAdapter) Anonymous() bool {
	return c.client.Anonymous()
}

func (c *landingClientAdapter) BaseURL() string {
	return c.client.BaseURL()
}

func (c *landingClientAdapter) FetchLandingJobDetail(ctx context.Context, repo string, pull int) (*types.LandingJob, error) {
	return c.client.FetchLandingJobDetail(ctx, repo, pull)
}

func (c *landingClientAdapter) FetchChecks(ctx context.Context, repo string, pull int) (*types.ChecksResult, error) {
	return c.client.FetchChecks(ctx, repo, pull)
}

func (c *landingClientAdapter) FetchPullRequest(ctx context.Context, repo string, pull int) (*types.PullRequest, error) {
	return c.client.FetchPullRequest(ctx, repo, pull)
}

func (c *landingClientAdapter) SubmitLandingJob(ctx context.Context, repo string, pull int, headSHA string) (*types.SubmitReceipt, error) {
	return c.client.SubmitLandingJob(ctx, repo, pull, headSHA)
}

func (c *landingClientAdapter) CancelLandingJob(ctx context.Context, id int) error {
	return c.client.CancelLandingJob(ctx, id)
}

func (c *landingClientAdapter) FetchQueue(ctx context.Context) ([]*types.LandingJob, error) {
	return c.client.FetchQueue(ctx)
}

func (c *landingClientAdapter) FetchJob(ctx context.Context, id int) (*types.LandingJob, error) {
	return c.client.FetchJob(ctx, id)
}

func (c *landingClientAdapter) RunUI(opts app.Options) error {
	return app.Run(c.client, opts)
}
