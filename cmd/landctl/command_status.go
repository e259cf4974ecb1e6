package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
)

type StatusCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewStatusCommand(stdout, stderr io.Writer, newClient clientFactory) *StatusCommand {
	return &StatusCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *StatusCommand) Run(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	target := addPullTargetFlags(fs)
	asJSON := fs.Bool("json", false, "print the raw job payload as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	repo, pull, err := target.resolve()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	job, err := client.FetchLandingJobDetail(ctx, repo, pull)
	if err != nil {
		return fmt.Errorf("fetch landing status: %w", err)
	}

	if *asJSON {
		encoder := json.NewEncoder(c.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(job)
	}

	if job == nil || job.ID <= 0 {
		fmt.Fprintf(c.stdout, "%s#%d: %s\n", repo, pull, "No landing job")
		return nil
	}
	fmt.Fprintf(c.stdout, "%s#%d: %s (job #%d)\n", repo, pull, job.Status.Display(), job.ID)
	if job.URL != "" {
		fmt.Fprintf(c.stdout, "  %s\n", job.URL)
	}
	return nil
}
