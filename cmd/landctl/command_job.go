package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type JobCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewJobCommand(stdout, stderr io.Writer, newClient clientFactory) *JobCommand {
	return &JobCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *JobCommand) Run(args []string) error {
	fs := flag.NewFlagSet("job", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	asJSON := fs.Bool("json", false, "print the raw job payload as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("job requires a landing job id")
	}
	id, err := strconv.Atoi(fs.Arg(0))
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid landing job id: %q", fs.Arg(0))
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	job, err := client.FetchJob(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch job: %w", err)
	}

	if *asJSON {
		encoder := json.NewEncoder(c.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(job)
	}

	if job == nil || job.ID <= 0 {
		return fmt.Errorf("landing job %d not found", id)
	}
	fmt.Fprintf(c.stdout, "Job #%d: %s\n", job.ID, job.Status.Display())
	if job.Repository != "" {
		fmt.Fprintf(c.stdout, "  repository: %s\n", job.Repository)
	}
	if job.Requester != "" {
		fmt.Fprintf(c.stdout, "  requester:  %s\n", job.Requester)
	}
	if len(job.Revisions) > 0 {
		fmt.Fprintf(c.stdout, "  revisions:  %s\n", strings.Join(job.Revisions, ", "))
	}
	if job.URL != "" {
		fmt.Fprintf(c.stdout, "  url:        %s\n", job.URL)
	}
	if !job.CreatedAt.IsZero() {
		fmt.Fprintf(c.stdout, "  created:    %s\n", formatTableTime(job.CreatedAt))
	}
	if !job.UpdatedAt.IsZero() {
		fmt.Fprintf(c.stdout, "  updated:    %s\n", formatTableTime(job.UpdatedAt))
	}
	return nil
}
