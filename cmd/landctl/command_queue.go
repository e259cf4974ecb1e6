package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
)

type QueueCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewQueueCommand(stdout, stderr io.Writer, newClient clientFactory) *QueueCommand {
	return &QueueCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *QueueCommand) Run(args []string) error {
	fs := flag.NewFlagSet("queue", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	asJSON := fs.Bool("json", false, "print the raw queue payload as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	jobs, err := client.FetchQueue(ctx)
	if err != nil {
		return fmt.Errorf("fetch queue: %w", err)
	}

	if *asJSON {
		encoder := json.NewEncoder(c.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(jobs)
	}

	if len(jobs) == 0 {
		fmt.Fprintln(c.stdout, "No landing jobs in flight.")
		return nil
	}
	printJobs(c.stdout, jobs)
	return nil
}
