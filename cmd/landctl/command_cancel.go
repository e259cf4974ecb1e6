package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
)

type CancelCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewCancelCommand(stdout, stderr io.Writer, newClient clientFactory) *CancelCommand {
	return &CancelCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *CancelCommand) Run(args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("cancel requires a landing job id")
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
	if client.Anonymous() {
		return errors.New("log in to cancel a landing job: no CSRF token configured")
	}
	if err := client.CancelLandingJob(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Landing job #%d cancelled.\n", id)
	return nil
}
