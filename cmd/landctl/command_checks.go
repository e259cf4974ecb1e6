package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
)

type ChecksCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewChecksCommand(stdout, stderr io.Writer, newClient clientFactory) *ChecksCommand {
	return &ChecksCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *ChecksCommand) Run(args []string) error {
	fs := flag.NewFlagSet("checks", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	target := addPullTargetFlags(fs)
	asJSON := fs.Bool("json", false, "print the raw checks payload as JSON")
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
	checks, err := client.FetchChecks(ctx, repo, pull)
	if err != nil {
		return fmt.Errorf("fetch checks: %w", err)
	}

	if *asJSON {
		encoder := json.NewEncoder(c.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(checks)
	}

	if checks == nil || (!checks.HasBlockers() && !checks.HasWarnings()) {
		fmt.Fprintf(c.stdout, "%s#%d: no blockers, no warnings\n", repo, pull)
		return nil
	}
	if checks.HasBlockers() {
		fmt.Fprintln(c.stdout, "Blockers:")
		for _, blocker := range checks.Blockers {
			fmt.Fprintf(c.stdout, "  - %s\n", blocker)
		}
	}
	if checks.HasWarnings() {
		fmt.Fprintln(c.stdout, "Warnings:")
		for _, line := range checks.WarningLines() {
			fmt.Fprintf(c.stdout, "  - %s\n", line)
		}
	}
	return nil
}
