package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
)

type HistoryCommand struct {
	stdout      io.Writer
	stderr      io.Writer
	openHistory historyFactory
}

func NewHistoryCommand(stdout, stderr io.Writer, openHistory historyFactory) *HistoryCommand {
	return &HistoryCommand{
		stdout:      stdout,
		stderr:      stderr,
		openHistory: openHistory,
	}
}

func (c *HistoryCommand) Run(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	limit := fs.Int("limit", 20, "maximum number of records to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	history, err := c.openHistory()
	if err != nil {
		return err
	}
	defer history.Close()

	records, err := history.List(context.Background(), *limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(c.stdout, "No landing requests recorded.")
		return nil
	}

	writer := tabwriter.NewWriter(c.stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "WHEN\tREPO\tPULL\tOUTCOME\tJOB\tREASON")
	for _, record := range records {
		jobID := "-"
		if record.JobID > 0 {
			jobID = fmt.Sprintf("%d", record.JobID)
		}
		fmt.Fprintf(writer, "%s\t%s\t%d\t%s\t%s\t%s\n",
			formatTableTime(record.CreatedAt),
			record.Repo,
			record.PullNumber,
			record.Outcome,
			jobID,
			truncateCell(record.Reason, reasonColumnWidth))
	}
	return writer.Flush()
}
