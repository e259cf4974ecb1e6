package main

import (
	"io"
	"os"

	"landctl/internal/config"
	"landctl/internal/store"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdout      io.Writer
	stderr      io.Writer
	newClient   clientFactory
	openHistory historyFactory
	newUILogger uiLoggerFactory
	version     string
}

type historyFactory func() (store.HistoryStore, error)

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:      stdout,
		stderr:      stderr,
		newClient:   newLandingClient,
		openHistory: openHistoryStore,
		newUILogger: uiLogger,
		version:     buildVersion(),
	}
}

func openHistoryStore() (store.HistoryStore, error) {
	path, err := config.HistoryDBPath()
	if err != nil {
		return nil, err
	}
	return store.NewHistoryStore(path)
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"status":  NewStatusCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"checks":  NewChecksCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"land":    NewLandCommand(wiring.stdout, wiring.stderr, wiring.newClient, wiring.openHistory),
		"cancel":  NewCancelCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"queue":   NewQueueCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"job":     NewJobCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"history": NewHistoryCommand(wiring.stdout, wiring.stderr, wiring.openHistory),
		"config":  NewConfigCommand(wiring.stdout, wiring.stderr),
		"ui":      NewUICommand(wiring.stderr, wiring.newClient, wiring.openHistory, wiring.newUILogger),
		"version": NewVersionCommand(wiring.stdout, wiring.version),
	}
}
