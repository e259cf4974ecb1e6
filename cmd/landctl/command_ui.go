package main

import (
	"flag"
	"io"
	"strings"

	"landctl/internal/app"
	"landctl/internal/config"
	"landctl/internal/logging"
)

type uiLoggerFactory func(cfg config.Config) (logging.Logger, io.Closer)

type UICommand struct {
	stderr      io.Writer
	newClient   clientFactory
	openHistory historyFactory
	newLogger   uiLoggerFactory
}

func NewUICommand(stderr io.Writer, newClient clientFactory, openHistory historyFactory, newLogger uiLoggerFactory) *UICommand {
	if newLogger == nil {
		newLogger = uiLogger
	}
	return &UICommand{
		stderr:      stderr,
		newClient:   newClient,
		openHistory: openHistory,
		newLogger:   newLogger,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	target := addPullTargetFlags(fs)
	headSHA := fs.String("head-sha", "", "head revision to land; defaults to the pull request head")
	if err := fs.Parse(args); err != nil {
		return err
	}
	repo, pull, err := target.resolve()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, logCloser := c.newLogger(cfg)
	if logger == nil {
		logger = logging.Nop()
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	var history app.HistorySink
	if c.openHistory != nil {
		store, err := c.openHistory()
		if err != nil {
			logger.Warn("history unavailable", logging.F("error", err.Error()))
		} else {
			history = store
			defer store.Close()
		}
	}

	client, err := c.newClient()
	if err != nil {
		return err
	}
	return client.RunUI(app.Options{
		Repo:           repo,
		Pull:           pull,
		HeadSHA:        strings.TrimSpace(*headSHA),
		History:        history,
		Logger:         logger,
		DarkBackground: cfg.DarkBackground(),
	})
}

// uiLogger logs to a file; the terminal belongs to the view. A logger
// that cannot open its file degrades to a no-op rather than failing
// the command.
func uiLogger(cfg config.Config) (logging.Logger, io.Closer) {
	path, err := config.UILogPath()
	if err != nil {
		return logging.Nop(), nil
	}
	logger, closer, err := logging.NewFileLogger(path, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		return logging.Nop(), nil
	}
	// The log file is shared across runs; tag each session so
	// interleaved lines stay attributable.
	return logger.With(logging.F("session", logging.NewRequestID())), closer
}
