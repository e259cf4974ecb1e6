package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"landctl/internal/landing"
	"landctl/internal/logging"
	"landctl/internal/store"
	"landctl/internal/types"
)

type LandCommand struct {
	stdout      io.Writer
	stderr      io.Writer
	newClient   clientFactory
	openHistory historyFactory
}

func NewLandCommand(stdout, stderr io.Writer, newClient clientFactory, openHistory historyFactory) *LandCommand {
	return &LandCommand{
		stdout:      stdout,
		stderr:      stderr,
		newClient:   newClient,
		openHistory: openHistory,
	}
}

func (c *LandCommand) Run(args []string) error {
	fs := flag.NewFlagSet("land", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	target := addPullTargetFlags(fs)
	headSHA := fs.String("head-sha", "", "head revision to land; defaults to the pull request head")
	acknowledge := fs.Bool("acknowledge", false, "accept landing warnings")
	verbose := fs.Bool("verbose", false, "log each step to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	repo, pull, err := target.resolve()
	if err != nil {
		return err
	}

	logger := logging.Nop()
	if *verbose {
		logger = logging.New(c.stderr, logging.Debug)
	}

	client, err := c.newClient()
	if err != nil {
		return err
	}
	if client.Anonymous() {
		return errors.New("log in to request landing: no CSRF token configured")
	}

	runner := &landRunner{
		stdout:      c.stdout,
		stderr:      c.stderr,
		client:      client,
		openHistory: c.openHistory,
		logger:      logger,
		repo:        repo,
		pull:        pull,
		headSHA:     strings.TrimSpace(*headSHA),
		acknowledge: *acknowledge,
		machine:     landing.NewMachine(false),
	}
	return runner.run(context.Background())
}

// landRunner walks one pull request through the landing gate: fetch
// status, fetch checks, evaluate, submit, refresh. The same state
// machine the interactive view uses drives the sequencing; the runner
// just performs its effects inline.
type landRunner struct {
	stdout      io.Writer
	stderr      io.Writer
	client      commandClient
	openHistory historyFactory
	logger      logging.Logger
	repo        string
	pull        int
	headSHA     string
	acknowledge bool
	machine     *landing.Machine
	job         *types.LandingJob
}

func (r *landRunner) run(ctx context.Context) error {
	transition := r.machine.Apply(landing.Event{Type: landing.EventViewOpened})
	if transition.Ignored {
		return errors.New(transition.Reason)
	}
	if err := r.drain(ctx, transition.Effects); err != nil {
		return err
	}

	snapshot := r.machine.Snapshot()
	switch snapshot.Phase {
	case landing.PhaseLanded:
		fmt.Fprintf(r.stdout, "%s#%d already landed.\n", r.repo, r.pull)
		return nil
	case landing.PhaseInFlight:
		fmt.Fprintf(r.stdout, "%s#%d has a landing job in flight: %s\n", r.repo, r.pull, r.jobLabel())
		return nil
	case landing.PhaseGated:
	default:
		return fmt.Errorf("landing status unavailable: %s", failureLabel(snapshot.Failure))
	}

	if snapshot.Gate.Blocked {
		fmt.Fprintln(r.stdout, "Landing is blocked:")
		for _, blocker := range snapshot.Checks.Blockers {
			fmt.Fprintf(r.stdout, "  - %s\n", blocker)
		}
		return errors.New("landing is blocked")
	}
	if snapshot.Checks.HasWarnings() {
		fmt.Fprintln(r.stdout, "Warnings:")
		for _, line := range snapshot.Checks.WarningLines() {
			fmt.Fprintf(r.stdout, "  - %s\n", line)
		}
	}
	if snapshot.Gate.NeedsAck {
		if !r.acknowledge {
			return errors.New("warnings present; re-run with --acknowledge to land anyway")
		}
		ack := r.machine.Apply(landing.Event{Type: landing.EventAckToggled, Generation: r.machine.Generation()})
		if ack.Ignored {
			return errors.New(ack.Reason)
		}
		r.logger.Debug("warnings acknowledged", logging.F("count", len(snapshot.Checks.Warnings)))
	}

	if err := r.resolveHeadSHA(ctx); err != nil {
		return err
	}

	press := r.machine.Apply(landing.Event{Type: landing.EventSubmitPressed, Generation: r.machine.Generation()})
	if press.Ignored {
		return errors.New(press.Reason)
	}
	if err := r.drain(ctx, press.Effects); err != nil {
		return err
	}

	final := r.machine.Snapshot()
	switch final.Phase {
	case landing.PhaseSubmitFailed:
		return fmt.Errorf("landing request failed: %s", failureLabel(final.Failure))
	case landing.PhaseLanded:
		fmt.Fprintf(r.stdout, "%s#%d landed.\n", r.repo, r.pull)
		return nil
	default:
		fmt.Fprintf(r.stdout, "Landing requested for %s#%d: %s\n", r.repo, r.pull, r.jobLabel())
		return nil
	}
}

func (r *landRunner) drain(ctx context.Context, effects []landing.Effect) error {
	queue := append([]landing.Effect(nil), effects...)
	for len(queue) > 0 {
		effect := queue[0]
		queue = queue[1:]
		next, err := r.perform(ctx, effect)
		if err != nil {
			return err
		}
		queue = append(queue, next...)
	}
	return nil
}

func (r *landRunner) perform(ctx context.Context, effect landing.Effect) ([]landing.Effect, error) {
	generation := r.machine.Generation()
	switch effect {
	case landing.EffectFetchStatus:
		job, err := r.client.FetchLandingJobDetail(ctx, r.repo, r.pull)
		if err != nil {
			r.machine.Apply(landing.Event{Type: landing.EventStatusFailed, Generation: generation, Failure: err.Error()})
			return nil, fmt.Errorf("fetch landing status: %w", err)
		}
		status := types.StatusNone
		if job != nil {
			status = job.Status
		}
		if job != nil && job.ID > 0 {
			r.job = job
		} else {
			r.job = nil
		}
		r.logger.Debug("status resolved", logging.F("status", string(status)))
		transition := r.machine.Apply(landing.Event{Type: landing.EventStatusResolved, Generation: generation, Status: status})
		return transition.Effects, nil

	case landing.EffectFetchChecks:
		checks, err := r.client.FetchChecks(ctx, r.repo, r.pull)
		if err != nil {
			r.machine.Apply(landing.Event{Type: landing.EventChecksFailed, Generation: generation, Failure: err.Error()})
			return nil, fmt.Errorf("fetch checks: %w", err)
		}
		result := types.ChecksResult{}
		if checks != nil {
			result = *checks
		}
		r.logger.Debug("checks resolved",
			logging.F("blockers", len(result.Blockers)),
			logging.F("warnings", len(result.Warnings)))
		transition := r.machine.Apply(landing.Event{Type: landing.EventChecksResolved, Generation: generation, Checks: result})
		return transition.Effects, nil

	case landing.EffectSubmit:
		receipt := types.SubmitReceipt{Outcome: types.SubmitUnknown}
		resp, err := r.client.SubmitLandingJob(ctx, r.repo, r.pull, r.headSHA)
		if err != nil {
			receipt.Reason = err.Error()
		} else if resp != nil {
			receipt = *resp
		}
		r.recordHistory(ctx, receipt)
		r.logger.Info("landing submit resolved",
			logging.F("outcome", string(receipt.Outcome)),
			logging.F("job_id", receipt.JobID))
		transition := r.machine.Apply(landing.Event{Type: landing.EventSubmitResolved, Generation: generation, Receipt: receipt})
		return transition.Effects, nil

	case landing.EffectRefresh:
		transition := r.machine.Apply(landing.Event{Type: landing.EventReloadRequested})
		return transition.Effects, nil

	default:
		return nil, fmt.Errorf("unknown effect: %s", effect)
	}
}

func (r *landRunner) resolveHeadSHA(ctx context.Context) error {
	if r.headSHA != "" {
		return nil
	}
	pr, err := r.client.FetchPullRequest(ctx, r.repo, r.pull)
	if err != nil {
		return fmt.Errorf("fetch pull request: %w", err)
	}
	if pr == nil || strings.TrimSpace(pr.HeadSHA) == "" {
		return errors.New("head revision unknown; pass --head-sha")
	}
	r.headSHA = strings.TrimSpace(pr.HeadSHA)
	return nil
}

// recordHistory writes the attempt locally. The submission already
// happened; a bookkeeping failure is reported but never fails the
// landing.
func (r *landRunner) recordHistory(ctx context.Context, receipt types.SubmitReceipt) {
	if r.openHistory == nil {
		return
	}
	history, err := r.openHistory()
	if err != nil {
		fmt.Fprintf(r.stderr, "history unavailable: %v\n", err)
		return
	}
	defer history.Close()
	_, err = history.Append(ctx, store.LandingRecord{
		Repo:       r.repo,
		PullNumber: r.pull,
		HeadSHA:    r.headSHA,
		JobID:      receipt.JobID,
		Outcome:    receipt.Outcome,
		Reason:     receipt.Reason,
	})
	if err != nil {
		fmt.Fprintf(r.stderr, "history append failed: %v\n", err)
	}
}

func (r *landRunner) jobLabel() string {
	if r.job == nil || r.job.ID <= 0 {
		return "status pending"
	}
	return fmt.Sprintf("job #%d (%s)", r.job.ID, r.job.Status.Display())
}

func failureLabel(failure string) string {
	if trimmed := strings.TrimSpace(failure); trimmed != "" {
		return trimmed
	}
	return "unknown failure"
}
