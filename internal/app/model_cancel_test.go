package app

import (
	"errors"
	"testing"

	"landctl/internal/landing"
	"landctl/internal/types"
)

func TestCancelInFlightJob(t *testing.T) {
	api := &fakeLandingAPI{
		job: &types.LandingJob{ID: 31, Status: types.StatusSubmitted, Repository: "demo/widgets"},
	}
	m := newTestModel(api, Options{})
	m.Init()

	m.Update(jobStatusMsg{generation: 1, job: api.job})
	if m.action.State != landing.GateInFlight {
		t.Fatalf("expected in-flight state, got %q", m.action.State)
	}

	m.Update(keyMsg("c"))
	if !m.confirm.IsOpen() {
		t.Fatalf("expected confirmation dialog to open")
	}

	_, cmd := m.Update(keyMsg("enter"))
	if m.confirm.IsOpen() {
		t.Fatalf("expected confirmation dialog to close")
	}
	runCmd(cmd)
	if api.cancelCalls != 1 || api.cancelledID != 31 {
		t.Fatalf("expected cancel of job 31, got calls=%d id=%d", api.cancelCalls, api.cancelledID)
	}

	m.Update(cancelResultMsg{jobID: 31})
	if m.toastText != "Landing job #31 cancelled" {
		t.Fatalf("unexpected toast %q", m.toastText)
	}
	if m.job != nil {
		t.Fatalf("expected tracked job to clear, got %#v", m.job)
	}
	snapshot := m.machine.Snapshot()
	if snapshot.Generation != 2 || snapshot.Phase != landing.PhaseUnknown {
		t.Fatalf("expected reload after cancel, got %#v", snapshot)
	}
}

func TestCancelDeclinedKeepsJob(t *testing.T) {
	api := &fakeLandingAPI{
		job: &types.LandingJob{ID: 8, Status: types.StatusDeferred},
	}
	m := newTestModel(api, Options{})
	m.Init()
	m.Update(jobStatusMsg{generation: 1, job: api.job})

	m.Update(keyMsg("c"))
	_, cmd := m.Update(keyMsg("n"))
	runCmd(cmd)

	if m.confirm.IsOpen() {
		t.Fatalf("expected dialog to close on decline")
	}
	if api.cancelCalls != 0 {
		t.Fatalf("expected no cancel request, got %d", api.cancelCalls)
	}
	if m.job == nil || m.job.ID != 8 {
		t.Fatalf("expected job to stay tracked, got %#v", m.job)
	}
}

func TestCancelUnavailableWithoutJob(t *testing.T) {
	api := &fakeLandingAPI{}
	m := newTestModel(api, Options{})
	m.Init()
	m.Update(jobStatusMsg{generation: 1})

	m.Update(keyMsg("c"))
	if m.confirm.IsOpen() {
		t.Fatalf("expected no dialog without a job")
	}
	if m.status != "no landing job to cancel" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestCancelUnavailableForRunningJob(t *testing.T) {
	api := &fakeLandingAPI{
		job: &types.LandingJob{ID: 12, Status: types.StatusInProgress},
	}
	m := newTestModel(api, Options{})
	m.Init()
	m.Update(jobStatusMsg{generation: 1, job: api.job})

	m.Update(keyMsg("c"))
	if m.confirm.IsOpen() {
		t.Fatalf("expected no dialog for a job already in progress")
	}
}

func TestCancelFailureSurfacesError(t *testing.T) {
	api := &fakeLandingAPI{
		job:       &types.LandingJob{ID: 5, Status: types.StatusSubmitted},
		cancelErr: errors.New("api error (409): job already started"),
	}
	m := newTestModel(api, Options{})
	m.Init()
	m.Update(jobStatusMsg{generation: 1, job: api.job})

	m.Update(keyMsg("c"))
	_, cmd := m.Update(keyMsg("y"))
	var result cancelResultMsg
	found := false
	for _, msg := range runCmd(cmd) {
		if cancelled, ok := msg.(cancelResultMsg); ok {
			result = cancelled
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a cancel result message")
	}

	m.Update(result)
	if m.status == "" || m.toastLevel != toastLevelError {
		t.Fatalf("expected error status, got status=%q level=%d", m.status, m.toastLevel)
	}
	if m.machine.Snapshot().Generation != 1 {
		t.Fatalf("expected no reload after failed cancel")
	}
}

func TestQueueOverlayFlow(t *testing.T) {
	api := &fakeLandingAPI{
		queue: []*types.LandingJob{
			{ID: 7, Status: types.StatusInProgress, Repository: "demo/widgets", Requester: "ana"},
			{ID: 9, Status: types.StatusSubmitted, Repository: "demo/gears", Requester: "bo"},
		},
	}
	m := newTestModel(api, Options{})
	m.Init()
	m.Update(jobStatusMsg{generation: 1})

	_, cmd := m.Update(keyMsg("v"))
	if !m.queue.IsOpen() {
		t.Fatalf("expected queue overlay to open")
	}
	var jobs queueMsg
	for _, msg := range runCmd(cmd) {
		if q, ok := msg.(queueMsg); ok {
			jobs = q
		}
	}
	if api.queueCalls != 1 {
		t.Fatalf("expected one queue fetch, got %d", api.queueCalls)
	}

	m.Update(jobs)
	if selected := m.queue.Selected(); selected == nil || selected.ID != 7 {
		t.Fatalf("expected first job selected, got %#v", selected)
	}
	m.Update(keyMsg("down"))
	if selected := m.queue.Selected(); selected == nil || selected.ID != 9 {
		t.Fatalf("expected second job selected, got %#v", selected)
	}

	m.Update(keyMsg("esc"))
	if m.queue.IsOpen() {
		t.Fatalf("expected queue overlay to close")
	}
}

func TestQueueFetchErrorShownInOverlay(t *testing.T) {
	api := &fakeLandingAPI{queueErr: errors.New("api error (500): queue unavailable")}
	m := newTestModel(api, Options{})
	m.Init()
	m.Update(jobStatusMsg{generation: 1})

	_, cmd := m.Update(keyMsg("v"))
	for _, msg := range runCmd(cmd) {
		if q, ok := msg.(queueMsg); ok {
			m.Update(q)
		}
	}
	if m.queue.err == "" {
		t.Fatalf("expected queue error to be recorded")
	}
}

func TestCopyPullRequestURL(t *testing.T) {
	origWrite := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = origWrite })
	var copied string
	clipboardWriteAll = func(text string) error {
		copied = text
		return nil
	}

	api := &fakeLandingAPI{}
	m := newTestModel(api, Options{})
	m.Init()

	m.Update(keyMsg("y"))
	if m.status != "no pull request URL yet" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m.Update(pullInfoMsg{pull: &types.PullRequest{Number: 42, HTMLURL: "https://github.com/demo/widgets/pull/42"}})
	m.Update(keyMsg("y"))
	if copied != "https://github.com/demo/widgets/pull/42" {
		t.Fatalf("unexpected clipboard payload %q", copied)
	}
	if m.status != "pull request URL copied" {
		t.Fatalf("unexpected status %q", m.status)
	}
}
