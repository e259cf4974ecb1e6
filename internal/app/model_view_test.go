package app

import (
	"strings"
	"testing"

	"landctl/internal/types"
)

func TestActionPanelShowsBlockers(t *testing.T) {
	api := &fakeLandingAPI{}
	m := newTestModel(api, Options{})
	m.Init()
	m.Update(jobStatusMsg{generation: 1})
	m.Update(checksMsg{generation: 1, checks: &types.ChecksResult{
		Blockers: []string{"Revision is closed.", "Repository is locked."},
		Warnings: []types.WarningRecord{{Display: "Tree is slushy."}},
	}})

	panel := strings.Join(m.actionPanelLines(100), "\n")
	if !strings.Contains(panel, "Landing is blocked") {
		t.Fatalf("expected blocked label, got %q", panel)
	}
	if !strings.Contains(panel, "Revision is closed.") || !strings.Contains(panel, "Repository is locked.") {
		t.Fatalf("expected both blockers listed, got %q", panel)
	}
	if !strings.Contains(panel, "Tree is slushy.") {
		t.Fatalf("expected warnings listed alongside blockers, got %q", panel)
	}
	if strings.Contains(panel, "Acknowledge warnings") {
		t.Fatalf("expected no acknowledgment control while blocked, got %q", panel)
	}
}

func TestActionPanelShowsArticulatedWarningDetails(t *testing.T) {
	api := &fakeLandingAPI{}
	m := newTestModel(api, Options{})
	m.Init()
	m.Update(jobStatusMsg{generation: 1})
	m.Update(checksMsg{generation: 1, checks: &types.ChecksResult{
		Warnings: []types.WarningRecord{{
			Articulated: true,
			Display:     "Some checks failed on the head revision.",
			Instances: []types.WarningInstance{{
				Display: "test-linux64 failed",
				Details: []string{"timeout in suite A"},
			}},
		}},
	}})

	panel := strings.Join(m.actionPanelLines(100), "\n")
	if !strings.Contains(panel, "Some checks failed on the head revision.") {
		t.Fatalf("expected warning headline, got %q", panel)
	}
	if !strings.Contains(panel, "test-linux64 failed") {
		t.Fatalf("expected instance line, got %q", panel)
	}
	if !strings.Contains(panel, "timeout in suite A") {
		t.Fatalf("expected detail line, got %q", panel)
	}
	if !strings.Contains(panel, "[ ] Acknowledge warnings") {
		t.Fatalf("expected unchecked acknowledgment control, got %q", panel)
	}

	m.Update(keyMsg("a"))
	panel = strings.Join(m.actionPanelLines(100), "\n")
	if !strings.Contains(panel, "[x] Warnings acknowledged") {
		t.Fatalf("expected checked acknowledgment control, got %q", panel)
	}
}

func TestHeaderShowsJobChip(t *testing.T) {
	api := &fakeLandingAPI{}
	m := newTestModel(api, Options{})
	m.Init()
	m.Update(pullInfoMsg{pull: &types.PullRequest{Number: 42, Title: "Add frobnicator support"}})
	m.Update(jobStatusMsg{generation: 1, job: &types.LandingJob{ID: 31, Status: types.StatusInProgress}})

	header := m.headerLine(100)
	if !strings.Contains(header, "demo/widgets#42") {
		t.Fatalf("expected pull reference in header, got %q", header)
	}
	if !strings.Contains(header, "Add frobnicator support") {
		t.Fatalf("expected title in header, got %q", header)
	}
	if !strings.Contains(header, "job #31: In progress") {
		t.Fatalf("expected job chip in header, got %q", header)
	}
}

func TestViewOverlaysConfirmDialog(t *testing.T) {
	api := &fakeLandingAPI{
		job: &types.LandingJob{ID: 31, Status: types.StatusSubmitted},
	}
	m := newTestModel(api, Options{})
	m.Init()
	m.Update(jobStatusMsg{generation: 1, job: api.job})
	m.Update(keyMsg("c"))

	view := m.View()
	if !strings.Contains(view, "Cancel landing job?") {
		t.Fatalf("expected confirmation dialog in view")
	}
	if !strings.Contains(view, "Cancel job") || !strings.Contains(view, "Keep job") {
		t.Fatalf("expected both dialog buttons in view")
	}
}

func TestViewShowsStatusLine(t *testing.T) {
	api := &fakeLandingAPI{}
	m := newTestModel(api, Options{})
	m.Init()
	m.Update(jobStatusMsg{generation: 1})
	m.Update(checksMsg{generation: 1, checks: &types.ChecksResult{}})
	m.setStatusMessage("reloading")

	view := m.View()
	if !strings.Contains(view, "Request landing") {
		t.Fatalf("expected action label in view")
	}
	if !strings.Contains(view, "reloading") {
		t.Fatalf("expected status text in view")
	}
	if !strings.Contains(view, "? help") {
		t.Fatalf("expected help hints in view")
	}
}

func TestSpliceOverlayReplacesRows(t *testing.T) {
	base := "one\ntwo\nthree\nfour"
	got := spliceOverlay(base, "A\nB", 1)
	if got != "one\nA\nB\nfour" {
		t.Fatalf("unexpected splice result %q", got)
	}
	if spliceOverlay(base, "", 1) != base {
		t.Fatalf("expected empty overlay to leave base untouched")
	}
	if got := spliceOverlay(base, "X\nY\nZ", 3); got != "one\ntwo\nthree\nX" {
		t.Fatalf("expected overflow rows to be dropped, got %q", got)
	}
}
