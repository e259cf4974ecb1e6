package app

import (
	"fmt"
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"landctl/internal/types"
)

func queueFixtureJobs(n int) []*types.LandingJob {
	jobs := make([]*types.LandingJob, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, &types.LandingJob{
			ID:         100 + i,
			Status:     types.StatusSubmitted,
			Repository: "demo/widgets",
			Requester:  fmt.Sprintf("dev%d", i),
		})
	}
	return jobs
}

func TestQueueOverlayIgnoresUpdatesWhileClosed(t *testing.T) {
	q := NewQueueOverlay()
	q.SetJobs(queueFixtureJobs(2))
	if q.IsOpen() || len(q.jobs) != 0 {
		t.Fatalf("expected closed overlay to drop jobs")
	}
	q.SetError("boom")
	if q.err != "" {
		t.Fatalf("expected closed overlay to drop errors")
	}
}

func TestQueueOverlayOpenResetsState(t *testing.T) {
	q := NewQueueOverlay()
	q.Open()
	q.SetJobs(queueFixtureJobs(3))
	q.Move(2)

	q.Open()
	if !q.loading {
		t.Fatalf("expected reopened overlay to show loading")
	}
	if len(q.jobs) != 0 || q.cursor != 0 || q.offset != 0 {
		t.Fatalf("expected reopened overlay to clear previous listing")
	}
}

func TestQueueOverlayMoveClampsAndSelects(t *testing.T) {
	q := NewQueueOverlay()
	q.Open()
	q.SetJobs(queueFixtureJobs(3))

	q.Move(-1)
	if got := q.Selected(); got == nil || got.ID != 100 {
		t.Fatalf("expected cursor clamped to first job, got %+v", got)
	}
	q.Move(1)
	q.Move(1)
	q.Move(1)
	if got := q.Selected(); got == nil || got.ID != 102 {
		t.Fatalf("expected cursor clamped to last job, got %+v", got)
	}
}

func TestQueueOverlayScrollWindowFollowsCursor(t *testing.T) {
	q := NewQueueOverlay()
	q.Open()
	q.SetJobs(queueFixtureJobs(queueMaxVisible + 8))

	for i := 0; i < queueMaxVisible+3; i++ {
		q.Move(1)
	}
	if q.cursor != queueMaxVisible+3 {
		t.Fatalf("expected cursor %d, got %d", queueMaxVisible+3, q.cursor)
	}
	if q.offset != 4 {
		t.Fatalf("expected offset 4, got %d", q.offset)
	}

	q.Move(-queueMaxVisible - 3)
	if q.cursor != 0 || q.offset != 0 {
		t.Fatalf("expected window back at top, cursor=%d offset=%d", q.cursor, q.offset)
	}
}

func TestQueueOverlayViewListsJobsWithMarkers(t *testing.T) {
	q := NewQueueOverlay()
	q.Open()
	q.SetJobs(queueFixtureJobs(queueMaxVisible + 5))
	for i := 0; i < queueMaxVisible+2; i++ {
		q.Move(1)
	}

	view, _ := q.View(100, 40)
	plain := xansi.Strip(view)
	if !strings.Contains(plain, fmt.Sprintf("Landing queue (%d)", queueMaxVisible+5)) {
		t.Fatalf("expected header with job count, got %q", plain)
	}
	if !strings.Contains(plain, "... 3 earlier") {
		t.Fatalf("expected earlier marker, got %q", plain)
	}
	if !strings.Contains(plain, "... 2 more") {
		t.Fatalf("expected more marker, got %q", plain)
	}
	if !strings.Contains(plain, "#114") {
		t.Fatalf("expected selected row visible, got %q", plain)
	}
}

func TestQueueOverlayViewStates(t *testing.T) {
	q := NewQueueOverlay()
	q.Open()
	view, _ := q.View(100, 40)
	if !strings.Contains(xansi.Strip(view), "Loading...") {
		t.Fatalf("expected loading row, got %q", view)
	}

	q.SetJobs(nil)
	view, _ = q.View(100, 40)
	if !strings.Contains(xansi.Strip(view), "No landing jobs in flight.") {
		t.Fatalf("expected empty row, got %q", view)
	}

	q.SetError("api error (503): service unavailable")
	view, _ = q.View(100, 40)
	if !strings.Contains(xansi.Strip(view), "api error (503)") {
		t.Fatalf("expected error row, got %q", view)
	}
}

func TestQueueOverlayWidthCapped(t *testing.T) {
	q := NewQueueOverlay()
	q.Open()
	jobs := queueFixtureJobs(1)
	jobs[0].Repository = strings.Repeat("very-long-repository-name/", 8)
	q.SetJobs(jobs)

	_, _, width, _ := q.layout(200, 40)
	if width != queueMaxWidth {
		t.Fatalf("expected width capped at %d, got %d", queueMaxWidth, width)
	}

	view, _ := q.View(queueMaxWidth, 40)
	for _, line := range strings.Split(xansi.Strip(view), "\n") {
		if w := xansi.StringWidth(line); w > queueMaxWidth {
			t.Fatalf("expected rendered lines within cap %d, got width %d: %q", queueMaxWidth, w, line)
		}
	}
}
