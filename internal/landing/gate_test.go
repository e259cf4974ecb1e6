package landing

import (
	"testing"

	"landctl/internal/types"
)

func TestEvaluateBlockersDominate(t *testing.T) {
	checks := types.ChecksResult{
		Blockers: []string{"Is not Accepted."},
		Warnings: []types.WarningRecord{{Display: "Pull request is marked as WIP."}},
	}
	for _, acknowledged := range []bool{false, true} {
		got := Evaluate(checks, acknowledged)
		if !got.Blocked || got.NeedsAck || got.Ready {
			t.Fatalf("acknowledged=%v: expected blocked, got %#v", acknowledged, got)
		}
	}
}

func TestEvaluateWarningsRequireAcknowledgment(t *testing.T) {
	checks := types.ChecksResult{
		Warnings: []types.WarningRecord{{Display: "Pull request has a diff warning."}},
	}
	unacked := Evaluate(checks, false)
	if !unacked.NeedsAck || unacked.Ready || unacked.Blocked {
		t.Fatalf("expected needs-ack, got %#v", unacked)
	}
	acked := Evaluate(checks, true)
	if !acked.Ready || acked.NeedsAck || acked.Blocked {
		t.Fatalf("expected ready after acknowledgment, got %#v", acked)
	}
}

func TestEvaluateCleanChecksAreReadyRegardlessOfAcknowledgment(t *testing.T) {
	for _, acknowledged := range []bool{false, true} {
		got := Evaluate(types.ChecksResult{}, acknowledged)
		if !got.Ready || got.Blocked || got.NeedsAck {
			t.Fatalf("acknowledged=%v: expected ready, got %#v", acknowledged, got)
		}
	}
}
