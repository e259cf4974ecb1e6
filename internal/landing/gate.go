package landing

import "landctl/internal/types"

// GateDecision is the permission verdict for the landing action.
// Exactly one field is set once checks are known.
type GateDecision struct {
	Blocked  bool
	NeedsAck bool
	Ready    bool
}

// Evaluate combines server-computed blockers and warnings with the
// viewer's acknowledgment flag. Blockers dominate unconditionally;
// acknowledgment changes the outcome only when blockers are empty and
// warnings are not.
func Evaluate(checks types.ChecksResult, acknowledged bool) GateDecision {
	if checks.HasBlockers() {
		return GateDecision{Blocked: true}
	}
	if checks.HasWarnings() && !acknowledged {
		return GateDecision{NeedsAck: true}
	}
	return GateDecision{Ready: true}
}
