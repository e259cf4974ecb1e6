package landing

type GateState string

const (
	GateUnauthenticated GateState = "unauthenticated"
	GateNoJobReady      GateState = "no_job_ready"
	GateBlocked         GateState = "blocked"
	GateNeedsAck        GateState = "needs_ack"
	GateReady           GateState = "ready"
	GateSubmitting      GateState = "submitting"
	GateSubmitFailed    GateState = "submit_failed"
	GateInFlight        GateState = "in_flight"
	GateLanded          GateState = "landed"
)

type ActionStyle string

const (
	StyleNeutral ActionStyle = "neutral"
	StyleSuccess ActionStyle = "success"
	StyleWarning ActionStyle = "warning"
	StyleDanger  ActionStyle = "danger"
)

// ActionView is the full rendering contract for the landing action:
// the primary control plus which check sections are visible. Equal
// snapshots always produce equal views.
type ActionView struct {
	State           GateState
	Label           string
	Enabled         bool
	Style           ActionStyle
	ShowBlockers    bool
	ShowWarnings    bool
	ShowAcknowledge bool
	Acknowledged    bool
	Notice          string
}

func BuildActionView(snapshot Snapshot) ActionView {
	if snapshot.Anonymous {
		return ActionView{
			State: GateUnauthenticated,
			Label: "Log in to request landing",
			Style: StyleNeutral,
		}
	}
	switch snapshot.Phase {
	case PhaseLanded:
		return ActionView{
			State: GateLanded,
			Label: "Pull request landed",
			Style: StyleDanger,
		}
	case PhaseInFlight, PhaseCreated:
		return ActionView{
			State: GateInFlight,
			Label: "Landing job submitted",
			Style: StyleNeutral,
		}
	case PhaseIdle:
		return ActionView{
			State: GateNoJobReady,
			Label: "Checking landing requirements...",
			Style: StyleNeutral,
		}
	case PhaseFetchError:
		return ActionView{
			State:  GateNoJobReady,
			Label:  "Landing status unavailable",
			Style:  StyleNeutral,
			Notice: snapshot.Failure,
		}
	case PhaseGated:
		return gatedActionView(snapshot)
	case PhaseSubmitting:
		return ActionView{
			State:           GateSubmitting,
			Label:           "Requesting landing...",
			Style:           StyleNeutral,
			ShowWarnings:    snapshot.Checks.HasWarnings(),
			ShowAcknowledge: snapshot.Checks.HasWarnings(),
			Acknowledged:    snapshot.Acknowledged,
		}
	case PhaseSubmitFailed:
		return ActionView{
			State:   GateSubmitFailed,
			Label:   "Landing request failed. Try again",
			Enabled: true,
			Style:   StyleDanger,
			Notice:  snapshot.Failure,
		}
	default:
		return ActionView{
			State: GateNoJobReady,
			Label: "Checking landing status...",
			Style: StyleNeutral,
		}
	}
}

func gatedActionView(snapshot Snapshot) ActionView {
	hasWarnings := snapshot.Checks.HasWarnings()
	switch {
	case snapshot.Gate.Blocked:
		return ActionView{
			State:        GateBlocked,
			Label:        "Landing is blocked",
			Style:        StyleDanger,
			ShowBlockers: true,
			ShowWarnings: hasWarnings,
		}
	case snapshot.Gate.NeedsAck:
		return ActionView{
			State:           GateNeedsAck,
			Label:           "Acknowledge warnings to continue",
			Style:           StyleWarning,
			ShowWarnings:    true,
			ShowAcknowledge: true,
		}
	case hasWarnings:
		return ActionView{
			State:           GateReady,
			Label:           "Request landing despite warnings",
			Enabled:         true,
			Style:           StyleWarning,
			ShowWarnings:    true,
			ShowAcknowledge: true,
			Acknowledged:    true,
		}
	default:
		return ActionView{
			State:   GateReady,
			Label:   "Request landing",
			Enabled: true,
			Style:   StyleSuccess,
		}
	}
}
