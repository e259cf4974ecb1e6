package landing

import (
	"strings"

	"landctl/internal/types"
)

type Phase string

const (
	PhaseUnknown      Phase = "unknown"
	PhaseAnonymous    Phase = "anonymous"
	PhaseIdle         Phase = "idle"
	PhaseGated        Phase = "gated"
	PhaseSubmitting   Phase = "submitting"
	PhaseCreated      Phase = "created"
	PhaseSubmitFailed Phase = "submit_failed"
	PhaseInFlight     Phase = "in_flight"
	PhaseLanded       Phase = "landed"
	PhaseFetchError   Phase = "fetch_error"
)

type EventType string

const (
	EventViewOpened      EventType = "view_opened"
	EventReloadRequested EventType = "reload_requested"
	EventStatusResolved  EventType = "status_resolved"
	EventStatusFailed    EventType = "status_failed"
	EventChecksResolved  EventType = "checks_resolved"
	EventChecksFailed    EventType = "checks_failed"
	EventAckToggled      EventType = "ack_toggled"
	EventSubmitPressed   EventType = "submit_pressed"
	EventSubmitResolved  EventType = "submit_resolved"
)

// Event is one input to the machine. Fetch results carry the
// Generation of the request that produced them so superseded responses
// can be discarded on arrival.
type Event struct {
	Type       EventType
	Generation int
	Status     types.JobStatus
	Checks     types.ChecksResult
	Receipt    types.SubmitReceipt
	Failure    string
}

// Effect names a side effect the caller must perform after a
// transition. The machine itself never touches the network.
type Effect string

const (
	EffectFetchStatus Effect = "fetch_status"
	EffectFetchChecks Effect = "fetch_checks"
	EffectSubmit      Effect = "submit"
	EffectRefresh     Effect = "refresh"
)

type Transition struct {
	Changed bool
	Ignored bool
	Reason  string
	Effects []Effect
}

type Snapshot struct {
	Anonymous    bool
	Generation   int
	Phase        Phase
	Status       types.JobStatus
	Checks       types.ChecksResult
	ChecksKnown  bool
	Acknowledged bool
	Gate         GateDecision
	Failure      string
}

// Machine tracks the landing view for one pull request. Each
// generation performs at most one status fetch, one checks fetch, and
// one submission; a reload starts the next generation.
type Machine struct {
	anonymous       bool
	generation      int
	phase           Phase
	status          types.JobStatus
	checks          types.ChecksResult
	checksKnown     bool
	acknowledged    bool
	lastFingerprint string
	gate            GateDecision
	failure         string
}

func NewMachine(anonymous bool) *Machine {
	if anonymous {
		return &Machine{anonymous: true, phase: PhaseAnonymous, status: types.StatusNone}
	}
	return &Machine{phase: PhaseUnknown, status: types.StatusNone}
}

func (m *Machine) Generation() int {
	if m == nil {
		return 0
	}
	return m.generation
}

func (m *Machine) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		Anonymous:    m.anonymous,
		Generation:   m.generation,
		Phase:        m.phase,
		Status:       m.status,
		Checks:       types.CloneChecksResult(m.checks),
		ChecksKnown:  m.checksKnown,
		Acknowledged: m.acknowledged,
		Gate:         m.gate,
		Failure:      m.failure,
	}
}

func (m *Machine) Apply(event Event) Transition {
	if m == nil {
		return Transition{Ignored: true, Reason: "nil state machine"}
	}
	if m.anonymous {
		return Transition{Ignored: true, Reason: "anonymous viewer"}
	}
	switch event.Type {
	case EventViewOpened:
		return m.applyViewOpened(event)
	case EventReloadRequested:
		return m.applyReloadRequested(event)
	case EventStatusResolved:
		return m.applyStatusResolved(event)
	case EventStatusFailed:
		return m.applyStatusFailed(event)
	case EventChecksResolved:
		return m.applyChecksResolved(event)
	case EventChecksFailed:
		return m.applyChecksFailed(event)
	case EventAckToggled:
		return m.applyAckToggled(event)
	case EventSubmitPressed:
		return m.applySubmitPressed(event)
	case EventSubmitResolved:
		return m.applySubmitResolved(event)
	default:
		return Transition{Ignored: true, Reason: "unknown event"}
	}
}

func (m *Machine) applyViewOpened(Event) Transition {
	if m.generation != 0 {
		return Transition{Ignored: true, Reason: "view already opened"}
	}
	m.beginGeneration()
	return Transition{Changed: true, Effects: []Effect{EffectFetchStatus}}
}

func (m *Machine) applyReloadRequested(Event) Transition {
	if m.generation == 0 {
		return Transition{Ignored: true, Reason: "view not opened"}
	}
	m.beginGeneration()
	return Transition{Changed: true, Effects: []Effect{EffectFetchStatus}}
}

func (m *Machine) applyStatusResolved(event Event) Transition {
	if ignored, reason := m.staleOrUnopened(event); ignored {
		return Transition{Ignored: true, Reason: reason}
	}
	if m.phase != PhaseUnknown {
		return Transition{Ignored: true, Reason: "status already resolved"}
	}
	m.status = event.Status
	switch {
	case event.Status.Terminal():
		m.phase = PhaseLanded
		return Transition{Changed: true}
	case event.Status.Pending():
		m.phase = PhaseInFlight
		return Transition{Changed: true}
	default:
		// No live job: failed, cancelled, and unrecognized statuses all
		// leave the viewer free to request a new landing.
		m.phase = PhaseIdle
		return Transition{Changed: true, Effects: []Effect{EffectFetchChecks}}
	}
}

func (m *Machine) applyStatusFailed(event Event) Transition {
	if ignored, reason := m.staleOrUnopened(event); ignored {
		return Transition{Ignored: true, Reason: reason}
	}
	if m.phase != PhaseUnknown {
		return Transition{Ignored: true, Reason: "status already resolved"}
	}
	m.phase = PhaseFetchError
	m.failure = failureOrDefault(event.Failure, "landing status unavailable")
	return Transition{Changed: true}
}

func (m *Machine) applyChecksResolved(event Event) Transition {
	if ignored, reason := m.staleOrUnopened(event); ignored {
		return Transition{Ignored: true, Reason: reason}
	}
	if m.phase != PhaseIdle {
		return Transition{Ignored: true, Reason: "no checks expected"}
	}
	m.checks = types.CloneChecksResult(event.Checks)
	m.checksKnown = true
	fingerprint := m.checks.Fingerprint()
	if fingerprint != m.lastFingerprint {
		m.acknowledged = false
		m.lastFingerprint = fingerprint
	}
	m.gate = Evaluate(m.checks, m.acknowledged)
	m.phase = PhaseGated
	return Transition{Changed: true}
}

func (m *Machine) applyChecksFailed(event Event) Transition {
	if ignored, reason := m.staleOrUnopened(event); ignored {
		return Transition{Ignored: true, Reason: reason}
	}
	if m.phase != PhaseIdle {
		return Transition{Ignored: true, Reason: "no checks expected"}
	}
	m.phase = PhaseFetchError
	m.failure = failureOrDefault(event.Failure, "landing requirements unavailable")
	return Transition{Changed: true}
}

func (m *Machine) applyAckToggled(Event) Transition {
	if m.phase != PhaseGated {
		return Transition{Ignored: true, Reason: "no checks to acknowledge"}
	}
	if m.gate.Blocked {
		return Transition{Ignored: true, Reason: "landing is blocked"}
	}
	if !m.checks.HasWarnings() {
		return Transition{Ignored: true, Reason: "no warnings to acknowledge"}
	}
	m.acknowledged = !m.acknowledged
	m.gate = Evaluate(m.checks, m.acknowledged)
	return Transition{Changed: true}
}

func (m *Machine) applySubmitPressed(Event) Transition {
	switch m.phase {
	case PhaseGated:
		if m.gate.Blocked {
			return Transition{Ignored: true, Reason: "landing is blocked"}
		}
		if m.gate.NeedsAck {
			return Transition{Ignored: true, Reason: "acknowledgment required"}
		}
		m.phase = PhaseSubmitting
		return Transition{Changed: true, Effects: []Effect{EffectSubmit}}
	case PhaseSubmitFailed:
		// A failed submission may only be retried against fresh data.
		// The press starts a new generation; the gate must re-open
		// before the next press can submit.
		m.beginGeneration()
		return Transition{Changed: true, Effects: []Effect{EffectFetchStatus}}
	case PhaseSubmitting:
		return Transition{Ignored: true, Reason: "submission in flight"}
	default:
		return Transition{Ignored: true, Reason: "no action available"}
	}
}

func (m *Machine) applySubmitResolved(event Event) Transition {
	if ignored, reason := m.staleOrUnopened(event); ignored {
		return Transition{Ignored: true, Reason: reason}
	}
	if m.phase != PhaseSubmitting {
		return Transition{Ignored: true, Reason: "no submission in flight"}
	}
	switch event.Receipt.Outcome {
	case types.SubmitCreated:
		m.phase = PhaseCreated
		m.failure = ""
		return Transition{Changed: true, Effects: []Effect{EffectRefresh}}
	case types.SubmitRejected:
		m.phase = PhaseSubmitFailed
		m.failure = failureOrDefault(event.Receipt.Reason, "landing request rejected")
		return Transition{Changed: true}
	default:
		m.phase = PhaseSubmitFailed
		m.failure = failureOrDefault(event.Receipt.Reason, "landing request failed")
		return Transition{Changed: true}
	}
}

func (m *Machine) staleOrUnopened(event Event) (bool, string) {
	if m.generation == 0 {
		return true, "view not opened"
	}
	if event.Generation != m.generation {
		return true, "stale generation"
	}
	return false, ""
}

// beginGeneration resets per-view state. The acknowledgment flag and
// the fingerprint it was given for survive; a changed checks result
// clears them when it arrives.
func (m *Machine) beginGeneration() {
	m.generation++
	m.phase = PhaseUnknown
	m.status = types.StatusNone
	m.checks = types.ChecksResult{}
	m.checksKnown = false
	m.gate = GateDecision{}
	m.failure = ""
}

func failureOrDefault(failure, fallback string) string {
	if trimmed := strings.TrimSpace(failure); trimmed != "" {
		return trimmed
	}
	return fallback
}
