package pipeline

import "fmt"

// State is a stage of one tailoring run
type State string

// Run states. Done and Failed are terminal.
const (
	StateIdle         State = "idle"
	StateValidating   State = "validating"
	StateAnalyzing    State = "analyzing"
	StateSynthesizing State = "synthesizing"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

var transitions = map[State][]State{
	StateIdle:         {StateValidating},
	StateValidating:   {StateAnalyzing, StateFailed},
	StateAnalyzing:    {StateSynthesizing, StateDone, StateFailed},
	StateSynthesizing: {StateDone, StateFailed},
}

// Terminal reports whether no further transition is possible
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition reports whether from -> to is allowed.
// Analyzing -> Done is only taken by analysis-only runs.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Status of a state event
const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// StateEvent is reported to the observer on every transition
type StateEvent struct {
	RunID   string `json:"run_id"`
	State   State  `json:"state"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	// Kind is set on failure
	Kind ErrorKind `json:"kind,omitempty"`
}

// StateCallback observes a run's transitions. It is called synchronously from the run.
type StateCallback func(event StateEvent)

// run tracks the state of one request
type run struct {
	id      string
	state   State
	onState StateCallback
}

func newRun(id string, onState StateCallback) *run {
	return &run{id: id, state: StateIdle, onState: onState}
}

func (r *run) transition(to State, message string) {
	if !CanTransition(r.state, to) {
		panic(fmt.Sprintf("pipeline: illegal transition %s -> %s", r.state, to))
	}
	r.state = to
	status := StatusPending
	if to == StateDone {
		status = StatusDone
	}
	r.emit(StateEvent{RunID: r.id, State: to, Status: status, Message: message})
}

func (r *run) fail(err error) {
	if r.state.Terminal() {
		return
	}
	r.state = StateFailed
	r.emit(StateEvent{RunID: r.id, State: StateFailed, Status: StatusFailed, Message: err.Error(), Kind: Classify(err).Kind})
}

func (r *run) emit(event StateEvent) {
	if r.onState != nil {
		r.onState(event)
	}
}
