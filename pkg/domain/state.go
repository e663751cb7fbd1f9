package domain

// State is a step of the per-event state machine:
//
//	Idle -> Validating -> { Accepted -> Relaying -> { Succeeded | Failed } } | Rejected
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateAccepted   State = "accepted"
	StateRejected   State = "rejected"
	StateRelaying   State = "relaying"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s == StateRejected || s == StateSucceeded || s == StateFailed
}

var transitions = map[State][]State{
	StateIdle:       {StateValidating},
	StateValidating: {StateAccepted, StateRejected},
	StateAccepted:   {StateRelaying},
	StateRelaying:   {StateSucceeded, StateFailed},
}

// CanTransition reports whether the machine may move from s to next.
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
