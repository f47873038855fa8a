// Package verification drives an off-chain identity-proof session to a
// terminal outcome: create the session, hand the challenge to the caller for
// rendering, poll the verifier at a fixed interval, and reconcile returned
// claims against the requested policy before trusting a gateway-reported
// success.
package verification

// Status is the controller's state machine position.
type Status string

const (
	StatusCreated              Status = "created"
	StatusAwaitingPresentation Status = "awaiting_presentation"
	StatusPolling              Status = "polling"
	StatusSucceeded            Status = "succeeded"
	StatusFailed               Status = "failed"
	StatusTimedOut             Status = "timed_out"
	StatusCancelled            Status = "cancelled"
)

// Terminal reports whether the status ends the session.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusTimedOut, StatusCancelled:
		return true
	}
	return false
}

// Requirement describes one requested attribute. Exactly one field is
// meaningful: Expected for concrete-value attributes (compared normalized),
// BoolPresence for attributes that must merely prove true.
type Requirement struct {
	Expected     string `json:"expected,omitempty"`
	BoolPresence bool   `json:"bool_presence,omitempty"`
}

// RequestedAttributes maps attribute names to their requirements.
type RequestedAttributes map[string]Requirement

// Outcome is the terminal result handed back to the caller, as plain data
// for rendering.
type Outcome struct {
	Status Status         `json:"status"`
	Reason string         `json:"reason,omitempty"`
	Claims map[string]any `json:"claims,omitempty"`
}
