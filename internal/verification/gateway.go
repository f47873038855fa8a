package verification

import "context"

//go:generate mockgen -source=gateway.go -destination=mocks/mocks.go -package=mocks

// GatewayStatus is the verifier backend's view of a session.
type GatewayStatus string

const (
	GatewayPending   GatewayStatus = "pending"
	GatewaySucceeded GatewayStatus = "succeeded"
	GatewayFailed    GatewayStatus = "failed"
	GatewayCancelled GatewayStatus = "cancelled"
)

// CreatedSession is the verifier's answer to session creation. Challenge is
// rendered by the caller as a scannable code.
type CreatedSession struct {
	ID        string
	Challenge string
}

// SessionState is one poll's view of a session. Claims are only meaningful
// once Status is GatewaySucceeded.
type SessionState struct {
	Status GatewayStatus
	Claims map[string]any
}

// Gateway is the port to the verifier backend. A gateway success means "a
// valid proof was presented", not "the proof satisfies this policy"; the
// controller re-verifies locally.
type Gateway interface {
	CreateSession(ctx context.Context, requested RequestedAttributes) (CreatedSession, error)
	GetSession(ctx context.Context, sessionID string) (SessionState, error)
}
