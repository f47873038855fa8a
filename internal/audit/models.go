// Package audit captures append-only records of compliance-relevant actions:
// transaction submissions, verification outcomes, and eligibility decisions.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Category classifies events for retention and routing.
type Category string

const (
	// CategoryCompliance covers credential and domain lifecycle events.
	CategoryCompliance Category = "compliance"
	// CategoryTrading covers order placement and cancellation.
	CategoryTrading Category = "trading"
	// CategoryOperations covers routine gateway traffic.
	CategoryOperations Category = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Decision  string    `json:"decision,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	TxHash    string    `json:"tx_hash,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByActor(ctx context.Context, actor string) ([]Event, error)
}

// Sink forwards events to an external pipeline, e.g. a Kafka topic.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}
