package audit

import (
	"context"
	"log/slog"
)

// Worker drains the inbox into the store and the optional sink. It keeps
// background processing testable without wiring queue implementations into
// domain code.
type Worker struct {
	store  Store
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, sink: sink, inbox: inbox, logger: logger}
}

// Run consumes events until the context ends. Store and sink failures are
// logged, not fatal: audit must never take the trading path down.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil && w.logger != nil {
				w.logger.ErrorContext(ctx, "audit append failed", "event_id", event.ID, "error", err)
			}
			if w.sink != nil {
				if err := w.sink.Publish(ctx, event); err != nil && w.logger != nil {
					w.logger.ErrorContext(ctx, "audit publish failed", "event_id", event.ID, "error", err)
				}
			}
		}
	}
}
