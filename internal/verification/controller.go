package verification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hliosone/Permix/internal/verification/metrics"
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// Config paces the polling loop.
type Config struct {
	// PollInterval is the fixed wait between status polls.
	PollInterval time.Duration
	// Ceiling bounds the session's total lifetime; past it the session is
	// TimedOut regardless of what the gateway reports.
	Ceiling time.Duration
	// RetryBackoff is the wait before the single retry after a gateway
	// error.
	RetryBackoff time.Duration
	// Clock defaults to the wall clock; tests inject a fake.
	Clock Clock
}

// Controller owns exactly one verification session. Concurrent flows need
// independent controllers; sharing one across flows is a bug. The controller
// does no background scheduling: the caller's goroutine runs Start and Run.
type Controller struct {
	gateway Gateway
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	// status is read by callers polling Status while Run drives the
	// state machine on its own goroutine.
	statusMu sync.Mutex
	status   Status

	session   CreatedSession
	requested RequestedAttributes
	startedAt time.Time
}

// NewController builds a controller for a single verification flow.
func NewController(gateway Gateway, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Controller {
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}
	if cfg.Ceiling <= 0 {
		cfg.Ceiling = 5 * time.Minute
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 2 * time.Second
	}
	return &Controller{
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		status:  StatusCreated,
	}
}

// Status exposes the current state machine position as plain data. It is
// safe to call while Run is in flight on another goroutine.
func (c *Controller) Status() Status {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	return c.status
}

func (c *Controller) setStatus(s Status) {
	c.statusMu.Lock()
	c.status = s
	c.statusMu.Unlock()
}

// Challenge returns the payload the caller renders as a scannable code.
func (c *Controller) Challenge() string { return c.session.Challenge }

// SessionID returns the verifier-assigned session identifier.
func (c *Controller) SessionID() string { return c.session.ID }

// Start creates the session at the verifier and moves to
// AwaitingPresentation. A controller is single-use: starting twice is an
// error, and a failed or timed out flow is retried by discarding this
// controller and building a fresh one with the same policy.
func (c *Controller) Start(ctx context.Context, requested RequestedAttributes) (string, error) {
	if status := c.Status(); status != StatusCreated {
		return "", dErrors.Newf(dErrors.CodeValidation, "controller already started (status %s)", status)
	}
	if len(requested) == 0 {
		return "", dErrors.New(dErrors.CodeValidation, "at least one requested attribute is required")
	}

	session, err := c.gateway.CreateSession(ctx, requested)
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeGateway, "could not create verification session", err)
	}

	c.session = session
	c.requested = requested
	c.startedAt = c.cfg.Clock.Now()
	c.setStatus(StatusAwaitingPresentation)
	c.metrics.IncStarted()

	if c.logger != nil {
		c.logger.InfoContext(ctx, "verification session created", "session_id", session.ID)
	}
	return session.Challenge, nil
}

// Run polls the session to a terminal outcome. Polls never overlap: each is
// a single blocking request followed by a fixed sleep. Cancellation is
// checked before every poll and every sleep and yields the Cancelled
// terminal state, distinct from TimedOut.
func (c *Controller) Run(ctx context.Context) Outcome {
	if c.Status() != StatusAwaitingPresentation {
		return c.finish(Outcome{
			Status: StatusFailed,
			Reason: "session was not started",
		})
	}
	c.setStatus(StatusPolling)

	deadline := c.startedAt.Add(c.cfg.Ceiling)
	retried := false

	for {
		if ctx.Err() != nil {
			return c.finish(Outcome{Status: StatusCancelled, Reason: "verification was cancelled"})
		}
		now := c.cfg.Clock.Now()
		if !now.Before(deadline) {
			return c.finish(Outcome{Status: StatusTimedOut, Reason: "the verification window elapsed before a proof was presented"})
		}

		c.metrics.IncPoll()
		state, err := c.gateway.GetSession(ctx, c.session.ID)
		if err != nil {
			if retried {
				return c.finish(Outcome{
					Status: StatusFailed,
					Reason: "the verifier could not be reached",
				})
			}
			retried = true
			if c.logger != nil {
				c.logger.WarnContext(ctx, "verifier poll failed, retrying once", "session_id", c.session.ID, "error", err)
			}
			if cancelled := c.sleep(ctx, c.cfg.RetryBackoff, deadline); cancelled {
				return c.finish(Outcome{Status: StatusCancelled, Reason: "verification was cancelled"})
			}
			continue
		}
		retried = false

		switch state.Status {
		case GatewaySucceeded:
			if err := Reconcile(c.requested, state.Claims); err != nil {
				// The gateway's success means a valid proof was
				// presented, not that it satisfies this policy.
				if c.logger != nil {
					c.logger.WarnContext(ctx, "claims failed local re-verification", "session_id", c.session.ID, "error", err)
				}
				return c.finish(Outcome{
					Status: StatusFailed,
					Reason: dErrors.ReasonOf(err),
					Claims: state.Claims,
				})
			}
			return c.finish(Outcome{
				Status: StatusSucceeded,
				Reason: "all requested attributes verified",
				Claims: state.Claims,
			})
		case GatewayFailed, GatewayCancelled:
			return c.finish(Outcome{
				Status: StatusFailed,
				Reason: "the wallet failed or declined the presentation",
			})
		}

		if cancelled := c.sleep(ctx, c.cfg.PollInterval, deadline); cancelled {
			return c.finish(Outcome{Status: StatusCancelled, Reason: "verification was cancelled"})
		}
	}
}

// sleep waits for d, clamped so the loop wakes exactly at the ceiling rather
// than overshooting it. Returns true when the context was cancelled.
func (c *Controller) sleep(ctx context.Context, d time.Duration, deadline time.Time) bool {
	if remaining := deadline.Sub(c.cfg.Clock.Now()); remaining < d {
		d = remaining
	}
	if d <= 0 {
		return ctx.Err() != nil
	}
	select {
	case <-ctx.Done():
		return true
	case <-c.cfg.Clock.After(d):
		return false
	}
}

func (c *Controller) finish(outcome Outcome) Outcome {
	c.setStatus(outcome.Status)
	elapsed := c.cfg.Clock.Now().Sub(c.startedAt)
	c.metrics.ObserveOutcome(string(outcome.Status), elapsed.Seconds())
	return outcome
}
