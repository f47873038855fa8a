package compliance

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hliosone/Permix/internal/audit"
	"github.com/hliosone/Permix/internal/verification"
	vmetrics "github.com/hliosone/Permix/internal/verification/metrics"
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// FlowRegistry tracks in-flight verification flows by session ID. Every flow
// gets its own controller: controllers are single-session by contract, so
// parallel flows never share one.
type FlowRegistry struct {
	gateway verification.Gateway
	cfg     verification.Config
	logger  *slog.Logger
	metrics *vmetrics.Metrics

	mu    sync.Mutex
	flows map[string]*flow
}

// NewFlowRegistry builds the registry all verification flows run through.
func NewFlowRegistry(gateway verification.Gateway, cfg verification.Config, logger *slog.Logger, m *vmetrics.Metrics) *FlowRegistry {
	return &FlowRegistry{
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		flows:   make(map[string]*flow),
	}
}

type flow struct {
	controller *verification.Controller
	cancel     context.CancelFunc

	mu      sync.Mutex
	outcome *verification.Outcome
	txHash  string
}

func (f *flow) snapshot() (verification.Status, *verification.Outcome, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.outcome != nil {
		return f.outcome.Status, f.outcome, f.txHash
	}
	return f.controller.Status(), nil, ""
}

func (f *flow) settle(outcome verification.Outcome, txHash string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcome = &outcome
	f.txHash = txHash
}

// StartVerificationRequest describes one identity-proof flow and the
// credential to write once it succeeds.
type StartVerificationRequest struct {
	Issuer     string                           `json:"issuer"`
	Subject    string                           `json:"subject"`
	Type       string                           `json:"type"`
	Expiration *time.Time                       `json:"expiration,omitempty"`
	Requested  verification.RequestedAttributes `json:"requested_attributes"`
}

// StartedVerification is handed back for rendering: the challenge becomes a
// scannable code, the session ID keys later status polls.
type StartedVerification struct {
	SessionID string `json:"session_id"`
	Challenge string `json:"challenge"`
}

// VerificationView is the flow's externally visible state, as plain data.
type VerificationView struct {
	SessionID string                `json:"session_id"`
	Status    verification.Status   `json:"status"`
	Outcome   *verification.Outcome `json:"outcome,omitempty"`
	TxHash    string                `json:"tx_hash,omitempty"`
}

// StartVerification opens a session at the verifier and drives it to a
// terminal state on a background goroutine. On success the credential is
// issued on ledger; a failed or timed out flow is retried by starting a new
// one with the same policy.
func (s *Service) StartVerification(ctx context.Context, req StartVerificationRequest) (StartedVerification, error) {
	controller := verification.NewController(s.flows.gateway, s.flows.cfg, s.flows.logger, s.flows.metrics)

	challenge, err := controller.Start(ctx, req.Requested)
	if err != nil {
		return StartedVerification{}, err
	}

	// The flow outlives the HTTP request that started it.
	flowCtx, cancel := context.WithCancel(context.Background())
	f := &flow{controller: controller, cancel: cancel}

	s.flows.mu.Lock()
	s.flows.flows[controller.SessionID()] = f
	s.flows.mu.Unlock()

	go s.runFlow(flowCtx, f, req)

	return StartedVerification{
		SessionID: controller.SessionID(),
		Challenge: challenge,
	}, nil
}

func (s *Service) runFlow(ctx context.Context, f *flow, req StartVerificationRequest) {
	outcome := f.controller.Run(ctx)

	var txHash string
	if outcome.Status == verification.StatusSucceeded {
		res, err := s.IssueCredential(ctx, IssueCredentialRequest{
			Issuer:     req.Issuer,
			Subject:    req.Subject,
			Type:       req.Type,
			Expiration: req.Expiration,
		})
		if err != nil {
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "credential issuance after verification failed",
					"session_id", f.controller.SessionID(), "error", err)
			}
			outcome = verification.Outcome{
				Status: verification.StatusFailed,
				Reason: "verification succeeded but the credential could not be written to the ledger",
				Claims: outcome.Claims,
			}
		} else {
			txHash = res.TxHash
		}
	}

	s.emit(ctx, audit.Event{
		Category: audit.CategoryCompliance,
		Actor:    req.Subject,
		Action:   "verification.terminal",
		Decision: string(outcome.Status),
		Reason:   outcome.Reason,
		TxHash:   txHash,
	})
	f.settle(outcome, txHash)
}

// VerificationStatus reports a flow's state. A terminal flow is discarded
// once its outcome has been consumed.
func (s *Service) VerificationStatus(sessionID string) (VerificationView, error) {
	s.flows.mu.Lock()
	f, ok := s.flows.flows[sessionID]
	s.flows.mu.Unlock()
	if !ok {
		return VerificationView{}, dErrors.Newf(dErrors.CodeNotFound, "no verification flow %s", sessionID)
	}

	status, outcome, txHash := f.snapshot()
	view := VerificationView{
		SessionID: sessionID,
		Status:    status,
		Outcome:   outcome,
		TxHash:    txHash,
	}
	if outcome != nil {
		s.flows.mu.Lock()
		delete(s.flows.flows, sessionID)
		s.flows.mu.Unlock()
	}
	return view, nil
}

// CancelVerification cooperatively cancels a flow; it lands in the
// Cancelled terminal state, distinct from TimedOut.
func (s *Service) CancelVerification(sessionID string) error {
	s.flows.mu.Lock()
	f, ok := s.flows.flows[sessionID]
	s.flows.mu.Unlock()
	if !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "no verification flow %s", sessionID)
	}
	f.cancel()
	return nil
}
