package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hliosone/Permix/internal/compliance"
	"github.com/hliosone/Permix/internal/eligibility"
	"github.com/hliosone/Permix/internal/ledger"
	"github.com/hliosone/Permix/internal/txbuilder"
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
	"github.com/hliosone/Permix/pkg/httputil"
	"github.com/hliosone/Permix/pkg/requestcontext"
)

// Service defines the interface for compliance operations.
type Service interface {
	IssueCredential(ctx context.Context, req compliance.IssueCredentialRequest) (ledger.SubmitResult, error)
	AcceptCredential(ctx context.Context, subject, issuer, typeText string) (ledger.SubmitResult, error)
	SetDomainPolicy(ctx context.Context, owner, domainID string, accepted []txbuilder.PolicyEntry) (ledger.SubmitResult, error)
	DeleteDomain(ctx context.Context, owner, domainID string) (ledger.SubmitResult, error)
	CurrentDomainPolicy(ctx context.Context, owner, domainID string) (eligibility.Policy, error)
	SetupIssuer(ctx context.Context, account string, flags txbuilder.IssuerFlags) ([]ledger.SubmitResult, error)
	AuthorizeTokenHolding(ctx context.Context, holder, issuer, currencyCode, limit string) (ledger.SubmitResult, error)
	TransferToken(ctx context.Context, from, destination, currencyCode, amount string) (ledger.SubmitResult, error)
	StartVerification(ctx context.Context, req compliance.StartVerificationRequest) (compliance.StartedVerification, error)
	VerificationStatus(sessionID string) (compliance.VerificationView, error)
	CancelVerification(sessionID string) error
}

// Handler wires compliance endpoints to the compliance service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a compliance handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/credentials", h.HandleIssueCredential)
	r.Post("/credentials/accept", h.HandleAcceptCredential)
	r.Put("/domains/{owner}/{domainID}", h.HandleSetDomainPolicy)
	r.Post("/domains/{owner}", h.HandleCreateDomain)
	r.Delete("/domains/{owner}/{domainID}", h.HandleDeleteDomain)
	r.Get("/domains/{owner}/{domainID}", h.HandleDomainPolicy)
	r.Post("/issuers/{account}/setup", h.HandleSetupIssuer)
	r.Post("/trustlines", h.HandleAuthorizeTokenHolding)
	r.Post("/tokens/transfer", h.HandleTransferToken)
	r.Post("/verifications", h.HandleStartVerification)
	r.Get("/verifications/{sessionID}", h.HandleVerificationStatus)
	r.Delete("/verifications/{sessionID}", h.HandleCancelVerification)
}

// HandleIssueCredential handles POST /credentials requests.
func (h *Handler) HandleIssueCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[compliance.IssueCredentialRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.IssueCredential(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "credential issuance failed",
			"request_id", requestID,
			"issuer", req.Issuer,
			"subject", req.Subject,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "credential issued",
		"request_id", requestID,
		"issuer", req.Issuer,
		"subject", req.Subject,
		"tx_hash", result.TxHash,
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// AcceptCredentialRequest identifies the pending credential to accept.
type AcceptCredentialRequest struct {
	Subject string `json:"subject"`
	Issuer  string `json:"issuer"`
	Type    string `json:"type"`
}

// HandleAcceptCredential handles POST /credentials/accept requests.
func (h *Handler) HandleAcceptCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[AcceptCredentialRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.AcceptCredential(ctx, req.Subject, req.Issuer, req.Type)
	if err != nil {
		h.logger.ErrorContext(ctx, "credential acceptance failed",
			"request_id", requestID,
			"subject", req.Subject,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "credential accepted",
		"request_id", requestID,
		"subject", req.Subject,
		"tx_hash", result.TxHash,
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// DomainPolicyRequest is the full accepted-credential list for a domain.
// Updates are whole-policy replacements, never increments.
type DomainPolicyRequest struct {
	Accepted []txbuilder.PolicyEntry `json:"accepted"`
}

// HandleCreateDomain handles POST /domains/{owner} requests. No domain ID
// means the ledger mints a new domain.
func (h *Handler) HandleCreateDomain(w http.ResponseWriter, r *http.Request) {
	h.setDomainPolicy(w, r, chi.URLParam(r, "owner"), "")
}

// HandleSetDomainPolicy handles PUT /domains/{owner}/{domainID} requests.
func (h *Handler) HandleSetDomainPolicy(w http.ResponseWriter, r *http.Request) {
	h.setDomainPolicy(w, r, chi.URLParam(r, "owner"), chi.URLParam(r, "domainID"))
}

func (h *Handler) setDomainPolicy(w http.ResponseWriter, r *http.Request, owner, domainID string) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[DomainPolicyRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.SetDomainPolicy(ctx, owner, domainID, req.Accepted)
	if err != nil {
		h.logger.ErrorContext(ctx, "domain policy update failed",
			"request_id", requestID,
			"owner", owner,
			"domain_id", domainID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "domain policy set",
		"request_id", requestID,
		"owner", owner,
		"domain_id", domainID,
		"accepted", len(req.Accepted),
		"tx_hash", result.TxHash,
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleDeleteDomain handles DELETE /domains/{owner}/{domainID} requests.
func (h *Handler) HandleDeleteDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	owner := chi.URLParam(r, "owner")
	domainID := chi.URLParam(r, "domainID")

	result, err := h.service.DeleteDomain(ctx, owner, domainID)
	if err != nil {
		h.logger.ErrorContext(ctx, "domain deletion failed",
			"request_id", requestID,
			"owner", owner,
			"domain_id", domainID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "domain deleted",
		"request_id", requestID,
		"owner", owner,
		"domain_id", domainID,
		"tx_hash", result.TxHash,
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleDomainPolicy handles GET /domains/{owner}/{domainID} requests.
func (h *Handler) HandleDomainPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := chi.URLParam(r, "owner")
	domainID := chi.URLParam(r, "domainID")

	policy, err := h.service.CurrentDomainPolicy(ctx, owner, domainID)
	if err != nil {
		h.logger.ErrorContext(ctx, "domain policy lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"owner", owner,
			"domain_id", domainID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, policy)
}

// SetupIssuerRequest selects the account flags to apply.
type SetupIssuerRequest struct {
	Flags txbuilder.IssuerFlags `json:"flags"`
}

// SetupIssuerResponse reports every submission the sequence made, in order.
type SetupIssuerResponse struct {
	Results []ledger.SubmitResult `json:"results"`
}

// HandleSetupIssuer handles POST /issuers/{account}/setup requests.
func (h *Handler) HandleSetupIssuer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	account := chi.URLParam(r, "account")

	req, ok := httputil.Decode[SetupIssuerRequest](w, r, h.logger)
	if !ok {
		return
	}

	results, err := h.service.SetupIssuer(ctx, account, req.Flags)
	if err != nil {
		h.logger.ErrorContext(ctx, "issuer setup failed",
			"request_id", requestID,
			"account", account,
			"submitted", len(results),
			"error", err,
		)
		// Partial results still matter: the caller needs to know how far
		// the sequence got before the rejection.
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "issuer configured",
		"request_id", requestID,
		"account", account,
		"submitted", len(results),
	)

	httputil.WriteJSON(w, http.StatusOK, SetupIssuerResponse{Results: results})
}

// TrustLineRequest authorizes a holder for an issued token.
type TrustLineRequest struct {
	Holder   string `json:"holder"`
	Issuer   string `json:"issuer"`
	Currency string `json:"currency"`
	Limit    string `json:"limit,omitempty"`
}

// HandleAuthorizeTokenHolding handles POST /trustlines requests.
func (h *Handler) HandleAuthorizeTokenHolding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[TrustLineRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.AuthorizeTokenHolding(ctx, req.Holder, req.Issuer, req.Currency, req.Limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "trust line authorization failed",
			"request_id", requestID,
			"holder", req.Holder,
			"currency", req.Currency,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "trust line authorized",
		"request_id", requestID,
		"holder", req.Holder,
		"currency", req.Currency,
		"tx_hash", result.TxHash,
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// TransferTokenRequest moves issued tokens between accounts.
type TransferTokenRequest struct {
	From        string `json:"from"`
	Destination string `json:"destination"`
	Currency    string `json:"currency"`
	Amount      string `json:"amount"`
}

// HandleTransferToken handles POST /tokens/transfer requests.
func (h *Handler) HandleTransferToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[TransferTokenRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.TransferToken(ctx, req.From, req.Destination, req.Currency, req.Amount)
	if err != nil {
		h.logger.ErrorContext(ctx, "token transfer failed",
			"request_id", requestID,
			"from", req.From,
			"destination", req.Destination,
			"currency", req.Currency,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "token transferred",
		"request_id", requestID,
		"from", req.From,
		"destination", req.Destination,
		"currency", req.Currency,
		"tx_hash", result.TxHash,
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleStartVerification handles POST /verifications requests.
func (h *Handler) HandleStartVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[compliance.StartVerificationRequest](w, r, h.logger)
	if !ok {
		return
	}
	if len(req.Requested) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "requested_attributes must not be empty"))
		return
	}

	started, err := h.service.StartVerification(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "verification start failed",
			"request_id", requestID,
			"subject", req.Subject,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "verification started",
		"request_id", requestID,
		"subject", req.Subject,
		"session_id", started.SessionID,
	)

	httputil.WriteJSON(w, http.StatusAccepted, started)
}

// HandleVerificationStatus handles GET /verifications/{sessionID} requests.
func (h *Handler) HandleVerificationStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	view, err := h.service.VerificationStatus(sessionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleCancelVerification handles DELETE /verifications/{sessionID} requests.
func (h *Handler) HandleCancelVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.service.CancelVerification(sessionID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "verification cancelled",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", sessionID,
	)

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
