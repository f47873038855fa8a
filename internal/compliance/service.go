// Package compliance owns the issuing authority's side of the system:
// credential issuance and acceptance, domain policy management, issuer
// account setup, and the verification flow that turns a successful
// identity proof into a ledger credential.
package compliance

import (
	"context"
	"log/slog"
	"time"

	"github.com/hliosone/Permix/internal/audit"
	"github.com/hliosone/Permix/internal/eligibility"
	"github.com/hliosone/Permix/internal/ledger"
	"github.com/hliosone/Permix/internal/txbuilder"
)

// LedgerGateway is the slice of the ledger client this service needs.
type LedgerGateway interface {
	Submit(ctx context.Context, payload any) (ledger.SubmitResult, error)
	DomainPolicy(ctx context.Context, owner, domainID string) (eligibility.Policy, error)
}

// Service coordinates compliance transactions and verification flows.
type Service struct {
	ledger LedgerGateway
	flows  *FlowRegistry
	audit  *audit.Publisher
	logger *slog.Logger
}

func NewService(gateway LedgerGateway, flows *FlowRegistry, publisher *audit.Publisher, logger *slog.Logger) *Service {
	return &Service{
		ledger: gateway,
		flows:  flows,
		audit:  publisher,
		logger: logger,
	}
}

// IssueCredentialRequest is the issuer's intent.
type IssueCredentialRequest struct {
	Issuer     string     `json:"issuer"`
	Subject    string     `json:"subject"`
	Type       string     `json:"type"`
	Expiration *time.Time `json:"expiration,omitempty"`
	URI        string     `json:"uri,omitempty"`
}

// IssueCredential writes a credential to the ledger.
func (s *Service) IssueCredential(ctx context.Context, req IssueCredentialRequest) (ledger.SubmitResult, error) {
	payload, err := txbuilder.IssueCredential(req.Issuer, req.Subject, req.Type, req.Expiration, req.URI)
	if err != nil {
		return ledger.SubmitResult{}, err
	}

	res, err := s.ledger.Submit(ctx, payload)
	s.emit(ctx, audit.Event{
		Category: audit.CategoryCompliance,
		Actor:    req.Issuer,
		Action:   "credential.issue",
		Decision: res.ResultCode,
		Reason:   req.Type,
		TxHash:   res.TxHash,
	})
	return res, err
}

// AcceptCredential records the subject's acceptance.
func (s *Service) AcceptCredential(ctx context.Context, subject, issuer, typeText string) (ledger.SubmitResult, error) {
	payload, err := txbuilder.AcceptCredential(subject, issuer, typeText)
	if err != nil {
		return ledger.SubmitResult{}, err
	}

	res, err := s.ledger.Submit(ctx, payload)
	s.emit(ctx, audit.Event{
		Category: audit.CategoryCompliance,
		Actor:    subject,
		Action:   "credential.accept",
		Decision: res.ResultCode,
		TxHash:   res.TxHash,
	})
	return res, err
}

// SetDomainPolicy creates or fully replaces a domain's accepted-credential
// set. Updates are not patches: an entry missing from accepted is revoked
// for the domain. CurrentDomainPolicy exists so callers can read before a
// partial change.
func (s *Service) SetDomainPolicy(ctx context.Context, owner, domainID string, accepted []txbuilder.PolicyEntry) (ledger.SubmitResult, error) {
	payload, err := txbuilder.SetDomainPolicy(owner, domainID, accepted)
	if err != nil {
		return ledger.SubmitResult{}, err
	}

	res, err := s.ledger.Submit(ctx, payload)
	s.emit(ctx, audit.Event{
		Category: audit.CategoryCompliance,
		Actor:    owner,
		Action:   "domain.set",
		Decision: res.ResultCode,
		TxHash:   res.TxHash,
	})
	return res, err
}

// DeleteDomain removes a permissioned domain entirely.
func (s *Service) DeleteDomain(ctx context.Context, owner, domainID string) (ledger.SubmitResult, error) {
	payload, err := txbuilder.DeleteDomain(owner, domainID)
	if err != nil {
		return ledger.SubmitResult{}, err
	}

	res, err := s.ledger.Submit(ctx, payload)
	s.emit(ctx, audit.Event{
		Category: audit.CategoryCompliance,
		Actor:    owner,
		Action:   "domain.delete",
		Decision: res.ResultCode,
		TxHash:   res.TxHash,
	})
	return res, err
}

// CurrentDomainPolicy reads a domain's live accepted-credential set.
func (s *Service) CurrentDomainPolicy(ctx context.Context, owner, domainID string) (eligibility.Policy, error) {
	return s.ledger.DomainPolicy(ctx, owner, domainID)
}

// SetupIssuer applies the issuer account configuration: the combinable
// flag bitmask plus each named flag, submitted in order. The first ledger
// rejection stops the sequence so the account is never half-configured
// silently.
func (s *Service) SetupIssuer(ctx context.Context, account string, flags txbuilder.IssuerFlags) ([]ledger.SubmitResult, error) {
	payloads, err := txbuilder.ConfigureIssuerFlags(account, flags)
	if err != nil {
		return nil, err
	}

	results := make([]ledger.SubmitResult, 0, len(payloads))
	for _, payload := range payloads {
		res, err := s.ledger.Submit(ctx, payload)
		results = append(results, res)
		if err != nil {
			s.emit(ctx, audit.Event{
				Category: audit.CategoryCompliance,
				Actor:    account,
				Action:   "issuer.setup",
				Decision: res.ResultCode,
			})
			return results, err
		}
	}

	s.emit(ctx, audit.Event{
		Category: audit.CategoryCompliance,
		Actor:    account,
		Action:   "issuer.setup",
		Decision: ledger.SuccessCode,
	})
	return results, nil
}

// AuthorizeTokenHolding opens a trust line from holder to the issuer's
// token.
func (s *Service) AuthorizeTokenHolding(ctx context.Context, holder, issuer, currencyCode, limit string) (ledger.SubmitResult, error) {
	payload, err := txbuilder.AuthorizeTokenHolding(holder, issuer, currencyCode, limit)
	if err != nil {
		return ledger.SubmitResult{}, err
	}
	return s.ledger.Submit(ctx, payload)
}

// TransferToken issues or moves tokens.
func (s *Service) TransferToken(ctx context.Context, from, destination, currencyCode, amount string) (ledger.SubmitResult, error) {
	payload, err := txbuilder.IssueOrTransferToken(from, destination, currencyCode, amount)
	if err != nil {
		return ledger.SubmitResult{}, err
	}
	return s.ledger.Submit(ctx, payload)
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit != nil {
		s.audit.Emit(ctx, event)
	}
}
