// Package domainerrors defines the typed error taxonomy shared across the
// service. Every error carries a machine-readable code and a human-readable
// reason suitable for direct display, so transport layers can map errors
// without string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping and metrics labels.
type Code string

const (
	// CodeEncoding marks a malformed currency code or amount.
	CodeEncoding Code = "encoding_error"
	// CodeValidation marks structurally invalid builder input.
	CodeValidation Code = "validation_error"
	// CodeMalformedOffer marks an unclassifiable or degenerate raw offer.
	// These are skipped per-offer, never fatal.
	CodeMalformedOffer Code = "malformed_offer"
	// CodeGateway marks a failed ledger or verifier call. Always surfaced
	// to the caller, never silently retried here.
	CodeGateway Code = "gateway_error"
	// CodePolicyMismatch marks a verification session whose returned claims
	// failed local re-verification despite a gateway-reported success.
	CodePolicyMismatch Code = "policy_mismatch"
	// CodeNotEligible marks an order rejected by the eligibility gate.
	CodeNotEligible Code = "not_eligible"
	CodeNotFound    Code = "not_found"
	CodeBadRequest  Code = "bad_request"
	CodeInternal    Code = "internal_error"
)

// Error is the single error type crossing package boundaries.
type Error struct {
	Code   Code
	Reason string
	cause  error
}

func New(code Code, reason string) *Error {
	return &Error{Code: code, Reason: reason}
}

// Newf formats the human-readable reason.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// Wrap keeps the underlying cause reachable via errors.Is/As.
func Wrap(code Code, reason string, cause error) *Error {
	return &Error{Code: code, Reason: reason, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Reason, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func (e *Error) Unwrap() error { return e.cause }

// CodeOf extracts the domain code from err, or CodeInternal when err is not
// a domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ReasonOf extracts the display reason from err. Non-domain errors report a
// generic reason so internals never leak to users.
func ReasonOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Reason
	}
	return "internal error"
}

// Is lets callers match on code: errors.Is(err, domainerrors.New(code, "")).
func (e *Error) Is(target error) bool {
	var de *Error
	if !errors.As(target, &de) {
		return false
	}
	return e.Code == de.Code
}
