// Package httputil centralizes JSON request decoding and error mapping so
// handlers stay thin and consistent.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// WriteJSON serializes v with the given status. Encoding failures are logged
// by net/http; the header is already gone at that point.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error code to an HTTP status and a stable JSON
// error body. Internal errors omit the description so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := statusFor(code)

	body := map[string]string{"error": string(code)}
	if status != http.StatusInternalServerError {
		body["error_description"] = dErrors.ReasonOf(err)
	}
	WriteJSON(w, status, body)
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeEncoding, dErrors.CodeValidation, dErrors.CodeBadRequest, dErrors.CodeMalformedOffer:
		return http.StatusBadRequest
	case dErrors.CodeNotEligible, dErrors.CodePolicyMismatch:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Decode unmarshals the request body into T and reports a bad_request on
// failure. The bool result tells the handler whether to continue.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(r.Context(), "request decode failed", "path", r.URL.Path, "error", err)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed JSON body"))
		return req, false
	}
	return req, true
}
