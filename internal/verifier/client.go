// Package verifier implements the verification.Gateway port against the
// verifier backend's REST API. Requests authenticate with a short-lived
// HS256 JWT minted from the configured API key, per the backend's
// client-auth contract.
package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/hliosone/Permix/internal/verification"
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// Client talks to the verifier backend.
type Client struct {
	baseURL   string
	apiKeyID  string
	apiSecret []byte
	http      *http.Client
	logger    *slog.Logger
	tracer    trace.Tracer
}

func New(baseURL, apiKeyID, apiSecret string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		apiKeyID:  apiKeyID,
		apiSecret: []byte(apiSecret),
		http:      &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
		tracer:    otel.Tracer("permix/verifier"),
	}
}

var _ verification.Gateway = (*Client)(nil)

type createSessionRequest struct {
	RequestedAttributes verification.RequestedAttributes `json:"requested_attributes"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	Challenge string `json:"challenge"`
}

type sessionResponse struct {
	Status string         `json:"status"`
	Claims map[string]any `json:"claims,omitempty"`
}

// CreateSession opens a verification session for the requested attributes.
func (c *Client) CreateSession(ctx context.Context, requested verification.RequestedAttributes) (verification.CreatedSession, error) {
	ctx, span := c.tracer.Start(ctx, "verifier.CreateSession")
	defer span.End()

	var resp createSessionResponse
	err := c.do(ctx, http.MethodPost, "/sessions", createSessionRequest{RequestedAttributes: requested}, &resp)
	if err != nil {
		return verification.CreatedSession{}, err
	}
	return verification.CreatedSession{ID: resp.SessionID, Challenge: resp.Challenge}, nil
}

// GetSession reads the current state of a session.
func (c *Client) GetSession(ctx context.Context, sessionID string) (verification.SessionState, error) {
	ctx, span := c.tracer.Start(ctx, "verifier.GetSession")
	defer span.End()

	var resp sessionResponse
	err := c.do(ctx, http.MethodGet, "/sessions/"+sessionID, nil, &resp)
	if err != nil {
		return verification.SessionState{}, err
	}
	return verification.SessionState{
		Status: mapStatus(resp.Status),
		Claims: resp.Claims,
	}, nil
}

// mapStatus folds the backend's vocabulary into the gateway port's. Unknown
// statuses stay pending so the poll loop keeps asking until its ceiling.
func mapStatus(s string) verification.GatewayStatus {
	switch s {
	case "success", "succeeded", "verified", "completed":
		return verification.GatewaySucceeded
	case "failed", "rejected", "error":
		return verification.GatewayFailed
	case "cancelled", "declined", "abandoned":
		return verification.GatewayCancelled
	default:
		return verification.GatewayPending
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(dErrors.CodeGateway, "could not encode the verifier request", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeGateway, "could not build the verifier request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.requestToken()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeGateway, "the verifier could not be reached", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return dErrors.Newf(dErrors.CodeGateway, "the verifier answered HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(dErrors.CodeGateway, "could not decode the verifier response", err)
	}
	return nil
}

// requestToken mints the per-request client-auth JWT.
func (c *Client) requestToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": c.apiKeyID,
		"iat": now.Unix(),
		"exp": now.Add(time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.apiSecret)
	if err != nil {
		return "", fmt.Errorf("sign verifier request token: %w", err)
	}
	return signed, nil
}
