// Package ledger is the gateway to the ledger node's JSON-RPC API: submit
// transactions, query account-owned objects, and read order books. The
// client never assumes synchronous finality; any engine result other than
// the canonical success code is a failure, with the exact code surfaced to
// the caller.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hliosone/Permix/internal/eligibility"
	"github.com/hliosone/Permix/internal/orderbook"
	"github.com/hliosone/Permix/internal/txbuilder"
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// SuccessCode is the only engine result treated as success.
const SuccessCode = "tesSUCCESS"

// lsfAccepted marks a credential object the subject has accepted.
const lsfAccepted = 0x00010000

// Client talks to one ledger node.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
}

func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
		tracer:  otel.Tracer("permix/ledger"),
	}
}

// SubmitResult is the node's answer to a transaction submission.
type SubmitResult struct {
	ResultCode string `json:"result_code"`
	TxHash     string `json:"tx_hash,omitempty"`
}

// Submit sends a transaction payload to the node. A non-success engine
// result returns both the result and a gateway error carrying the exact
// code.
func (c *Client) Submit(ctx context.Context, payload any) (SubmitResult, error) {
	res, err := c.call(ctx, "submit", map[string]any{"tx_json": payload})
	if err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{
		ResultCode: res.Get("engine_result").String(),
		TxHash:     res.Get("tx_json.hash").String(),
	}
	if result.ResultCode != SuccessCode {
		return result, dErrors.Newf(dErrors.CodeGateway, "the ledger rejected the transaction (%s)", result.ResultCode)
	}
	return result, nil
}

// AccountCredentials returns the credential objects held by account.
func (c *Client) AccountCredentials(ctx context.Context, account string) ([]eligibility.Credential, error) {
	res, err := c.call(ctx, "account_objects", map[string]any{
		"account": account,
		"type":    "credential",
	})
	if err != nil {
		return nil, err
	}

	var creds []eligibility.Credential
	for _, obj := range res.Get("account_objects").Array() {
		typeText, err := txbuilder.DecodeCredentialType(obj.Get("CredentialType").String())
		if err != nil {
			// Unreadable type can never match a policy entry; skip it.
			if c.logger != nil {
				c.logger.WarnContext(ctx, "skipping credential with undecodable type", "account", account, "error", err)
			}
			continue
		}
		cred := eligibility.Credential{
			Issuer:   obj.Get("Issuer").String(),
			Subject:  obj.Get("Subject").String(),
			Type:     typeText,
			Accepted: obj.Get("Flags").Uint()&lsfAccepted != 0,
		}
		if exp := obj.Get("Expiration"); exp.Exists() {
			t := txbuilder.RippleTime(uint32(exp.Uint()))
			cred.Expiration = &t
		}
		creds = append(creds, cred)
	}
	return creds, nil
}

// DomainPolicy returns the accepted-credential set of the domain identified
// by domainID among owner's domain objects. A domain with an empty set is
// open to all.
func (c *Client) DomainPolicy(ctx context.Context, owner, domainID string) (eligibility.Policy, error) {
	res, err := c.call(ctx, "account_objects", map[string]any{
		"account": owner,
		"type":    "permissioned_domain",
	})
	if err != nil {
		return nil, err
	}

	for _, obj := range res.Get("account_objects").Array() {
		if obj.Get("index").String() != domainID {
			continue
		}
		policy := eligibility.Policy{}
		for _, entry := range obj.Get("AcceptedCredentials").Array() {
			cred := entry.Get("AcceptedCredential")
			typeText, err := txbuilder.DecodeCredentialType(cred.Get("CredentialType").String())
			if err != nil {
				return nil, err
			}
			policy = append(policy, eligibility.PolicyEntry{
				Issuer: cred.Get("Issuer").String(),
				Type:   typeText,
			})
		}
		return policy, nil
	}
	return nil, dErrors.Newf(dErrors.CodeNotFound, "domain %s does not exist", domainID)
}

// BookOffers returns the raw offers for one book orientation. Callers query
// both orientations and classify the union.
func (c *Client) BookOffers(ctx context.Context, takerGets, takerPays txbuilder.CurrencyRef) ([]orderbook.RawOffer, error) {
	res, err := c.call(ctx, "book_offers", map[string]any{
		"taker_gets": refSpec(takerGets),
		"taker_pays": refSpec(takerPays),
	})
	if err != nil {
		return nil, err
	}

	var offers []orderbook.RawOffer
	for _, obj := range res.Get("offers").Array() {
		offers = append(offers, orderbook.RawOffer{
			Account:   obj.Get("Account").String(),
			TakerGets: parseAmount(obj.Get("TakerGets")),
			TakerPays: parseAmount(obj.Get("TakerPays")),
			Sequence:  uint32(obj.Get("Sequence").Uint()),
			DomainID:  obj.Get("DomainID").String(),
		})
	}
	return offers, nil
}

// refSpec renders a currency ref in the node's book_offers selector format.
func refSpec(ref txbuilder.CurrencyRef) map[string]any {
	if ref.IsNative() {
		return map[string]any{"currency": ref.Code}
	}
	return map[string]any{"currency": ref.Code, "issuer": ref.Issuer}
}

// parseAmount reads either wire form: a bare scalar for the native asset, a
// structured object for issued tokens.
func parseAmount(res gjson.Result) txbuilder.Amount {
	if res.Type == gjson.String {
		return txbuilder.NativeAmount(res.String())
	}
	return txbuilder.Amount{
		Currency: res.Get("currency").String(),
		Issuer:   res.Get("issuer").String(),
		Value:    res.Get("value").String(),
	}
}

// call performs one JSON-RPC request and unwraps the result envelope.
func (c *Client) call(ctx context.Context, method string, params map[string]any) (gjson.Result, error) {
	ctx, span := c.tracer.Start(ctx, "ledger."+method,
		trace.WithAttributes(attribute.String("rpc.method", method)))
	defer span.End()

	body, err := json.Marshal(map[string]any{
		"method": method,
		"params": []any{params},
	})
	if err != nil {
		return gjson.Result{}, dErrors.Wrap(dErrors.CodeGateway, "could not encode the ledger request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, dErrors.Wrap(dErrors.CodeGateway, "could not build the ledger request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, dErrors.Wrap(dErrors.CodeGateway, "the ledger node could not be reached", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, dErrors.Wrap(dErrors.CodeGateway, "could not read the ledger response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, dErrors.Newf(dErrors.CodeGateway, "the ledger node answered HTTP %d", resp.StatusCode)
	}

	result := gjson.GetBytes(raw, "result")
	if result.Get("status").String() == "error" {
		return gjson.Result{}, dErrors.Newf(dErrors.CodeGateway, "ledger error: %s", result.Get("error").String())
	}
	return result, nil
}
