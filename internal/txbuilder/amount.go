// Package txbuilder assembles ledger-transaction payloads from high-level
// intents. Builders are pure: they validate structurally, encode currencies,
// and never touch the network or live ledger state. Because submission is not
// idempotent-safe, callers build a fresh payload immediately before each
// submit instead of reusing a cached one.
package txbuilder

import (
	"encoding/json"
	"strconv"

	"github.com/hliosone/Permix/internal/currency"
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// CurrencyRef names one side of a trading pair: the native asset or an
// issued token identified by (code, issuer).
type CurrencyRef struct {
	Code   string `json:"code"`
	Issuer string `json:"issuer,omitempty"`
}

// IsNative reports whether the ref names the ledger's base asset.
func (r CurrencyRef) IsNative() bool {
	return r.Code == currency.Native && r.Issuer == ""
}

// TradingPair is a classification key for offers: base priced in quote.
type TradingPair struct {
	Base  CurrencyRef `json:"base"`
	Quote CurrencyRef `json:"quote"`
}

// Amount is either a native scalar or a structured issued-token amount. The
// distinction is load-bearing on the wire: native amounts serialize as a bare
// string, token amounts as {currency, issuer, value}. Never normalize one
// into the other.
type Amount struct {
	Currency string
	Issuer   string
	Value    string
}

// NativeAmount builds the bare-scalar form.
func NativeAmount(value string) Amount {
	return Amount{Currency: currency.Native, Value: value}
}

// TokenAmount builds the structured form, hex-encoding the currency code as
// needed.
func TokenAmount(code, issuer, value string) (Amount, error) {
	encoded, err := currency.Encode(code)
	if err != nil {
		return Amount{}, err
	}
	if issuer == "" {
		return Amount{}, dErrors.New(dErrors.CodeValidation, "token amount requires an issuer")
	}
	return Amount{Currency: encoded, Issuer: issuer, Value: value}, nil
}

// IsNative reports whether the amount serializes as a bare scalar.
func (a Amount) IsNative() bool {
	return a.Currency == currency.Native && a.Issuer == ""
}

type tokenAmountJSON struct {
	Currency string `json:"currency"`
	Issuer   string `json:"issuer"`
	Value    string `json:"value"`
}

// MarshalJSON keeps the native/token wire duality.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.IsNative() {
		return json.Marshal(a.Value)
	}
	return json.Marshal(tokenAmountJSON{Currency: a.Currency, Issuer: a.Issuer, Value: a.Value})
}

// UnmarshalJSON accepts both wire forms.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		*a = NativeAmount(scalar)
		return nil
	}
	var tok tokenAmountJSON
	if err := json.Unmarshal(data, &tok); err != nil {
		return err
	}
	*a = Amount{Currency: tok.Currency, Issuer: tok.Issuer, Value: tok.Value}
	return nil
}

// amountFor builds the Amount for a quantity of ref, honoring the duality.
func amountFor(ref CurrencyRef, value float64) (Amount, error) {
	formatted := formatValue(value)
	if ref.IsNative() {
		return NativeAmount(formatted), nil
	}
	return TokenAmount(ref.Code, ref.Issuer, formatted)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// requirePositiveDecimal validates a caller-supplied decimal string.
func requirePositiveDecimal(field, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return dErrors.Newf(dErrors.CodeValidation, "%s must be a decimal string", field)
	}
	if f <= 0 {
		return dErrors.Newf(dErrors.CodeValidation, "%s must be positive", field)
	}
	return nil
}

func requireNonNegativeDecimal(field, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return dErrors.Newf(dErrors.CodeValidation, "%s must be a decimal string", field)
	}
	if f < 0 {
		return dErrors.Newf(dErrors.CodeValidation, "%s must be non-negative", field)
	}
	return nil
}

func requireAccount(field, value string) error {
	if value == "" {
		return dErrors.Newf(dErrors.CodeValidation, "%s is required", field)
	}
	return nil
}
