package txbuilder

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

const (
	issuer  = "rIssuer111111111111111111111111111"
	alice   = "rAlice1111111111111111111111111111"
	bob     = "rBob111111111111111111111111111111"
	gateway = "rGateway11111111111111111111111111"
)

func TestIssueCredential(t *testing.T) {
	exp := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tx, err := IssueCredential(issuer, alice, "KYC", &exp, "https://issuer.example/kyc")
	require.NoError(t, err)

	assert.Equal(t, "CredentialCreate", tx.TransactionType)
	assert.Equal(t, issuer, tx.Account)
	assert.Equal(t, alice, tx.Subject)
	assert.Equal(t, "4B5943", tx.CredentialType, "KYC hex-encoded")
	assert.NotZero(t, tx.Expiration)
	assert.Equal(t, exp, RippleTime(tx.Expiration))
	assert.Equal(t, "68747470733A2F2F6973737565722E6578616D706C652F6B7963", tx.URI)
}

func TestIssueCredentialSelfIssuanceRejected(t *testing.T) {
	_, err := IssueCredential(issuer, issuer, "KYC", nil, "")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
}

func TestAcceptCredentialIdentifiesByIssuerAndType(t *testing.T) {
	tx, err := AcceptCredential(alice, issuer, "KYC")
	require.NoError(t, err)

	assert.Equal(t, "CredentialAccept", tx.TransactionType)
	assert.Equal(t, alice, tx.Account)
	assert.Equal(t, issuer, tx.Issuer)

	decoded, err := DecodeCredentialType(tx.CredentialType)
	require.NoError(t, err)
	assert.Equal(t, "KYC", decoded)
}

func TestSetDomainPolicy(t *testing.T) {
	tx, err := SetDomainPolicy(alice, "", []PolicyEntry{
		{Issuer: issuer, TypeText: "KYC"},
		{Issuer: gateway, TypeText: "AML"},
	})
	require.NoError(t, err)

	assert.Equal(t, "PermissionedDomainSet", tx.TransactionType)
	assert.Empty(t, tx.DomainID, "create leaves DomainID unset")
	require.Len(t, tx.AcceptedCredentials, 2)
	assert.Equal(t, issuer, tx.AcceptedCredentials[0].Credential.Issuer)
	assert.Equal(t, "4B5943", tx.AcceptedCredentials[0].Credential.CredentialType)
}

func TestSetDomainPolicyValidation(t *testing.T) {
	t.Run("duplicate entries rejected", func(t *testing.T) {
		_, err := SetDomainPolicy(alice, "", []PolicyEntry{
			{Issuer: issuer, TypeText: "KYC"},
			{Issuer: issuer, TypeText: "KYC"},
		})
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	t.Run("too many entries rejected", func(t *testing.T) {
		entries := make([]PolicyEntry, maxDomainCredentials+1)
		for i := range entries {
			entries[i] = PolicyEntry{Issuer: issuer, TypeText: string(rune('A' + i))}
		}
		_, err := SetDomainPolicy(alice, "", entries)
		require.Error(t, err)
	})

	t.Run("empty set is a full replacement to open-to-all", func(t *testing.T) {
		tx, err := SetDomainPolicy(alice, "ABCDEF", nil)
		require.NoError(t, err)
		assert.Equal(t, "ABCDEF", tx.DomainID)
		assert.Empty(t, tx.AcceptedCredentials)
	})
}

func TestConfigureIssuerFlags(t *testing.T) {
	payloads, err := ConfigureIssuerFlags(issuer, IssuerFlags{RequireAuth: true, Freeze: true})
	require.NoError(t, err)

	// One bitmask payload plus freeze and rippling named payloads.
	require.Len(t, payloads, 3)

	assert.Equal(t, tfRequireAuth, payloads[0].Flags)
	assert.Zero(t, payloads[0].SetFlag)

	assert.Equal(t, asfGlobalFreeze, payloads[1].SetFlag)
	assert.Zero(t, payloads[1].Flags, "named flags never ride the bitmask")

	assert.Equal(t, asfDefaultRipple, payloads[2].SetFlag)
}

func TestConfigureIssuerFlagsAlwaysEnablesRippling(t *testing.T) {
	payloads, err := ConfigureIssuerFlags(issuer, IssuerFlags{})
	require.NoError(t, err)

	require.Len(t, payloads, 1)
	assert.Equal(t, asfDefaultRipple, payloads[0].SetFlag)
}

func TestAuthorizeTokenHolding(t *testing.T) {
	tx, err := AuthorizeTokenHolding(alice, issuer, "GOLD", "5000")
	require.NoError(t, err)

	assert.Equal(t, "TrustSet", tx.TransactionType)
	assert.Equal(t, alice, tx.Account)
	assert.Equal(t, issuer, tx.LimitAmount.Issuer)
	assert.Equal(t, "474F4C4400000000000000000000000000000000", tx.LimitAmount.Currency)
	assert.Equal(t, "5000", tx.LimitAmount.Value)

	t.Run("default limit", func(t *testing.T) {
		tx, err := AuthorizeTokenHolding(alice, issuer, "USD", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultTrustLimit, tx.LimitAmount.Value)
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		_, err := AuthorizeTokenHolding(alice, issuer, "USD", "-1")
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
	})
}

func TestIssueOrTransferToken(t *testing.T) {
	tx, err := IssueOrTransferToken(issuer, bob, "USD", "250")
	require.NoError(t, err)

	assert.Equal(t, "Payment", tx.TransactionType)
	assert.Equal(t, bob, tx.Destination)
	assert.Equal(t, "250", tx.Amount.Value)

	for _, bad := range []string{"0", "-10", "abc"} {
		_, err := IssueOrTransferToken(issuer, bob, "USD", bad)
		require.Error(t, err, "amount %q", bad)
		assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
	}
}

func TestPlaceOrderBuy(t *testing.T) {
	pair := TradingPair{
		Base:  CurrencyRef{Code: "DDD", Issuer: gateway},
		Quote: CurrencyRef{Code: "CCC", Issuer: gateway},
	}

	tx, err := PlaceOrder(alice, "", Buy, pair, 100, 2)
	require.NoError(t, err)

	assert.Equal(t, "DDD", tx.TakerGets.Currency)
	assert.Equal(t, "100", tx.TakerGets.Value)
	assert.Equal(t, "CCC", tx.TakerPays.Currency)
	assert.Equal(t, "200", tx.TakerPays.Value)
}

func TestPlaceOrderSellSwapsLegs(t *testing.T) {
	pair := TradingPair{
		Base:  CurrencyRef{Code: "DDD", Issuer: gateway},
		Quote: CurrencyRef{Code: "CCC", Issuer: gateway},
	}

	tx, err := PlaceOrder(alice, "", Sell, pair, 100, 2)
	require.NoError(t, err)

	assert.Equal(t, "CCC", tx.TakerGets.Currency)
	assert.Equal(t, "200", tx.TakerGets.Value)
	assert.Equal(t, "DDD", tx.TakerPays.Currency)
	assert.Equal(t, "100", tx.TakerPays.Value)
}

func TestPlaceOrderNativeLegIsBareScalar(t *testing.T) {
	pair := TradingPair{
		Base:  CurrencyRef{Code: "GOLD", Issuer: gateway},
		Quote: CurrencyRef{Code: "XRP"},
	}

	tx, err := PlaceOrder(alice, "", Buy, pair, 10, 3)
	require.NoError(t, err)

	raw, err := json.Marshal(tx)
	require.NoError(t, err)

	var wire map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &wire))

	assert.JSONEq(t, `"30"`, string(wire["TakerPays"]), "native leg is a bare scalar")

	var gets map[string]string
	require.NoError(t, json.Unmarshal(wire["TakerGets"], &gets))
	assert.Equal(t, gateway, gets["issuer"])
}

func TestPlaceOrderAttachesDomain(t *testing.T) {
	pair := TradingPair{
		Base:  CurrencyRef{Code: "AAA", Issuer: gateway},
		Quote: CurrencyRef{Code: "BBB", Issuer: gateway},
	}

	tx, err := PlaceOrder(alice, "D0MA1N", Buy, pair, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "D0MA1N", tx.DomainID)
}

func TestPlaceOrderValidation(t *testing.T) {
	pair := TradingPair{
		Base:  CurrencyRef{Code: "AAA", Issuer: gateway},
		Quote: CurrencyRef{Code: "BBB", Issuer: gateway},
	}

	_, err := PlaceOrder(alice, "", Buy, pair, 0, 1)
	require.Error(t, err)

	_, err = PlaceOrder(alice, "", Sell, pair, 1, -2)
	require.Error(t, err)

	_, err = PlaceOrder(alice, "", Side("short"), pair, 1, 1)
	require.Error(t, err)
}

func TestCancelOrder(t *testing.T) {
	tx, err := CancelOrder(alice, 42)
	require.NoError(t, err)
	assert.Equal(t, "OfferCancel", tx.TransactionType)
	assert.Equal(t, uint32(42), tx.OfferSequence)

	_, err = CancelOrder(alice, 0)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
}

func TestAmountJSONDuality(t *testing.T) {
	native := NativeAmount("12.5")
	raw, err := json.Marshal(native)
	require.NoError(t, err)
	assert.Equal(t, `"12.5"`, string(raw))

	var back Amount
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.IsNative())
	assert.Equal(t, "12.5", back.Value)

	token, err := TokenAmount("USD", issuer, "7")
	require.NoError(t, err)
	raw, err = json.Marshal(token)
	require.NoError(t, err)

	var round Amount
	require.NoError(t, json.Unmarshal(raw, &round))
	assert.Equal(t, token, round)
}
