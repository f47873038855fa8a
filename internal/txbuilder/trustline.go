package txbuilder

// DefaultTrustLimit is used when the caller does not supply a limit. The
// legacy helpers disagreed on a default; one billion units is the variant we
// standardize on.
const DefaultTrustLimit = "1000000000"

// TrustSet authorizes an account to hold an issued token up to a limit.
type TrustSet struct {
	TransactionType string `json:"TransactionType"`
	Account         string `json:"Account"`
	LimitAmount     Amount `json:"LimitAmount"`
}

// AuthorizeTokenHolding builds a TrustSet for holder against the issuer's
// token. An empty limit falls back to DefaultTrustLimit.
func AuthorizeTokenHolding(holder, issuer, currencyCode, limit string) (*TrustSet, error) {
	if err := requireAccount("holder", holder); err != nil {
		return nil, err
	}
	if limit == "" {
		limit = DefaultTrustLimit
	}
	if err := requireNonNegativeDecimal("limit", limit); err != nil {
		return nil, err
	}
	amount, err := TokenAmount(currencyCode, issuer, limit)
	if err != nil {
		return nil, err
	}
	return &TrustSet{
		TransactionType: "TrustSet",
		Account:         holder,
		LimitAmount:     amount,
	}, nil
}
