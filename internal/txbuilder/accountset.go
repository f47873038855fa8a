package txbuilder

// Combinable AccountSet transaction flag bits. These may be OR'd into a
// single payload.
const (
	tfRequireAuth uint32 = 0x00040000
)

// One-at-a-time AccountSet named flags. The ledger accepts exactly one
// SetFlag per transaction, so each needs its own payload.
const (
	asfGlobalFreeze  uint32 = 7
	asfDefaultRipple uint32 = 8
	asfAllowClawback uint32 = 16
)

// AccountSet configures account-level flags. Either Flags (a bitmask of
// combinable tf bits) or SetFlag (one named asf flag) is populated, never
// both.
type AccountSet struct {
	TransactionType string `json:"TransactionType"`
	Account         string `json:"Account"`
	Flags           uint32 `json:"Flags,omitempty"`
	SetFlag         uint32 `json:"SetFlag,omitempty"`
}

// IssuerFlags is the high-level intent for configuring a token issuer.
type IssuerFlags struct {
	RequireAuth bool
	Freeze      bool
	Clawback    bool
}

// ConfigureIssuerFlags expands an issuer-setup intent into AccountSet
// payloads. Combinable bits are OR'd into one bitmask payload; every named
// flag gets its own payload because the ledger rejects more than one SetFlag
// per transaction. Rippling is always enabled: multi-hop settlement of
// issued tokens requires it.
func ConfigureIssuerFlags(account string, flags IssuerFlags) ([]*AccountSet, error) {
	if err := requireAccount("account", account); err != nil {
		return nil, err
	}

	var out []*AccountSet

	var mask uint32
	if flags.RequireAuth {
		mask |= tfRequireAuth
	}
	if mask != 0 {
		out = append(out, &AccountSet{
			TransactionType: "AccountSet",
			Account:         account,
			Flags:           mask,
		})
	}

	named := []uint32{}
	if flags.Freeze {
		named = append(named, asfGlobalFreeze)
	}
	if flags.Clawback {
		named = append(named, asfAllowClawback)
	}
	named = append(named, asfDefaultRipple)

	for _, flag := range named {
		out = append(out, &AccountSet{
			TransactionType: "AccountSet",
			Account:         account,
			SetFlag:         flag,
		})
	}
	return out, nil
}
