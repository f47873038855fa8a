// Package eligibility decides whether a user's ledger credentials satisfy a
// domain's accepted-credential policy. This is pure domain logic - no I/O,
// no side effects - so the rules stay centralized and testable.
package eligibility

import "time"

// Credential is the client-side view of a ledger credential object.
type Credential struct {
	Issuer     string
	Subject    string
	Type       string
	Expiration *time.Time
	Accepted   bool
}

// Usable reports whether the credential can count toward eligibility at the
// given instant: accepted by its subject and not expired.
func (c Credential) Usable(now time.Time) bool {
	if !c.Accepted {
		return false
	}
	if c.Expiration != nil && !c.Expiration.After(now) {
		return false
	}
	return true
}

// PolicyEntry identifies one accepted credential kind for a domain.
type PolicyEntry struct {
	Issuer string `json:"issuer"`
	Type   string `json:"type"`
}

// Policy is a domain's full accepted-credential set. An empty policy means
// the domain is open to all.
type Policy []PolicyEntry

// IsEligible reports whether any held credential is accepted, unexpired, and
// named by the policy. A single match suffices: the policy is a disjunction,
// not a checklist.
func IsEligible(held []Credential, policy Policy, now time.Time) bool {
	if len(policy) == 0 {
		return true
	}
	for _, cred := range held {
		if !cred.Usable(now) {
			continue
		}
		for _, entry := range policy {
			if cred.Issuer == entry.Issuer && cred.Type == entry.Type {
				return true
			}
		}
	}
	return false
}
