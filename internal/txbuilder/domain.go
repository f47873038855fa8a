package txbuilder

import (
	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// maxDomainCredentials is the ledger's per-domain policy cap.
const maxDomainCredentials = 10

// AcceptedCredential wraps one policy entry in the ledger's array format.
type AcceptedCredential struct {
	Credential AcceptedCredentialEntry `json:"AcceptedCredential"`
}

// AcceptedCredentialEntry names a credential kind a domain accepts.
type AcceptedCredentialEntry struct {
	Issuer         string `json:"Issuer"`
	CredentialType string `json:"CredentialType"`
}

// PermissionedDomainSet creates a domain or fully replaces an existing
// domain's accepted-credential set.
type PermissionedDomainSet struct {
	TransactionType     string               `json:"TransactionType"`
	Account             string               `json:"Account"`
	DomainID            string               `json:"DomainID,omitempty"`
	AcceptedCredentials []AcceptedCredential `json:"AcceptedCredentials"`
}

// PolicyEntry is a high-level (issuer, type) pair before wire encoding.
type PolicyEntry struct {
	Issuer   string `json:"issuer"`
	TypeText string `json:"type"`
}

// SetDomainPolicy builds a full-replacement domain update. Entries omitted
// from accepted are revoked for the domain: callers must read the current
// set first when making a partial change, or they will silently drop
// entries. Pass domainID == "" to create a new domain.
func SetDomainPolicy(owner, domainID string, accepted []PolicyEntry) (*PermissionedDomainSet, error) {
	if err := requireAccount("owner", owner); err != nil {
		return nil, err
	}
	if len(accepted) > maxDomainCredentials {
		return nil, dErrors.Newf(dErrors.CodeValidation, "a domain accepts at most %d credentials", maxDomainCredentials)
	}

	seen := make(map[AcceptedCredentialEntry]struct{}, len(accepted))
	wire := make([]AcceptedCredential, 0, len(accepted))
	for _, entry := range accepted {
		if err := requireAccount("credential issuer", entry.Issuer); err != nil {
			return nil, err
		}
		credType, err := encodeCredentialType(entry.TypeText)
		if err != nil {
			return nil, err
		}
		e := AcceptedCredentialEntry{Issuer: entry.Issuer, CredentialType: credType}
		if _, dup := seen[e]; dup {
			return nil, dErrors.Newf(dErrors.CodeValidation, "duplicate accepted credential (%s, %s)", entry.Issuer, entry.TypeText)
		}
		seen[e] = struct{}{}
		wire = append(wire, AcceptedCredential{Credential: e})
	}

	return &PermissionedDomainSet{
		TransactionType:     "PermissionedDomainSet",
		Account:             owner,
		DomainID:            domainID,
		AcceptedCredentials: wire,
	}, nil
}

// DeleteDomain removes a domain entirely.
type PermissionedDomainDelete struct {
	TransactionType string `json:"TransactionType"`
	Account         string `json:"Account"`
	DomainID        string `json:"DomainID"`
}

func DeleteDomain(owner, domainID string) (*PermissionedDomainDelete, error) {
	if err := requireAccount("owner", owner); err != nil {
		return nil, err
	}
	if domainID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "domain ID is required for delete")
	}
	return &PermissionedDomainDelete{
		TransactionType: "PermissionedDomainDelete",
		Account:         owner,
		DomainID:        domainID,
	}, nil
}
