package txbuilder

import (
	"encoding/hex"
	"strings"
	"time"

	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// rippleEpoch is the ledger's time origin (2000-01-01T00:00:00Z).
var rippleEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// CredentialCreate is the issuer-side credential issuance payload.
type CredentialCreate struct {
	TransactionType string `json:"TransactionType"`
	Account         string `json:"Account"`
	Subject         string `json:"Subject"`
	CredentialType  string `json:"CredentialType"`
	Expiration      uint32 `json:"Expiration,omitempty"`
	URI             string `json:"URI,omitempty"`
}

// CredentialAccept is the subject-side acceptance payload. The credential is
// identified by (issuer, type), not a stored object ID, because the
// ledger-assigned ID is only known after issuance is observed.
type CredentialAccept struct {
	TransactionType string `json:"TransactionType"`
	Account         string `json:"Account"`
	Issuer          string `json:"Issuer"`
	CredentialType  string `json:"CredentialType"`
}

// IssueCredential builds a CredentialCreate with the type and optional URI
// hex-encoded for the wire.
func IssueCredential(issuer, subject, typeText string, expiration *time.Time, uri string) (*CredentialCreate, error) {
	if err := requireAccount("issuer", issuer); err != nil {
		return nil, err
	}
	if err := requireAccount("subject", subject); err != nil {
		return nil, err
	}
	if subject == issuer {
		return nil, dErrors.New(dErrors.CodeValidation, "an issuer cannot issue a credential to itself")
	}
	credType, err := encodeCredentialType(typeText)
	if err != nil {
		return nil, err
	}

	tx := &CredentialCreate{
		TransactionType: "CredentialCreate",
		Account:         issuer,
		Subject:         subject,
		CredentialType:  credType,
	}
	if expiration != nil {
		if !expiration.After(rippleEpoch) {
			return nil, dErrors.New(dErrors.CodeValidation, "expiration predates the ledger epoch")
		}
		tx.Expiration = uint32(expiration.Unix() - rippleEpoch.Unix())
	}
	if uri != "" {
		tx.URI = strings.ToUpper(hex.EncodeToString([]byte(uri)))
	}
	return tx, nil
}

// AcceptCredential builds a CredentialAccept for the subject.
func AcceptCredential(subject, issuer, typeText string) (*CredentialAccept, error) {
	if err := requireAccount("subject", subject); err != nil {
		return nil, err
	}
	if err := requireAccount("issuer", issuer); err != nil {
		return nil, err
	}
	credType, err := encodeCredentialType(typeText)
	if err != nil {
		return nil, err
	}
	return &CredentialAccept{
		TransactionType: "CredentialAccept",
		Account:         subject,
		Issuer:          issuer,
		CredentialType:  credType,
	}, nil
}

// encodeCredentialType hex-encodes a credential type label. Types share the
// currency codec's byte-range rule but are always hex on the wire, even when
// short.
func encodeCredentialType(typeText string) (string, error) {
	if typeText == "" {
		return "", dErrors.New(dErrors.CodeValidation, "credential type must not be empty")
	}
	for _, r := range typeText {
		if r > 0xFF {
			return "", dErrors.Newf(dErrors.CodeEncoding, "credential type %q contains a character outside the byte range", typeText)
		}
	}
	return strings.ToUpper(hex.EncodeToString([]byte(typeText))), nil
}

// DecodeCredentialType reverses encodeCredentialType for ledger reads.
func DecodeCredentialType(identifier string) (string, error) {
	raw, err := hex.DecodeString(identifier)
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeEncoding, "credential type is not valid hex", err)
	}
	return string(raw), nil
}

// RippleTime converts a ledger timestamp back to wall-clock time.
func RippleTime(secs uint32) time.Time {
	return rippleEpoch.Add(time.Duration(secs) * time.Second)
}
