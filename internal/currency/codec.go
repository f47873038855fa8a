// Package currency encodes and decodes ledger currency identifiers.
//
// Codes of up to three characters travel on the wire unchanged; anything
// longer is hex-encoded byte-for-byte into the ledger's fixed 160-bit
// currency field, right-padded with zero bytes.
package currency

import (
	"encoding/hex"
	"strings"

	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// Native is the ledger's base asset. It is a distinguished value, never
// hex-encoded, and carried as a bare scalar amount on the wire.
const Native = "XRP"

// identifierBytes is the fixed width of the ledger currency field.
const identifierBytes = 20

// Encode converts a human currency code into its wire identifier. Codes of
// length <= 3 pass through unchanged. Longer codes become upper-case hex,
// zero-padded to the full field width. Padding makes the encoding lossy for
// codes with trailing NUL bytes, which no printable code has.
func Encode(code string) (string, error) {
	if code == "" {
		return "", dErrors.New(dErrors.CodeEncoding, "currency code must not be empty")
	}
	if len(code) <= 3 {
		return code, nil
	}
	if len(code) > identifierBytes {
		return "", dErrors.Newf(dErrors.CodeEncoding, "currency code %q exceeds %d bytes", code, identifierBytes)
	}
	for _, r := range code {
		if r > 0xFF {
			return "", dErrors.Newf(dErrors.CodeEncoding, "currency code %q contains a character outside the byte range", code)
		}
	}

	buf := make([]byte, identifierBytes)
	copy(buf, code)
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Decode converts a wire identifier back into a human code. Identifiers of
// length <= 3 are already plain codes. Hex identifiers are decoded and
// stripped of trailing zero padding before being interpreted as text.
func Decode(identifier string) (string, error) {
	if identifier == "" {
		return "", dErrors.New(dErrors.CodeEncoding, "currency identifier must not be empty")
	}
	if len(identifier) <= 3 {
		return identifier, nil
	}

	raw, err := hex.DecodeString(identifier)
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeEncoding, "currency identifier is not valid hex", err)
	}
	end := len(raw)
	for end > 0 && raw[end-1] == 0 {
		end--
	}
	if end == 0 {
		return "", dErrors.New(dErrors.CodeEncoding, "currency identifier decodes to an empty code")
	}
	return string(raw[:end]), nil
}

// Equal reports whether two currency representations name the same
// currency, whether each side is a plain code or a full-width hex
// identifier.
func Equal(a, b string) bool {
	return canonical(a) == canonical(b)
}

// canonical reduces a representation to its human code. Only full-width
// identifiers are treated as hex: a short plain code such as "DEAD" must not
// be misread as bytes.
func canonical(x string) string {
	if len(x) != identifierBytes*2 {
		return x
	}
	decoded, err := Decode(x)
	if err != nil {
		return x
	}
	return decoded
}
