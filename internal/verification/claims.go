package verification

import (
	"fmt"
	"strings"

	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

// Reconcile compares returned claims against the requested attributes.
// Returns nil when every requirement is satisfied, or a policy_mismatch
// error naming the first failing attribute otherwise.
//
// Claim keys are matched loosely (case and separator insensitive) because
// verifier backends disagree on naming: a request for "ageOver18" must find
// a returned "age_over_18".
func Reconcile(requested RequestedAttributes, claims map[string]any) error {
	indexed := make(map[string]any, len(claims))
	for k, v := range claims {
		indexed[normalizeKey(k)] = v
	}

	for name, req := range requested {
		value, ok := indexed[normalizeKey(name)]
		if !ok {
			return dErrors.Newf(dErrors.CodePolicyMismatch, "attribute %q was not presented", name)
		}
		if req.BoolPresence {
			if !truthy(value) {
				return dErrors.Newf(dErrors.CodePolicyMismatch, "attribute %q did not prove true", name)
			}
			continue
		}
		if req.Expected != "" {
			if normalizeValue(fmt.Sprintf("%v", value)) != normalizeValue(req.Expected) {
				return dErrors.Newf(dErrors.CodePolicyMismatch, "attribute %q does not match the required value", name)
			}
		}
	}
	return nil
}

// truthy accepts the canonical true-ish encodings a wallet may return for a
// boolean-presence attribute.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t == 1
	case float64:
		// JSON numbers decode as float64.
		return t == 1
	case string:
		switch normalizeValue(t) {
		case "true", "1", "yes":
			return true
		}
	}
	return false
}

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, k)
}

func normalizeValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
