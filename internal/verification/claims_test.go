package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

func TestReconcileBooleanPresence(t *testing.T) {
	requested := RequestedAttributes{"ageOver18": {BoolPresence: true}}

	for _, v := range []any{true, "true", "TRUE", 1, float64(1), "yes", " Yes "} {
		assert.NoError(t, Reconcile(requested, map[string]any{"age_over_18": v}), "value %v", v)
	}

	for _, v := range []any{false, "false", 0, float64(0), "no", "maybe", nil} {
		err := Reconcile(requested, map[string]any{"age_over_18": v})
		assert.Error(t, err, "value %v", v)
		assert.Equal(t, dErrors.CodePolicyMismatch, dErrors.CodeOf(err))
	}
}

func TestReconcileExpectedValue(t *testing.T) {
	requested := RequestedAttributes{"issuingCountry": {Expected: "FR"}}

	assert.NoError(t, Reconcile(requested, map[string]any{"issuing_country": "FR"}))
	assert.NoError(t, Reconcile(requested, map[string]any{"issuing_country": "fr"}), "comparison is case normalized")
	assert.NoError(t, Reconcile(requested, map[string]any{"IssuingCountry": " FR "}), "keys and values are format normalized")

	assert.Error(t, Reconcile(requested, map[string]any{"issuing_country": "DE"}))
}

func TestReconcileMissingAttribute(t *testing.T) {
	requested := RequestedAttributes{
		"ageOver18":  {BoolPresence: true},
		"familyName": {Expected: "Martin"},
	}

	err := Reconcile(requested, map[string]any{"age_over_18": true})
	assert.Error(t, err)
	assert.Equal(t, dErrors.CodePolicyMismatch, dErrors.CodeOf(err))
}

func TestReconcileIgnoresExtraClaims(t *testing.T) {
	requested := RequestedAttributes{"ageOver18": {BoolPresence: true}}
	claims := map[string]any{
		"age_over_18": true,
		"given_name":  "Ada",
	}
	assert.NoError(t, Reconcile(requested, claims))
}
