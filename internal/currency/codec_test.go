package currency

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/hliosone/Permix/pkg/domainerrors"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    string
		wantErr bool
	}{
		{name: "short code passes through", code: "USD", want: "USD"},
		{name: "native passes through", code: "XRP", want: "XRP"},
		{name: "two chars pass through", code: "EU", want: "EU"},
		{
			name: "long code hex encoded and padded",
			code: "GOLD",
			want: "474F4C4400000000000000000000000000000000",
		},
		{name: "empty code rejected", code: "", wantErr: true},
		{name: "non-byte character rejected", code: "EURO€", wantErr: true},
		{name: "over-width code rejected", code: strings.Repeat("A", 21), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, dErrors.CodeEncoding, dErrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeWidth(t *testing.T) {
	got, err := Encode("LONGCODE")
	require.NoError(t, err)
	assert.Len(t, got, identifierBytes*2)
	assert.Equal(t, strings.ToUpper(got), got)
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "XRP", "X", "GOLD", "SOLO", "LongCurrencyName"} {
		encoded, err := Encode(code)
		require.NoError(t, err)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, code, decoded, "round trip for %q", code)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("not-hex-at-all!!")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeEncoding, dErrors.CodeOf(err))

	_, err = Decode(strings.Repeat("00", 20))
	require.Error(t, err, "all-zero identifier has no text form")
}

func TestEqual(t *testing.T) {
	hexGold, err := Encode("GOLD")
	require.NoError(t, err)

	assert.True(t, Equal("USD", "USD"))
	assert.True(t, Equal(hexGold, hexGold))
	assert.True(t, Equal(hexGold, "GOLD"), "hex identifier matches its plain code")
	assert.False(t, Equal("USD", "EUR"))
	assert.False(t, Equal("USD", hexGold))
}
