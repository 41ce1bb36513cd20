package i18n

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestEmbeddedBundlesAreComplete(t *testing.T) {
	for _, locale := range Available() {
		t.Run(locale, func(t *testing.T) {
			b, err := Load(locale)
			require.NoError(t, err)
			assert.Empty(t, b.Missing(Keys), "bundle %s lacks narrative keys", locale)
		})
	}
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, []string{"de", "en"}, Available())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		locale  string
		wantAnd string
		wantErr bool
	}{
		{name: "english", locale: "en", wantAnd: "and"},
		{name: "regional variant falls back", locale: "de-AT", wantAnd: "und"},
		{name: "unknown language", locale: "fr", wantErr: true},
		{name: "malformed tag", locale: "not a tag", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Load(tt.locale)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			and, err := b.Lookup(KeyAnd)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAnd, and)
		})
	}
}

func TestLookupMissingKey(t *testing.T) {
	b := New(language.English, map[string]string{"costs.no": "none"})

	_, err := b.Lookup("costs.avail")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingKey))

	var mk *MissingKeyError
	require.True(t, errors.As(err, &mk))
	assert.Equal(t, "costs.avail", mk.Key)
}

func TestParse(t *testing.T) {
	b, err := Parse(language.English, []byte("costs.no: \"No costs.\"\n"))
	require.NoError(t, err)
	phrase, err := b.Lookup(KeyCostsNo)
	require.NoError(t, err)
	assert.Equal(t, "No costs.", phrase)

	_, err = Parse(language.English, []byte("- not\n- a map\n"))
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"12", "12"},
		{"1234.5", "1.234,5"},
		{"1500", "1.500"},
		{"1000000.25", "1.000.000,25"},
		{"999", "999"},
		{"100000", "100.000"},
		{"1234.50", "1.234,5"},
		{"-1234.5", "-1.234,5"},
		{"-0.0001", "0"},
		{"0.1234", "0,123"},
		{"0.0125", "0,012"},
		{"0.0135", "0,014"},
		{"9007199254740993.125", "9.007.199.254.740.993,125"},
		{"123456789012345678901234567890.5", "123.456.789.012.345.678.901.234.567.890,5"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}
