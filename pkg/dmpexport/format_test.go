package dmpexport

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmp"
)

func TestFormatByteSizeBelowThousandIsPlain(t *testing.T) {
	for n := int64(0); n < 1000; n++ {
		got, err := FormatByteSize(n)
		require.NoError(t, err)
		if got != strconv.FormatInt(n, 10) {
			t.Fatalf("FormatByteSize(%d) = %q", n, got)
		}
	}
}

func TestFormatByteSize(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{"largest plain", 999, "999"},
		{"exact thousand", 1000, "1 K"},
		{"one and a half thousand", 1500, "1.5 K"},
		{"two digit lead", 12_345, "12 K"},
		{"three digit lead", 999_999, "999 K"},
		{"millions", 2_500_000, "2.5 M"},
		{"giga", 7_000_000_000, "7 G"},
		{"largest int64", math.MaxInt64, "9.2 E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatByteSize(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatByteSizeRejectsNegative(t *testing.T) {
	_, err := FormatByteSize(-1)
	require.Error(t, err)

	var bse *ByteSizeError
	require.True(t, errors.As(err, &bse))
	assert.Equal(t, int64(-1), bse.Value)
}

func TestJoinWithAnd(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{"empty", nil, ""},
		{"one", []string{"A"}, "A"},
		{"two", []string{"A", "B"}, "A and B"},
		{"three", []string{"A", "B", "C"}, "A, B and C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinWithAnd(tt.items, "and"))
		})
	}

	assert.Equal(t, "A, B und C", JoinWithAnd([]string{"A", "B", "C"}, "und"))
}

func TestJoinWithComma(t *testing.T) {
	assert.Equal(t, "", JoinWithComma(nil))
	assert.Equal(t, "a, b", JoinWithComma([]string{"a", "b"}))
}

func TestChoiceLabels(t *testing.T) {
	choices := []dmp.Compliance{dmp.ComplianceInformedConsent, dmp.ComplianceOther}

	assert.Equal(t, []string{"informed consent", "DPIA"}, ChoiceLabels(choices, "DPIA"))
	assert.Equal(t, []string{"informed consent", "other"}, ChoiceLabels(choices, ""))
	assert.Empty(t, ChoiceLabels([]dmp.Compliance(nil), "DPIA"))
}

func TestFormatAmountIsPinned(t *testing.T) {
	assert.Equal(t, "1.234,5", FormatAmount(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0", FormatAmount(decimal.Zero))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-03-05", FormatDate(dmp.NewDate(2024, 3, 5)))
	assert.Equal(t, "", FormatDate(nil))
}

func TestSummarizeCosts(t *testing.T) {
	costs := []dmp.Cost{
		{Title: "no value"},
		{Title: "a", Value: amount(t, "0.1")},
		{Title: "b", CurrencyCode: "EUR", Value: amount(t, "0.2")},
		{Title: "c", CurrencyCode: "USD", Value: amount(t, "0.3")},
	}

	summary := SummarizeCosts(costs)
	assert.Equal(t, "EUR", summary.Currency)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("0.6")), "total %s", summary.Total)

	empty := SummarizeCosts(nil)
	assert.Equal(t, "", empty.Currency)
	assert.True(t, empty.Total.IsZero())
}
