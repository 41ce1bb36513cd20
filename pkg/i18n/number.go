package i18n

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// AmountFractionDigits is the most fraction digits an amount keeps.
	AmountFractionDigits = 3

	groupSeparator   = "."
	decimalSeparator = ","
)

// FormatAmount renders an amount with German grouping and at most
// AmountFractionDigits fraction digits, e.g. 1234.5 as "1.234,5". The
// separators do not depend on the narrative language or the host. Digits
// come from the decimal itself, so no precision is lost; ties round to
// even.
func FormatAmount(d decimal.Decimal) string {
	s := d.RoundBank(AmountFractionDigits).String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(groupThousands(whole))
	if frac != "" {
		b.WriteString(decimalSeparator)
		b.WriteString(frac)
	}
	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
