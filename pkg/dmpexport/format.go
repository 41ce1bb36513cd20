package dmpexport

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmp"
	"github.com/benjaminschreck/go-dmpexport/pkg/i18n"
)

var sizeSuffixes = []string{"K", "M", "G", "T", "P", "E"}

// FormatByteSize renders a byte count in groups of a thousand, keeping
// one decimal for single-digit leads: 999 is "999", 1500 is "1.5 K",
// 2500000 is "2.5 M".
func FormatByteSize(n int64) (string, error) {
	if n < 0 {
		return "", &ByteSizeError{Value: n}
	}
	s := strconv.FormatInt(n, 10)
	if n < 1000 {
		return s, nil
	}

	magnitude := (len(s) - 1) / 3
	if magnitude > len(sizeSuffixes) {
		return "", &ByteSizeError{Value: n}
	}
	lead := (len(s)-1)%3 + 1

	out := s[:lead]
	if lead == 1 && s[1] != '0' {
		out += "." + s[1:2]
	}
	return out + " " + sizeSuffixes[magnitude-1], nil
}

// JoinWithComma joins items with ", ".
func JoinWithComma(items []string) string {
	return strings.Join(items, ", ")
}

// JoinWithAnd joins items with ", " and puts conjunction before the last
// one: "A", "A and B", "A, B and C".
func JoinWithAnd(items []string, conjunction string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " " + conjunction + " " + items[len(items)-1]
}

// FormatAmount renders a cost amount with the pinned German grouping.
func FormatAmount(d decimal.Decimal) string {
	return i18n.FormatAmount(d)
}

// FormatDate renders an optional date as yyyy-MM-dd, or "".
func FormatDate(d *dmp.Date) string {
	return dmp.FormatDate(d)
}

// ChoiceLabels renders enumerated choices. The OTHER choice is replaced
// by override when override is non-empty.
func ChoiceLabels[T dmp.Choice](choices []T, override string) []string {
	labels := make([]string, 0, len(choices))
	for _, c := range choices {
		if c.IsOther() && override != "" {
			labels = append(labels, override)
			continue
		}
		labels = append(labels, c.Label())
	}
	return labels
}
