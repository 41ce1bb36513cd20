package dmp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the layout used for every date rendered into a document.
const DateLayout = "2006-01-02"

// Date is a calendar date. It accepts both plain dates and RFC 3339
// timestamps when decoding JSON.
type Date struct {
	time.Time
}

// NewDate returns the date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// String formats the date as yyyy-MM-dd.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// AddMonths returns a copy of the date shifted by n calendar months.
func (d Date) AddMonths(n int) Date {
	return Date{Time: d.AddDate(0, n, 0)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range []string{DateLayout, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// FormatDate renders an optional date, or "" when it is absent.
func FormatDate(d *Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.String()
}
