package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// maxAmountCent caps single amounts at 10 million units.
const maxAmountCent = 10_000_000 * 100

// ParseAmountCent converts a decimal amount string ("12.34") to cents.
// The amount must be positive, have at most two fractional digits and
// stay under the cap.
func ParseAmountCent(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	v := cents.IntPart()
	if v <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %s", s)
	}
	if v >= maxAmountCent {
		return 0, fmt.Errorf("amount too large, got %s", s)
	}
	return v, nil
}

// FormatCent renders cents as a decimal string with two places.
func FormatCent(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// dateLayouts accepted for transaction dates, most specific first.
var dateLayouts = []string{
	time.RFC3339,          // 2025-12-03T00:00:00+08:00
	"2006-01-02T15:04:05", // 2025-12-03T00:00:00
	"2006-01-02",          // 2025-12-03
}

// ParseDate parses a transaction date in any accepted layout.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}
