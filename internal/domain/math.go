package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SafeParse parses a string into a decimal, returning zero for invalid or
// empty input. Broker APIs send numeric fields as strings with inconsistent
// formatting; a malformed field degrades to zero instead of an error.
func SafeParse(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SafeFloat converts a wire string to float64, returning def when the value
// is missing or not numeric.
func SafeFloat(value string, def float64) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return def
	}
	f, _ := d.Float64()
	return f
}

// SafeInt converts a wire string to int64, returning def when the value is
// missing or not numeric. Fractional input is truncated toward zero, so
// "10.0" parses as 10.
func SafeInt(value string, def int64) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return def
	}
	return d.IntPart()
}
