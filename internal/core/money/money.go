// Package money provides exact decimal arithmetic for monetary values.
//
// Amounts are decimal.Decimal, never float64: invoice totals must
// round-trip the database and compare exactly in tests.
package money

import (
	"github.com/shopspring/decimal"
)

// Amount represents a monetary value with full precision.
type Amount = decimal.Decimal

// Scale is the number of fractional digits kept on persisted amounts.
const Scale = 2

// Zero returns a zero Amount.
func Zero() Amount {
	return decimal.Zero
}

// New creates an Amount from an integer count of euros.
func New(units int64) Amount {
	return decimal.NewFromInt(units)
}

// FromString parses a decimal string ("12.50").
func FromString(s string) (Amount, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal string, panics on error.
// Use only for constants and tests.
func MustFromString(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromFloat converts a float64. Callers at the HTTP boundary only;
// the result is rounded to Scale immediately.
func FromFloat(f float64) Amount {
	return Round(decimal.NewFromFloat(f))
}

// Round rounds to Scale fractional digits, half away from zero.
func Round(a Amount) Amount {
	return a.Round(Scale)
}
