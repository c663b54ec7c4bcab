// Package counter provides the domain contract for sequential document
// numbering. The implementation lives in the infrastructure layer.
package counter

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Type identifies a numbering sequence. Each document kind draws from
// its own counter row.
type Type string

const (
	// TypeNormal numbers regular invoices.
	TypeNormal Type = "normal"
	// TypeHidden numbers off-books invoices (separate sequence,
	// "C" prefix).
	TypeHidden Type = "cachee"
	// TypeQuote numbers quotes.
	TypeQuote Type = "devis"
)

// Types lists all known counter types in seed order.
func Types() []Type {
	return []Type{TypeNormal, TypeHidden, TypeQuote}
}

// IsValid reports whether t is a known counter type.
func (t Type) IsValid() bool {
	switch t {
	case TypeNormal, TypeHidden, TypeQuote:
		return true
	}
	return false
}

// Value is one counter row as exposed to callers.
type Value struct {
	Type       Type      `db:"type" json:"type"`
	LastNumber int64     `db:"last_number" json:"lastNumber"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
	UpdatedBy  string    `db:"updated_by" json:"updatedBy,omitempty"`
}

// Store is the single authoritative owner of counter mutation.
//
// Advance must only be called inside the same transaction as the
// document insert it numbers: the implementation takes the counter
// row lock, so two concurrent creations of the same type cannot read
// the same value and both advance from it.
type Store interface {
	// PeekNext returns last_number+1 without mutating. Advisory only:
	// the value may be stale by the time a real creation happens.
	PeekNext(ctx context.Context, t Type) (int64, error)

	// Advance atomically increments the counter by exactly 1 and
	// returns the new value.
	Advance(ctx context.Context, t Type) (int64, error)

	// SetValue replaces last_number for administrative correction.
	// value must be a non-negative integer; actor is audited.
	SetValue(ctx context.Context, t Type, value int64, actor string) error

	// Snapshot returns all counter rows.
	Snapshot(ctx context.Context) ([]Value, error)
}

// --- Number formatting ---
// Formatting is a caller concern, not a store concern: the store only
// deals in integers.

const (
	invoicePadWidth = 3
	quotePadWidth   = 5
	hiddenPrefix    = "C"
)

// Format renders the canonical stored number for a counter value:
// invoices zero-pad to 3 digits ("001"), hidden invoices add the "C"
// prefix ("C003"), quotes zero-pad to 5 digits ("00042").
func Format(t Type, n int64) string {
	switch t {
	case TypeHidden:
		return hiddenPrefix + fmt.Sprintf("%0*d", invoicePadWidth, n)
	case TypeQuote:
		return fmt.Sprintf("%0*d", quotePadWidth, n)
	default:
		return fmt.Sprintf("%0*d", invoicePadWidth, n)
	}
}

// Display renders the preview form of a number: leading zeros are
// stripped for display, the hidden prefix is kept.
func Display(t Type, n int64) string {
	if t == TypeHidden {
		return hiddenPrefix + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
