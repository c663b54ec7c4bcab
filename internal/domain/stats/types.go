// Package stats provides read-only reporting over committed
// documents. No mutation, no concurrency concerns beyond normal read
// consistency.
package stats

import (
	"time"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/money"
)

// DocType labels aggregate rows by document family.
type DocType string

const (
	DocTypeInvoice       DocType = "facture"
	DocTypeHiddenInvoice DocType = "facture_cachee"
	DocTypeQuote         DocType = "devis"
)

// DateRange bounds an aggregation period. Nil bounds are open;
// supplied bounds are inclusive on both ends.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Summary is the dashboard header block.
type Summary struct {
	// TotalCollected sums invoice amounts excluding hidden and
	// unpaid ones.
	TotalCollected money.Amount `json:"totalCollected"`

	InvoiceCount       int64 `json:"invoiceCount"`
	HiddenInvoiceCount int64 `json:"hiddenInvoiceCount"`
	QuoteCount         int64 `json:"quoteCount"`
}

// DailyEntry is one (type, day) aggregation row.
type DailyEntry struct {
	Type  DocType      `db:"doc_type" json:"type"`
	Date  time.Time    `db:"day" json:"date"`
	Total money.Amount `db:"total" json:"total"`
	Count int64        `db:"count" json:"count"`
}

// TopClient is one row of the best-clients ranking (hidden invoices
// excluded).
type TopClient struct {
	ClientName string       `db:"client_name" json:"clientName"`
	Total      money.Amount `db:"total" json:"total"`
}

// DayDocument is one document issued on a given calendar day.
type DayDocument struct {
	Date       time.Time    `db:"day" json:"date"`
	ClientName string       `db:"client_name" json:"client"`
	Type       DocType      `db:"doc_type" json:"type"`
	Status     string       `db:"status" json:"status"`
	Amount     money.Amount `db:"amount" json:"amount"`
}
