// Package quote provides the quote document (devis).
package quote

import (
	"context"
	"time"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/money"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents"
)

// Status of a quote.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusAccepted Status = "accepte"
	StatusDeclined Status = "refuse"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusNormal, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// Quote is the persisted document header. Quotes number from their
// own counter, zero-padded to five digits.
type Quote struct {
	ID     id.ID  `db:"id" json:"id"`
	Number string `db:"number" json:"number"`

	QuoteDate time.Time    `db:"quote_date" json:"quoteDate"`
	TotalTTC  money.Amount `db:"total_ttc" json:"totalTTC"`
	Discount  money.Amount `db:"discount" json:"discount"`
	Status    Status       `db:"status" json:"status"`

	VehicleID id.ID   `db:"vehicle_id" json:"vehicleId"`
	CreatedBy string  `db:"created_by" json:"createdBy,omitempty"`
	RequestID *string `db:"request_id" json:"requestId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line is one ordered quote line.
type Line struct {
	ID          id.ID        `db:"id" json:"id"`
	LineNo      int          `db:"line_no" json:"lineNo"`
	Reference   string       `db:"reference" json:"reference,omitempty"`
	Description string       `db:"description" json:"description,omitempty"`
	Quantity    money.Amount `db:"quantity" json:"quantity"`
	UnitPrice   money.Amount `db:"unit_price" json:"unitPrice"`
	Discount    money.Amount `db:"discount" json:"discount"`
	VATRate     money.Amount `db:"vat_rate" json:"vatRate"`
	TotalHT     money.Amount `db:"total_ht" json:"totalHT"`
}

// ListItem is one row of the quote journal.
type ListItem struct {
	ID         id.ID        `db:"id" json:"id"`
	Number     string       `db:"number" json:"number"`
	QuoteDate  time.Time    `db:"quote_date" json:"quoteDate"`
	TotalTTC   money.Amount `db:"total_ttc" json:"totalTTC"`
	Status     Status       `db:"status" json:"status"`
	CreatedBy  string       `db:"created_by" json:"createdBy,omitempty"`
	Plate      *string      `db:"plate" json:"plate,omitempty"`
	ClientName *string      `db:"client_name" json:"client,omitempty"`
}

// CreateInput is the boundary payload for transactional creation.
// Unlike invoices, quotes always require a client.
type CreateInput struct {
	Vehicle   documents.VehicleRef
	Date      time.Time
	Discount  money.Amount
	Status    Status
	Lines     []documents.LineInput
	RequestID string
}

// Validate rejects unusable payloads before any transaction opens.
func (in *CreateInput) Validate(ctx context.Context) error {
	if in.Vehicle.ClientID == nil {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	if len(in.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	if in.Status == "" {
		in.Status = StatusNormal
	}
	if !in.Status.IsValid() {
		return apperror.NewValidation("invalid quote status").
			WithDetail("field", "status").
			WithDetail("value", string(in.Status))
	}
	return nil
}
