// Package invoice provides the invoice document: header plus ordered
// line items, numbered from the per-type counters.
package invoice

import (
	"context"
	"strings"
	"time"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/counter"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/money"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents"
)

// Status of an invoice. Hidden invoices draw from their own counter
// and are excluded from revenue aggregates.
type Status string

const (
	StatusNormal Status = "normale"
	StatusHidden Status = "cachee"
	StatusUnpaid Status = "impayee"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusNormal, StatusHidden, StatusUnpaid:
		return true
	}
	return false
}

// CounterType returns the numbering sequence for this status.
func (s Status) CounterType() counter.Type {
	if s == StatusHidden {
		return counter.TypeHidden
	}
	return counter.TypeNormal
}

// Invoice is the persisted document header.
type Invoice struct {
	ID     id.ID  `db:"id" json:"id"`
	Number string `db:"number" json:"number"`

	InvoiceDate time.Time    `db:"invoice_date" json:"invoiceDate"`
	TotalTTC    money.Amount `db:"total_ttc" json:"totalTTC"`
	Discount    money.Amount `db:"discount" json:"discount"`
	Status      Status       `db:"status" json:"status"`

	VehicleID id.ID  `db:"vehicle_id" json:"vehicleId"`
	CreatedBy string `db:"created_by" json:"createdBy,omitempty"`

	// RequestID is the idempotency token the creation request
	// carried, if any. Unique among invoices when non-null.
	RequestID *string `db:"request_id" json:"requestId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line is one ordered invoice line.
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

// ListItem is one row of the invoice journal, with the joined client
// name and plate.
type ListItem struct {
	ID          id.ID        `db:"id" json:"id"`
	Number      string       `db:"number" json:"number"`
	InvoiceDate time.Time    `db:"invoice_date" json:"invoiceDate"`
	TotalTTC    money.Amount `db:"total_ttc" json:"totalTTC"`
	Discount    money.Amount `db:"discount" json:"discount"`
	Status      Status       `db:"status" json:"status"`
	CreatedBy   string       `db:"created_by" json:"createdBy,omitempty"`
	Plate       *string      `db:"plate" json:"plate,omitempty"`
	ClientName  *string      `db:"client_name" json:"client,omitempty"`
}

// CreateInput is the boundary payload for transactional creation.
type CreateInput struct {
	Vehicle  documents.VehicleRef
	Date     time.Time // zero value means today
	Discount money.Amount
	Status   Status
	Lines    []documents.LineInput

	// RequestID is the optional idempotency token. Empty disables
	// deduplication.
	RequestID string
}

// Validate rejects unusable payloads before any transaction opens.
func (in *CreateInput) Validate(ctx context.Context) error {
	if len(in.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	if in.Status == "" {
		in.Status = StatusNormal
	}
	if !in.Status.IsValid() {
		return apperror.NewValidation("invalid invoice status").
			WithDetail("field", "status").
			WithDetail("value", string(in.Status))
	}
	if strings.TrimSpace(in.Vehicle.Plate) == "" && in.Vehicle.ClientID == nil {
		return apperror.NewValidation("a client or a vehicle plate is required").
			WithDetail("field", "vehicle")
	}
	return nil
}
