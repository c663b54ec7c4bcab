// Package documents provides types shared by the invoice and quote
// creation workflows.
package documents

import (
	"context"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/money"
)

// VehicleResolver upserts a vehicle by (plate, client) inside the
// caller's transaction and returns the id to attach to the document.
type VehicleResolver interface {
	Resolve(ctx context.Context, plate string, clientID *id.ID, mileage int64) (id.ID, error)
}

// VehicleRef identifies the vehicle a document is issued for.
type VehicleRef struct {
	Plate    string
	Mileage  int64
	ClientID *id.ID
}

// LineInput is one submitted line item. Order is preserved on insert;
// it matters for display only.
type LineInput struct {
	Reference   string
	Description string
	Quantity    money.Amount
	UnitPrice   money.Amount
	Discount    money.Amount
	VATRate     money.Amount // percent, e.g. 20
}

// TotalHT computes the pre-tax line total:
// quantity * unitPrice - discount, rounded to 2 decimals.
func (l LineInput) TotalHT() money.Amount {
	return money.Round(l.Quantity.Mul(l.UnitPrice).Sub(l.Discount))
}

// VATAmount computes the VAT for the line from its HT total.
func (l LineInput) VATAmount() money.Amount {
	return money.Round(l.TotalHT().Mul(l.VATRate).Div(money.New(100)))
}

// Totals aggregates line amounts for a whole document.
type Totals struct {
	HT  money.Amount
	VAT money.Amount
	TTC money.Amount
}

// ComputeTotals derives document totals from its lines, minus a
// document-level discount applied on the tax-inclusive amount.
func ComputeTotals(lines []LineInput, discount money.Amount) Totals {
	ht := money.Zero()
	vat := money.Zero()
	for _, l := range lines {
		ht = ht.Add(l.TotalHT())
		vat = vat.Add(l.VATAmount())
	}
	return Totals{
		HT:  money.Round(ht),
		VAT: money.Round(vat),
		TTC: money.Round(ht.Add(vat).Sub(discount)),
	}
}

// CreateResult is what every document creation returns.
type CreateResult struct {
	DocumentID id.ID  `json:"documentId"`
	Number     string `json:"number"`
	// Duplicate marks a replayed request: the document already
	// existed under the same idempotency token and nothing was
	// mutated by this call.
	Duplicate bool `json:"duplicate"`
}
