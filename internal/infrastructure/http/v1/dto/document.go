package dto

import (
	"time"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents/invoice"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents/quote"
)

// LineRequest is one submitted document line. Amount fields are
// lenient on purpose.
type LineRequest struct {
	Reference   string `json:"reference"`
	Description string `json:"description"`
	Quantity    Amount `json:"quantity"`
	UnitPrice   Amount `json:"unitPrice"`
	Discount    Amount `json:"discount"`
	VATRate     Amount `json:"vatRate"`
}

func (r LineRequest) toInput() documents.LineInput {
	return documents.LineInput{
		Reference:   r.Reference,
		Description: r.Description,
		Quantity:    r.Quantity.Amount,
		UnitPrice:   r.UnitPrice.Amount,
		Discount:    r.Discount.Amount,
		VATRate:     r.VATRate.Amount,
	}
}

func toLineInputs(lines []LineRequest) []documents.LineInput {
	inputs := make([]documents.LineInput, 0, len(lines))
	for _, l := range lines {
		inputs = append(inputs, l.toInput())
	}
	return inputs
}

// VehicleRefRequest identifies the vehicle a document is issued for.
type VehicleRefRequest struct {
	Plate    string  `json:"plate"`
	Mileage  Integer `json:"mileage"`
	ClientID string  `json:"clientId"`
}

func (r VehicleRefRequest) toRef() (documents.VehicleRef, error) {
	ref := documents.VehicleRef{
		Plate:   r.Plate,
		Mileage: int64(r.Mileage),
	}
	if r.ClientID != "" {
		clientID, err := id.Parse(r.ClientID)
		if err != nil {
			return ref, err
		}
		ref.ClientID = &clientID
	}
	return ref, nil
}

// --- Invoice ---

// CreateInvoiceRequest represents a request to create an invoice with
// its lines in one call.
type CreateInvoiceRequest struct {
	Vehicle   VehicleRefRequest `json:"vehicle"`
	Date      *time.Time        `json:"date"`
	Discount  Amount            `json:"discount"`
	Status    string            `json:"status"`
	Lines     []LineRequest     `json:"lines"`
	RequestID string            `json:"requestId"`
}

// ToInput converts the request to the domain payload.
func (r *CreateInvoiceRequest) ToInput() (invoice.CreateInput, error) {
	ref, err := r.Vehicle.toRef()
	if err != nil {
		return invoice.CreateInput{}, err
	}

	in := invoice.CreateInput{
		Vehicle:   ref,
		Discount:  r.Discount.Amount,
		Status:    invoice.Status(r.Status),
		Lines:     toLineInputs(r.Lines),
		RequestID: r.RequestID,
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	return in, nil
}

// --- Quote ---

// CreateQuoteRequest represents a request to create a quote with its
// lines in one call.
type CreateQuoteRequest struct {
	Vehicle   VehicleRefRequest `json:"vehicle"`
	Date      *time.Time        `json:"date"`
	Discount  Amount            `json:"discount"`
	Status    string            `json:"status"`
	Lines     []LineRequest     `json:"lines"`
	RequestID string            `json:"requestId"`
}

// ToInput converts the request to the domain payload.
func (r *CreateQuoteRequest) ToInput() (quote.CreateInput, error) {
	ref, err := r.Vehicle.toRef()
	if err != nil {
		return quote.CreateInput{}, err
	}

	in := quote.CreateInput{
		Vehicle:   ref,
		Discount:  r.Discount.Amount,
		Status:    quote.Status(r.Status),
		Lines:     toLineInputs(r.Lines),
		RequestID: r.RequestID,
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	return in, nil
}
