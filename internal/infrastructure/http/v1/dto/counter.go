package dto

import (
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/counter"
)

// SetCounterRequest overrides a counter value. The value is strict
// here: a malformed override must fail loudly, not become zero.
type SetCounterRequest struct {
	Value *int64 `json:"value" binding:"required"`
}

// NextNumberResponse previews the next number of a sequence.
type NextNumberResponse struct {
	Type        string `json:"type"`
	NextNumber  int64  `json:"nextNumber"`
	NextDisplay string `json:"nextDisplay"`
}

// NewNextNumberResponse builds the preview for a counter type.
func NewNextNumberResponse(t counter.Type, next int64) NextNumberResponse {
	return NextNumberResponse{
		Type:        string(t),
		NextNumber:  next,
		NextDisplay: counter.Display(t, next),
	}
}
