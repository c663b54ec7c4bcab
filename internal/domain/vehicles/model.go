// Package vehicles provides the vehicle catalog and the upsert
// resolver used by document creation.
package vehicles

import (
	"context"
	"strings"
	"time"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
)

// Vehicle belongs to at most one client. Plates are stored
// normalized; mileage is the latest known value (no history).
type Vehicle struct {
	ID       id.ID  `db:"id" json:"id"`
	Plate    string `db:"plate" json:"plate"`
	Mileage  int64  `db:"mileage" json:"mileage"`
	ClientID *id.ID `db:"client_id" json:"clientId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a vehicle with a generated ID and normalized plate.
func New(plate string, mileage int64, clientID *id.ID) *Vehicle {
	now := time.Now().UTC()
	return &Vehicle{
		ID:        id.New(),
		Plate:     NormalizePlate(plate),
		Mileage:   mileage,
		ClientID:  clientID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizePlate trims and upper-cases a registration plate.
// An empty result means "unknown vehicle".
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// Validate checks vehicle invariants.
func (v *Vehicle) Validate(ctx context.Context) error {
	if v.Mileage < 0 {
		return apperror.NewValidation("mileage must be non-negative").
			WithDetail("field", "mileage")
	}
	return nil
}
