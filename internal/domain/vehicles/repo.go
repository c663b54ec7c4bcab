package vehicles

import (
	"context"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
)

// Repository defines the interface for Vehicle persistence.
type Repository interface {
	Create(ctx context.Context, vehicle *Vehicle) error
	GetByID(ctx context.Context, vehicleID id.ID) (*Vehicle, error)
	ListByClient(ctx context.Context, clientID id.ID) ([]Vehicle, error)

	// FindByPlateAndClient returns the vehicle with an exact
	// (plate, client) match, or a not-found error.
	FindByPlateAndClient(ctx context.Context, plate string, clientID id.ID) (*Vehicle, error)

	// UpdateMileage overwrites the stored mileage (last write wins).
	UpdateMileage(ctx context.Context, vehicleID id.ID, mileage int64) error
}
