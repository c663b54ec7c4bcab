package quote

import (
	"context"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
)

// Repository defines the interface for Quote persistence. The same
// unique-violation-to-CodeDuplicate mapping contract as the invoice
// repository applies to Create.
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	InsertLines(ctx context.Context, quoteID id.ID, lines []Line) error

	GetByID(ctx context.Context, quoteID id.ID) (*Quote, error)
	GetLines(ctx context.Context, quoteID id.ID) ([]Line, error)
	FindByRequestID(ctx context.Context, requestID string) (*Quote, error)

	List(ctx context.Context) ([]ListItem, error)
	ListByVehicle(ctx context.Context, vehicleID id.ID) ([]Quote, error)
}
