package invoice

import (
	"context"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
)

// Repository defines the interface for Invoice persistence.
//
// Create must map a unique violation on the request_id index to an
// apperror with CodeDuplicate so the service can resolve the
// concurrent-retry race into a duplicate-success response.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	InsertLines(ctx context.Context, invoiceID id.ID, lines []Line) error

	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)
	GetLines(ctx context.Context, invoiceID id.ID) ([]Line, error)

	// FindByRequestID returns the invoice carrying the given
	// idempotency token, or a not-found error.
	FindByRequestID(ctx context.Context, requestID string) (*Invoice, error)

	List(ctx context.Context) ([]ListItem, error)
	ListByVehicle(ctx context.Context, vehicleID id.ID) ([]Invoice, error)
}
