package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/appctx"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/counter"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/tx"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents"
	"github.com/khaliljaouani/gestion-factures-rouen/pkg/logger"
)

// Service provides business operations for invoices.
type Service struct {
	repo      Repository
	counters  counter.Store
	resolver  documents.VehicleResolver
	txManager tx.Manager
}

// NewService creates a new invoice service.
func NewService(
	repo Repository,
	counters counter.Store,
	resolver documents.VehicleResolver,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		counters:  counters,
		resolver:  resolver,
		txManager: txManager,
	}
}

// CreateComplete creates an invoice with its lines in one transaction:
// counter advance, vehicle upsert, header and line inserts all commit
// or roll back together.
//
// When the input carries an idempotency token, at most one invoice is
// ever created for it. A replay, sequential or racing a concurrent
// identical request, returns the existing invoice's id and number
// with Duplicate set, and performs no counter or vehicle mutation.
func (s *Service) CreateComplete(ctx context.Context, in CreateInput) (documents.CreateResult, error) {
	if err := in.Validate(ctx); err != nil {
		return documents.CreateResult{}, err
	}

	if in.RequestID != "" {
		existing, err := s.repo.FindByRequestID(ctx, in.RequestID)
		switch {
		case err == nil:
			return duplicateResult(existing), nil
		case !apperror.IsNotFound(err):
			return documents.CreateResult{}, fmt.Errorf("idempotency lookup: %w", err)
		}
	}

	inv, err := s.createInTransaction(ctx, in)
	if err != nil {
		// The lookup-then-insert above is not atomic against a
		// concurrent retry carrying the same token; the partial
		// unique index on request_id is. Re-query and answer with
		// the winner's invoice.
		if in.RequestID != "" && isDuplicate(err) {
			existing, lookupErr := s.repo.FindByRequestID(ctx, in.RequestID)
			if lookupErr == nil {
				return duplicateResult(existing), nil
			}
			// The index saw the token but the winner's row is not
			// visible yet. The client can retry once it commits.
			return documents.CreateResult{}, apperror.NewIdempotencyConflict(in.RequestID)
		}
		return documents.CreateResult{}, err
	}

	logger.Info(ctx, "invoice created",
		"id", inv.ID,
		"number", inv.Number,
		"status", inv.Status)

	return documents.CreateResult{DocumentID: inv.ID, Number: inv.Number}, nil
}

func (s *Service) createInTransaction(ctx context.Context, in CreateInput) (*Invoice, error) {
	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	var requestID *string
	if in.RequestID != "" {
		rid := in.RequestID
		requestID = &rid
	}

	totals := documents.ComputeTotals(in.Lines, in.Discount)

	inv := &Invoice{
		ID:          id.New(),
		InvoiceDate: date,
		TotalTTC:    totals.TTC,
		Discount:    in.Discount,
		Status:      in.Status,
		CreatedBy:   appctx.CallerName(ctx),
		RequestID:   requestID,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// The advance takes the counter row lock for the rest of the
		// transaction, so two creations of the same type serialize
		// here and can never share a number. A rollback releases the
		// number with nothing committed.
		next, err := s.counters.Advance(ctx, in.Status.CounterType())
		if err != nil {
			return fmt.Errorf("advance counter: %w", err)
		}
		inv.Number = counter.Format(in.Status.CounterType(), next)

		vehicleID, err := s.resolver.Resolve(ctx, in.Vehicle.Plate, in.Vehicle.ClientID, in.Vehicle.Mileage)
		if err != nil {
			return fmt.Errorf("resolve vehicle: %w", err)
		}
		inv.VehicleID = vehicleID

		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}

		lines := buildLines(in.Lines)
		if err := s.repo.InsertLines(ctx, inv.ID, lines); err != nil {
			return fmt.Errorf("insert lines: %w", err)
		}
		inv.Lines = lines

		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// buildLines materializes submitted lines in order, with computed HT
// totals.
func buildLines(inputs []documents.LineInput) []Line {
	lines := make([]Line, 0, len(inputs))
	for i, l := range inputs {
		lines = append(lines, Line{
			ID:          id.New(),
			LineNo:      i + 1,
			Reference:   l.Reference,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			VATRate:     l.VATRate,
			TotalHT:     l.TotalHT(),
		})
	}
	return lines
}

func duplicateResult(inv *Invoice) documents.CreateResult {
	return documents.CreateResult{
		DocumentID: inv.ID,
		Number:     inv.Number,
		Duplicate:  true,
	}
}

func isDuplicate(err error) bool {
	appErr, ok := apperror.AsAppError(err)
	return ok && appErr.Code == apperror.CodeDuplicate
}

// GetByID retrieves an invoice header with its lines.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	inv.Lines = lines

	return inv, nil
}

// GetLines retrieves the ordered lines of an invoice.
func (s *Service) GetLines(ctx context.Context, invoiceID id.ID) ([]Line, error) {
	return s.repo.GetLines(ctx, invoiceID)
}

// List returns the invoice journal with joined client and plate.
func (s *Service) List(ctx context.Context) ([]ListItem, error) {
	return s.repo.List(ctx)
}

// ListByVehicle returns the invoices issued for one vehicle.
func (s *Service) ListByVehicle(ctx context.Context, vehicleID id.ID) ([]Invoice, error) {
	return s.repo.ListByVehicle(ctx, vehicleID)
}
