package quote

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

// Service provides business operations for quotes.
type Service struct {
	repo      Repository
	counters  counter.Store
	resolver  documents.VehicleResolver
	txManager tx.Manager
}

// NewService creates a new quote service.
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

// CreateComplete creates a quote with its lines in one transaction.
// Same contract as the invoice writer: all-or-nothing, at most one
// quote per idempotency token.
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

	q, err := s.createInTransaction(ctx, in)
	if err != nil {
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

	logger.Info(ctx, "quote created", "id", q.ID, "number", q.Number)

	return documents.CreateResult{DocumentID: q.ID, Number: q.Number}, nil
}

func (s *Service) createInTransaction(ctx context.Context, in CreateInput) (*Quote, error) {
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

	q := &Quote{
		ID:        id.New(),
		QuoteDate: date,
		TotalTTC:  totals.TTC,
		Discount:  in.Discount,
		Status:    in.Status,
		CreatedBy: appctx.CallerName(ctx),
		RequestID: requestID,
		CreatedAt: time.Now().UTC(),
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		next, err := s.counters.Advance(ctx, counter.TypeQuote)
		if err != nil {
			return fmt.Errorf("advance counter: %w", err)
		}
		q.Number = counter.Format(counter.TypeQuote, next)

		vehicleID, err := s.resolver.Resolve(ctx, in.Vehicle.Plate, in.Vehicle.ClientID, in.Vehicle.Mileage)
		if err != nil {
			return fmt.Errorf("resolve vehicle: %w", err)
		}
		q.VehicleID = vehicleID

		if err := s.repo.Create(ctx, q); err != nil {
			return fmt.Errorf("insert quote: %w", err)
		}

		lines := buildLines(in.Lines)
		if err := s.repo.InsertLines(ctx, q.ID, lines); err != nil {
			return fmt.Errorf("insert lines: %w", err)
		}
		q.Lines = lines

		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

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

func duplicateResult(q *Quote) documents.CreateResult {
	return documents.CreateResult{
		DocumentID: q.ID,
		Number:     q.Number,
		Duplicate:  true,
	}
}

func isDuplicate(err error) bool {
	appErr, ok := apperror.AsAppError(err)
	return ok && appErr.Code == apperror.CodeDuplicate
}

// GetByID retrieves a quote header with its lines.
func (s *Service) GetByID(ctx context.Context, quoteID id.ID) (*Quote, error) {
	q, err := s.repo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	q.Lines = lines

	return q, nil
}

// GetLines retrieves the ordered lines of a quote.
func (s *Service) GetLines(ctx context.Context, quoteID id.ID) ([]Line, error) {
	return s.repo.GetLines(ctx, quoteID)
}

// List returns the quote journal with joined client and plate.
func (s *Service) List(ctx context.Context) ([]ListItem, error) {
	return s.repo.List(ctx)
}

// ListByVehicle returns the quotes issued for one vehicle.
func (s *Service) ListByVehicle(ctx context.Context, vehicleID id.ID) ([]Quote, error) {
	return s.repo.ListByVehicle(ctx, vehicleID)
}
