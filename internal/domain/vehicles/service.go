package vehicles

import (
	"context"
	"fmt"
	"time"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/tx"
)

// Service provides business operations for vehicles, including the
// upsert resolver used inside document-creation transactions.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new vehicle service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create validates and persists a new vehicle directly (CRUD path).
func (s *Service) Create(ctx context.Context, vehicle *Vehicle) error {
	vehicle.Plate = NormalizePlate(vehicle.Plate)
	if err := vehicle.Validate(ctx); err != nil {
		return err
	}
	if vehicle.ClientID == nil {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}

	now := time.Now().UTC()
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = now
	}
	vehicle.UpdatedAt = now

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, vehicle); err != nil {
			return fmt.Errorf("create vehicle: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a vehicle by ID.
func (s *Service) GetByID(ctx context.Context, vehicleID id.ID) (*Vehicle, error) {
	return s.repo.GetByID(ctx, vehicleID)
}

// ListByClient returns the vehicles of a client.
func (s *Service) ListByClient(ctx context.Context, clientID id.ID) ([]Vehicle, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// Resolve upserts a vehicle by (plate, client) and returns its id.
//
// Matching rule: a non-empty plate with a known client matches an
// existing row, whose mileage is overwritten with the supplied value.
// An empty plate or nil client always inserts a fresh row so the
// document still has a vehicle to hang off.
//
// Resolve must run inside the caller's transaction: it mutates rows
// and the document insert that follows must see them.
func (s *Service) Resolve(ctx context.Context, plate string, clientID *id.ID, mileage int64) (id.ID, error) {
	plate = NormalizePlate(plate)
	if mileage < 0 {
		mileage = 0
	}

	if plate != "" && clientID != nil {
		existing, err := s.repo.FindByPlateAndClient(ctx, plate, *clientID)
		switch {
		case err == nil:
			if err := s.repo.UpdateMileage(ctx, existing.ID, mileage); err != nil {
				return id.ID{}, fmt.Errorf("update mileage: %w", err)
			}
			return existing.ID, nil
		case !apperror.IsNotFound(err):
			return id.ID{}, fmt.Errorf("find vehicle: %w", err)
		}
	}

	vehicle := New(plate, mileage, clientID)
	if err := s.repo.Create(ctx, vehicle); err != nil {
		return id.ID{}, fmt.Errorf("create vehicle: %w", err)
	}
	return vehicle.ID, nil
}
