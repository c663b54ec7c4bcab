package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/vehicles"
)

// Compile-time check.
var _ vehicles.Repository = (*VehicleRepo)(nil)

// VehicleRepo is the PostgreSQL implementation of vehicles.Repository.
type VehicleRepo struct {
	tm   *TxManager
	cols []string
}

func NewVehicleRepo(tm *TxManager) *VehicleRepo {
	return &VehicleRepo{
		tm:   tm,
		cols: ExtractDBColumns[vehicles.Vehicle](),
	}
}

func (r *VehicleRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *VehicleRepo) Create(ctx context.Context, vehicle *vehicles.Vehicle) error {
	q := r.builder().
		Insert("vehicles").
		SetMap(StructToMap(vehicle))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepo) GetByID(ctx context.Context, vehicleID id.ID) (*vehicles.Vehicle, error) {
	q := r.builder().
		Select(r.cols...).
		From("vehicles").
		Where(squirrel.Eq{"id": vehicleID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var v vehicles.Vehicle
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &v, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("vehicle", vehicleID.String())
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

func (r *VehicleRepo) ListByClient(ctx context.Context, clientID id.ID) ([]vehicles.Vehicle, error) {
	q := r.builder().
		Select(r.cols...).
		From("vehicles").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []vehicles.Vehicle
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return items, nil
}

// FindByPlateAndClient matches on the stored plate, which is already
// normalized. Among duplicates the most recent row wins.
func (r *VehicleRepo) FindByPlateAndClient(ctx context.Context, plate string, clientID id.ID) (*vehicles.Vehicle, error) {
	q := r.builder().
		Select(r.cols...).
		From("vehicles").
		Where(squirrel.Eq{"plate": plate}).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var v vehicles.Vehicle
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &v, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("vehicle", plate)
		}
		return nil, fmt.Errorf("find vehicle by plate: %w", err)
	}
	return &v, nil
}

func (r *VehicleRepo) UpdateMileage(ctx context.Context, vehicleID id.ID, mileage int64) error {
	q := r.builder().
		Update("vehicles").
		Set("mileage", mileage).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": vehicleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update mileage: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("vehicle", vehicleID.String())
	}
	return nil
}
