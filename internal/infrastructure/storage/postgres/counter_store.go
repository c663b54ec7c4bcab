package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/counter"
	"github.com/khaliljaouani/gestion-factures-rouen/pkg/logger"
)

// Compile-time check.
var _ counter.Store = (*CounterStore)(nil)

// CounterStore persists the numbering counters in the counters table,
// one row per counter type.
type CounterStore struct {
	tm *TxManager
}

func NewCounterStore(tm *TxManager) *CounterStore {
	return &CounterStore{tm: tm}
}

func (s *CounterStore) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// PeekNext returns last_number+1 without locking. Advisory only.
func (s *CounterStore) PeekNext(ctx context.Context, t counter.Type) (int64, error) {
	if !t.IsValid() {
		return 0, apperror.NewValidation("unknown counter type").
			WithDetail("type", string(t))
	}

	q := s.builder().
		Select("last_number").
		From("counters").
		Where(squirrel.Eq{"type": string(t)})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build peek query: %w", err)
	}

	var last int64
	querier := s.tm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&last); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFound("counter", string(t))
		}
		return 0, fmt.Errorf("peek counter %s: %w", t, err)
	}

	return last + 1, nil
}

// Advance increments the counter by exactly 1 and returns the new
// value. The UPDATE takes the counter row lock, which is held to
// commit, so concurrent creations of the same type are serialized and
// can never observe the same number.
func (s *CounterStore) Advance(ctx context.Context, t counter.Type) (int64, error) {
	if !t.IsValid() {
		return 0, apperror.NewValidation("unknown counter type").
			WithDetail("type", string(t))
	}

	const sql = `
		UPDATE counters
		SET last_number = last_number + 1,
		    updated_at = now()
		WHERE type = $1
		RETURNING last_number`

	var next int64
	querier := s.tm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, string(t)).Scan(&next); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFound("counter", string(t))
		}
		return 0, fmt.Errorf("advance counter %s: %w", t, err)
	}

	return next, nil
}

// SetValue replaces last_number for administrative correction.
func (s *CounterStore) SetValue(ctx context.Context, t counter.Type, value int64, actor string) error {
	if !t.IsValid() {
		return apperror.NewValidation("unknown counter type").
			WithDetail("type", string(t))
	}
	if value < 0 {
		return apperror.NewValidation("counter value must be a non-negative integer").
			WithDetail("value", value)
	}

	q := s.builder().
		Update("counters").
		Set("last_number", value).
		Set("updated_at", squirrel.Expr("now()")).
		Set("updated_by", actor).
		Where(squirrel.Eq{"type": string(t)})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set query: %w", err)
	}

	result, err := s.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set counter %s: %w", t, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("counter", string(t))
	}

	logger.Info(ctx, "counter value overridden",
		"type", string(t), "value", value, "actor", actor)
	return nil
}

// Snapshot returns all counter rows in seed order.
func (s *CounterStore) Snapshot(ctx context.Context) ([]counter.Value, error) {
	q := s.builder().
		Select("type", "last_number", "updated_at", "updated_by").
		From("counters").
		OrderBy("type")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build snapshot query: %w", err)
	}

	var values []counter.Value
	querier := s.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &values, sql, args...); err != nil {
		return nil, fmt.Errorf("snapshot counters: %w", err)
	}

	return values, nil
}
