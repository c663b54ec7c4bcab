package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/clients"
)

// Compile-time check.
var _ clients.Repository = (*ClientRepo)(nil)

// ClientRepo is the PostgreSQL implementation of clients.Repository.
type ClientRepo struct {
	tm   *TxManager
	cols []string
}

func NewClientRepo(tm *TxManager) *ClientRepo {
	return &ClientRepo{
		tm:   tm,
		cols: ExtractDBColumns[clients.Client](),
	}
}

func (r *ClientRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ClientRepo) Create(ctx context.Context, client *clients.Client) error {
	q := r.builder().
		Insert("clients").
		SetMap(StructToMap(client))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, clientID id.ID) (*clients.Client, error) {
	q := r.builder().
		Select(r.cols...).
		From("clients").
		Where(squirrel.Eq{"id": clientID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var client clients.Client
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &client, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("client", clientID.String())
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &client, nil
}

func (r *ClientRepo) Update(ctx context.Context, client *clients.Client) error {
	data := StructToMap(client)
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder().
		Update("clients").
		SetMap(data).
		Where(squirrel.Eq{"id": client.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("client", client.ID.String())
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, clientID id.ID) error {
	q := r.builder().
		Delete("clients").
		Where(squirrel.Eq{"id": clientID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewConflict("client has vehicles or documents and cannot be deleted").
				WithDetail("id", clientID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("client", clientID.String())
	}
	return nil
}

func (r *ClientRepo) List(ctx context.Context) ([]clients.Client, error) {
	q := r.builder().
		Select(r.cols...).
		From("clients").
		OrderBy("last_name ASC", "first_name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []clients.Client
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return items, nil
}

func (r *ClientRepo) Exists(ctx context.Context, clientID id.ID) (bool, error) {
	q := r.builder().
		Select("1").
		From("clients").
		Where(squirrel.Eq{"id": clientID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.tm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("client exists: %w", err)
	}
	return true, nil
}
