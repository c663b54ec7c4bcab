package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents/quote"
)

// Compile-time check.
var _ quote.Repository = (*QuoteRepo)(nil)

// QuoteRepo is the PostgreSQL implementation of quote.Repository.
type QuoteRepo struct {
	tm       *TxManager
	cols     []string
	lineCols []string
}

func NewQuoteRepo(tm *TxManager) *QuoteRepo {
	return &QuoteRepo{
		tm:       tm,
		cols:     ExtractDBColumns[quote.Quote](),
		lineCols: ExtractDBColumns[quote.Line](),
	}
}

func (r *QuoteRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the quote header. Same unique-violation mapping as
// invoices.
func (r *QuoteRepo) Create(ctx context.Context, q *quote.Quote) error {
	query := r.builder().
		Insert("quotes").
		SetMap(StructToMap(q))

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "idx_quotes_request_id":
				reqID := ""
				if q.RequestID != nil {
					reqID = *q.RequestID
				}
				return apperror.NewDuplicate("quote", "request_id", reqID).WithCause(err)
			case "idx_quotes_number":
				return apperror.NewConflict("quote number already issued").
					WithDetail("number", q.Number).WithCause(err)
			}
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

func (r *QuoteRepo) InsertLines(ctx context.Context, quoteID id.ID, lines []quote.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.builder().
		Insert("quote_lines").
		Columns("id", "quote_id", "line_no", "reference", "description",
			"quantity", "unit_price", "discount", "vat_rate", "total_ht")
	for _, line := range lines {
		q = q.Values(line.ID, quoteID, line.LineNo, line.Reference, line.Description,
			line.Quantity, line.UnitPrice, line.Discount, line.VATRate, line.TotalHT)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build lines insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert quote lines: %w", err)
	}
	return nil
}

func (r *QuoteRepo) GetByID(ctx context.Context, quoteID id.ID) (*quote.Quote, error) {
	q := r.builder().
		Select(r.cols...).
		From("quotes").
		Where(squirrel.Eq{"id": quoteID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var item quote.Quote
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("quote", quoteID.String())
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &item, nil
}

func (r *QuoteRepo) GetLines(ctx context.Context, quoteID id.ID) ([]quote.Line, error) {
	q := r.builder().
		Select(r.lineCols...).
		From("quote_lines").
		Where(squirrel.Eq{"quote_id": quoteID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []quote.Line
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get quote lines: %w", err)
	}
	return lines, nil
}

func (r *QuoteRepo) FindByRequestID(ctx context.Context, requestID string) (*quote.Quote, error) {
	q := r.builder().
		Select(r.cols...).
		From("quotes").
		Where(squirrel.Eq{"request_id": requestID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var item quote.Quote
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("quote", requestID)
		}
		return nil, fmt.Errorf("find quote by request id: %w", err)
	}
	return &item, nil
}

func (r *QuoteRepo) List(ctx context.Context) ([]quote.ListItem, error) {
	q := r.builder().
		Select(
			"q.id", "q.number", "q.quote_date", "q.total_ttc",
			"q.status", "q.created_by", "v.plate",
			"trim(concat(c.last_name, ' ', c.first_name)) AS client_name",
		).
		From("quotes q").
		LeftJoin("vehicles v ON v.id = q.vehicle_id").
		LeftJoin("clients c ON c.id = v.client_id").
		OrderBy("q.created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []quote.ListItem
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return items, nil
}

func (r *QuoteRepo) ListByVehicle(ctx context.Context, vehicleID id.ID) ([]quote.Quote, error) {
	q := r.builder().
		Select(r.cols...).
		From("quotes").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []quote.Quote
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list quotes by vehicle: %w", err)
	}
	return items, nil
}
