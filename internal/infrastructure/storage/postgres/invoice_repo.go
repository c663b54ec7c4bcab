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
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents/invoice"
)

// Compile-time check.
var _ invoice.Repository = (*InvoiceRepo)(nil)

// InvoiceRepo is the PostgreSQL implementation of invoice.Repository.
type InvoiceRepo struct {
	tm       *TxManager
	cols     []string
	lineCols []string
}

func NewInvoiceRepo(tm *TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		tm:       tm,
		cols:     ExtractDBColumns[invoice.Invoice](),
		lineCols: ExtractDBColumns[invoice.Line](),
	}
}

func (r *InvoiceRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the invoice header. A unique violation on the
// request_id index is mapped to CodeDuplicate so the service can
// resolve a concurrent retry into the already-created invoice. A
// violation on the number index means a counter override rewound the
// sequence into already-issued numbers.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	q := r.builder().
		Insert("invoices").
		SetMap(StructToMap(inv))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "idx_invoices_request_id":
				reqID := ""
				if inv.RequestID != nil {
					reqID = *inv.RequestID
				}
				return apperror.NewDuplicate("invoice", "request_id", reqID).WithCause(err)
			case "idx_invoices_number":
				return apperror.NewConflict("invoice number already issued").
					WithDetail("number", inv.Number).WithCause(err)
			}
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) InsertLines(ctx context.Context, invoiceID id.ID, lines []invoice.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.builder().
		Insert("invoice_lines").
		Columns("id", "invoice_id", "line_no", "reference", "description",
			"quantity", "unit_price", "discount", "vat_rate", "total_ht")
	for _, line := range lines {
		q = q.Values(line.ID, invoiceID, line.LineNo, line.Reference, line.Description,
			line.Quantity, line.UnitPrice, line.Discount, line.VATRate, line.TotalHT)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build lines insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice lines: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	q := r.builder().
		Select(r.cols...).
		From("invoices").
		Where(squirrel.Eq{"id": invoiceID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invoice.Invoice
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) GetLines(ctx context.Context, invoiceID id.ID) ([]invoice.Line, error) {
	q := r.builder().
		Select(r.lineCols...).
		From("invoice_lines").
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []invoice.Line
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}
	return lines, nil
}

func (r *InvoiceRepo) FindByRequestID(ctx context.Context, requestID string) (*invoice.Invoice, error) {
	q := r.builder().
		Select(r.cols...).
		From("invoices").
		Where(squirrel.Eq{"request_id": requestID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invoice.Invoice
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", requestID)
		}
		return nil, fmt.Errorf("find invoice by request id: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) List(ctx context.Context) ([]invoice.ListItem, error) {
	q := r.builder().
		Select(
			"i.id", "i.number", "i.invoice_date", "i.total_ttc", "i.discount",
			"i.status", "i.created_by", "v.plate",
			"trim(concat(c.last_name, ' ', c.first_name)) AS client_name",
		).
		From("invoices i").
		LeftJoin("vehicles v ON v.id = i.vehicle_id").
		LeftJoin("clients c ON c.id = v.client_id").
		OrderBy("i.created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []invoice.ListItem
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return items, nil
}

func (r *InvoiceRepo) ListByVehicle(ctx context.Context, vehicleID id.ID) ([]invoice.Invoice, error) {
	q := r.builder().
		Select(r.cols...).
		From("invoices").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []invoice.Invoice
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list invoices by vehicle: %w", err)
	}
	return items, nil
}
