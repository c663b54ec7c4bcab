package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/stats"
)

// Compile-time check.
var _ stats.Repository = (*StatsRepo)(nil)

// StatsRepo implements stats.Repository with aggregate SQL. Hidden
// and unpaid invoices never count toward collected revenue.
type StatsRepo struct {
	tm *TxManager
}

func NewStatsRepo(tm *TxManager) *StatsRepo {
	return &StatsRepo{tm: tm}
}

// rangeArgs turns open bounds into sentinel dates so every query can
// use the same two placeholders.
func rangeArgs(r stats.DateRange) (time.Time, time.Time) {
	from := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if r.From != nil {
		from = *r.From
	}
	if r.To != nil {
		to = *r.To
	}
	return from, to
}

func (r *StatsRepo) Summary(ctx context.Context, dr stats.DateRange) (*stats.Summary, error) {
	const sql = `
		SELECT
		    COALESCE((SELECT SUM(total_ttc) FROM invoices
		        WHERE status NOT IN ('cachee', 'impayee')
		          AND invoice_date BETWEEN $1 AND $2), 0) AS total_collected,
		    (SELECT COUNT(*) FROM invoices
		        WHERE status <> 'cachee'
		          AND invoice_date BETWEEN $1 AND $2) AS invoice_count,
		    (SELECT COUNT(*) FROM invoices
		        WHERE status = 'cachee'
		          AND invoice_date BETWEEN $1 AND $2) AS hidden_invoice_count,
		    (SELECT COUNT(*) FROM quotes
		        WHERE quote_date BETWEEN $1 AND $2) AS quote_count`

	from, to := rangeArgs(dr)
	var sum stats.Summary
	querier := r.tm.GetQuerier(ctx)
	err := querier.QueryRow(ctx, sql, from, to).Scan(
		&sum.TotalCollected, &sum.InvoiceCount, &sum.HiddenInvoiceCount, &sum.QuoteCount)
	if err != nil {
		return nil, fmt.Errorf("stats summary: %w", err)
	}
	return &sum, nil
}

func (r *StatsRepo) Daily(ctx context.Context, dr stats.DateRange) ([]stats.DailyEntry, error) {
	const sql = `
		SELECT doc_type, day, total, count FROM (
		    SELECT 'facture' AS doc_type, invoice_date AS day,
		           SUM(total_ttc) AS total, COUNT(*) AS count
		    FROM invoices
		    WHERE status <> 'cachee' AND invoice_date BETWEEN $1 AND $2
		    GROUP BY invoice_date
		    UNION ALL
		    SELECT 'facture_cachee', invoice_date,
		           SUM(total_ttc), COUNT(*)
		    FROM invoices
		    WHERE status = 'cachee' AND invoice_date BETWEEN $1 AND $2
		    GROUP BY invoice_date
		    UNION ALL
		    SELECT 'devis', quote_date,
		           SUM(total_ttc), COUNT(*)
		    FROM quotes
		    WHERE quote_date BETWEEN $1 AND $2
		    GROUP BY quote_date
		) AS daily
		ORDER BY day DESC, doc_type`

	from, to := rangeArgs(dr)
	var entries []stats.DailyEntry
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, from, to); err != nil {
		return nil, fmt.Errorf("stats daily: %w", err)
	}
	return entries, nil
}

func (r *StatsRepo) TopClients(ctx context.Context, dr stats.DateRange, limit int) ([]stats.TopClient, error) {
	const sql = `
		SELECT trim(concat(c.last_name, ' ', c.first_name)) AS client_name,
		       SUM(i.total_ttc) AS total
		FROM clients c
		JOIN vehicles v ON v.client_id = c.id
		JOIN invoices i ON i.vehicle_id = v.id
		WHERE i.status <> 'cachee'
		  AND i.invoice_date BETWEEN $1 AND $2
		GROUP BY c.id, c.last_name, c.first_name
		ORDER BY total DESC
		LIMIT $3`

	from, to := rangeArgs(dr)
	var items []stats.TopClient
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, from, to, limit); err != nil {
		return nil, fmt.Errorf("stats top clients: %w", err)
	}
	return items, nil
}

func (r *StatsRepo) DocumentsOn(ctx context.Context, day time.Time) ([]stats.DayDocument, error) {
	const sql = `
		SELECT day, client_name, doc_type, status, amount FROM (
		    SELECT i.invoice_date AS day,
		           trim(concat(c.last_name, ' ', c.first_name)) AS client_name,
		           CASE WHEN i.status = 'cachee' THEN 'facture_cachee' ELSE 'facture' END AS doc_type,
		           i.status AS status,
		           i.total_ttc AS amount,
		           i.created_at AS created_at
		    FROM invoices i
		    LEFT JOIN vehicles v ON v.id = i.vehicle_id
		    LEFT JOIN clients c ON c.id = v.client_id
		    WHERE i.invoice_date = $1
		    UNION ALL
		    SELECT q.quote_date,
		           trim(concat(c.last_name, ' ', c.first_name)),
		           'devis',
		           q.status,
		           q.total_ttc,
		           q.created_at
		    FROM quotes q
		    LEFT JOIN vehicles v ON v.id = q.vehicle_id
		    LEFT JOIN clients c ON c.id = v.client_id
		    WHERE q.quote_date = $1
		) AS docs
		ORDER BY created_at`

	var items []stats.DayDocument
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, day); err != nil {
		return nil, fmt.Errorf("stats documents on day: %w", err)
	}
	return items, nil
}
