package stats

import (
	"context"
	"time"
)

// Repository reads aggregates over invoices and quotes. All queries
// are executed outside any transaction.
type Repository interface {
	// Summary returns the dashboard counters. TotalCollected must
	// exclude invoices with status "cachee" or "impayee".
	Summary(ctx context.Context, r DateRange) (*Summary, error)

	// Daily returns per-day totals for every document type within
	// the range, most recent day first.
	Daily(ctx context.Context, r DateRange) ([]DailyEntry, error)

	// TopClients ranks clients by collected invoice total, hidden
	// invoices excluded. limit is already validated.
	TopClients(ctx context.Context, r DateRange, limit int) ([]TopClient, error)

	// DocumentsOn lists every document issued on the given day.
	DocumentsOn(ctx context.Context, day time.Time) ([]DayDocument, error)
}
