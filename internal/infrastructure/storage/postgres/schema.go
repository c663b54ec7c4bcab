package postgres

import (
	"context"
	"fmt"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/counter"
	"github.com/khaliljaouani/gestion-factures-rouen/pkg/logger"
)

// schemaDDL creates all tables and indexes. Statements are idempotent
// so startup can always run them.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS clients (
    id          UUID PRIMARY KEY,
    civility    TEXT NOT NULL DEFAULT '',
    last_name   TEXT NOT NULL,
    first_name  TEXT NOT NULL DEFAULT '',
    kind        TEXT NOT NULL DEFAULT '',
    address     TEXT NOT NULL DEFAULT '',
    postal_code TEXT NOT NULL DEFAULT '',
    city        TEXT NOT NULL DEFAULT '',
    email       TEXT NOT NULL DEFAULT '',
    phone       TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS vehicles (
    id         UUID PRIMARY KEY,
    plate      TEXT NOT NULL DEFAULT '',
    mileage    BIGINT NOT NULL DEFAULT 0,
    client_id  UUID REFERENCES clients(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_vehicles_client ON vehicles(client_id);
CREATE INDEX IF NOT EXISTS idx_vehicles_plate ON vehicles(plate);

CREATE TABLE IF NOT EXISTS invoices (
    id           UUID PRIMARY KEY,
    number       TEXT NOT NULL,
    invoice_date DATE NOT NULL,
    total_ttc    NUMERIC(14,2) NOT NULL DEFAULT 0,
    discount     NUMERIC(14,2) NOT NULL DEFAULT 0,
    status       TEXT NOT NULL DEFAULT 'normale',
    vehicle_id   UUID NOT NULL REFERENCES vehicles(id),
    created_by   TEXT NOT NULL DEFAULT '',
    request_id   TEXT,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_number ON invoices(number);
CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_request_id
    ON invoices(request_id) WHERE request_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_invoices_vehicle ON invoices(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_invoices_date ON invoices(invoice_date);

CREATE TABLE IF NOT EXISTS invoice_lines (
    id          UUID PRIMARY KEY,
    invoice_id  UUID NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
    line_no     INT NOT NULL,
    reference   TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    quantity    NUMERIC(14,2) NOT NULL DEFAULT 0,
    unit_price  NUMERIC(14,2) NOT NULL DEFAULT 0,
    discount    NUMERIC(14,2) NOT NULL DEFAULT 0,
    vat_rate    NUMERIC(5,2) NOT NULL DEFAULT 0,
    total_ht    NUMERIC(14,2) NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_invoice_lines_invoice ON invoice_lines(invoice_id);

CREATE TABLE IF NOT EXISTS quotes (
    id         UUID PRIMARY KEY,
    number     TEXT NOT NULL,
    quote_date DATE NOT NULL,
    total_ttc  NUMERIC(14,2) NOT NULL DEFAULT 0,
    discount   NUMERIC(14,2) NOT NULL DEFAULT 0,
    status     TEXT NOT NULL DEFAULT 'normal',
    vehicle_id UUID NOT NULL REFERENCES vehicles(id),
    created_by TEXT NOT NULL DEFAULT '',
    request_id TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_quotes_number ON quotes(number);
CREATE UNIQUE INDEX IF NOT EXISTS idx_quotes_request_id
    ON quotes(request_id) WHERE request_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_quotes_vehicle ON quotes(vehicle_id);

CREATE TABLE IF NOT EXISTS quote_lines (
    id          UUID PRIMARY KEY,
    quote_id    UUID NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
    line_no     INT NOT NULL,
    reference   TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    quantity    NUMERIC(14,2) NOT NULL DEFAULT 0,
    unit_price  NUMERIC(14,2) NOT NULL DEFAULT 0,
    discount    NUMERIC(14,2) NOT NULL DEFAULT 0,
    vat_rate    NUMERIC(5,2) NOT NULL DEFAULT 0,
    total_ht    NUMERIC(14,2) NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_quote_lines_quote ON quote_lines(quote_id);

CREATE TABLE IF NOT EXISTS counters (
    type        TEXT PRIMARY KEY,
    last_number BIGINT NOT NULL DEFAULT 0,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_by  TEXT NOT NULL DEFAULT ''
);
`

// InitSchema creates the schema and seeds one counter row per type at
// zero. Existing counter values are never touched.
func InitSchema(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	for _, t := range counter.Types() {
		_, err := pool.Exec(ctx,
			`INSERT INTO counters (type, last_number) VALUES ($1, 0)
			 ON CONFLICT (type) DO NOTHING`, string(t))
		if err != nil {
			return fmt.Errorf("seed counter %s: %w", t, err)
		}
	}

	logger.Info(ctx, "database schema ready")
	return nil
}
