package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The repos match unique violations by constraint name, so the DDL
// must declare exactly these indexes. Numbers stay unique even after
// an administrative counter rewind because the index backstops the
// row lock.
func TestSchemaDeclaresUniqueIndexes(t *testing.T) {
	for _, stmt := range []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_number ON invoices(number)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_quotes_number ON quotes(number)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_request_id",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_quotes_request_id",
	} {
		assert.True(t, strings.Contains(schemaDDL, stmt), "missing %q", stmt)
	}

	// The idempotency guard is partial: rows without a token never
	// collide with each other.
	assert.Equal(t, 2, strings.Count(schemaDDL, "WHERE request_id IS NOT NULL"))
}
