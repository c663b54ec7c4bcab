package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/clients"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents/invoice"
)

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[clients.Client]()

	expected := []string{"id", "last_name", "first_name", "email", "created_at", "updated_at"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
}

func TestExtractDBColumnsSkipsIgnored(t *testing.T) {
	cols := ExtractDBColumns[invoice.Invoice]()

	// Lines carry db:"-" and must never reach SQL.
	assert.NotContains(t, cols, "-")
	assert.Contains(t, cols, "number")
	assert.Contains(t, cols, "request_id")
}

func TestStructToMap(t *testing.T) {
	c := clients.Client{
		ID:       id.New(),
		LastName: "Martin",
		Email:    "martin@example.fr",
	}

	m := StructToMap(&c)

	assert.Equal(t, c.ID, m["id"])
	assert.Equal(t, "Martin", m["last_name"])
	assert.Equal(t, "martin@example.fr", m["email"])
}

func TestStructToMapNonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}
