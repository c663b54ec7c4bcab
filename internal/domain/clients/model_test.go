package clients

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
)

func TestValidate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		client  Client
		wantErr bool
	}{
		{"minimal valid", Client{LastName: "Martin"}, false},
		{"full valid", Client{LastName: "Martin", FirstName: "Paul", Kind: KindIndividual, Email: "p.martin@example.fr"}, false},
		{"company kind", Client{LastName: "Garage Dupont", Kind: KindCompany}, false},
		{"missing last name", Client{FirstName: "Paul"}, true},
		{"blank last name", Client{LastName: "   "}, true},
		{"bad email", Client{LastName: "Martin", Email: "not-an-email"}, true},
		{"bad kind", Client{LastName: "Martin", Kind: "association"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.client.Validate(ctx)
			if tt.wantErr {
				assert.True(t, apperror.IsValidation(err), "want validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	c := Client{LastName: "Martin", FirstName: "Paul"}
	assert.Equal(t, "Martin Paul", c.FullName())

	noFirst := Client{LastName: "Martin"}
	assert.Equal(t, "Martin", noFirst.FullName())
}
