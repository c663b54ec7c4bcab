// Package clients provides the client catalog of the garage.
package clients

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Kind distinguishes private customers from companies.
type Kind string

const (
	KindIndividual Kind = "particulier"
	KindCompany    Kind = "professionnel"
)

// Client represents a customer of the shop. The identifier is
// immutable once created; vehicles reference it.
type Client struct {
	ID id.ID `db:"id" json:"id"`

	Civility  string `db:"civility" json:"civility,omitempty"`
	LastName  string `db:"last_name" json:"lastName"`
	FirstName string `db:"first_name" json:"firstName,omitempty"`
	Kind      Kind   `db:"kind" json:"kind,omitempty"`

	Address    string `db:"address" json:"address,omitempty"`
	PostalCode string `db:"postal_code" json:"postalCode,omitempty"`
	City       string `db:"city" json:"city,omitempty"`
	Email      string `db:"email" json:"email,omitempty"`
	Phone      string `db:"phone" json:"phone,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a client with a generated ID and timestamps.
func New(lastName, firstName string) *Client {
	now := time.Now().UTC()
	return &Client{
		ID:        id.New(),
		LastName:  lastName,
		FirstName: firstName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FullName returns "LastName FirstName" the way documents display it.
func (c *Client) FullName() string {
	return strings.TrimSpace(c.LastName + " " + c.FirstName)
}

// Validate checks client invariants.
func (c *Client) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.LastName) == "" {
		return apperror.NewValidation("last name is required").
			WithDetail("field", "lastName")
	}

	if c.Kind != "" && c.Kind != KindIndividual && c.Kind != KindCompany {
		return apperror.NewValidation("invalid client kind").
			WithDetail("field", "kind").
			WithDetail("value", string(c.Kind))
	}

	if c.Email != "" && !emailRE.MatchString(c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
