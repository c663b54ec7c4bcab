package clients

import (
	"context"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
)

// Repository defines the interface for Client persistence.
type Repository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, clientID id.ID) (*Client, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, clientID id.ID) error
	List(ctx context.Context) ([]Client, error)
	Exists(ctx context.Context, clientID id.ID) (bool, error)
}
