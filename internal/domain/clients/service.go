package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/tx"
	"github.com/khaliljaouani/gestion-factures-rouen/pkg/logger"
)

// Service provides business operations for the client catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new client service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create validates and persists a new client.
func (s *Service) Create(ctx context.Context, client *Client) error {
	if err := client.Validate(ctx); err != nil {
		return err
	}

	now := time.Now().UTC()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = now

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, client); err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "client created", "id", client.ID, "name", client.FullName())
	return nil
}

// GetByID retrieves a client by ID.
func (s *Service) GetByID(ctx context.Context, clientID id.ID) (*Client, error) {
	return s.repo.GetByID(ctx, clientID)
}

// Update modifies an existing client.
func (s *Service) Update(ctx context.Context, client *Client) error {
	if err := client.Validate(ctx); err != nil {
		return err
	}

	client.UpdatedAt = time.Now().UTC()
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, client); err != nil {
			return fmt.Errorf("update client: %w", err)
		}
		return nil
	})
}

// Delete removes a client. Fails with a conflict if vehicles or
// documents still reference it (foreign keys).
func (s *Service) Delete(ctx context.Context, clientID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, clientID)
	})
}

// List returns all clients.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}
