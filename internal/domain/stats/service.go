package stats

import (
	"context"
	"time"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/pkg/logger"
)

const (
	defaultTopClientsLimit = 5
	maxTopClientsLimit     = 50
)

// Service validates reporting parameters and delegates to the
// repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateRange(r DateRange) error {
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return apperror.NewValidation("date range end precedes start")
	}
	return nil
}

func (s *Service) Summary(ctx context.Context, r DateRange) (*Summary, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}
	sum, err := s.repo.Summary(ctx, r)
	if err != nil {
		logger.Error(ctx, "stats: summary query failed", "error", err)
		return nil, err
	}
	return sum, nil
}

func (s *Service) Daily(ctx context.Context, r DateRange) ([]DailyEntry, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}
	return s.repo.Daily(ctx, r)
}

// TopClients clamps limit into [1, maxTopClientsLimit]; zero or
// negative falls back to the default.
func (s *Service) TopClients(ctx context.Context, r DateRange, limit int) ([]TopClient, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTopClientsLimit
	}
	if limit > maxTopClientsLimit {
		limit = maxTopClientsLimit
	}
	return s.repo.TopClients(ctx, r, limit)
}

func (s *Service) DocumentsOn(ctx context.Context, day time.Time) ([]DayDocument, error) {
	if day.IsZero() {
		return nil, apperror.NewValidation("date is required")
	}
	return s.repo.DocumentsOn(ctx, day)
}
