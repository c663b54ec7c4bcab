package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
)

type mockRepo struct {
	lastLimit int
}

func (m *mockRepo) Summary(ctx context.Context, r DateRange) (*Summary, error) {
	return &Summary{}, nil
}

func (m *mockRepo) Daily(ctx context.Context, r DateRange) ([]DailyEntry, error) {
	return nil, nil
}

func (m *mockRepo) TopClients(ctx context.Context, r DateRange, limit int) ([]TopClient, error) {
	m.lastLimit = limit
	return nil, nil
}

func (m *mockRepo) DocumentsOn(ctx context.Context, day time.Time) ([]DayDocument, error) {
	return nil, nil
}

func TestTopClientsLimitClamping(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	svc := NewService(repo)

	tests := []struct {
		in   int
		want int
	}{
		{0, defaultTopClientsLimit},
		{-3, defaultTopClientsLimit},
		{10, 10},
		{50, 50},
		{500, maxTopClientsLimit},
	}

	for _, tt := range tests {
		_, err := svc.TopClients(ctx, DateRange{}, tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, repo.lastLimit, "limit %d", tt.in)
	}
}

func TestInvertedRangeRejected(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&mockRepo{})

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	r := DateRange{From: &from, To: &to}

	_, err := svc.Summary(ctx, r)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Daily(ctx, r)
	assert.True(t, apperror.IsValidation(err))
}

func TestDocumentsOnRequiresDate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&mockRepo{})

	_, err := svc.DocumentsOn(ctx, time.Time{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestEqualBoundsAccepted(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&mockRepo{})

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Summary(ctx, DateRange{From: &day, To: &day})
	assert.NoError(t, err)
}
