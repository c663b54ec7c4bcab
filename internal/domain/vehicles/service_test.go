package vehicles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
)

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockRepo struct {
	vehicles []*Vehicle
}

func (m *mockRepo) Create(ctx context.Context, v *Vehicle) error {
	m.vehicles = append(m.vehicles, v)
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, vehicleID id.ID) (*Vehicle, error) {
	for _, v := range m.vehicles {
		if v.ID == vehicleID {
			return v, nil
		}
	}
	return nil, apperror.NewNotFound("vehicle", vehicleID.String())
}

func (m *mockRepo) ListByClient(ctx context.Context, clientID id.ID) ([]Vehicle, error) {
	var out []Vehicle
	for _, v := range m.vehicles {
		if v.ClientID != nil && *v.ClientID == clientID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockRepo) FindByPlateAndClient(ctx context.Context, plate string, clientID id.ID) (*Vehicle, error) {
	for _, v := range m.vehicles {
		if v.Plate == plate && v.ClientID != nil && *v.ClientID == clientID {
			return v, nil
		}
	}
	return nil, apperror.NewNotFound("vehicle", plate)
}

func (m *mockRepo) UpdateMileage(ctx context.Context, vehicleID id.ID, mileage int64) error {
	for _, v := range m.vehicles {
		if v.ID == vehicleID {
			v.Mileage = mileage
			return nil
		}
	}
	return apperror.NewNotFound("vehicle", vehicleID.String())
}

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ab-123-cd", "AB-123-CD"},
		{"  AB-123-CD  ", "AB-123-CD"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizePlate(tt.in); got != tt.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveUpsertsByPlateAndClient(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	svc := NewService(repo, &mockTxManager{})
	clientID := id.New()

	first, err := svc.Resolve(ctx, "ab-123-cd", &clientID, 100000)
	require.NoError(t, err)
	require.Len(t, repo.vehicles, 1)
	assert.Equal(t, "AB-123-CD", repo.vehicles[0].Plate)

	// Same plate and client: reuse the row, overwrite the mileage.
	second, err := svc.Resolve(ctx, " AB-123-cd ", &clientID, 101500)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, repo.vehicles, 1, "second resolve must not insert")
	assert.Equal(t, int64(101500), repo.vehicles[0].Mileage)
}

func TestResolveDifferentClientInserts(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	svc := NewService(repo, &mockTxManager{})
	clientA := id.New()
	clientB := id.New()

	first, err := svc.Resolve(ctx, "AB-123-CD", &clientA, 100)
	require.NoError(t, err)
	second, err := svc.Resolve(ctx, "AB-123-CD", &clientB, 200)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, repo.vehicles, 2)
}

func TestResolveEmptyPlateAlwaysInserts(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	svc := NewService(repo, &mockTxManager{})
	clientID := id.New()

	first, err := svc.Resolve(ctx, "", &clientID, 0)
	require.NoError(t, err)
	second, err := svc.Resolve(ctx, "   ", &clientID, 0)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, repo.vehicles, 2)
}

func TestResolveNilClientAlwaysInserts(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	svc := NewService(repo, &mockTxManager{})

	first, err := svc.Resolve(ctx, "AB-123-CD", nil, 100)
	require.NoError(t, err)
	second, err := svc.Resolve(ctx, "AB-123-CD", nil, 100)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestResolveClampsNegativeMileage(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	svc := NewService(repo, &mockTxManager{})
	clientID := id.New()

	_, err := svc.Resolve(ctx, "AB-123-CD", &clientID, -500)
	require.NoError(t, err)
	assert.Equal(t, int64(0), repo.vehicles[0].Mileage)
}
