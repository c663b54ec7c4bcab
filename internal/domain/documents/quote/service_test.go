package quote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/counter"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/money"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents"
)

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// rollbackTxManager discards counter writes made inside a failed
// function, the way the database discards uncommitted rows.
type rollbackTxManager struct {
	counters *counter.MockStore
}

func (m *rollbackTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	cp := m.counters.Checkpoint()
	if err := fn(ctx); err != nil {
		m.counters.Restore(cp)
		return err
	}
	return nil
}

type mockResolver struct {
	vehicleID id.ID
}

func (m *mockResolver) Resolve(ctx context.Context, plate string, clientID *id.ID, mileage int64) (id.ID, error) {
	return m.vehicleID, nil
}

type mockRepo struct {
	created   []*Quote
	lines     map[id.ID][]Line
	byRequest map[string]*Quote

	insertLinesErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		lines:     make(map[id.ID][]Line),
		byRequest: make(map[string]*Quote),
	}
}

func (m *mockRepo) Create(ctx context.Context, q *Quote) error {
	m.created = append(m.created, q)
	if q.RequestID != nil {
		m.byRequest[*q.RequestID] = q
	}
	return nil
}

func (m *mockRepo) InsertLines(ctx context.Context, quoteID id.ID, lines []Line) error {
	if m.insertLinesErr != nil {
		return m.insertLinesErr
	}
	m.lines[quoteID] = lines
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, quoteID id.ID) (*Quote, error) {
	for _, q := range m.created {
		if q.ID == quoteID {
			return q, nil
		}
	}
	return nil, apperror.NewNotFound("quote", quoteID.String())
}

func (m *mockRepo) GetLines(ctx context.Context, quoteID id.ID) ([]Line, error) {
	return m.lines[quoteID], nil
}

func (m *mockRepo) FindByRequestID(ctx context.Context, requestID string) (*Quote, error) {
	if q, ok := m.byRequest[requestID]; ok {
		return q, nil
	}
	return nil, apperror.NewNotFound("quote", requestID)
}

func (m *mockRepo) List(ctx context.Context) ([]ListItem, error) { return nil, nil }

func (m *mockRepo) ListByVehicle(ctx context.Context, vehicleID id.ID) ([]Quote, error) {
	return nil, nil
}

func validInput() CreateInput {
	clientID := id.New()
	return CreateInput{
		Vehicle: documents.VehicleRef{
			Plate:    "EF-456-GH",
			ClientID: &clientID,
		},
		Lines: []documents.LineInput{
			{
				Description: "plaquettes avant",
				Quantity:    money.MustFromString("1"),
				UnitPrice:   money.MustFromString("80.00"),
				VATRate:     money.MustFromString("20"),
			},
		},
	}
}

func newTestService(repo *mockRepo, counters *counter.MockStore) *Service {
	return NewService(repo, counters, &mockResolver{vehicleID: id.New()}, &mockTxManager{})
}

func TestCreateCompleteNumbersFromQuoteSequence(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	counters := counter.NewMockStore()
	counters.Seed(counter.TypeQuote, 41)
	svc := newTestService(repo, counters)

	result, err := svc.CreateComplete(ctx, validInput())
	require.NoError(t, err)

	assert.Equal(t, "00042", result.Number)
	// Invoice sequences are untouched by quote creation.
	assert.Equal(t, int64(0), counters.Current(counter.TypeNormal))
	assert.Equal(t, int64(0), counters.Current(counter.TypeHidden))
}

func TestCreateCompleteRequiresClient(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	counters := counter.NewMockStore()
	svc := newTestService(repo, counters)

	in := validInput()
	in.Vehicle.ClientID = nil

	_, err := svc.CreateComplete(ctx, in)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 0, counters.AdvanceCalls[counter.TypeQuote])
}

func TestCreateCompleteDefaultsStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo, counter.NewMockStore())

	_, err := svc.CreateComplete(ctx, validInput())
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, StatusNormal, repo.created[0].Status)
}

func TestCreateCompleteFailedLineInsertKeepsCounter(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	repo.insertLinesErr = errors.New("disk full")
	counters := counter.NewMockStore()
	resolver := &mockResolver{vehicleID: id.New()}
	svc := NewService(repo, counters, resolver, &rollbackTxManager{counters: counters})

	_, err := svc.CreateComplete(ctx, validInput())
	require.Error(t, err)

	// The advance ran inside the transaction but the rollback must
	// leave the durable counter value untouched.
	assert.Equal(t, 1, counters.AdvanceCalls[counter.TypeQuote])
	assert.Equal(t, int64(0), counters.Current(counter.TypeQuote))

	// The released number goes to the next successful creation.
	repo.insertLinesErr = nil
	result, err := svc.CreateComplete(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "00001", result.Number)
}

func TestCreateCompleteIdempotentReplay(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	counters := counter.NewMockStore()
	svc := newTestService(repo, counters)

	in := validInput()
	in.RequestID = "devis-tok-1"

	first, err := svc.CreateComplete(ctx, in)
	require.NoError(t, err)
	replay, err := svc.CreateComplete(ctx, in)
	require.NoError(t, err)

	assert.True(t, replay.Duplicate)
	assert.Equal(t, first.DocumentID, replay.DocumentID)
	assert.Len(t, repo.created, 1)
	assert.Equal(t, 1, counters.AdvanceCalls[counter.TypeQuote])
}
