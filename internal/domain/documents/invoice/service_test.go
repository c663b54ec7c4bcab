package invoice

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

// --- Mocks ---

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
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
	plates    []string
	err       error
}

func (m *mockResolver) Resolve(ctx context.Context, plate string, clientID *id.ID, mileage int64) (id.ID, error) {
	if m.err != nil {
		return id.ID{}, m.err
	}
	m.plates = append(m.plates, plate)
	return m.vehicleID, nil
}

type mockRepo struct {
	created   []*Invoice
	lines     map[id.ID][]Line
	byRequest map[string]*Invoice

	createErr      error
	insertLinesErr error
	lookups        int
	// raceWinner simulates a concurrent creation that committed
	// between our lookup and our insert: the first FindByRequestID
	// misses, later ones return it.
	raceWinner *Invoice
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		lines:     make(map[id.ID][]Line),
		byRequest: make(map[string]*Invoice),
	}
}

func (m *mockRepo) Create(ctx context.Context, inv *Invoice) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, inv)
	if inv.RequestID != nil {
		m.byRequest[*inv.RequestID] = inv
	}
	return nil
}

func (m *mockRepo) InsertLines(ctx context.Context, invoiceID id.ID, lines []Line) error {
	if m.insertLinesErr != nil {
		return m.insertLinesErr
	}
	m.lines[invoiceID] = lines
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	for _, inv := range m.created {
		if inv.ID == invoiceID {
			return inv, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", invoiceID.String())
}

func (m *mockRepo) GetLines(ctx context.Context, invoiceID id.ID) ([]Line, error) {
	return m.lines[invoiceID], nil
}

func (m *mockRepo) FindByRequestID(ctx context.Context, requestID string) (*Invoice, error) {
	m.lookups++
	if inv, ok := m.byRequest[requestID]; ok {
		return inv, nil
	}
	if m.raceWinner != nil && m.lookups > 1 {
		return m.raceWinner, nil
	}
	return nil, apperror.NewNotFound("invoice", requestID)
}

func (m *mockRepo) List(ctx context.Context) ([]ListItem, error) {
	return nil, nil
}

func (m *mockRepo) ListByVehicle(ctx context.Context, vehicleID id.ID) ([]Invoice, error) {
	return nil, nil
}

// --- Fixtures ---

func validInput() CreateInput {
	clientID := id.New()
	return CreateInput{
		Vehicle: documents.VehicleRef{
			Plate:    "AB-123-CD",
			Mileage:  120000,
			ClientID: &clientID,
		},
		Status: StatusNormal,
		Lines: []documents.LineInput{
			{
				Description: "vidange",
				Quantity:    money.MustFromString("2"),
				UnitPrice:   money.MustFromString("10.00"),
				VATRate:     money.MustFromString("20"),
			},
			{
				Description: "filtre",
				Quantity:    money.MustFromString("1"),
				UnitPrice:   money.MustFromString("5.00"),
				VATRate:     money.MustFromString("20"),
			},
		},
	}
}

func newTestService(repo *mockRepo, counters *counter.MockStore) (*Service, *mockResolver) {
	resolver := &mockResolver{vehicleID: id.New()}
	svc := NewService(repo, counters, resolver, &mockTxManager{})
	return svc, resolver
}

// --- Tests ---

func TestCreateCompleteSequentialNumbers(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	counters := counter.NewMockStore()
	svc, _ := newTestService(repo, counters)

	first, err := svc.CreateComplete(ctx, validInput())
	require.NoError(t, err)
	second, err := svc.CreateComplete(ctx, validInput())
	require.NoError(t, err)

	assert.Equal(t, "001", first.Number)
	assert.Equal(t, "002", second.Number)
	assert.False(t, first.Duplicate)
	assert.Len(t, repo.created, 2)
}

func TestCreateCompleteHiddenSequence(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	counters := counter.NewMockStore()
	counters.Seed(counter.TypeHidden, 2)
	svc, _ := newTestService(repo, counters)

	in := validInput()
	in.Status = StatusHidden

	result, err := svc.CreateComplete(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "C003", result.Number)
	// The regular sequence is untouched.
	assert.Equal(t, int64(0), counters.Current(counter.TypeNormal))
}

func TestCreateCompleteComputesTotals(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc, _ := newTestService(repo, counter.NewMockStore())

	_, err := svc.CreateComplete(ctx, validInput())
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	inv := repo.created[0]
	assert.True(t, inv.TotalTTC.Equal(money.MustFromString("30.00")),
		"TotalTTC = %s", inv.TotalTTC)

	lines := repo.lines[inv.ID]
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].LineNo)
	assert.Equal(t, 2, lines[1].LineNo)
	assert.True(t, lines[0].TotalHT.Equal(money.MustFromString("20.00")))
}

func TestCreateCompleteRejectsEmptyLines(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	counters := counter.NewMockStore()
	svc, _ := newTestService(repo, counters)

	in := validInput()
	in.Lines = nil

	_, err := svc.CreateComplete(ctx, in)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, repo.created)
	assert.Equal(t, 0, counters.AdvanceCalls[counter.TypeNormal],
		"counter must not move on rejected input")
}

func TestCreateCompleteRejectsMissingVehicleAndClient(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newMockRepo(), counter.NewMockStore())

	in := validInput()
	in.Vehicle = documents.VehicleRef{}

	_, err := svc.CreateComplete(ctx, in)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestCreateCompleteIdempotentReplay(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	counters := counter.NewMockStore()
	svc, _ := newTestService(repo, counters)

	in := validInput()
	in.RequestID = "tok-1"

	first, err := svc.CreateComplete(ctx, in)
	require.NoError(t, err)
	require.False(t, first.Duplicate)

	replay, err := svc.CreateComplete(ctx, in)
	require.NoError(t, err)

	assert.True(t, replay.Duplicate)
	assert.Equal(t, first.DocumentID, replay.DocumentID)
	assert.Equal(t, first.Number, replay.Number)
	assert.Len(t, repo.created, 1, "replay must not create a second invoice")
	assert.Equal(t, 1, counters.AdvanceCalls[counter.TypeNormal],
		"replay must not advance the counter")
}

func TestCreateCompleteConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	counters := counter.NewMockStore()
	svc, _ := newTestService(repo, counters)

	// Another process won the insert race: our insert hits the
	// unique index, the re-query finds the winner.
	winner := &Invoice{ID: id.New(), Number: "007"}
	repo.raceWinner = winner
	repo.createErr = apperror.NewDuplicate("invoice", "request_id", "tok-race")

	in := validInput()
	in.RequestID = "tok-race"

	result, err := svc.CreateComplete(ctx, in)
	require.NoError(t, err)

	assert.True(t, result.Duplicate)
	assert.Equal(t, winner.ID, result.DocumentID)
	assert.Equal(t, "007", result.Number)
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
	assert.Equal(t, 1, counters.AdvanceCalls[counter.TypeNormal])
	assert.Equal(t, int64(0), counters.Current(counter.TypeNormal))

	// The released number goes to the next successful creation.
	repo.insertLinesErr = nil
	result, err := svc.CreateComplete(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "001", result.Number)
}

func TestCreateCompleteUnresolvableTokenCollision(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	counters := counter.NewMockStore()
	svc, _ := newTestService(repo, counters)

	// The unique index rejected our insert but the winner's row is
	// not visible yet: its transaction has not committed.
	repo.createErr = apperror.NewDuplicate("invoice", "request_id", "tok-flight")

	in := validInput()
	in.RequestID = "tok-flight"

	_, err := svc.CreateComplete(ctx, in)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeIdempotency, appErr.Code)
}

func TestCreateCompleteRepoFailurePropagates(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	repo.createErr = errors.New("connection reset")
	svc, _ := newTestService(repo, counter.NewMockStore())

	_, err := svc.CreateComplete(ctx, validInput())
	require.Error(t, err)
	assert.Empty(t, repo.created)
	assert.Empty(t, repo.lines)
}

func TestCreateCompleteResolverFailureAborts(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	counters := counter.NewMockStore()
	resolver := &mockResolver{err: errors.New("vehicle table locked")}
	svc := NewService(repo, counters, resolver, &mockTxManager{})

	_, err := svc.CreateComplete(ctx, validInput())
	require.Error(t, err)
	assert.Empty(t, repo.created, "no invoice may exist without a vehicle")
}

func TestGetByIDAttachesLines(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc, _ := newTestService(repo, counter.NewMockStore())

	created, err := svc.CreateComplete(ctx, validInput())
	require.NoError(t, err)

	inv, err := svc.GetByID(ctx, created.DocumentID)
	require.NoError(t, err)
	assert.Len(t, inv.Lines, 2)
}
