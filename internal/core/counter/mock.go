package counter

import (
	"context"
	"sync"
	"time"
)

// MockStore is an in-memory Store for unit tests.
type MockStore struct {
	mu     sync.Mutex
	values map[Type]int64

	// AdvanceErr, when set, is returned by Advance.
	AdvanceErr error
	// AdvanceCalls counts Advance invocations per type.
	AdvanceCalls map[Type]int
}

// NewMockStore creates a MockStore with all counters at zero.
func NewMockStore() *MockStore {
	return &MockStore{
		values:       make(map[Type]int64),
		AdvanceCalls: make(map[Type]int),
	}
}

// Seed sets a counter to a starting value.
func (m *MockStore) Seed(t Type, v int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[t] = v
}

// Current returns the durable value of a counter.
func (m *MockStore) Current(t Type) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[t]
}

// Checkpoint copies the current values so a caller simulating a
// transaction can restore them on rollback.
func (m *MockStore) Checkpoint() map[Type]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(map[Type]int64, len(m.values))
	for t, v := range m.values {
		cp[t] = v
	}
	return cp
}

// Restore replaces the values with a checkpoint taken earlier.
// AdvanceCalls is deliberately left alone: calls happened even if
// their effects did not survive.
func (m *MockStore) Restore(cp map[Type]int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[Type]int64, len(cp))
	for t, v := range cp {
		m.values[t] = v
	}
}

// PeekNext implements Store.
func (m *MockStore) PeekNext(ctx context.Context, t Type) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[t] + 1, nil
}

// Advance implements Store.
func (m *MockStore) Advance(ctx context.Context, t Type) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AdvanceCalls[t]++
	if m.AdvanceErr != nil {
		return 0, m.AdvanceErr
	}
	m.values[t]++
	return m.values[t], nil
}

// SetValue implements Store.
func (m *MockStore) SetValue(ctx context.Context, t Type, value int64, actor string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[t] = value
	return nil
}

// Snapshot implements Store.
func (m *MockStore) Snapshot(ctx context.Context) ([]Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Value, 0, len(Types()))
	for _, t := range Types() {
		out = append(out, Value{Type: t, LastNumber: m.values[t], UpdatedAt: time.Now().UTC()})
	}
	return out, nil
}

// Ensure compile-time interface compliance.
var _ Store = (*MockStore)(nil)
