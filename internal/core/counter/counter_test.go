package counter

import (
	"context"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		n    int64
		want string
	}{
		{"invoice single digit", TypeNormal, 1, "001"},
		{"invoice double digit", TypeNormal, 42, "042"},
		{"invoice past padding", TypeNormal, 1234, "1234"},
		{"hidden single digit", TypeHidden, 3, "C003"},
		{"hidden past padding", TypeHidden, 1000, "C1000"},
		{"quote single digit", TypeQuote, 1, "00001"},
		{"quote mid range", TypeQuote, 42, "00042"},
		{"quote past padding", TypeQuote, 123456, "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.typ, tt.n); got != tt.want {
				t.Errorf("Format(%s, %d) = %q, want %q", tt.typ, tt.n, got, tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		typ  Type
		n    int64
		want string
	}{
		{TypeNormal, 1, "1"},
		{TypeNormal, 42, "42"},
		{TypeHidden, 3, "C3"},
		{TypeQuote, 42, "42"},
	}

	for _, tt := range tests {
		if got := Display(tt.typ, tt.n); got != tt.want {
			t.Errorf("Display(%s, %d) = %q, want %q", tt.typ, tt.n, got, tt.want)
		}
	}
}

func TestTypeIsValid(t *testing.T) {
	for _, typ := range Types() {
		if !typ.IsValid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if Type("autre").IsValid() {
		t.Error("unknown type should be invalid")
	}
}

func TestMockStoreAdvance(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	store.Seed(TypeNormal, 5)

	next, err := store.Advance(ctx, TypeNormal)
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if next != 6 {
		t.Errorf("Advance = %d, want 6", next)
	}
	if store.Current(TypeNormal) != 6 {
		t.Errorf("Current = %d, want 6", store.Current(TypeNormal))
	}

	// Other sequences are untouched.
	if store.Current(TypeHidden) != 0 {
		t.Errorf("hidden counter moved to %d", store.Current(TypeHidden))
	}
}

func TestMockStorePeekDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	store.Seed(TypeQuote, 41)

	next, err := store.PeekNext(ctx, TypeQuote)
	if err != nil {
		t.Fatalf("PeekNext failed: %v", err)
	}
	if next != 42 {
		t.Errorf("PeekNext = %d, want 42", next)
	}
	if store.Current(TypeQuote) != 41 {
		t.Errorf("PeekNext mutated counter to %d", store.Current(TypeQuote))
	}
}
