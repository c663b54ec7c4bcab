package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/counter"
)

// Validation happens before any query is issued, so a store without a
// live pool is enough to exercise the rejection paths.

func TestCounterStoreRejectsUnknownType(t *testing.T) {
	store := NewCounterStore(nil)
	ctx := context.Background()

	_, err := store.PeekNext(ctx, counter.Type("bogus"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = store.Advance(ctx, counter.Type(""))
	require.Error(t, err)

	err = store.SetValue(ctx, counter.Type("facture"), 10, "admin")
	require.Error(t, err, "raw document labels are not counter types")
}

func TestCounterStoreRejectsNegativeOverride(t *testing.T) {
	store := NewCounterStore(nil)

	err := store.SetValue(context.Background(), counter.TypeNormal, -1, "admin")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
