package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pepgate/internal/pep/models"
	"pepgate/internal/pep/store/user"
)

func TestMemoryStoreFindSuitability(t *testing.T) {
	store := user.NewMemory()
	store.Seed(user.MemoryRecord{UniqueID: "user-1", Suitability: true})
	store.Seed(user.MemoryRecord{UniqueID: "user-2", Suitability: false})

	ctx := context.Background()

	ok, err := store.FindSuitability(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.FindSuitability(ctx, "user-2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.FindSuitability(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestMemoryStoreUpdateDeclaration(t *testing.T) {
	store := user.NewMemory()
	store.Seed(user.MemoryRecord{UniqueID: "user-1", Suitability: true})

	record := models.Record{
		UniqueID:     "user-1",
		IsExposed:    true,
		ExposedNames: []string{"Jane Doe"},
	}
	require.NoError(t, store.UpdateDeclaration(context.Background(), record))

	got, ok := store.Get("user-1")
	require.True(t, ok)
	assert.True(t, got.IsExposed)
	assert.Equal(t, []string{"Jane Doe"}, got.ExposedNames)
}

func TestMemoryStoreUpdateIsIdempotent(t *testing.T) {
	store := user.NewMemory()
	store.Seed(user.MemoryRecord{UniqueID: "user-1", Suitability: true})

	record := models.Record{
		UniqueID:     "user-1",
		IsExposed:    true,
		ExposedNames: []string{"Jane Doe", "John Roe"},
	}

	require.NoError(t, store.UpdateDeclaration(context.Background(), record))
	first, _ := store.Get("user-1")

	require.NoError(t, store.UpdateDeclaration(context.Background(), record))
	second, _ := store.Get("user-1")

	assert.Equal(t, first, second, "reapplying the same record must not change the final state")
}

func TestMemoryStoreUpdateUnknownUser(t *testing.T) {
	store := user.NewMemory()

	err := store.UpdateDeclaration(context.Background(), models.Record{UniqueID: "missing"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestMemoryStoreClearingDeclaration(t *testing.T) {
	store := user.NewMemory()
	store.Seed(user.MemoryRecord{
		UniqueID:     "user-1",
		Suitability:  true,
		IsExposed:    true,
		ExposedNames: []string{"Jane Doe"},
	})

	require.NoError(t, store.UpdateDeclaration(context.Background(), models.Record{
		UniqueID:  "user-1",
		IsExposed: false,
	}))

	got, _ := store.Get("user-1")
	assert.False(t, got.IsExposed)
	assert.Empty(t, got.ExposedNames)
}
