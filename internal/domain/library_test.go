package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryAddGame(t *testing.T) {
	library := NewLibrary(uuid.New())
	gameID := uuid.New()

	item := library.AddGame(gameID, decimal.RequireFromString("40.00"))

	require.NotNil(t, item)
	assert.Equal(t, gameID, item.GameID)
	assert.Equal(t, library.ID, item.UserLibraryID)
	assert.True(t, item.PurchasePrice.Equal(decimal.RequireFromString("40.00")))
	assert.True(t, library.Contains(gameID))
	assert.Len(t, library.Items, 1)
}

func TestLibraryRemoveGame(t *testing.T) {
	t.Run("RemovesOwnedGame", func(t *testing.T) {
		library := NewLibrary(uuid.New())
		keepID := uuid.New()
		removeID := uuid.New()
		library.AddGame(keepID, decimal.RequireFromString("10.00"))
		library.AddGame(removeID, decimal.RequireFromString("20.00"))

		removed := library.RemoveGame(removeID)

		require.NotNil(t, removed)
		assert.Equal(t, removeID, removed.GameID)
		assert.False(t, library.Contains(removeID))
		assert.True(t, library.Contains(keepID))
		assert.Len(t, library.Items, 1)
	})

	t.Run("NilForUnownedGame", func(t *testing.T) {
		library := NewLibrary(uuid.New())
		assert.Nil(t, library.RemoveGame(uuid.New()))
	})
}

func TestLibraryContains(t *testing.T) {
	library := NewLibrary(uuid.New())
	gameID := uuid.New()

	assert.False(t, library.Contains(gameID))
	library.AddGame(gameID, decimal.RequireFromString("5.00"))
	assert.True(t, library.Contains(gameID))
}
