package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGameValidate(t *testing.T) {
	t.Run("ValidGame", func(t *testing.T) {
		game := testGame("Hollow Knight", "15.00")
		assert.Empty(t, game.Validate())
	})

	t.Run("MissingName", func(t *testing.T) {
		game := testGame("  ", "15.00")
		assert.Contains(t, game.Validate(), "the name field must be supplied")
	})

	t.Run("NameTooShort", func(t *testing.T) {
		game := testGame("A", "15.00")
		assert.Contains(t, game.Validate(), "the name field needs to have between 2 and 100 characters")
	})

	t.Run("NameTooLong", func(t *testing.T) {
		game := testGame(strings.Repeat("x", 101), "15.00")
		assert.Contains(t, game.Validate(), "the name field needs to have between 2 and 100 characters")
	})

	t.Run("NameLengthCountsRunesNotBytes", func(t *testing.T) {
		game := testGame(strings.Repeat("é", 60), "15.00")
		assert.Empty(t, game.Validate())
	})

	t.Run("NonPositivePrice", func(t *testing.T) {
		for _, price := range []string{"0", "-10.00"} {
			game := testGame("Hollow Knight", price)
			assert.Contains(t, game.Validate(), "the price field must be a positive amount")
		}
	})

	t.Run("CollectsAllViolations", func(t *testing.T) {
		game := testGame("", "0")
		assert.Len(t, game.Validate(), 2)
	})
}

func TestNewGame(t *testing.T) {
	game := NewGame("Celeste", "A platformer", decimal.RequireFromString("19.99"), fixedDate())

	assert.True(t, game.IsActive, "new games start active")
	assert.NotEqual(t, uuid.Nil, game.ID)
	assert.Equal(t, fixedDate(), game.ReleaseDate)
	assert.Nil(t, game.UpdatedAt)
}
