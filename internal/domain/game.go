package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Game is a catalog entity. Soft-deleted games keep their rows but are marked
// inactive and cannot be purchased.
type Game struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	ReleaseDate time.Time       `db:"release_date" json:"release_date"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}

// NewGame creates an active catalog game.
func NewGame(name, description string, price decimal.Decimal, releaseDate time.Time) *Game {
	return &Game{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		IsActive:    true,
		ReleaseDate: releaseDate,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate returns the list of broken catalog rules, empty when the game is
// valid.
func (g *Game) Validate() []string {
	var messages []string

	name := strings.TrimSpace(g.Name)
	nameLen := utf8.RuneCountInString(name)
	switch {
	case name == "":
		messages = append(messages, "the name field must be supplied")
	case nameLen < 2 || nameLen > 100:
		messages = append(messages, "the name field needs to have between 2 and 100 characters")
	}

	if g.Price.LessThanOrEqual(decimal.Zero) {
		messages = append(messages, "the price field must be a positive amount")
	}

	return messages
}
