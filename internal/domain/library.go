package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Library holds the set of games a user owns. A game appears at most once
// among its items; the pre-purchase duplicate check is a business rule of the
// transaction service, so AddGame itself appends unconditionally.
type Library struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Items []LibraryItem `db:"-" json:"items"`
}

// LibraryItem records a single owned game and the price actually paid for it,
// post-discount.
type LibraryItem struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserLibraryID uuid.UUID       `db:"user_library_id" json:"user_library_id"`
	GameID        uuid.UUID       `db:"game_id" json:"game_id"`
	PurchasedAt   time.Time       `db:"purchased_at" json:"purchased_at"`
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchase_price"`
}

// NewLibrary creates an empty library for a user.
func NewLibrary(userID uuid.UUID) *Library {
	return &Library{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}

// AddGame appends a new item for gameID at the given purchase price and
// returns it.
func (l *Library) AddGame(gameID uuid.UUID, purchasePrice decimal.Decimal) *LibraryItem {
	item := LibraryItem{
		ID:            uuid.New(),
		UserLibraryID: l.ID,
		GameID:        gameID,
		PurchasedAt:   time.Now().UTC(),
		PurchasePrice: purchasePrice,
	}
	l.Items = append(l.Items, item)
	return &l.Items[len(l.Items)-1]
}

// RemoveGame removes the first item matching gameID and returns it, or nil
// when the game is not in the library. Absence is not an error.
func (l *Library) RemoveGame(gameID uuid.UUID) *LibraryItem {
	for i := range l.Items {
		if l.Items[i].GameID == gameID {
			item := l.Items[i]
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return &item
		}
	}
	return nil
}

// Contains reports whether the library already owns gameID.
func (l *Library) Contains(gameID uuid.UUID) bool {
	for i := range l.Items {
		if l.Items[i].GameID == gameID {
			return true
		}
	}
	return false
}
