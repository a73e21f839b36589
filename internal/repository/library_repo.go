package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
)

// LibraryRepository defines persistence for the library aggregate.
type LibraryRepository interface {
	// Create inserts a new library.
	Create(ctx context.Context, q DBExecutor, library *domain.Library) error
	// GetByUserID retrieves a user's library with its items.
	GetByUserID(ctx context.Context, q DBExecutor, userID uuid.UUID) (*domain.Library, error)
	// ExistsForUser reports whether the user already has a library.
	ExistsForUser(ctx context.Context, q DBExecutor, userID uuid.UUID) (bool, error)
	// AddItem inserts a library item.
	AddItem(ctx context.Context, q DBExecutor, item *domain.LibraryItem) error
	// RemoveItem deletes a library item. A dedicated delete, distinct from any
	// aggregate update, since owned collection rows must be removed explicitly.
	RemoveItem(ctx context.Context, q DBExecutor, itemID uuid.UUID) error
}
