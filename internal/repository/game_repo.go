package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
)

// GameRepository defines persistence for catalog games.
type GameRepository interface {
	// Create inserts a new game.
	Create(ctx context.Context, q DBExecutor, game *domain.Game) error
	// GetByID retrieves a game by its ID.
	GetByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Game, error)
	// GetAll retrieves every game in the catalog.
	GetAll(ctx context.Context, q DBExecutor) ([]domain.Game, error)
	// Update stores the game's mutable fields.
	Update(ctx context.Context, q DBExecutor, game *domain.Game) error
	// ExistsByName reports whether another game (excluding excludeID) already
	// uses the name.
	ExistsByName(ctx context.Context, q DBExecutor, name string, excludeID uuid.UUID) (bool, error)
}
