package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
	"github.com/kyo1506/tec-challenge-fiap/internal/repository"
	"github.com/kyo1506/tec-challenge-fiap/internal/util"
)

// GameRepository implements repository.GameRepository for PostgreSQL.
type GameRepository struct{}

// NewGameRepository creates a new GameRepository.
func NewGameRepository() repository.GameRepository {
	return &GameRepository{}
}

func (r *GameRepository) Create(ctx context.Context, q repository.DBExecutor, game *domain.Game) error {
	query := `INSERT INTO games (id, name, description, price, is_active, release_date, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := q.ExecContext(ctx, query,
		game.ID, game.Name, game.Description, game.Price, game.IsActive, game.ReleaseDate, game.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

func (r *GameRepository) GetByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Game, error) {
	var game domain.Game
	query := `SELECT id, name, description, price, is_active, release_date, created_at, updated_at
              FROM games WHERE id = $1`
	err := q.GetContext(ctx, &game, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game %s: %w", id, err)
	}
	return &game, nil
}

func (r *GameRepository) GetAll(ctx context.Context, q repository.DBExecutor) ([]domain.Game, error) {
	games := []domain.Game{}
	query := `SELECT id, name, description, price, is_active, release_date, created_at, updated_at
              FROM games ORDER BY name`
	if err := q.SelectContext(ctx, &games, query); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

func (r *GameRepository) Update(ctx context.Context, q repository.DBExecutor, game *domain.Game) error {
	query := `UPDATE games SET name = $1, description = $2, price = $3, is_active = $4, updated_at = $5
              WHERE id = $6`
	result, err := q.ExecContext(ctx, query,
		game.Name, game.Description, game.Price, game.IsActive, time.Now().UTC(), game.ID)
	if err != nil {
		return fmt.Errorf("failed to update game %s: %w", game.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for game %s: %w", game.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *GameRepository) ExistsByName(ctx context.Context, q repository.DBExecutor, name string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM games WHERE name = $1 AND id <> $2)`
	if err := q.GetContext(ctx, &exists, query, name, excludeID); err != nil {
		return false, fmt.Errorf("failed to check game name %q: %w", name, err)
	}
	return exists, nil
}
