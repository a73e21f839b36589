package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
	"github.com/kyo1506/tec-challenge-fiap/internal/repository"
	"github.com/kyo1506/tec-challenge-fiap/internal/util"
)

// LibraryRepository implements repository.LibraryRepository for PostgreSQL.
type LibraryRepository struct{}

// NewLibraryRepository creates a new LibraryRepository.
func NewLibraryRepository() repository.LibraryRepository {
	return &LibraryRepository{}
}

func (r *LibraryRepository) Create(ctx context.Context, q repository.DBExecutor, library *domain.Library) error {
	query := `INSERT INTO user_libraries (id, user_id, created_at) VALUES ($1, $2, $3)`
	_, err := q.ExecContext(ctx, query, library.ID, library.UserID, library.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create library: %w", err)
	}
	return nil
}

func (r *LibraryRepository) GetByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (*domain.Library, error) {
	var library domain.Library
	query := `SELECT id, user_id, created_at FROM user_libraries WHERE user_id = $1`
	err := q.GetContext(ctx, &library, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get library for user %s: %w", userID, err)
	}

	itemsQuery := `SELECT id, user_library_id, game_id, purchased_at, purchase_price
                   FROM library_items
                   WHERE user_library_id = $1
                   ORDER BY purchased_at, id`
	err = q.SelectContext(ctx, &library.Items, itemsQuery, library.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items for library %s: %w", library.ID, err)
	}

	return &library, nil
}

func (r *LibraryRepository) ExistsForUser(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM user_libraries WHERE user_id = $1)`
	if err := q.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("failed to check library existence for user %s: %w", userID, err)
	}
	return exists, nil
}

func (r *LibraryRepository) AddItem(ctx context.Context, q repository.DBExecutor, item *domain.LibraryItem) error {
	query := `INSERT INTO library_items (id, user_library_id, game_id, purchased_at, purchase_price)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := q.ExecContext(ctx, query, item.ID, item.UserLibraryID, item.GameID, item.PurchasedAt, item.PurchasePrice)
	if err != nil {
		return fmt.Errorf("failed to add library item: %w", err)
	}
	return nil
}

func (r *LibraryRepository) RemoveItem(ctx context.Context, q repository.DBExecutor, itemID uuid.UUID) error {
	query := `DELETE FROM library_items WHERE id = $1`
	result, err := q.ExecContext(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove library item %s: %w", itemID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for library item %s: %w", itemID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
