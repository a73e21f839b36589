package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
	"github.com/kyo1506/tec-challenge-fiap/internal/repository"
	"github.com/kyo1506/tec-challenge-fiap/internal/util"
)

// PromotionRepository implements repository.PromotionRepository for PostgreSQL.
type PromotionRepository struct{}

// NewPromotionRepository creates a new PromotionRepository.
func NewPromotionRepository() repository.PromotionRepository {
	return &PromotionRepository{}
}

func (r *PromotionRepository) Create(ctx context.Context, q repository.DBExecutor, promotion *domain.Promotion) error {
	query := `INSERT INTO promotions (id, name, start_date, end_date) VALUES ($1, $2, $3, $4)`
	_, err := q.ExecContext(ctx, query, promotion.ID, promotion.Name, promotion.StartDate, promotion.EndDate)
	if err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	for i := range promotion.GamesOnSale {
		if err := r.AddPromotionGame(ctx, q, &promotion.GamesOnSale[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PromotionRepository) GetByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Promotion, error) {
	var promotion domain.Promotion
	query := `SELECT id, name, start_date, end_date FROM promotions WHERE id = $1`
	err := q.GetContext(ctx, &promotion, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promotion %s: %w", id, err)
	}

	gamesQuery := `SELECT id, promotion_id, game_id, discount_percentage
                   FROM promotion_games WHERE promotion_id = $1`
	err = q.SelectContext(ctx, &promotion.GamesOnSale, gamesQuery, promotion.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load games on sale for promotion %s: %w", id, err)
	}

	return &promotion, nil
}

func (r *PromotionRepository) GetAll(ctx context.Context, q repository.DBExecutor) ([]domain.Promotion, error) {
	promotions := []domain.Promotion{}
	query := `SELECT id, name, start_date, end_date FROM promotions ORDER BY start_date`
	if err := q.SelectContext(ctx, &promotions, query); err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}

	for i := range promotions {
		gamesQuery := `SELECT id, promotion_id, game_id, discount_percentage
                       FROM promotion_games WHERE promotion_id = $1`
		if err := q.SelectContext(ctx, &promotions[i].GamesOnSale, gamesQuery, promotions[i].ID); err != nil {
			return nil, fmt.Errorf("failed to load games on sale for promotion %s: %w", promotions[i].ID, err)
		}
	}
	return promotions, nil
}

func (r *PromotionRepository) Update(ctx context.Context, q repository.DBExecutor, promotion *domain.Promotion) error {
	query := `UPDATE promotions SET name = $1, start_date = $2, end_date = $3 WHERE id = $4`
	result, err := q.ExecContext(ctx, query, promotion.Name, promotion.StartDate, promotion.EndDate, promotion.ID)
	if err != nil {
		return fmt.Errorf("failed to update promotion %s: %w", promotion.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for promotion %s: %w", promotion.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *PromotionRepository) Delete(ctx context.Context, q repository.DBExecutor, id uuid.UUID) error {
	query := `DELETE FROM promotions WHERE id = $1`
	result, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete promotion %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for promotion %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *PromotionRepository) ExistsByName(ctx context.Context, q repository.DBExecutor, name string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM promotions WHERE name = $1 AND id <> $2)`
	if err := q.GetContext(ctx, &exists, query, name, excludeID); err != nil {
		return false, fmt.Errorf("failed to check promotion name %q: %w", name, err)
	}
	return exists, nil
}

// GetPromotionGameByID joins the owning promotion so callers can validate the
// sale window without a second lookup.
func (r *PromotionRepository) GetPromotionGameByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.PromotionGame, error) {
	var row struct {
		ID                 uuid.UUID       `db:"id"`
		PromotionID        uuid.UUID       `db:"promotion_id"`
		GameID             uuid.UUID       `db:"game_id"`
		DiscountPercentage decimal.Decimal `db:"discount_percentage"`
		PromotionName      string          `db:"promotion_name"`
		StartDate          time.Time       `db:"start_date"`
		EndDate            time.Time       `db:"end_date"`
	}
	query := `SELECT pg.id, pg.promotion_id, pg.game_id, pg.discount_percentage,
                     p.name AS promotion_name, p.start_date, p.end_date
              FROM promotion_games pg
              JOIN promotions p ON p.id = pg.promotion_id
              WHERE pg.id = $1`
	err := q.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promotion game %s: %w", id, err)
	}

	return &domain.PromotionGame{
		ID:                 row.ID,
		PromotionID:        row.PromotionID,
		GameID:             row.GameID,
		DiscountPercentage: row.DiscountPercentage,
		Promotion: &domain.Promotion{
			ID:        row.PromotionID,
			Name:      row.PromotionName,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
		},
	}, nil
}

func (r *PromotionRepository) AddPromotionGame(ctx context.Context, q repository.DBExecutor, entry *domain.PromotionGame) error {
	query := `INSERT INTO promotion_games (id, promotion_id, game_id, discount_percentage)
              VALUES ($1, $2, $3, $4)`
	_, err := q.ExecContext(ctx, query, entry.ID, entry.PromotionID, entry.GameID, entry.DiscountPercentage)
	if err != nil {
		return fmt.Errorf("failed to add promotion game: %w", err)
	}
	return nil
}

func (r *PromotionRepository) UpdatePromotionGame(ctx context.Context, q repository.DBExecutor, entry *domain.PromotionGame) error {
	query := `UPDATE promotion_games SET discount_percentage = $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, entry.DiscountPercentage, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update promotion game %s: %w", entry.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for promotion game %s: %w", entry.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *PromotionRepository) DeletePromotionGame(ctx context.Context, q repository.DBExecutor, id uuid.UUID) error {
	query := `DELETE FROM promotion_games WHERE id = $1`
	result, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete promotion game %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for promotion game %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *PromotionRepository) GameInPromotionWithin(ctx context.Context, q repository.DBExecutor, gameID uuid.UUID, start, end time.Time, excludePromotionID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
                SELECT 1 FROM promotion_games pg
                JOIN promotions p ON p.id = pg.promotion_id
                WHERE pg.game_id = $1
                  AND p.id <> $2
                  AND p.end_date >= $3
                  AND p.start_date <= $4)`
	if err := q.GetContext(ctx, &exists, query, gameID, excludePromotionID, start, end); err != nil {
		return false, fmt.Errorf("failed to check overlapping promotions for game %s: %w", gameID, err)
	}
	return exists, nil
}

func (r *PromotionRepository) PromotionGameHasTransactions(ctx context.Context, q repository.DBExecutor, promotionGameID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM wallet_transactions WHERE promotion_game_id = $1)`
	if err := q.GetContext(ctx, &exists, query, promotionGameID); err != nil {
		return false, fmt.Errorf("failed to check transactions for promotion game %s: %w", promotionGameID, err)
	}
	return exists, nil
}
