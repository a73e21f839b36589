package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
)

// PromotionRepository defines persistence for promotions and their discounted
// games.
type PromotionRepository interface {
	// Create inserts a promotion together with its games on sale.
	Create(ctx context.Context, q DBExecutor, promotion *domain.Promotion) error
	// GetByID retrieves a promotion with its games on sale.
	GetByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Promotion, error)
	// GetAll retrieves every promotion with its games on sale.
	GetAll(ctx context.Context, q DBExecutor) ([]domain.Promotion, error)
	// Update stores the promotion's mutable fields.
	Update(ctx context.Context, q DBExecutor, promotion *domain.Promotion) error
	// Delete removes a promotion.
	Delete(ctx context.Context, q DBExecutor, id uuid.UUID) error
	// ExistsByName reports whether another promotion (excluding excludeID)
	// already uses the name.
	ExistsByName(ctx context.Context, q DBExecutor, name string, excludeID uuid.UUID) (bool, error)

	// GetPromotionGameByID retrieves a discount entry with the owning
	// promotion's sale window populated.
	GetPromotionGameByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.PromotionGame, error)
	// AddPromotionGame inserts a discount entry.
	AddPromotionGame(ctx context.Context, q DBExecutor, entry *domain.PromotionGame) error
	// UpdatePromotionGame stores a discount entry's percentage.
	UpdatePromotionGame(ctx context.Context, q DBExecutor, entry *domain.PromotionGame) error
	// DeletePromotionGame removes a discount entry.
	DeletePromotionGame(ctx context.Context, q DBExecutor, id uuid.UUID) error
	// GameInPromotionWithin reports whether the game already belongs to a
	// promotion (other than excludePromotionID) whose window overlaps
	// [start, end].
	GameInPromotionWithin(ctx context.Context, q DBExecutor, gameID uuid.UUID, start, end time.Time, excludePromotionID uuid.UUID) (bool, error)
	// PromotionGameHasTransactions reports whether any ledger entry references
	// the discount entry.
	PromotionGameHasTransactions(ctx context.Context, q DBExecutor, promotionGameID uuid.UUID) (bool, error)
}
