package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
	"github.com/kyo1506/tec-challenge-fiap/internal/repository"
	"github.com/kyo1506/tec-challenge-fiap/internal/util"
	"github.com/kyo1506/tec-challenge-fiap/pkg/db"
)

// PromotionService maintains promotions and their games on sale. It follows
// the same (ok, messages, err) convention as GameService.
type PromotionService interface {
	Add(ctx context.Context, promotion *domain.Promotion) (bool, []string, error)
	Update(ctx context.Context, promotion *domain.Promotion) (bool, []string, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, []string, error)
	AddGamesOnSale(ctx context.Context, promotionID uuid.UUID, entries []domain.PromotionGame) (bool, []string, error)
	UpdatePromotionGame(ctx context.Context, entry *domain.PromotionGame) (bool, []string, error)
	DeletePromotionGame(ctx context.Context, id uuid.UUID) (bool, []string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Promotion, error)
	GetAll(ctx context.Context) ([]domain.Promotion, error)
}

type promotionService struct {
	newUnitOfWork db.UnitOfWorkFactory
	dbExecutor    repository.DBExecutor
	promotions    repository.PromotionRepository
	games         repository.GameRepository
}

// NewPromotionService creates a new PromotionService.
func NewPromotionService(
	newUnitOfWork db.UnitOfWorkFactory,
	dbExecutor repository.DBExecutor,
	promotions repository.PromotionRepository,
	games repository.GameRepository,
) PromotionService {
	return &promotionService{
		newUnitOfWork: newUnitOfWork,
		dbExecutor:    dbExecutor,
		promotions:    promotions,
		games:         games,
	}
}

// Add registers a promotion together with its initial games on sale. Every
// listed game must exist and not already be promoted in an overlapping
// window.
func (s *promotionService) Add(ctx context.Context, promotion *domain.Promotion) (bool, []string, error) {
	messages := promotion.Validate()
	if len(promotion.GamesOnSale) == 0 {
		messages = append(messages, "a promotion needs at least one game on sale")
	}
	for i := range promotion.GamesOnSale {
		messages = append(messages, promotion.GamesOnSale[i].Validate()...)
	}
	if len(messages) > 0 {
		return false, messages, nil
	}

	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, fmt.Errorf("add promotion: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	taken, err := s.promotions.ExistsByName(ctx, q, promotion.Name, promotion.ID)
	if err != nil {
		return false, nil, fmt.Errorf("add promotion: %w", err)
	}
	if taken {
		return false, []string{"a promotion with this name already exists"}, nil
	}

	for i := range promotion.GamesOnSale {
		entry := &promotion.GamesOnSale[i]
		msgs, err := s.checkGameOnSale(ctx, q, entry.GameID, promotion)
		if err != nil {
			return false, nil, fmt.Errorf("add promotion: %w", err)
		}
		messages = append(messages, msgs...)
	}
	if len(messages) > 0 {
		return false, messages, nil
	}

	if err := s.promotions.Create(ctx, q, promotion); err != nil {
		return false, nil, fmt.Errorf("add promotion: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("add promotion: %w", err)
	}
	return true, nil, nil
}

// Update modifies a promotion's name and window. Games on sale are managed
// through AddGamesOnSale and the promotion-game methods.
func (s *promotionService) Update(ctx context.Context, promotion *domain.Promotion) (bool, []string, error) {
	if messages := promotion.Validate(); len(messages) > 0 {
		return false, messages, nil
	}

	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, fmt.Errorf("update promotion: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	current, err := s.promotions.GetByID(ctx, q, promotion.ID)
	if err != nil {
		return false, nil, err
	}

	taken, err := s.promotions.ExistsByName(ctx, q, promotion.Name, promotion.ID)
	if err != nil {
		return false, nil, fmt.Errorf("update promotion: %w", err)
	}
	if taken {
		return false, []string{"a promotion with this name already exists"}, nil
	}

	// Widening the window must not create overlaps for the games already on
	// sale in this promotion.
	var messages []string
	for i := range current.GamesOnSale {
		conflict, err := s.promotions.GameInPromotionWithin(ctx, q, current.GamesOnSale[i].GameID, promotion.StartDate, promotion.EndDate, promotion.ID)
		if err != nil {
			return false, nil, fmt.Errorf("update promotion: %w", err)
		}
		if conflict {
			messages = append(messages, fmt.Sprintf("game %s is already promoted in an overlapping period", current.GamesOnSale[i].GameID))
		}
	}
	if len(messages) > 0 {
		return false, messages, nil
	}

	current.Name = promotion.Name
	current.StartDate = promotion.StartDate
	current.EndDate = promotion.EndDate

	if err := s.promotions.Update(ctx, q, current); err != nil {
		return false, nil, err
	}
	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("update promotion: %w", err)
	}
	return true, nil, nil
}

// Delete removes a promotion. Promotions that still have games on sale must
// be emptied first.
func (s *promotionService) Delete(ctx context.Context, id uuid.UUID) (bool, []string, error) {
	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, fmt.Errorf("delete promotion: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	promotion, err := s.promotions.GetByID(ctx, q, id)
	if err != nil {
		return false, nil, err
	}
	if len(promotion.GamesOnSale) > 0 {
		return false, []string{"promotion still has games on sale"}, nil
	}

	if err := s.promotions.Delete(ctx, q, id); err != nil {
		return false, nil, err
	}
	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("delete promotion: %w", err)
	}
	return true, nil, nil
}

// AddGamesOnSale appends games to an existing promotion, skipping ones it
// already carries.
func (s *promotionService) AddGamesOnSale(ctx context.Context, promotionID uuid.UUID, entries []domain.PromotionGame) (bool, []string, error) {
	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, fmt.Errorf("add games on sale: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	promotion, err := s.promotions.GetByID(ctx, q, promotionID)
	if err != nil {
		return false, nil, err
	}

	onSale := make(map[uuid.UUID]bool, len(promotion.GamesOnSale))
	for i := range promotion.GamesOnSale {
		onSale[promotion.GamesOnSale[i].GameID] = true
	}

	newEntries := make([]domain.PromotionGame, 0, len(entries))
	for i := range entries {
		if !onSale[entries[i].GameID] {
			newEntries = append(newEntries, entries[i])
		}
	}
	if len(newEntries) == 0 {
		return false, []string{"all listed games are already in this promotion"}, nil
	}

	var messages []string
	for i := range newEntries {
		messages = append(messages, newEntries[i].Validate()...)
		msgs, err := s.checkGameOnSale(ctx, q, newEntries[i].GameID, promotion)
		if err != nil {
			return false, nil, fmt.Errorf("add games on sale: %w", err)
		}
		messages = append(messages, msgs...)
	}
	if len(messages) > 0 {
		return false, messages, nil
	}

	for i := range newEntries {
		newEntries[i].PromotionID = promotion.ID
		if err := s.promotions.AddPromotionGame(ctx, q, &newEntries[i]); err != nil {
			return false, nil, fmt.Errorf("add games on sale: %w", err)
		}
	}
	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("add games on sale: %w", err)
	}
	return true, nil, nil
}

// UpdatePromotionGame changes the discount of a game on sale.
func (s *promotionService) UpdatePromotionGame(ctx context.Context, entry *domain.PromotionGame) (bool, []string, error) {
	if messages := entry.Validate(); len(messages) > 0 {
		return false, messages, nil
	}

	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, fmt.Errorf("update promotion game: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	current, err := s.promotions.GetPromotionGameByID(ctx, q, entry.ID)
	if err != nil {
		return false, nil, err
	}

	current.DiscountPercentage = entry.DiscountPercentage
	if err := s.promotions.UpdatePromotionGame(ctx, q, current); err != nil {
		return false, nil, err
	}
	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("update promotion game: %w", err)
	}
	return true, nil, nil
}

// DeletePromotionGame removes a game from a promotion. Entries already
// referenced by wallet transactions are kept for audit.
func (s *promotionService) DeletePromotionGame(ctx context.Context, id uuid.UUID) (bool, []string, error) {
	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, fmt.Errorf("delete promotion game: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	if _, err := s.promotions.GetPromotionGameByID(ctx, q, id); err != nil {
		return false, nil, err
	}

	used, err := s.promotions.PromotionGameHasTransactions(ctx, q, id)
	if err != nil {
		return false, nil, fmt.Errorf("delete promotion game: %w", err)
	}
	if used {
		return false, []string{"promotion game has purchases and cannot be removed"}, nil
	}

	if err := s.promotions.DeletePromotionGame(ctx, q, id); err != nil {
		return false, nil, err
	}
	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("delete promotion game: %w", err)
	}
	return true, nil, nil
}

func (s *promotionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Promotion, error) {
	return s.promotions.GetByID(ctx, s.dbExecutor, id)
}

func (s *promotionService) GetAll(ctx context.Context) ([]domain.Promotion, error) {
	return s.promotions.GetAll(ctx, s.dbExecutor)
}

// checkGameOnSale verifies a game exists and is not promoted elsewhere inside
// the promotion's window.
func (s *promotionService) checkGameOnSale(ctx context.Context, q repository.DBExecutor, gameID uuid.UUID, promotion *domain.Promotion) ([]string, error) {
	var messages []string

	if _, err := s.games.GetByID(ctx, q, gameID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return []string{fmt.Sprintf("game %s does not exist", gameID)}, nil
		}
		return nil, err
	}

	conflict, err := s.promotions.GameInPromotionWithin(ctx, q, gameID, promotion.StartDate, promotion.EndDate, promotion.ID)
	if err != nil {
		return nil, err
	}
	if conflict {
		messages = append(messages, fmt.Sprintf("game %s is already promoted in an overlapping period", gameID))
	}
	return messages, nil
}
