package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
	"github.com/kyo1506/tec-challenge-fiap/internal/repository"
	"github.com/kyo1506/tec-challenge-fiap/pkg/db"
)

// GameService maintains the game catalog. Mutating methods return
// (ok, messages, err): ok is false with a non-empty messages slice when the
// request failed a business rule, and err carries infrastructure failures or
// util.ErrNotFound.
type GameService interface {
	Add(ctx context.Context, game *domain.Game) (bool, []string, error)
	Update(ctx context.Context, game *domain.Game) (bool, []string, error)
	Deactivate(ctx context.Context, id uuid.UUID) (bool, []string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
	GetAll(ctx context.Context) ([]domain.Game, error)
}

type gameService struct {
	newUnitOfWork db.UnitOfWorkFactory
	dbExecutor    repository.DBExecutor
	games         repository.GameRepository
}

// NewGameService creates a new GameService.
func NewGameService(newUnitOfWork db.UnitOfWorkFactory, dbExecutor repository.DBExecutor, games repository.GameRepository) GameService {
	return &gameService{
		newUnitOfWork: newUnitOfWork,
		dbExecutor:    dbExecutor,
		games:         games,
	}
}

// Add registers a new game after validating it and checking the name is not
// already taken.
func (s *gameService) Add(ctx context.Context, game *domain.Game) (bool, []string, error) {
	if messages := game.Validate(); len(messages) > 0 {
		return false, messages, nil
	}

	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, fmt.Errorf("add game: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	taken, err := s.games.ExistsByName(ctx, q, game.Name, game.ID)
	if err != nil {
		return false, nil, fmt.Errorf("add game: %w", err)
	}
	if taken {
		return false, []string{"a game with this name already exists"}, nil
	}

	if err := s.games.Create(ctx, q, game); err != nil {
		return false, nil, fmt.Errorf("add game: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("add game: %w", err)
	}
	return true, nil, nil
}

// Update modifies an existing game. Returns util.ErrNotFound when the game
// does not exist.
func (s *gameService) Update(ctx context.Context, game *domain.Game) (bool, []string, error) {
	if messages := game.Validate(); len(messages) > 0 {
		return false, messages, nil
	}

	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, fmt.Errorf("update game: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	current, err := s.games.GetByID(ctx, q, game.ID)
	if err != nil {
		return false, nil, err
	}

	taken, err := s.games.ExistsByName(ctx, q, game.Name, game.ID)
	if err != nil {
		return false, nil, fmt.Errorf("update game: %w", err)
	}
	if taken {
		return false, []string{"a game with this name already exists"}, nil
	}

	current.Name = game.Name
	current.Description = game.Description
	current.Price = game.Price
	current.IsActive = game.IsActive

	if err := s.games.Update(ctx, q, current); err != nil {
		return false, nil, err
	}
	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("update game: %w", err)
	}
	return true, nil, nil
}

// Deactivate soft-deletes a game so it stays referenced by past transactions
// but cannot be purchased anymore.
func (s *gameService) Deactivate(ctx context.Context, id uuid.UUID) (bool, []string, error) {
	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, fmt.Errorf("deactivate game: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	game, err := s.games.GetByID(ctx, q, id)
	if err != nil {
		return false, nil, err
	}
	if !game.IsActive {
		return false, []string{"game is already inactive"}, nil
	}

	game.IsActive = false
	if err := s.games.Update(ctx, q, game); err != nil {
		return false, nil, err
	}
	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("deactivate game: %w", err)
	}
	return true, nil, nil
}

func (s *gameService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	return s.games.GetByID(ctx, s.dbExecutor, id)
}

func (s *gameService) GetAll(ctx context.Context) ([]domain.Game, error) {
	return s.games.GetAll(ctx, s.dbExecutor)
}
