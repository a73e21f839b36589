package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
	"github.com/kyo1506/tec-challenge-fiap/internal/repository"
	"github.com/kyo1506/tec-challenge-fiap/pkg/db"
)

// UserLibraryService provisions and reads per-user game libraries. A library
// is always created together with a zero-balance wallet, so every user that
// can own games can also pay for them.
type UserLibraryService interface {
	Provision(ctx context.Context, userID uuid.UUID) (bool, []string, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Library, error)
}

type userLibraryService struct {
	newUnitOfWork db.UnitOfWorkFactory
	dbExecutor    repository.DBExecutor
	libraries     repository.LibraryRepository
	wallets       repository.WalletRepository
}

// NewUserLibraryService creates a new UserLibraryService.
func NewUserLibraryService(
	newUnitOfWork db.UnitOfWorkFactory,
	dbExecutor repository.DBExecutor,
	libraries repository.LibraryRepository,
	wallets repository.WalletRepository,
) UserLibraryService {
	return &userLibraryService{
		newUnitOfWork: newUnitOfWork,
		dbExecutor:    dbExecutor,
		libraries:     libraries,
		wallets:       wallets,
	}
}

// Provision creates a library and a wallet for a user. If the user already
// has a wallet from an earlier partial provisioning, only the missing library
// is created.
func (s *userLibraryService) Provision(ctx context.Context, userID uuid.UUID) (bool, []string, error) {
	if userID == uuid.Nil {
		return false, []string{"user id is required"}, nil
	}

	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, fmt.Errorf("provision library: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	hasLibrary, err := s.libraries.ExistsForUser(ctx, q, userID)
	if err != nil {
		return false, nil, fmt.Errorf("provision library: %w", err)
	}
	if hasLibrary {
		return false, []string{"user already has a library"}, nil
	}

	library := domain.NewLibrary(userID)
	if err := s.libraries.Create(ctx, q, library); err != nil {
		return false, nil, fmt.Errorf("provision library: %w", err)
	}

	hasWallet, err := s.wallets.ExistsForUser(ctx, q, userID)
	if err != nil {
		return false, nil, fmt.Errorf("provision library: %w", err)
	}
	if !hasWallet {
		wallet := domain.NewWallet(userID)
		if err := s.wallets.Create(ctx, q, wallet); err != nil {
			return false, nil, fmt.Errorf("provision library: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("provision library: %w", err)
	}
	return true, nil, nil
}

// GetByUserID returns the user's library with its items.
func (s *userLibraryService) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Library, error) {
	return s.libraries.GetByUserID(ctx, s.dbExecutor, userID)
}
