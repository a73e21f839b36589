package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
	"github.com/kyo1506/tec-challenge-fiap/internal/events"
	"github.com/kyo1506/tec-challenge-fiap/internal/repository"
	"github.com/kyo1506/tec-challenge-fiap/internal/util"
	"github.com/kyo1506/tec-challenge-fiap/pkg/db"
)

// PurchaseResult is returned to callers after a successful purchase.
type PurchaseResult struct {
	GameName           string           `json:"game_name"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	Price              decimal.Decimal  `json:"price"`
	Balance            decimal.Decimal  `json:"balance"`
}

// RefundResult is returned to callers after a successful refund.
type RefundResult struct {
	GameName     string          `json:"game_name"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	NewBalance   decimal.Decimal `json:"new_balance"`
}

// BalanceResult is returned to callers after a deposit or withdrawal.
type BalanceResult struct {
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// TransactionService orchestrates money movement across the wallet, library
// and catalog aggregates. Every method is a single unit of work: begin, load
// aggregates, invoke the domain operation, persist, commit. Any failure rolls
// back and the original error is returned untouched so callers can map the
// error kind to a status.
type TransactionService interface {
	ProcessPurchase(ctx context.Context, userID, gameID uuid.UUID, promotionGameID *uuid.UUID) (*PurchaseResult, error)
	RefundPurchase(ctx context.Context, userID, gameID uuid.UUID) (*RefundResult, error)
	Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*BalanceResult, error)
	Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*BalanceResult, error)
	GetWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
}

type transactionService struct {
	newUnitOfWork db.UnitOfWorkFactory
	dbExecutor    repository.DBExecutor
	wallets       repository.WalletRepository
	libraries     repository.LibraryRepository
	games         repository.GameRepository
	promotions    repository.PromotionRepository
	publisher     events.Publisher
	logger        *slog.Logger
}

// NewTransactionService creates a new TransactionService. publisher may be
// nil, in which case committed operations are not announced.
func NewTransactionService(
	newUnitOfWork db.UnitOfWorkFactory,
	dbExecutor repository.DBExecutor,
	wallets repository.WalletRepository,
	libraries repository.LibraryRepository,
	games repository.GameRepository,
	promotions repository.PromotionRepository,
	publisher events.Publisher,
	logger *slog.Logger,
) TransactionService {
	return &transactionService{
		newUnitOfWork: newUnitOfWork,
		dbExecutor:    dbExecutor,
		wallets:       wallets,
		libraries:     libraries,
		games:         games,
		promotions:    promotions,
		publisher:     publisher,
		logger:        logger,
	}
}

// ProcessPurchase buys a game for a user, applying the given promotion entry
// when one is supplied.
func (s *transactionService) ProcessPurchase(ctx context.Context, userID, gameID uuid.UUID, promotionGameID *uuid.UUID) (*PurchaseResult, error) {
	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	wallet, err := s.wallets.GetByUserID(ctx, q, userID)
	if err != nil {
		return nil, notFoundAs(err, "wallet not found")
	}
	library, err := s.libraries.GetByUserID(ctx, q, userID)
	if err != nil {
		return nil, notFoundAs(err, "library not found")
	}
	game, err := s.games.GetByID(ctx, q, gameID)
	if err != nil {
		return nil, notFoundAs(err, "game not found")
	}

	// Duplicate ownership is a service rule: the library itself appends
	// unconditionally.
	if library.Contains(gameID) {
		return nil, domain.NewDomainError("game already in library")
	}
	if !game.IsActive {
		return nil, domain.NewDomainError("game is not available for purchase")
	}

	var promotionGame *domain.PromotionGame
	if promotionGameID != nil {
		promotionGame, err = s.resolvePromotionGame(ctx, q, gameID, *promotionGameID)
		if err != nil {
			return nil, err
		}
	}

	entry, item, err := wallet.PurchaseGame(game, promotionGame, library)
	if err != nil {
		return nil, err
	}

	if err := s.persistWalletChange(ctx, q, wallet, entry); err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}
	if err := s.libraries.AddItem(ctx, q, item); err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}

	s.publish(ctx, events.NewWalletEvent(events.EventPurchaseCompleted, userID, &gameID, entry.Amount, wallet.Balance))

	result := &PurchaseResult{
		GameName: game.Name,
		Price:    game.Price,
		Balance:  wallet.Balance,
	}
	if promotionGame != nil {
		discount := promotionGame.DiscountPercentage
		result.DiscountPercentage = &discount
	}
	return result, nil
}

// RefundPurchase reverses a user's most recent unrefunded purchase of a game,
// crediting back the amount actually paid and removing the game from the
// library.
func (s *transactionService) RefundPurchase(ctx context.Context, userID, gameID uuid.UUID) (*RefundResult, error) {
	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("refund: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	wallet, err := s.wallets.GetByUserID(ctx, q, userID)
	if err != nil {
		return nil, notFoundAs(err, "wallet not found")
	}
	library, err := s.libraries.GetByUserID(ctx, q, userID)
	if err != nil {
		return nil, notFoundAs(err, "library not found")
	}
	game, err := s.games.GetByID(ctx, q, gameID)
	if err != nil {
		return nil, notFoundAs(err, "game not found")
	}

	original := wallet.FindRefundablePurchase(gameID)
	if original == nil {
		return nil, domain.NewDomainError("purchase transaction not found")
	}
	refundAmount := original.Amount.Abs()

	entry, removed, err := wallet.RefundGame(game, refundAmount, library)
	if err != nil {
		return nil, err
	}

	if err := s.persistWalletChange(ctx, q, wallet, entry); err != nil {
		return nil, fmt.Errorf("refund: %w", err)
	}
	if removed != nil {
		if err := s.libraries.RemoveItem(ctx, q, removed.ID); err != nil {
			return nil, fmt.Errorf("refund: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("refund: %w", err)
	}

	s.publish(ctx, events.NewWalletEvent(events.EventRefundCompleted, userID, &gameID, entry.Amount, wallet.Balance))

	return &RefundResult{
		GameName:     game.Name,
		RefundAmount: refundAmount,
		NewBalance:   wallet.Balance,
	}, nil
}

// Deposit credits amount to a user's wallet.
func (s *transactionService) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*BalanceResult, error) {
	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	wallet, err := s.wallets.GetByUserID(ctx, q, userID)
	if err != nil {
		return nil, notFoundAs(err, "wallet not found")
	}

	entry, err := wallet.Deposit(amount)
	if err != nil {
		return nil, err
	}

	if err := s.persistWalletChange(ctx, q, wallet, entry); err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}

	s.publish(ctx, events.NewWalletEvent(events.EventDepositCompleted, userID, nil, entry.Amount, wallet.Balance))

	return &BalanceResult{Amount: amount, NewBalance: wallet.Balance}, nil
}

// Withdraw debits amount from a user's wallet.
func (s *transactionService) Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*BalanceResult, error) {
	uow := s.newUnitOfWork()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}
	defer uow.Rollback()
	var q repository.DBExecutor = uow.Tx()

	wallet, err := s.wallets.GetByUserID(ctx, q, userID)
	if err != nil {
		return nil, notFoundAs(err, "wallet not found")
	}

	entry, err := wallet.Withdraw(amount)
	if err != nil {
		return nil, err
	}

	if err := s.persistWalletChange(ctx, q, wallet, entry); err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}

	s.publish(ctx, events.NewWalletEvent(events.EventWithdrawalCompleted, userID, nil, entry.Amount, wallet.Balance))

	return &BalanceResult{Amount: amount, NewBalance: wallet.Balance}, nil
}

// GetWallet retrieves a user's wallet with its transaction history. Read-only,
// so it runs outside a unit of work.
func (s *transactionService) GetWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	return s.wallets.GetByUserID(ctx, s.dbExecutor, userID)
}

// resolvePromotionGame validates a supplied promotion reference: it must
// exist, target the purchased game, and still be inside its sale window. An
// offer that expired between browse and checkout must not discount the sale.
func (s *transactionService) resolvePromotionGame(ctx context.Context, q repository.DBExecutor, gameID, promotionGameID uuid.UUID) (*domain.PromotionGame, error) {
	notApplicable := &domain.PromotionNotApplicableError{GameID: gameID, PromotionGameID: promotionGameID}

	promotionGame, err := s.promotions.GetPromotionGameByID(ctx, q, promotionGameID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, notApplicable
		}
		return nil, err
	}
	if promotionGame.GameID != gameID {
		return nil, notApplicable
	}
	if promotionGame.Promotion != nil && !promotionGame.Promotion.ActiveOn(time.Now().UTC()) {
		return nil, notApplicable
	}
	return promotionGame, nil
}

// persistWalletChange stores the new balance and the ledger entry produced by
// a wallet operation. Both run on the same transaction, so either both land
// or neither does.
func (s *transactionService) persistWalletChange(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet, entry *domain.WalletTransaction) error {
	if err := s.wallets.UpdateBalance(ctx, q, wallet.ID, wallet.Balance); err != nil {
		return err
	}
	return s.wallets.CreateTransaction(ctx, q, entry)
}

func (s *transactionService) publish(ctx context.Context, event *events.WalletEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish wallet event", "type", event.Type, "error", err)
	}
}

// notFoundAs converts a repository not-found into the distinct domain message
// callers rely on; other errors pass through unchanged.
func notFoundAs(err error, message string) error {
	if errors.Is(err, util.ErrNotFound) {
		return domain.NewDomainError(message)
	}
	return err
}
