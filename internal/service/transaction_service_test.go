package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
	"github.com/kyo1506/tec-challenge-fiap/internal/events"
	"github.com/kyo1506/tec-challenge-fiap/internal/util"
)

type transactionServiceMocks struct {
	uow        *MockUnitOfWork
	wallets    *MockWalletRepository
	libraries  *MockLibraryRepository
	games      *MockGameRepository
	promotions *MockPromotionRepository
}

func newTransactionService(publisher events.Publisher) (TransactionService, *transactionServiceMocks) {
	m := &transactionServiceMocks{
		uow:        NewMockUnitOfWork(),
		wallets:    new(MockWalletRepository),
		libraries:  new(MockLibraryRepository),
		games:      new(MockGameRepository),
		promotions: new(MockPromotionRepository),
	}
	svc := NewTransactionService(
		m.uow.Factory(),
		new(MockDBExecutor),
		m.wallets,
		m.libraries,
		m.games,
		m.promotions,
		publisher,
		testLogger(),
	)
	return svc, m
}

func fundedWallet(t *testing.T, userID uuid.UUID, amount string) *domain.Wallet {
	t.Helper()
	wallet := domain.NewWallet(userID)
	_, err := wallet.Deposit(decimal.RequireFromString(amount))
	require.NoError(t, err)
	return wallet
}

func activeGame(name, price string) *domain.Game {
	return domain.NewGame(name, "", decimal.RequireFromString(price), time.Now().UTC())
}

func TestProcessPurchase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("SuccessfulFullPricePurchase", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "100.00")
		library := domain.NewLibrary(userID)
		game := activeGame("Hollow Knight", "50.00")

		m.uow.expectCommitted()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.libraries.On("GetByUserID", ctx, mock.Anything, userID).Return(library, nil)
		m.games.On("GetByID", ctx, mock.Anything, game.ID).Return(game, nil)
		m.wallets.On("UpdateBalance", ctx, mock.Anything, wallet.ID, mock.Anything).Return(nil)
		m.wallets.On("CreateTransaction", ctx, mock.Anything, mock.Anything).Return(nil)
		m.libraries.On("AddItem", ctx, mock.Anything, mock.Anything).Return(nil)

		result, err := svc.ProcessPurchase(ctx, userID, game.ID, nil)
		require.NoError(t, err)

		assert.Equal(t, "Hollow Knight", result.GameName)
		assert.Nil(t, result.DiscountPercentage)
		assert.True(t, result.Balance.Equal(decimal.RequireFromString("50.00")))

		m.uow.AssertCalled(t, "Commit")
		m.wallets.AssertExpectations(t)
		m.libraries.AssertExpectations(t)
	})

	t.Run("SuccessfulDiscountedPurchase", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "100.00")
		library := domain.NewLibrary(userID)
		game := activeGame("Celeste", "50.00")

		now := time.Now().UTC()
		promotion := domain.NewPromotion("Summer Sale", now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
		promotionGame := domain.NewPromotionGame(promotion.ID, game.ID, decimal.NewFromInt(20))
		promotionGame.Promotion = promotion

		m.uow.expectCommitted()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.libraries.On("GetByUserID", ctx, mock.Anything, userID).Return(library, nil)
		m.games.On("GetByID", ctx, mock.Anything, game.ID).Return(game, nil)
		m.promotions.On("GetPromotionGameByID", ctx, mock.Anything, promotionGame.ID).Return(promotionGame, nil)
		m.wallets.On("UpdateBalance", ctx, mock.Anything, wallet.ID, mock.Anything).Return(nil)
		m.wallets.On("CreateTransaction", ctx, mock.Anything, mock.Anything).Return(nil)
		m.libraries.On("AddItem", ctx, mock.Anything, mock.Anything).Return(nil)

		result, err := svc.ProcessPurchase(ctx, userID, game.ID, &promotionGame.ID)
		require.NoError(t, err)

		require.NotNil(t, result.DiscountPercentage)
		assert.True(t, result.DiscountPercentage.Equal(decimal.NewFromInt(20)))
		assert.True(t, result.Balance.Equal(decimal.RequireFromString("60.00")))
	})

	t.Run("InsufficientBalanceRollsBack", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "10.00")
		library := domain.NewLibrary(userID)
		game := activeGame("Factorio", "50.00")

		m.uow.expectRolledBack()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.libraries.On("GetByUserID", ctx, mock.Anything, userID).Return(library, nil)
		m.games.On("GetByID", ctx, mock.Anything, game.ID).Return(game, nil)

		result, err := svc.ProcessPurchase(ctx, userID, game.ID, nil)
		assert.Nil(t, result)

		var insufficientErr *domain.InsufficientBalanceError
		require.ErrorAs(t, err, &insufficientErr)

		m.uow.AssertNotCalled(t, "Commit")
		m.wallets.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RejectsGameAlreadyInLibrary", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "100.00")
		library := domain.NewLibrary(userID)
		game := activeGame("Hades", "25.00")
		library.AddGame(game.ID, decimal.RequireFromString("25.00"))

		m.uow.expectRolledBack()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.libraries.On("GetByUserID", ctx, mock.Anything, userID).Return(library, nil)
		m.games.On("GetByID", ctx, mock.Anything, game.ID).Return(game, nil)

		_, err := svc.ProcessPurchase(ctx, userID, game.ID, nil)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "game already in library", domainErr.Error())
	})

	t.Run("RejectsInactiveGame", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "100.00")
		library := domain.NewLibrary(userID)
		game := activeGame("Delisted Game", "25.00")
		game.IsActive = false

		m.uow.expectRolledBack()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.libraries.On("GetByUserID", ctx, mock.Anything, userID).Return(library, nil)
		m.games.On("GetByID", ctx, mock.Anything, game.ID).Return(game, nil)

		_, err := svc.ProcessPurchase(ctx, userID, game.ID, nil)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		m.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("RejectsPromotionForDifferentGame", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "100.00")
		library := domain.NewLibrary(userID)
		game := activeGame("Terraria", "10.00")

		now := time.Now().UTC()
		promotion := domain.NewPromotion("Summer Sale", now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
		promotionGame := domain.NewPromotionGame(promotion.ID, uuid.New(), decimal.NewFromInt(50))
		promotionGame.Promotion = promotion

		m.uow.expectRolledBack()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.libraries.On("GetByUserID", ctx, mock.Anything, userID).Return(library, nil)
		m.games.On("GetByID", ctx, mock.Anything, game.ID).Return(game, nil)
		m.promotions.On("GetPromotionGameByID", ctx, mock.Anything, promotionGame.ID).Return(promotionGame, nil)

		_, err := svc.ProcessPurchase(ctx, userID, game.ID, &promotionGame.ID)

		var promotionErr *domain.PromotionNotApplicableError
		require.ErrorAs(t, err, &promotionErr)
	})

	t.Run("RejectsExpiredPromotion", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "100.00")
		library := domain.NewLibrary(userID)
		game := activeGame("Noita", "10.00")

		now := time.Now().UTC()
		promotion := domain.NewPromotion("Last Winter Sale", now.AddDate(0, 0, -14), now.AddDate(0, 0, -7))
		promotionGame := domain.NewPromotionGame(promotion.ID, game.ID, decimal.NewFromInt(50))
		promotionGame.Promotion = promotion

		m.uow.expectRolledBack()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.libraries.On("GetByUserID", ctx, mock.Anything, userID).Return(library, nil)
		m.games.On("GetByID", ctx, mock.Anything, game.ID).Return(game, nil)
		m.promotions.On("GetPromotionGameByID", ctx, mock.Anything, promotionGame.ID).Return(promotionGame, nil)

		_, err := svc.ProcessPurchase(ctx, userID, game.ID, &promotionGame.ID)

		var promotionErr *domain.PromotionNotApplicableError
		require.ErrorAs(t, err, &promotionErr)
		m.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("WalletNotFound", func(t *testing.T) {
		svc, m := newTransactionService(nil)

		m.uow.expectRolledBack()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(nil, util.ErrNotFound)

		_, err := svc.ProcessPurchase(ctx, userID, uuid.New(), nil)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "wallet not found", domainErr.Error())
	})
}

func TestRefundPurchase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("SuccessfulRefund", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "100.00")
		library := domain.NewLibrary(userID)
		game := activeGame("Rimworld", "40.00")
		_, _, err := wallet.PurchaseGame(game, nil, library)
		require.NoError(t, err)
		itemID := library.Items[0].ID

		m.uow.expectCommitted()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.libraries.On("GetByUserID", ctx, mock.Anything, userID).Return(library, nil)
		m.games.On("GetByID", ctx, mock.Anything, game.ID).Return(game, nil)
		m.wallets.On("UpdateBalance", ctx, mock.Anything, wallet.ID, mock.Anything).Return(nil)
		m.wallets.On("CreateTransaction", ctx, mock.Anything, mock.Anything).Return(nil)
		m.libraries.On("RemoveItem", ctx, mock.Anything, itemID).Return(nil)

		result, err := svc.RefundPurchase(ctx, userID, game.ID)
		require.NoError(t, err)

		assert.True(t, result.RefundAmount.Equal(decimal.RequireFromString("40.00")))
		assert.True(t, result.NewBalance.Equal(decimal.RequireFromString("100.00")))
		m.libraries.AssertExpectations(t)
	})

	t.Run("RejectsRefundWithoutPurchase", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "100.00")
		library := domain.NewLibrary(userID)
		game := activeGame("Unowned Game", "40.00")

		m.uow.expectRolledBack()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.libraries.On("GetByUserID", ctx, mock.Anything, userID).Return(library, nil)
		m.games.On("GetByID", ctx, mock.Anything, game.ID).Return(game, nil)

		_, err := svc.RefundPurchase(ctx, userID, game.ID)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "purchase transaction not found", domainErr.Error())
	})

	t.Run("RejectsSecondRefund", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "100.00")
		library := domain.NewLibrary(userID)
		game := activeGame("Dwarf Fortress", "30.00")
		_, _, err := wallet.PurchaseGame(game, nil, library)
		require.NoError(t, err)
		_, _, err = wallet.RefundGame(game, decimal.RequireFromString("30.00"), library)
		require.NoError(t, err)

		m.uow.expectRolledBack()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.libraries.On("GetByUserID", ctx, mock.Anything, userID).Return(library, nil)
		m.games.On("GetByID", ctx, mock.Anything, game.ID).Return(game, nil)

		_, err = svc.RefundPurchase(ctx, userID, game.ID)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		m.uow.AssertNotCalled(t, "Commit")
	})
}

func TestDepositAndWithdraw(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("SuccessfulDepositPublishesEvent", func(t *testing.T) {
		publisher := new(MockPublisher)
		svc, m := newTransactionService(publisher)
		wallet := domain.NewWallet(userID)

		m.uow.expectCommitted()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.wallets.On("UpdateBalance", ctx, mock.Anything, wallet.ID, mock.Anything).Return(nil)
		m.wallets.On("CreateTransaction", ctx, mock.Anything, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(e *events.WalletEvent) bool {
			return e.Type == events.EventDepositCompleted && e.UserID == userID
		})).Return(nil)

		result, err := svc.Deposit(ctx, userID, decimal.RequireFromString("25.00"))
		require.NoError(t, err)

		assert.True(t, result.NewBalance.Equal(decimal.RequireFromString("25.00")))
		publisher.AssertExpectations(t)
	})

	t.Run("RejectsNegativeDeposit", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := domain.NewWallet(userID)

		m.uow.expectRolledBack()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)

		_, err := svc.Deposit(ctx, userID, decimal.RequireFromString("-5.00"))

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		m.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("WithdrawRejectsInsufficientBalance", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "10.00")

		m.uow.expectRolledBack()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)

		_, err := svc.Withdraw(ctx, userID, decimal.RequireFromString("50.00"))

		var insufficientErr *domain.InsufficientBalanceError
		require.ErrorAs(t, err, &insufficientErr)
	})

	t.Run("SuccessfulWithdrawal", func(t *testing.T) {
		svc, m := newTransactionService(nil)
		wallet := fundedWallet(t, userID, "100.00")

		m.uow.expectCommitted()
		m.wallets.On("GetByUserID", ctx, mock.Anything, userID).Return(wallet, nil)
		m.wallets.On("UpdateBalance", ctx, mock.Anything, wallet.ID, mock.Anything).Return(nil)
		m.wallets.On("CreateTransaction", ctx, mock.Anything, mock.Anything).Return(nil)

		result, err := svc.Withdraw(ctx, userID, decimal.RequireFromString("30.00"))
		require.NoError(t, err)
		assert.True(t, result.NewBalance.Equal(decimal.RequireFromString("70.00")))
	})
}
