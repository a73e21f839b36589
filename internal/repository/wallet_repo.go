package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
)

// WalletRepository defines persistence for the wallet aggregate and its ledger.
type WalletRepository interface {
	// Create inserts a new wallet.
	Create(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetByUserID retrieves a user's wallet with its full transaction history,
	// oldest entry first.
	GetByUserID(ctx context.Context, q DBExecutor, userID uuid.UUID) (*domain.Wallet, error)
	// ExistsForUser reports whether the user already has a wallet.
	ExistsForUser(ctx context.Context, q DBExecutor, userID uuid.UUID) (bool, error)
	// UpdateBalance stores the wallet's new balance.
	UpdateBalance(ctx context.Context, q DBExecutor, walletID uuid.UUID, balance decimal.Decimal) error
	// CreateTransaction appends a ledger entry. Entries are never updated.
	CreateTransaction(ctx context.Context, q DBExecutor, entry *domain.WalletTransaction) error
}
