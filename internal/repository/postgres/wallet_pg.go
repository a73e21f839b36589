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

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository() repository.WalletRepository {
	return &WalletRepository{}
}

func (r *WalletRepository) Create(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO user_wallets (id, user_id, balance, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := q.ExecContext(ctx, query, wallet.ID, wallet.UserID, wallet.Balance, wallet.CreatedAt, wallet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetByUserID loads the wallet and its full ledger, oldest entry first, so
// domain operations see a consistent history.
func (r *WalletRepository) GetByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT id, user_id, balance, created_at, updated_at FROM user_wallets WHERE user_id = $1`
	err := q.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet for user %s: %w", userID, err)
	}

	txQuery := `SELECT id, wallet_id, game_id, promotion_game_id, amount, type, description, created_at
                FROM wallet_transactions
                WHERE wallet_id = $1
                ORDER BY created_at, id`
	err = q.SelectContext(ctx, &wallet.Transactions, txQuery, wallet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for wallet %s: %w", wallet.ID, err)
	}

	return &wallet, nil
}

func (r *WalletRepository) ExistsForUser(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM user_wallets WHERE user_id = $1)`
	if err := q.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("failed to check wallet existence for user %s: %w", userID, err)
	}
	return exists, nil
}

func (r *WalletRepository) UpdateBalance(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE user_wallets SET balance = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, balance, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to update balance for wallet %s: %w", walletID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for wallet %s: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *WalletRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, entry *domain.WalletTransaction) error {
	query := `INSERT INTO wallet_transactions (id, wallet_id, game_id, promotion_game_id, amount, type, description, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.ExecContext(ctx, query,
		entry.ID,
		entry.WalletID,
		entry.GameID,
		entry.PromotionGameID,
		entry.Amount,
		entry.Type,
		entry.Description,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create wallet transaction: %w", err)
	}
	return nil
}
