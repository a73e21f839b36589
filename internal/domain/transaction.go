package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType defines the kind of wallet ledger entry.
type TransactionType string

const (
	TransactionPurchase   TransactionType = "PURCHASE"
	TransactionRefund     TransactionType = "REFUND"
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
)

// WalletTransaction is an immutable ledger entry owned by exactly one wallet.
// Amounts are signed: negative for purchases and withdrawals, positive for
// deposits and refunds. Entries are created only through wallet operations and
// never mutated afterwards.
type WalletTransaction struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	WalletID        uuid.UUID       `db:"wallet_id" json:"wallet_id"`
	GameID          *uuid.UUID      `db:"game_id" json:"game_id,omitempty"`
	PromotionGameID *uuid.UUID      `db:"promotion_game_id" json:"promotion_game_id,omitempty"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Type            TransactionType `db:"type" json:"type"`
	Description     string          `db:"description" json:"description"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

func newWalletTransaction(
	walletID uuid.UUID,
	gameID *uuid.UUID,
	promotionGameID *uuid.UUID,
	amount decimal.Decimal,
	txType TransactionType,
	description string,
) *WalletTransaction {
	return &WalletTransaction{
		ID:              uuid.New(),
		WalletID:        walletID,
		GameID:          gameID,
		PromotionGameID: promotionGameID,
		Amount:          amount,
		Type:            txType,
		Description:     description,
		CreatedAt:       time.Now().UTC(),
	}
}
