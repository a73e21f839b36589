package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is the aggregate root for a user's monetary account. The balance is
// mutated only through the operations below, each of which appends a matching
// ledger entry, so balance and history never diverge. Operations are pure
// in-memory state changes; the caller owns the transactional boundary and must
// persist the balance, the returned entry, and any library change together.
type Wallet struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`

	// Transactions is the append-only ledger, oldest entry first.
	Transactions []WalletTransaction `db:"-" json:"transactions,omitempty"`
}

// NewWallet creates an empty wallet for a user.
func NewWallet(userID uuid.UUID) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PurchaseGame debits the game's price, discounted when promotionGame is set,
// appends a purchase ledger entry and adds the game to the library at the
// price actually paid. It returns the created entry and library item so the
// caller can persist both alongside the balance change.
func (w *Wallet) PurchaseGame(game *Game, promotionGame *PromotionGame, library *Library) (*WalletTransaction, *LibraryItem, error) {
	finalPrice := game.Price
	if promotionGame != nil {
		finalPrice = promotionGame.DiscountedPrice(game.Price)
	}

	if finalPrice.LessThanOrEqual(decimal.Zero) {
		return nil, nil, NewDomainError("invalid purchase amount")
	}
	if w.Balance.LessThan(finalPrice) {
		return nil, nil, &InsufficientBalanceError{CurrentBalance: w.Balance, RequiredAmount: finalPrice}
	}

	w.Balance = w.Balance.Sub(finalPrice)

	description := fmt.Sprintf("Purchase: %s", game.Name)
	var promotionGameID *uuid.UUID
	if promotionGame != nil {
		description = fmt.Sprintf("Purchase: %s (%s%% off)", game.Name, promotionGame.DiscountPercentage.String())
		promotionGameID = &promotionGame.ID
	}

	gameID := game.ID
	entry := w.register(&gameID, promotionGameID, finalPrice.Neg(), TransactionPurchase, description)
	item := library.AddGame(game.ID, finalPrice)

	return entry, item, nil
}

// RefundGame credits refundAmount back to the wallet, appends a refund ledger
// entry and removes the game from the library. The caller supplies the amount,
// derived from the original purchase entry; the wallet does not look it up.
// The returned library item is nil when the game was not in the library.
func (w *Wallet) RefundGame(game *Game, refundAmount decimal.Decimal, library *Library) (*WalletTransaction, *LibraryItem, error) {
	if refundAmount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, NewDomainError("invalid refund amount")
	}

	w.Balance = w.Balance.Add(refundAmount)

	gameID := game.ID
	entry := w.register(&gameID, nil, refundAmount, TransactionRefund, fmt.Sprintf("Refund: %s", game.Name))
	item := library.RemoveGame(game.ID)

	return entry, item, nil
}

// Deposit credits amount to the wallet and appends a deposit ledger entry.
func (w *Wallet) Deposit(amount decimal.Decimal) (*WalletTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, NewDomainError("deposit amount must be positive")
	}

	w.Balance = w.Balance.Add(amount)
	return w.register(nil, nil, amount, TransactionDeposit, "Credit deposit"), nil
}

// Withdraw debits amount from the wallet and appends a withdrawal ledger entry.
func (w *Wallet) Withdraw(amount decimal.Decimal) (*WalletTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, NewDomainError("withdrawal amount must be positive")
	}
	if w.Balance.LessThan(amount) {
		return nil, &InsufficientBalanceError{CurrentBalance: w.Balance, RequiredAmount: amount}
	}

	w.Balance = w.Balance.Sub(amount)
	return w.register(nil, nil, amount.Neg(), TransactionWithdrawal, "Credits withdrawal"), nil
}

// FindRefundablePurchase returns the most recent purchase entry for gameID
// that has not been refunded since, or nil when no such entry exists. Walking
// the ledger newest-first makes the refund target deterministic when a game
// was bought, refunded and bought again.
func (w *Wallet) FindRefundablePurchase(gameID uuid.UUID) *WalletTransaction {
	for i := len(w.Transactions) - 1; i >= 0; i-- {
		t := &w.Transactions[i]
		if t.GameID == nil || *t.GameID != gameID {
			continue
		}
		switch t.Type {
		case TransactionRefund:
			// The latest purchase of this game was already refunded.
			return nil
		case TransactionPurchase:
			return t
		}
	}
	return nil
}

func (w *Wallet) register(
	gameID *uuid.UUID,
	promotionGameID *uuid.UUID,
	amount decimal.Decimal,
	txType TransactionType,
	description string,
) *WalletTransaction {
	entry := newWalletTransaction(w.ID, gameID, promotionGameID, amount, txType, description)
	w.Transactions = append(w.Transactions, *entry)
	w.UpdatedAt = time.Now().UTC()
	return &w.Transactions[len(w.Transactions)-1]
}
