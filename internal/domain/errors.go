package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainError reports a business-rule violation: an invalid amount, a missing
// entity, a duplicate ownership. The message is safe to surface to callers.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a DomainError with the given message.
func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// InsufficientBalanceError is raised by purchase and withdrawal when the wallet
// cannot cover the required amount.
type InsufficientBalanceError struct {
	CurrentBalance decimal.Decimal
	RequiredAmount decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s, required %s",
		e.CurrentBalance.StringFixed(2), e.RequiredAmount.StringFixed(2))
}

// PromotionNotApplicableError is raised when a supplied promotion reference
// does not resolve, targets a different game, or is outside its sale window.
type PromotionNotApplicableError struct {
	GameID          uuid.UUID
	PromotionGameID uuid.UUID
}

func (e *PromotionNotApplicableError) Error() string {
	return fmt.Sprintf("promotion %s is not applicable to game %s", e.PromotionGameID, e.GameID)
}
