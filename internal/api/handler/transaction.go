package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kyo1506/tec-challenge-fiap/internal/service"
	"github.com/kyo1506/tec-challenge-fiap/internal/util"
)

// TransactionHandler handles HTTP requests for wallet operations.
type TransactionHandler struct {
	service service.TransactionService
	logger  *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: svc,
		logger:  logger,
	}
}

// PurchaseRequest represents the request body for a purchase.
type PurchaseRequest struct {
	UserID          uuid.UUID  `json:"user_id"`
	GameID          uuid.UUID  `json:"game_id"`
	PromotionGameID *uuid.UUID `json:"promotion_game_id,omitempty"`
}

// Purchase handles the purchase request.
// POST /purchases
func (h *TransactionHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.UserID == uuid.Nil || req.GameID == uuid.Nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	result, err := h.service.ProcessPurchase(r.Context(), req.UserID, req.GameID, req.PromotionGameID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Purchase successful",
		"data":    result,
	})
}

// RefundRequest represents the request body for a refund.
type RefundRequest struct {
	UserID uuid.UUID `json:"user_id"`
	GameID uuid.UUID `json:"game_id"`
}

// Refund handles the refund request.
// POST /refunds
func (h *TransactionHandler) Refund(w http.ResponseWriter, r *http.Request) {
	var req RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.UserID == uuid.Nil || req.GameID == uuid.Nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	result, err := h.service.RefundPurchase(r.Context(), req.UserID, req.GameID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Refund successful",
		"data":    result,
	})
}

// AmountRequest represents the request body for deposit and withdrawal.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Deposit handles the deposit request.
// POST /wallets/{userID}/deposit
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	result, err := h.service.Deposit(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Deposit successful",
		"data":    result,
	})
}

// Withdraw handles the withdrawal request.
// POST /wallets/{userID}/withdraw
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	result, err := h.service.Withdraw(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Withdrawal successful",
		"data":    result,
	})
}

// GetWallet handles the wallet lookup request, including the transaction
// history.
// GET /wallets/{userID}
func (h *TransactionHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	wallet, err := h.service.GetWallet(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"data": wallet,
	})
}
