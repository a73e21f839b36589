package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
	"github.com/kyo1506/tec-challenge-fiap/internal/service"
	"github.com/kyo1506/tec-challenge-fiap/internal/util"
)

// PromotionHandler handles HTTP requests for promotions and games on sale.
type PromotionHandler struct {
	service service.PromotionService
	logger  *slog.Logger
}

// NewPromotionHandler creates a new PromotionHandler.
func NewPromotionHandler(svc service.PromotionService, logger *slog.Logger) *PromotionHandler {
	return &PromotionHandler{
		service: svc,
		logger:  logger,
	}
}

// PromotionGameRequest represents one game on sale inside a promotion request.
type PromotionGameRequest struct {
	GameID             uuid.UUID       `json:"game_id"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// PromotionRequest represents the request body for creating and updating
// promotions.
type PromotionRequest struct {
	Name        string                 `json:"name"`
	StartDate   string                 `json:"start_date"`
	EndDate     string                 `json:"end_date"`
	GamesOnSale []PromotionGameRequest `json:"games_on_sale,omitempty"`
}

// Create handles the promotion creation request.
// POST /promotions
func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	promotion := domain.NewPromotion(req.Name, parseDate(req.StartDate), parseDate(req.EndDate))
	for _, entry := range req.GamesOnSale {
		promotion.GamesOnSale = append(promotion.GamesOnSale,
			*domain.NewPromotionGame(promotion.ID, entry.GameID, entry.DiscountPercentage))
	}

	ok, messages, err := h.service.Add(r.Context(), promotion)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !ok {
		respondWithMessages(h.logger, w, messages)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message": "Promotion created",
		"data":    promotion,
	})
}

// Update handles the promotion update request.
// PUT /promotions/{promotionID}
func (h *PromotionHandler) Update(w http.ResponseWriter, r *http.Request) {
	promotionID, err := uuid.Parse(chi.URLParam(r, "promotionID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req PromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	promotion := &domain.Promotion{
		ID:        promotionID,
		Name:      req.Name,
		StartDate: parseDate(req.StartDate),
		EndDate:   parseDate(req.EndDate),
	}

	ok, messages, err := h.service.Update(r.Context(), promotion)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !ok {
		respondWithMessages(h.logger, w, messages)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Promotion updated",
	})
}

// Delete handles the promotion deletion request.
// DELETE /promotions/{promotionID}
func (h *PromotionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	promotionID, err := uuid.Parse(chi.URLParam(r, "promotionID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	ok, messages, err := h.service.Delete(r.Context(), promotionID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !ok {
		respondWithMessages(h.logger, w, messages)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Promotion deleted",
	})
}

// Get handles the promotion lookup request.
// GET /promotions/{promotionID}
func (h *PromotionHandler) Get(w http.ResponseWriter, r *http.Request) {
	promotionID, err := uuid.Parse(chi.URLParam(r, "promotionID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	promotion, err := h.service.GetByID(r.Context(), promotionID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"data": promotion,
	})
}

// List handles the promotion listing request.
// GET /promotions
func (h *PromotionHandler) List(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.service.GetAll(r.Context())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"data": promotions,
	})
}

// AddGamesRequest represents the request body for adding games to a
// promotion.
type AddGamesRequest struct {
	GamesOnSale []PromotionGameRequest `json:"games_on_sale"`
}

// AddGames handles the request to put more games on sale in a promotion.
// POST /promotions/{promotionID}/games
func (h *PromotionHandler) AddGames(w http.ResponseWriter, r *http.Request) {
	promotionID, err := uuid.Parse(chi.URLParam(r, "promotionID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req AddGamesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if len(req.GamesOnSale) == 0 {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	entries := make([]domain.PromotionGame, 0, len(req.GamesOnSale))
	for _, entry := range req.GamesOnSale {
		entries = append(entries, *domain.NewPromotionGame(promotionID, entry.GameID, entry.DiscountPercentage))
	}

	ok, messages, err := h.service.AddGamesOnSale(r.Context(), promotionID, entries)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !ok {
		respondWithMessages(h.logger, w, messages)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Games added to promotion",
	})
}

// DiscountRequest represents the request body for changing a discount.
type DiscountRequest struct {
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// UpdateGame handles the request to change the discount of a game on sale.
// PUT /promotion-games/{promotionGameID}
func (h *PromotionHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	promotionGameID, err := uuid.Parse(chi.URLParam(r, "promotionGameID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req DiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	entry := &domain.PromotionGame{
		ID:                 promotionGameID,
		DiscountPercentage: req.DiscountPercentage,
	}

	ok, messages, err := h.service.UpdatePromotionGame(r.Context(), entry)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !ok {
		respondWithMessages(h.logger, w, messages)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Discount updated",
	})
}

// DeleteGame handles the request to take a game off sale.
// DELETE /promotion-games/{promotionGameID}
func (h *PromotionHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	promotionGameID, err := uuid.Parse(chi.URLParam(r, "promotionGameID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	ok, messages, err := h.service.DeletePromotionGame(r.Context(), promotionGameID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !ok {
		respondWithMessages(h.logger, w, messages)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Game removed from promotion",
	})
}
