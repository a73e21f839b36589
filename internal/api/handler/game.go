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

// GameHandler handles HTTP requests for the game catalog.
type GameHandler struct {
	service service.GameService
	logger  *slog.Logger
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(svc service.GameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		service: svc,
		logger:  logger,
	}
}

// GameRequest represents the request body for creating and updating games.
type GameRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsActive    *bool           `json:"is_active,omitempty"`
	ReleaseDate string          `json:"release_date,omitempty"`
}

// Create handles the game creation request.
// POST /games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	game := domain.NewGame(req.Name, req.Description, req.Price, parseDate(req.ReleaseDate))

	ok, messages, err := h.service.Add(r.Context(), game)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !ok {
		respondWithMessages(h.logger, w, messages)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message": "Game created",
		"data":    game,
	})
}

// Update handles the game update request.
// PUT /games/{gameID}
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	game := &domain.Game{
		ID:          gameID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}

	ok, messages, err := h.service.Update(r.Context(), game)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !ok {
		respondWithMessages(h.logger, w, messages)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Game updated",
	})
}

// Deactivate handles the game deactivation request.
// DELETE /games/{gameID}
func (h *GameHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	ok, messages, err := h.service.Deactivate(r.Context(), gameID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !ok {
		respondWithMessages(h.logger, w, messages)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Game deactivated",
	})
}

// Get handles the game lookup request.
// GET /games/{gameID}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	game, err := h.service.GetByID(r.Context(), gameID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"data": game,
	})
}

// List handles the game listing request.
// GET /games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.GetAll(r.Context())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"data": games,
	})
}
