package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kyo1506/tec-challenge-fiap/internal/service"
	"github.com/kyo1506/tec-challenge-fiap/internal/util"
)

// LibraryHandler handles HTTP requests for user libraries.
type LibraryHandler struct {
	service service.UserLibraryService
	logger  *slog.Logger
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(svc service.UserLibraryService, logger *slog.Logger) *LibraryHandler {
	return &LibraryHandler{
		service: svc,
		logger:  logger,
	}
}

// ProvisionRequest represents the request body for provisioning a library.
type ProvisionRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// Provision handles the library provisioning request. It also creates the
// user's wallet when one does not exist yet.
// POST /libraries
func (h *LibraryHandler) Provision(w http.ResponseWriter, r *http.Request) {
	var req ProvisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	ok, messages, err := h.service.Provision(r.Context(), req.UserID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !ok {
		respondWithMessages(h.logger, w, messages)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message": "Library created",
	})
}

// Get handles the library lookup request.
// GET /libraries/{userID}
func (h *LibraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	library, err := h.service.GetByUserID(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"data": library,
	})
}
