package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
	"github.com/kyo1506/tec-challenge-fiap/internal/util"
)

// DefaultTimeout is the per-request timeout applied by the router.
const DefaultTimeout = 60 * time.Second

// respondWithJSON sends a JSON response.
func respondWithJSON(logger *slog.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service and domain errors to HTTP status codes.
func respondWithError(logger *slog.Logger, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	var domainErr *domain.DomainError
	var insufficientErr *domain.InsufficientBalanceError
	var promotionErr *domain.PromotionNotApplicableError

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case errors.As(err, &insufficientErr):
		statusCode = http.StatusPaymentRequired
		message = insufficientErr.Error()
	case errors.As(err, &promotionErr):
		statusCode = http.StatusUnprocessableEntity
		message = promotionErr.Error()
	case errors.As(err, &domainErr):
		statusCode = http.StatusBadRequest
		message = domainErr.Error()
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(logger, w, statusCode, map[string]string{"error": message})
}

// respondWithMessages reports business-rule violations collected by the
// catalog services.
func respondWithMessages(logger *slog.Logger, w http.ResponseWriter, messages []string) {
	respondWithJSON(logger, w, http.StatusBadRequest, map[string][]string{"errors": messages})
}

// parseDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date. It
// returns the zero time when the value is empty or malformed.
func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t
	}
	return time.Time{}
}
