package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kyo1506/tec-challenge-fiap/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	transactionHandler *handler.TransactionHandler,
	gameHandler *handler.GameHandler,
	promotionHandler *handler.PromotionHandler,
	libraryHandler *handler.LibraryHandler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/wallets", func(r chi.Router) {
		r.Get("/{userID}", transactionHandler.GetWallet)
		r.Post("/{userID}/deposit", transactionHandler.Deposit)
		r.Post("/{userID}/withdraw", transactionHandler.Withdraw)
	})

	// Purchases and refunds involve the wallet, the library and the catalog,
	// so they get top-level endpoints.
	r.Post("/purchases", transactionHandler.Purchase)
	r.Post("/refunds", transactionHandler.Refund)

	r.Route("/games", func(r chi.Router) {
		r.Post("/", gameHandler.Create)
		r.Get("/", gameHandler.List)
		r.Get("/{gameID}", gameHandler.Get)
		r.Put("/{gameID}", gameHandler.Update)
		r.Delete("/{gameID}", gameHandler.Deactivate)
	})

	r.Route("/promotions", func(r chi.Router) {
		r.Post("/", promotionHandler.Create)
		r.Get("/", promotionHandler.List)
		r.Get("/{promotionID}", promotionHandler.Get)
		r.Put("/{promotionID}", promotionHandler.Update)
		r.Delete("/{promotionID}", promotionHandler.Delete)
		r.Post("/{promotionID}/games", promotionHandler.AddGames)
	})

	r.Route("/promotion-games", func(r chi.Router) {
		r.Put("/{promotionGameID}", promotionHandler.UpdateGame)
		r.Delete("/{promotionGameID}", promotionHandler.DeleteGame)
	})

	r.Route("/libraries", func(r chi.Router) {
		r.Post("/", libraryHandler.Provision)
		r.Get("/{userID}", libraryHandler.Get)
	})

	return r
}
