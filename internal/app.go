package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "github.com/kyo1506/tec-challenge-fiap/internal/api"
	"github.com/kyo1506/tec-challenge-fiap/internal/api/handler"
	"github.com/kyo1506/tec-challenge-fiap/internal/config"
	"github.com/kyo1506/tec-challenge-fiap/internal/events"
	"github.com/kyo1506/tec-challenge-fiap/internal/repository"
	"github.com/kyo1506/tec-challenge-fiap/internal/repository/postgres"
	"github.com/kyo1506/tec-challenge-fiap/internal/service"
	"github.com/kyo1506/tec-challenge-fiap/internal/util"
	"github.com/kyo1506/tec-challenge-fiap/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	WalletRepository    repository.WalletRepository
	LibraryRepository   repository.LibraryRepository
	GameRepository      repository.GameRepository
	PromotionRepository repository.PromotionRepository

	// Messaging
	Publisher events.Publisher

	// Services
	TransactionService service.TransactionService
	GameService        service.GameService
	PromotionService   service.PromotionService
	UserLibraryService service.UserLibraryService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.WalletRepository = postgres.NewWalletRepository()
	app.LibraryRepository = postgres.NewLibraryRepository()
	app.GameRepository = postgres.NewGameRepository()
	app.PromotionRepository = postgres.NewPromotionRepository()
	app.Logger.Info("Repositories initialized.")

	// The broker is optional: without AMQP_URL the transaction service simply
	// skips publishing.
	if app.Config.AMQPURL != "" {
		publisher, err := events.NewRabbitMQPublisher(app.Config.AMQPURL, app.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		app.Publisher = publisher
	}

	newUnitOfWork := db.NewUnitOfWorkFactory(app.DB)

	app.TransactionService = service.NewTransactionService(
		newUnitOfWork,
		app.DB,
		app.WalletRepository,
		app.LibraryRepository,
		app.GameRepository,
		app.PromotionRepository,
		app.Publisher,
		app.Logger,
	)
	app.GameService = service.NewGameService(newUnitOfWork, app.DB, app.GameRepository)
	app.PromotionService = service.NewPromotionService(newUnitOfWork, app.DB, app.PromotionRepository, app.GameRepository)
	app.UserLibraryService = service.NewUserLibraryService(newUnitOfWork, app.DB, app.LibraryRepository, app.WalletRepository)
	app.Logger.Info("Services initialized.")

	transactionHandler := handler.NewTransactionHandler(app.TransactionService, app.Logger)
	gameHandler := handler.NewGameHandler(app.GameService, app.Logger)
	promotionHandler := handler.NewPromotionHandler(app.PromotionService, app.Logger)
	libraryHandler := handler.NewLibraryHandler(app.UserLibraryService, app.Logger)
	app.HTTPHandler = router.NewRouter(transactionHandler, gameHandler, promotionHandler, libraryHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")

	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			app.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}

	app.Logger.Info("Application shut down gracefully.")
	return nil
}
