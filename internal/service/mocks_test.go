package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/kyo1506/tec-challenge-fiap/internal/domain"
	"github.com/kyo1506/tec-challenge-fiap/internal/events"
	"github.com/kyo1506/tec-challenge-fiap/internal/repository"
	"github.com/kyo1506/tec-challenge-fiap/pkg/db"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockDBExecutor is a mock implementation of repository.DBExecutor. It also
// satisfies db.Queryer, so it doubles as the query surface a fake unit of
// work hands out.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockUnitOfWork is a mock implementation of db.UnitOfWork backed by a
// MockDBExecutor.
type MockUnitOfWork struct {
	mock.Mock
	Executor *MockDBExecutor
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{Executor: new(MockDBExecutor)}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	return m.Called().Error(0)
}

func (m *MockUnitOfWork) Rollback() {
	m.Called()
}

func (m *MockUnitOfWork) Tx() db.Queryer {
	return m.Executor
}

// Factory returns a db.UnitOfWorkFactory handing out this instance.
func (m *MockUnitOfWork) Factory() db.UnitOfWorkFactory {
	return func() db.UnitOfWork { return m }
}

// expectCommitted arms the mock for the happy path: one Begin, one Commit,
// and the deferred no-op Rollback.
func (m *MockUnitOfWork) expectCommitted() {
	m.On("Begin", mock.Anything).Return(nil)
	m.On("Commit").Return(nil)
	m.On("Rollback").Return()
}

// expectRolledBack arms the mock for a failing operation: Begin succeeds and
// only Rollback follows.
func (m *MockUnitOfWork) expectRolledBack() {
	m.On("Begin", mock.Anything).Return(nil)
	m.On("Rollback").Return()
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ExistsForUser(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWalletRepository) UpdateBalance(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID, balance decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, balance)
	return args.Error(0)
}

func (m *MockWalletRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, entry *domain.WalletTransaction) error {
	args := m.Called(ctx, q, entry)
	return args.Error(0)
}

// MockLibraryRepository is a mock implementation of repository.LibraryRepository.
type MockLibraryRepository struct {
	mock.Mock
}

func (m *MockLibraryRepository) Create(ctx context.Context, q repository.DBExecutor, library *domain.Library) error {
	args := m.Called(ctx, q, library)
	return args.Error(0)
}

func (m *MockLibraryRepository) GetByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (*domain.Library, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Library), args.Error(1)
}

func (m *MockLibraryRepository) ExistsForUser(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLibraryRepository) AddItem(ctx context.Context, q repository.DBExecutor, item *domain.LibraryItem) error {
	args := m.Called(ctx, q, item)
	return args.Error(0)
}

func (m *MockLibraryRepository) RemoveItem(ctx context.Context, q repository.DBExecutor, itemID uuid.UUID) error {
	args := m.Called(ctx, q, itemID)
	return args.Error(0)
}

// MockGameRepository is a mock implementation of repository.GameRepository.
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, q repository.DBExecutor, game *domain.Game) error {
	args := m.Called(ctx, q, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Game, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Game), args.Error(1)
}

func (m *MockGameRepository) GetAll(ctx context.Context, q repository.DBExecutor) ([]domain.Game, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Game), args.Error(1)
}

func (m *MockGameRepository) Update(ctx context.Context, q repository.DBExecutor, game *domain.Game) error {
	args := m.Called(ctx, q, game)
	return args.Error(0)
}

func (m *MockGameRepository) ExistsByName(ctx context.Context, q repository.DBExecutor, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockPromotionRepository is a mock implementation of repository.PromotionRepository.
type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) Create(ctx context.Context, q repository.DBExecutor, promotion *domain.Promotion) error {
	args := m.Called(ctx, q, promotion)
	return args.Error(0)
}

func (m *MockPromotionRepository) GetByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Promotion, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) GetAll(ctx context.Context, q repository.DBExecutor) ([]domain.Promotion, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) Update(ctx context.Context, q repository.DBExecutor, promotion *domain.Promotion) error {
	args := m.Called(ctx, q, promotion)
	return args.Error(0)
}

func (m *MockPromotionRepository) Delete(ctx context.Context, q repository.DBExecutor, id uuid.UUID) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockPromotionRepository) ExistsByName(ctx context.Context, q repository.DBExecutor, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromotionRepository) GetPromotionGameByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.PromotionGame, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PromotionGame), args.Error(1)
}

func (m *MockPromotionRepository) AddPromotionGame(ctx context.Context, q repository.DBExecutor, entry *domain.PromotionGame) error {
	args := m.Called(ctx, q, entry)
	return args.Error(0)
}

func (m *MockPromotionRepository) UpdatePromotionGame(ctx context.Context, q repository.DBExecutor, entry *domain.PromotionGame) error {
	args := m.Called(ctx, q, entry)
	return args.Error(0)
}

func (m *MockPromotionRepository) DeletePromotionGame(ctx context.Context, q repository.DBExecutor, id uuid.UUID) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockPromotionRepository) GameInPromotionWithin(ctx context.Context, q repository.DBExecutor, gameID uuid.UUID, start, end time.Time, excludePromotionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, gameID, start, end, excludePromotionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromotionRepository) PromotionGameHasTransactions(ctx context.Context, q repository.DBExecutor, promotionGameID uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, promotionGameID)
	return args.Bool(0), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event *events.WalletEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
