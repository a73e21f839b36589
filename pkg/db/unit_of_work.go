package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Queryer is the query surface a unit of work exposes while its transaction is
// open. *sqlx.Tx implements it, and the method set matches the executor
// interface repositories accept, so values flow straight into repository calls.
type Queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

var (
	// ErrTransactionInProgress signals a programming error: Begin was called
	// while the instance's previous transaction was still open.
	ErrTransactionInProgress = errors.New("a transaction is already in progress")

	// ErrNoTransaction signals Commit without a matching Begin.
	ErrNoTransaction = errors.New("no transaction active")
)

// UnitOfWork is the transactional boundary for multi-aggregate changes: either
// everything executed through Tx commits together or nothing does. An instance
// guards a single operation; services obtain a fresh one per call through a
// UnitOfWorkFactory.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback()
	Tx() Queryer
}

// UnitOfWorkFactory produces a fresh unit of work per operation. It is
// injected into services so tests can substitute fakes.
type UnitOfWorkFactory func() UnitOfWork

type sqlxUnitOfWork struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

// NewUnitOfWork returns a unit of work over the given connection pool.
func NewUnitOfWork(db *sqlx.DB) UnitOfWork {
	return &sqlxUnitOfWork{db: db}
}

// NewUnitOfWorkFactory returns a factory bound to the given connection pool.
func NewUnitOfWorkFactory(db *sqlx.DB) UnitOfWorkFactory {
	return func() UnitOfWork { return NewUnitOfWork(db) }
}

func (u *sqlxUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTransactionInProgress
	}

	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	u.tx = tx
	return nil
}

func (u *sqlxUnitOfWork) Commit() error {
	if u.tx == nil {
		return ErrNoTransaction
	}

	err := u.tx.Commit()
	u.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the open transaction. It is a no-op after Commit or a prior
// Rollback, so it is safe to defer.
func (u *sqlxUnitOfWork) Rollback() {
	if u.tx == nil {
		return
	}
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("failed to roll back transaction", "error", err)
	}
	u.tx = nil
}

// Tx returns the active transaction, or nil when none is open.
func (u *sqlxUnitOfWork) Tx() Queryer {
	if u.tx == nil {
		return nil
	}
	return u.tx
}
