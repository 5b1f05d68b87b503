package repository

import (
	"context"
	"errors"
	"fmt"

	"libraminds/database"
	"libraminds/domain/events"
	"libraminds/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork bundles all repositories over a single pgx transaction. Events
// published during the transaction are buffered and only emitted on commit.
type unitOfWork struct {
	db  *database.DB
	bus *events.Bus

	tx        pgx.Tx
	txBus     *events.TransactionalBus
	userRepo  *UserRepository
	bookRepo  *BookRepository
	loanRepo  *LoanRecordRepository
	catRepo   *CategoryRepository
	revRepo   *ReviewRepository
	walletTxs *WalletTransactionRepository
}

// unitOfWorkFactory creates units of work bound to a pool and event bus
type unitOfWorkFactory struct {
	db  *database.DB
	bus *events.Bus
}

// NewUnitOfWorkFactory creates a unit of work factory
func NewUnitOfWorkFactory(db *database.DB, bus *events.Bus) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db, bus: bus}
}

// Create returns a fresh, unstarted unit of work
func (f *unitOfWorkFactory) Create() interfaces.UnitOfWork {
	return &unitOfWork{db: f.db, bus: f.bus}
}

// Begin starts the transaction and builds transaction-scoped repositories
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("unit of work already started")
	}

	tx, err := u.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.txBus = events.NewTransactionalBus(u.bus)
	u.userRepo = newUserRepository(tx)
	u.bookRepo = newBookRepository(tx)
	u.loanRepo = newLoanRecordRepository(tx)
	u.catRepo = newCategoryRepository(tx)
	u.revRepo = newReviewRepository(tx)
	u.walletTxs = newWalletTransactionRepository(tx)
	return nil
}

// Commit commits the transaction and flushes buffered events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return errors.New("unit of work not started")
	}
	if err := u.tx.Commit(context.Background()); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.txBus.Flush()
	u.tx = nil
	return nil
}

// Rollback aborts the transaction and discards buffered events. Safe to call
// after Commit, so callers can defer it unconditionally.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback(context.Background())
	u.txBus.Discard()
	u.tx = nil
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) mustBeStarted() {
	if u.tx == nil {
		panic("unit of work not started")
	}
}

func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	u.mustBeStarted()
	return u.userRepo
}

func (u *unitOfWork) BookRepository() interfaces.BookRepository {
	u.mustBeStarted()
	return u.bookRepo
}

func (u *unitOfWork) LoanRecordRepository() interfaces.LoanRecordRepository {
	u.mustBeStarted()
	return u.loanRepo
}

func (u *unitOfWork) CategoryRepository() interfaces.CategoryRepository {
	u.mustBeStarted()
	return u.catRepo
}

func (u *unitOfWork) ReviewRepository() interfaces.ReviewRepository {
	u.mustBeStarted()
	return u.revRepo
}

func (u *unitOfWork) WalletTransactionRepository() interfaces.WalletTransactionRepository {
	u.mustBeStarted()
	return u.walletTxs
}

func (u *unitOfWork) EventPublisher() interfaces.EventPublisher {
	u.mustBeStarted()
	return u.txBus
}
