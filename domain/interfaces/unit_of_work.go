package interfaces

import "context"

// UnitOfWork scopes a set of repository operations to a single database
// transaction. Each policy operation runs inside exactly one unit of work so
// its check-and-mutate sequence is atomic.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	BookRepository() BookRepository
	LoanRecordRepository() LoanRecordRepository
	CategoryRepository() CategoryRepository
	ReviewRepository() ReviewRepository
	WalletTransactionRepository() WalletTransactionRepository
	EventPublisher() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
