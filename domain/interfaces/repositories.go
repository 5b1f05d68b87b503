package interfaces

import (
	"context"
	"time"

	"libraminds/domain/entities"
	"libraminds/domain/events"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID, returning nil when not found
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByUsername retrieves a user by username, returning nil when not found
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// Create creates a new user account with the given starting balance
	Create(ctx context.Context, username, name string, role entities.Role, startingCents int64) (*entities.User, error)

	// UpdateWallet sets a user's wallet and fine balances atomically
	UpdateWallet(ctx context.Context, userID, walletCents, fineCents int64) error

	// UpdateTier sets a user's membership tier
	UpdateTier(ctx context.Context, userID int64, tier entities.Tier) error

	// GetAll returns all users
	GetAll(ctx context.Context) ([]*entities.User, error)
}

// BookRepository defines the interface for catalog data access
type BookRepository interface {
	// GetByID retrieves a book by ID, returning nil when not found
	GetByID(ctx context.Context, id int64) (*entities.Book, error)

	// Create inserts a new book and fills its ID and timestamps
	Create(ctx context.Context, book *entities.Book) error

	// UpdateLending writes a book's lending and reservation fields
	UpdateLending(ctx context.Context, book *entities.Book) error

	// GetAvailable returns books not currently on loan
	GetAvailable(ctx context.Context) ([]*entities.Book, error)

	// GetBorrowedByUser returns books currently on loan to a user
	GetBorrowedByUser(ctx context.Context, userID int64) ([]*entities.Book, error)

	// CountBorrowedByUser returns the number of active loans held by a user
	CountBorrowedByUser(ctx context.Context, userID int64) (int, error)

	// CountReservedByUser returns the number of active reservations held by a user
	CountReservedByUser(ctx context.Context, userID int64) (int, error)

	// GetOverdue returns books on loan whose due date is before the given instant
	GetOverdue(ctx context.Context, asOf time.Time) ([]*entities.Book, error)

	// Search returns books matching a title/author substring, optionally
	// restricted to a category
	Search(ctx context.Context, query string, categoryID *int64) ([]*entities.Book, error)
}

// LoanRecordRepository defines the interface for the append-only loan history
type LoanRecordRepository interface {
	// Create appends a completed-loan record
	Create(ctx context.Context, record *entities.LoanRecord) error

	// GetByUser returns the most recent loan records for a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.LoanRecord, error)

	// GetByBook returns the most recent loan records for a book
	GetByBook(ctx context.Context, bookID int64, limit int) ([]*entities.LoanRecord, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// GetByID retrieves a category by ID, returning nil when not found
	GetByID(ctx context.Context, id int64) (*entities.Category, error)

	// Create inserts a new category and fills its ID and timestamps
	Create(ctx context.Context, category *entities.Category) error

	// UpdateStatus sets a category's approval status
	UpdateStatus(ctx context.Context, id int64, status entities.CategoryStatus) error

	// GetAll returns categories, optionally filtered by status
	GetAll(ctx context.Context, status *entities.CategoryStatus) ([]*entities.Category, error)
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	// Create inserts a new review and fills its ID and timestamp
	Create(ctx context.Context, review *entities.Review) error

	// GetByBook returns all reviews for a book, newest first
	GetByBook(ctx context.Context, bookID int64) ([]*entities.Review, error)

	// AverageRating returns the average rating and review count for a book
	AverageRating(ctx context.Context, bookID int64) (float64, int, error)
}

// WalletTransactionRepository defines the interface for wallet history tracking
type WalletTransactionRepository interface {
	// Record creates a new wallet transaction entry
	Record(ctx context.Context, tx *entities.WalletTransaction) error

	// GetByUser returns the most recent wallet transactions for a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.WalletTransaction, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}
