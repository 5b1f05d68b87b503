package interfaces

import (
	"context"

	"libraminds/domain/entities"
)

// LendingService defines the lending policy operations
type LendingService interface {
	// Borrow authorizes and opens a loan, returning the computed due date
	Borrow(ctx context.Context, userID, bookID int64) (*entities.BorrowReceipt, error)

	// Return closes a loan, assesses any overdue fine against the borrower
	// and appends the loan record
	Return(ctx context.Context, bookID int64) (*entities.ReturnReceipt, error)

	// Reserve places a reservation on a book currently on loan to someone else
	Reserve(ctx context.Context, userID, bookID int64) error

	// CancelReservation removes the caller's reservation from a book
	CancelReservation(ctx context.Context, userID, bookID int64) error
}

// WalletService defines the wallet and membership operations
type WalletService interface {
	// AddFunds credits a positive amount to a user's wallet
	AddFunds(ctx context.Context, userID, amountCents int64) (*entities.WalletStatement, error)

	// PayFine debits the wallet and reduces the fine balance, clamped at zero
	PayFine(ctx context.Context, userID, amountCents int64) (*entities.WalletStatement, error)

	// UpgradeTier charges the target tier's cost and switches the membership
	UpgradeTier(ctx context.Context, userID int64, tier entities.Tier) (*entities.WalletStatement, error)
}

// CatalogService defines catalog queries and book creation
type CatalogService interface {
	// AddBook inserts a book after verifying its category is approved
	AddBook(ctx context.Context, title, author, coverURL string, categoryID int64) (*entities.Book, error)

	// ListAvailable returns books not currently on loan
	ListAvailable(ctx context.Context) ([]*entities.Book, error)

	// ListBorrowedBy returns books on loan to a user
	ListBorrowedBy(ctx context.Context, userID int64) ([]*entities.Book, error)

	// ListOverdue returns books past their due date
	ListOverdue(ctx context.Context) ([]*entities.Book, error)

	// Search returns books matching a title/author query
	Search(ctx context.Context, query string, categoryID *int64) ([]*entities.Book, error)
}

// CategoryService defines the category approval workflow
type CategoryService interface {
	// CreateCategory creates a category in pending status
	CreateCategory(ctx context.Context, name string, createdBy int64) (*entities.Category, error)

	// ApproveCategory transitions a category to approved
	ApproveCategory(ctx context.Context, categoryID int64) (*entities.Category, error)

	// ListCategories returns categories, optionally filtered by status
	ListCategories(ctx context.Context, status *entities.CategoryStatus) ([]*entities.Category, error)
}

// ReviewService defines book review operations
type ReviewService interface {
	// AddReview stores a review and returns the book's recomputed average
	AddReview(ctx context.Context, bookID, userID int64, rating int, comment string) (*entities.ReviewSummary, error)

	// ListByBook returns all reviews for a book
	ListByBook(ctx context.Context, bookID int64) ([]*entities.Review, error)
}
