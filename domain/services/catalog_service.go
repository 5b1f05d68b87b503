package services

import (
	"context"
	"fmt"
	"time"

	"libraminds/domain/entities"
	"libraminds/domain/interfaces"
)

// catalogService implements catalog queries and book creation. The
// approved-category rule is enforced here so no caller can attach a book to
// a pending category.
type catalogService struct {
	bookRepo     interfaces.BookRepository
	categoryRepo interfaces.CategoryRepository
	now          func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	bookRepo interfaces.BookRepository,
	categoryRepo interfaces.CategoryRepository,
) interfaces.CatalogService {
	return &catalogService{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// AddBook inserts a book after verifying its category is approved
func (s *catalogService) AddBook(ctx context.Context, title, author, coverURL string, categoryID int64) (*entities.Book, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if !category.IsApproved() {
		return nil, ErrCategoryNotApproved
	}

	book := &entities.Book{
		Title:      title,
		Author:     author,
		CoverURL:   coverURL,
		CategoryID: categoryID,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// ListAvailable returns books not currently on loan
func (s *catalogService) ListAvailable(ctx context.Context) ([]*entities.Book, error) {
	books, err := s.bookRepo.GetAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available books: %w", err)
	}
	return books, nil
}

// ListBorrowedBy returns books on loan to a user
func (s *catalogService) ListBorrowedBy(ctx context.Context, userID int64) ([]*entities.Book, error) {
	books, err := s.bookRepo.GetBorrowedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list borrowed books: %w", err)
	}
	return books, nil
}

// ListOverdue returns books past their due date
func (s *catalogService) ListOverdue(ctx context.Context) ([]*entities.Book, error) {
	books, err := s.bookRepo.GetOverdue(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue books: %w", err)
	}
	return books, nil
}

// Search returns books matching a title/author query
func (s *catalogService) Search(ctx context.Context, query string, categoryID *int64) ([]*entities.Book, error) {
	books, err := s.bookRepo.Search(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return books, nil
}
