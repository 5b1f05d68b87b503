package repository

import (
	"context"
	"fmt"
	"time"

	"libraminds/database"
	"libraminds/domain/entities"

	"github.com/jackc/pgx/v5"
)

const bookColumns = `id, title, author, category_id, cover_url, borrowed_by, borrow_date, due_date, reserved_by, created_at, updated_at`

// BookRepository implements the BookRepository interface over Postgres
type BookRepository struct {
	q Queryable
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *database.DB) *BookRepository {
	return &BookRepository{q: db.Pool}
}

func newBookRepository(q Queryable) *BookRepository {
	return &BookRepository{q: q}
}

func scanBook(row pgx.Row) (*entities.Book, error) {
	var book entities.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.CategoryID,
		&book.CoverURL,
		&book.BorrowedBy,
		&book.BorrowDate,
		&book.DueDate,
		&book.ReservedBy,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *BookRepository) queryBooks(ctx context.Context, query string, args ...any) ([]*entities.Book, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*entities.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// GetByID retrieves a book by ID, returning nil when not found
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*entities.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)

	book, err := scanBook(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return book, nil
}

// Create inserts a new book and fills its ID and timestamps
func (r *BookRepository) Create(ctx context.Context, book *entities.Book) error {
	query := `
		INSERT INTO books (title, author, category_id, cover_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.q.QueryRow(ctx, query, book.Title, book.Author, book.CategoryID, book.CoverURL).Scan(
		&book.ID,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create book %q: %w", book.Title, err)
	}
	return nil
}

// UpdateLending writes a book's lending and reservation fields
func (r *BookRepository) UpdateLending(ctx context.Context, book *entities.Book) error {
	query := `
		UPDATE books
		SET borrowed_by = $1, borrow_date = $2, due_date = $3, reserved_by = $4, updated_at = NOW()
		WHERE id = $5
	`
	result, err := r.q.Exec(ctx, query,
		book.BorrowedBy, book.BorrowDate, book.DueDate, book.ReservedBy, book.ID)
	if err != nil {
		return fmt.Errorf("failed to update lending state for book %d: %w", book.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %d not found", book.ID)
	}
	return nil
}

// GetAvailable returns books not currently on loan
func (r *BookRepository) GetAvailable(ctx context.Context) ([]*entities.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM books
		WHERE borrowed_by IS NULL
		ORDER BY title, author
	`, bookColumns)

	books, err := r.queryBooks(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get available books: %w", err)
	}
	return books, nil
}

// GetBorrowedByUser returns books currently on loan to a user
func (r *BookRepository) GetBorrowedByUser(ctx context.Context, userID int64) ([]*entities.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM books
		WHERE borrowed_by = $1
		ORDER BY due_date
	`, bookColumns)

	books, err := r.queryBooks(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get books borrowed by user %d: %w", userID, err)
	}
	return books, nil
}

// CountBorrowedByUser returns the number of active loans held by a user
func (r *BookRepository) CountBorrowedByUser(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM books WHERE borrowed_by = $1`

	var count int
	if err := r.q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count loans for user %d: %w", userID, err)
	}
	return count, nil
}

// CountReservedByUser returns the number of active reservations held by a user
func (r *BookRepository) CountReservedByUser(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM books WHERE reserved_by = $1`

	var count int
	if err := r.q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reservations for user %d: %w", userID, err)
	}
	return count, nil
}

// GetOverdue returns books on loan whose due date is before the given instant
func (r *BookRepository) GetOverdue(ctx context.Context, asOf time.Time) ([]*entities.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM books
		WHERE due_date IS NOT NULL AND due_date < $1
		ORDER BY due_date
	`, bookColumns)

	books, err := r.queryBooks(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue books: %w", err)
	}
	return books, nil
}

// Search returns books matching a title/author substring, optionally
// restricted to a category. An empty query matches everything.
func (r *BookRepository) Search(ctx context.Context, query string, categoryID *int64) ([]*entities.Book, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM books
		WHERE (title ILIKE $1 OR author ILIKE $1)
		  AND ($2::BIGINT IS NULL OR category_id = $2)
		ORDER BY title, author
	`, bookColumns)

	books, err := r.queryBooks(ctx, sql, "%"+query+"%", categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return books, nil
}
