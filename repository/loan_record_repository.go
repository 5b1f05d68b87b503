package repository

import (
	"context"
	"fmt"

	"libraminds/database"
	"libraminds/domain/entities"

	"github.com/jackc/pgx/v5"
)

const loanRecordColumns = `id, book_id, user_id, borrow_date, return_date, fine_cents, created_at`

// LoanRecordRepository implements the append-only loan history over Postgres
type LoanRecordRepository struct {
	q Queryable
}

// NewLoanRecordRepository creates a new loan record repository
func NewLoanRecordRepository(db *database.DB) *LoanRecordRepository {
	return &LoanRecordRepository{q: db.Pool}
}

func newLoanRecordRepository(q Queryable) *LoanRecordRepository {
	return &LoanRecordRepository{q: q}
}

func scanLoanRecord(row pgx.Row) (*entities.LoanRecord, error) {
	var record entities.LoanRecord
	err := row.Scan(
		&record.ID,
		&record.BookID,
		&record.UserID,
		&record.BorrowDate,
		&record.ReturnDate,
		&record.FineCents,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create appends a completed-loan record
func (r *LoanRecordRepository) Create(ctx context.Context, record *entities.LoanRecord) error {
	query := `
		INSERT INTO loan_records (book_id, user_id, borrow_date, return_date, fine_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.q.QueryRow(ctx, query,
		record.BookID, record.UserID, record.BorrowDate, record.ReturnDate, record.FineCents,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan record for book %d: %w", record.BookID, err)
	}
	return nil
}

func (r *LoanRecordRepository) queryRecords(ctx context.Context, query string, args ...any) ([]*entities.LoanRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*entities.LoanRecord
	for rows.Next() {
		record, err := scanLoanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetByUser returns the most recent loan records for a user
func (r *LoanRecordRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.LoanRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM loan_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, loanRecordColumns)

	records, err := r.queryRecords(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan records for user %d: %w", userID, err)
	}
	return records, nil
}

// GetByBook returns the most recent loan records for a book
func (r *LoanRecordRepository) GetByBook(ctx context.Context, bookID int64, limit int) ([]*entities.LoanRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM loan_records
		WHERE book_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, loanRecordColumns)

	records, err := r.queryRecords(ctx, query, bookID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan records for book %d: %w", bookID, err)
	}
	return records, nil
}
