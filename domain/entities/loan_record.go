package entities

import "time"

// LoanRecord is an append-only record of a completed loan, written exactly
// once at return time and never mutated.
type LoanRecord struct {
	ID            int64     `db:"id"`
	BookID        int64     `db:"book_id"`
	UserID        int64     `db:"user_id"`
	BorrowDate    time.Time `db:"borrow_date"`
	ReturnDate    time.Time `db:"return_date"`
	FineCents     int64     `db:"fine_cents"`
	CreatedAt     time.Time `db:"created_at"`
}

// WasOverdue reports whether the loan was returned late
func (r *LoanRecord) WasOverdue() bool {
	return r.FineCents > 0
}

// Duration returns how long the book was out
func (r *LoanRecord) Duration() time.Duration {
	return r.ReturnDate.Sub(r.BorrowDate)
}
