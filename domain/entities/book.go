package entities

import "time"

// FineRateCentsPerDay is the flat fine charged per day a loan is overdue
const FineRateCentsPerDay int64 = 500

// Book represents a catalog item. A book is on loan iff BorrowedBy,
// BorrowDate and DueDate are all set; the schema enforces that they are set
// and cleared together. ReservedBy may only be set while the book is on loan
// to a different user.
type Book struct {
	ID         int64      `db:"id"`
	Title      string     `db:"title"`
	Author     string     `db:"author"`
	CategoryID int64      `db:"category_id"`
	CoverURL   string     `db:"cover_url"`
	BorrowedBy *int64     `db:"borrowed_by"`
	BorrowDate *time.Time `db:"borrow_date"`
	DueDate    *time.Time `db:"due_date"`
	ReservedBy *int64     `db:"reserved_by"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// IsBorrowed reports whether the book is currently on loan
func (b *Book) IsBorrowed() bool {
	return b.BorrowedBy != nil
}

// IsBorrowedBy reports whether the book is on loan to the given user
func (b *Book) IsBorrowedBy(userID int64) bool {
	return b.BorrowedBy != nil && *b.BorrowedBy == userID
}

// IsReserved reports whether any reservation is held on the book
func (b *Book) IsReserved() bool {
	return b.ReservedBy != nil
}

// IsReservedBy reports whether the given user holds the reservation
func (b *Book) IsReservedBy(userID int64) bool {
	return b.ReservedBy != nil && *b.ReservedBy == userID
}

// MarkBorrowed sets the lending fields for a new loan starting at the given
// instant, with the due date a whole number of days later.
func (b *Book) MarkBorrowed(userID int64, at time.Time, loanDays int) {
	due := at.AddDate(0, 0, loanDays)
	b.BorrowedBy = &userID
	b.BorrowDate = &at
	b.DueDate = &due
}

// MarkReturned clears the lending fields. The reservation, if any, is left
// in place: handing a returned book to its reserver is a separate workflow.
func (b *Book) MarkReturned() {
	b.BorrowedBy = nil
	b.BorrowDate = nil
	b.DueDate = nil
}

// OverdueDays returns how many whole or partial days past due the loan is at
// the given instant. Zero at or before the due instant; a missing due date
// counts as not overdue.
func (b *Book) OverdueDays(at time.Time) int64 {
	if b.DueDate == nil {
		return 0
	}
	elapsed := at.Sub(*b.DueDate)
	if elapsed <= 0 {
		return 0
	}
	const day = 24 * time.Hour
	days := int64(elapsed / day)
	if elapsed%day != 0 {
		days++
	}
	return days
}

// FineAt returns the fine in cents owed if the book were returned at the
// given instant
func (b *Book) FineAt(at time.Time) int64 {
	return b.OverdueDays(at) * FineRateCentsPerDay
}

// IsOverdue reports whether the loan is past due at the given instant
func (b *Book) IsOverdue(at time.Time) bool {
	return b.OverdueDays(at) > 0
}
