package entities

import "time"

// BorrowReceipt is the result of a successful borrow
type BorrowReceipt struct {
	BookID     int64
	UserID     int64
	BorrowDate time.Time
	DueDate    time.Time
}

// ReturnReceipt is the result of a successful return. ReservedBy carries the
// untouched pending reservation, if any, so the caller can notify the
// reserver that the book is back on the shelf.
type ReturnReceipt struct {
	BookID     int64
	UserID     int64
	ReturnDate time.Time
	FineCents  int64
	ReservedBy *int64
}

// WalletStatement is the result of a wallet operation
type WalletStatement struct {
	UserID      int64
	WalletCents int64
	FineCents   int64
	Tier        Tier
}

// ReviewSummary is the result of adding a review: the stored review plus the
// book's recomputed average rating
type ReviewSummary struct {
	Review        *Review
	AverageRating float64
	ReviewCount   int
}
