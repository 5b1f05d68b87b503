package services

import "errors"

// Business-rule rejections. Every precondition violation maps to one of
// these named values so callers can branch with errors.Is; none of them is a
// fault worth logging as an error.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrBookNotFound     = errors.New("book not found")
	ErrCategoryNotFound = errors.New("category not found")

	// Borrow
	ErrBookUnavailable    = errors.New("book is not available")
	ErrNotEligible        = errors.New("account is not eligible to borrow")
	ErrOutstandingFines   = errors.New("outstanding fines block borrowing")
	ErrBorrowLimitReached = errors.New("borrow limit for tier reached")

	// Return
	ErrNotBorrowed = errors.New("book is not on loan")

	// Reservations
	ErrReservationNotApplicable = errors.New("book is not on loan, reservation not applicable")
	ErrSelfReservation          = errors.New("cannot reserve a book you hold")
	ErrAlreadyReserved          = errors.New("book is already reserved by another user")
	ErrReservationsNotPermitted = errors.New("tier does not permit reservations")
	ErrReservationLimitReached  = errors.New("reservation limit for tier reached")
	ErrNotReserved              = errors.New("no reservation held on this book")

	// Wallet and membership
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInvalidTier       = errors.New("invalid membership tier")

	// Catalog and reviews
	ErrCategoryNotApproved = errors.New("category is not approved")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)
