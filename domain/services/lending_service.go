package services

import (
	"context"
	"fmt"
	"time"

	"libraminds/domain/entities"
	"libraminds/domain/events"
	"libraminds/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// lendingService implements the lending policy: it authorizes borrow,
// return and reservation requests against the tier rules and the user's
// ledger state, then applies the resulting catalog mutation.
type lendingService struct {
	userRepo       interfaces.UserRepository
	bookRepo       interfaces.BookRepository
	loanRecordRepo interfaces.LoanRecordRepository
	eventPublisher interfaces.EventPublisher
	now            func() time.Time
}

// NewLendingService creates a new lending service
func NewLendingService(
	userRepo interfaces.UserRepository,
	bookRepo interfaces.BookRepository,
	loanRecordRepo interfaces.LoanRecordRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.LendingService {
	return &lendingService{
		userRepo:       userRepo,
		bookRepo:       bookRepo,
		loanRecordRepo: loanRecordRepo,
		eventPublisher: eventPublisher,
		now:            time.Now,
	}
}

// Borrow authorizes and opens a loan. Preconditions are checked in order:
// book available, account eligible, no outstanding fines, under the tier's
// loan cap.
func (s *lendingService) Borrow(ctx context.Context, userID, bookID int64) (*entities.BorrowReceipt, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	if book.IsBorrowed() {
		return nil, ErrBookUnavailable
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsStudent() {
		return nil, ErrNotEligible
	}
	if user.HasOutstandingFines() {
		return nil, ErrOutstandingFines
	}

	rule, err := user.Tier.Rule()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tier rules: %w", err)
	}

	activeLoans, err := s.bookRepo.CountBorrowedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active loans: %w", err)
	}
	if activeLoans >= rule.MaxBooks {
		return nil, ErrBorrowLimitReached
	}

	now := s.now()
	book.MarkBorrowed(userID, now, rule.LoanDays)
	if err := s.bookRepo.UpdateLending(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to mark book borrowed: %w", err)
	}

	s.eventPublisher.Publish(events.BookBorrowedEvent{
		BookID:  bookID,
		UserID:  userID,
		DueDate: *book.DueDate,
	})

	log.WithFields(log.Fields{
		"userID":  userID,
		"bookID":  bookID,
		"dueDate": book.DueDate,
	}).Info("Loan opened")

	return &entities.BorrowReceipt{
		BookID:     bookID,
		UserID:     userID,
		BorrowDate: now,
		DueDate:    *book.DueDate,
	}, nil
}

// Return closes a loan: it assesses any overdue fine against the borrower,
// appends the loan record and clears the book's lending fields. A pending
// reservation on the book is left untouched; the reserver must borrow the
// book themselves.
func (s *lendingService) Return(ctx context.Context, bookID int64) (*entities.ReturnReceipt, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	if !book.IsBorrowed() {
		return nil, ErrNotBorrowed
	}

	borrowerID := *book.BorrowedBy
	now := s.now()
	fineCents := book.FineAt(now)

	if fineCents > 0 {
		borrower, err := s.userRepo.GetByID(ctx, borrowerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get borrower: %w", err)
		}
		if borrower == nil {
			return nil, fmt.Errorf("borrower %d of book %d no longer exists", borrowerID, bookID)
		}
		// Additive: earlier unpaid fines stay owed.
		newFines := borrower.FineCents + fineCents
		if err := s.userRepo.UpdateWallet(ctx, borrowerID, borrower.WalletCents, newFines); err != nil {
			return nil, fmt.Errorf("failed to assess fine: %w", err)
		}
	}

	borrowDate := now
	if book.BorrowDate != nil {
		borrowDate = *book.BorrowDate
	}
	record := &entities.LoanRecord{
		BookID:     bookID,
		UserID:     borrowerID,
		BorrowDate: borrowDate,
		ReturnDate: now,
		FineCents:  fineCents,
	}
	if err := s.loanRecordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append loan record: %w", err)
	}

	book.MarkReturned()
	if err := s.bookRepo.UpdateLending(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to clear lending fields: %w", err)
	}

	s.eventPublisher.Publish(events.BookReturnedEvent{
		BookID:     bookID,
		UserID:     borrowerID,
		FineCents:  fineCents,
		ReservedBy: book.ReservedBy,
	})

	log.WithFields(log.Fields{
		"userID":    borrowerID,
		"bookID":    bookID,
		"fineCents": fineCents,
	}).Info("Loan closed")

	return &entities.ReturnReceipt{
		BookID:     bookID,
		UserID:     borrowerID,
		ReturnDate: now,
		FineCents:  fineCents,
		ReservedBy: book.ReservedBy,
	}, nil
}

// Reserve places a reservation on a book currently on loan to someone else.
// Re-reserving a book the user already holds a reservation on is a no-op.
func (s *lendingService) Reserve(ctx context.Context, userID, bookID int64) error {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return ErrBookNotFound
	}
	if !book.IsBorrowed() {
		return ErrReservationNotApplicable
	}
	if book.IsBorrowedBy(userID) {
		return ErrSelfReservation
	}
	if book.IsReservedBy(userID) {
		return nil
	}
	if book.IsReserved() {
		return ErrAlreadyReserved
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	rule, err := user.Tier.Rule()
	if err != nil {
		return fmt.Errorf("failed to resolve tier rules: %w", err)
	}
	if rule.MaxReservations == 0 {
		return ErrReservationsNotPermitted
	}

	held, err := s.bookRepo.CountReservedByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count reservations: %w", err)
	}
	if held >= rule.MaxReservations {
		return ErrReservationLimitReached
	}

	book.ReservedBy = &userID
	if err := s.bookRepo.UpdateLending(ctx, book); err != nil {
		return fmt.Errorf("failed to set reservation: %w", err)
	}

	log.WithFields(log.Fields{
		"userID": userID,
		"bookID": bookID,
	}).Info("Reservation placed")

	return nil
}

// CancelReservation removes the caller's reservation from a book
func (s *lendingService) CancelReservation(ctx context.Context, userID, bookID int64) error {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return ErrBookNotFound
	}
	if !book.IsReservedBy(userID) {
		return ErrNotReserved
	}

	book.ReservedBy = nil
	if err := s.bookRepo.UpdateLending(ctx, book); err != nil {
		return fmt.Errorf("failed to clear reservation: %w", err)
	}

	return nil
}
