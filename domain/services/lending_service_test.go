package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"libraminds/domain/entities"
	"libraminds/domain/events"
	"libraminds/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestLendingService(
	userRepo *testhelpers.MockUserRepository,
	bookRepo *testhelpers.MockBookRepository,
	loanRecordRepo *testhelpers.MockLoanRecordRepository,
	publisher *testhelpers.NoopPublisher,
) *lendingService {
	return &lendingService{
		userRepo:       userRepo,
		bookRepo:       bookRepo,
		loanRecordRepo: loanRecordRepo,
		eventPublisher: publisher,
		now:            func() time.Time { return testNow },
	}
}

func ptr[T any](v T) *T {
	return &v
}

func studentUser(id int64, tier entities.Tier, fineCents int64) *entities.User {
	return &entities.User{
		ID:        id,
		Username:  "student",
		Role:      entities.RoleStudent,
		Tier:      tier,
		FineCents: fineCents,
	}
}

func availableBook(id int64) *entities.Book {
	return &entities.Book{ID: id, Title: "Clean Code", Author: "Robert C. Martin", CategoryID: 1}
}

func borrowedBook(id, borrowerID int64, due time.Time) *entities.Book {
	borrowed := due.AddDate(0, 0, -14)
	return &entities.Book{
		ID:         id,
		Title:      "Clean Code",
		Author:     "Robert C. Martin",
		CategoryID: 1,
		BorrowedBy: &borrowerID,
		BorrowDate: &borrowed,
		DueDate:    &due,
	}
}

func TestLendingService_Borrow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		setupMocks  func(*testhelpers.MockUserRepository, *testhelpers.MockBookRepository)
		wantErr     error
		wantDueDate time.Time
	}{
		{
			name: "standard tier borrow succeeds with 14 day loan",
			setupMocks: func(userRepo *testhelpers.MockUserRepository, bookRepo *testhelpers.MockBookRepository) {
				bookRepo.On("GetByID", mock.Anything, int64(10)).Return(availableBook(10), nil)
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(studentUser(3, entities.TierStandard, 0), nil)
				bookRepo.On("CountBorrowedByUser", mock.Anything, int64(3)).Return(0, nil)
				bookRepo.On("UpdateLending", mock.Anything, mock.Anything).Return(nil)
			},
			wantDueDate: testNow.AddDate(0, 0, 14),
		},
		{
			name: "scholar tier borrow succeeds with 60 day loan",
			setupMocks: func(userRepo *testhelpers.MockUserRepository, bookRepo *testhelpers.MockBookRepository) {
				bookRepo.On("GetByID", mock.Anything, int64(10)).Return(availableBook(10), nil)
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(studentUser(3, entities.TierScholar, 0), nil)
				bookRepo.On("CountBorrowedByUser", mock.Anything, int64(3)).Return(9, nil)
				bookRepo.On("UpdateLending", mock.Anything, mock.Anything).Return(nil)
			},
			wantDueDate: testNow.AddDate(0, 0, 60),
		},
		{
			name: "unknown book",
			setupMocks: func(userRepo *testhelpers.MockUserRepository, bookRepo *testhelpers.MockBookRepository) {
				bookRepo.On("GetByID", mock.Anything, int64(10)).Return(nil, nil)
			},
			wantErr: ErrBookNotFound,
		},
		{
			name: "book already on loan",
			setupMocks: func(userRepo *testhelpers.MockUserRepository, bookRepo *testhelpers.MockBookRepository) {
				bookRepo.On("GetByID", mock.Anything, int64(10)).Return(borrowedBook(10, 99, testNow.AddDate(0, 0, 7)), nil)
			},
			wantErr: ErrBookUnavailable,
		},
		{
			name: "unknown user",
			setupMocks: func(userRepo *testhelpers.MockUserRepository, bookRepo *testhelpers.MockBookRepository) {
				bookRepo.On("GetByID", mock.Anything, int64(10)).Return(availableBook(10), nil)
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "librarian accounts are not subject to lending",
			setupMocks: func(userRepo *testhelpers.MockUserRepository, bookRepo *testhelpers.MockBookRepository) {
				bookRepo.On("GetByID", mock.Anything, int64(10)).Return(availableBook(10), nil)
				librarian := &entities.User{ID: 3, Role: entities.RoleLibrarian, Tier: entities.TierStandard}
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(librarian, nil)
			},
			wantErr: ErrNotEligible,
		},
		{
			name: "any outstanding fine blocks borrowing regardless of loan count",
			setupMocks: func(userRepo *testhelpers.MockUserRepository, bookRepo *testhelpers.MockBookRepository) {
				bookRepo.On("GetByID", mock.Anything, int64(10)).Return(availableBook(10), nil)
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(studentUser(3, entities.TierScholar, 1500), nil)
			},
			wantErr: ErrOutstandingFines,
		},
		{
			name: "standard tier loan cap of two",
			setupMocks: func(userRepo *testhelpers.MockUserRepository, bookRepo *testhelpers.MockBookRepository) {
				bookRepo.On("GetByID", mock.Anything, int64(10)).Return(availableBook(10), nil)
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(studentUser(3, entities.TierStandard, 0), nil)
				bookRepo.On("CountBorrowedByUser", mock.Anything, int64(3)).Return(2, nil)
			},
			wantErr: ErrBorrowLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userRepo := new(testhelpers.MockUserRepository)
			bookRepo := new(testhelpers.MockBookRepository)
			loanRecordRepo := new(testhelpers.MockLoanRecordRepository)
			publisher := &testhelpers.NoopPublisher{}
			tt.setupMocks(userRepo, bookRepo)

			service := newTestLendingService(userRepo, bookRepo, loanRecordRepo, publisher)
			receipt, err := service.Borrow(context.Background(), 3, 10)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, receipt)
			} else {
				require.NoError(t, err)
				require.NotNil(t, receipt)
				assert.Equal(t, int64(10), receipt.BookID)
				assert.Equal(t, int64(3), receipt.UserID)
				assert.Equal(t, testNow, receipt.BorrowDate)
				assert.Equal(t, tt.wantDueDate, receipt.DueDate)
				require.Len(t, publisher.Events, 1)
				assert.Equal(t, events.EventTypeBookBorrowed, publisher.Events[0].Type())
			}
			userRepo.AssertExpectations(t)
			bookRepo.AssertExpectations(t)
		})
	}
}

func TestLendingService_Borrow_SetsLendingFieldsTogether(t *testing.T) {
	t.Parallel()

	userRepo := new(testhelpers.MockUserRepository)
	bookRepo := new(testhelpers.MockBookRepository)
	publisher := &testhelpers.NoopPublisher{}

	bookRepo.On("GetByID", mock.Anything, int64(10)).Return(availableBook(10), nil)
	userRepo.On("GetByID", mock.Anything, int64(3)).Return(studentUser(3, entities.TierPremium, 0), nil)
	bookRepo.On("CountBorrowedByUser", mock.Anything, int64(3)).Return(4, nil)

	var saved *entities.Book
	bookRepo.On("UpdateLending", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entities.Book)
	}).Return(nil)

	service := newTestLendingService(userRepo, bookRepo, new(testhelpers.MockLoanRecordRepository), publisher)
	_, err := service.Borrow(context.Background(), 3, 10)
	require.NoError(t, err)

	require.NotNil(t, saved)
	require.NotNil(t, saved.BorrowedBy)
	assert.Equal(t, int64(3), *saved.BorrowedBy)
	require.NotNil(t, saved.BorrowDate)
	require.NotNil(t, saved.DueDate)
	assert.Equal(t, testNow, *saved.BorrowDate)
	assert.Equal(t, testNow.AddDate(0, 0, 30), *saved.DueDate)
}

func TestLendingService_Return(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		dueDate       time.Time
		borrowerFines int64
		wantFine      int64
		wantNewFines  int64
	}{
		{
			name:     "return before due date assesses no fine",
			dueDate:  testNow.AddDate(0, 0, 7),
			wantFine: 0,
		},
		{
			name:     "return exactly at due instant assesses no fine",
			dueDate:  testNow,
			wantFine: 0,
		},
		{
			name:         "one second past due charges a full day",
			dueDate:      testNow.Add(-time.Second),
			wantFine:     500,
			wantNewFines: 500,
		},
		{
			name:         "three days overdue charges three days",
			dueDate:      testNow.AddDate(0, 0, -3),
			wantFine:     1500,
			wantNewFines: 1500,
		},
		{
			name:          "fines are additive on top of unpaid balance",
			dueDate:       testNow.AddDate(0, 0, -1),
			borrowerFines: 700,
			wantFine:      500,
			wantNewFines:  1200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userRepo := new(testhelpers.MockUserRepository)
			bookRepo := new(testhelpers.MockBookRepository)
			loanRecordRepo := new(testhelpers.MockLoanRecordRepository)
			publisher := &testhelpers.NoopPublisher{}

			book := borrowedBook(10, 3, tt.dueDate)
			bookRepo.On("GetByID", mock.Anything, int64(10)).Return(book, nil)
			if tt.wantFine > 0 {
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(studentUser(3, entities.TierStandard, tt.borrowerFines), nil)
				userRepo.On("UpdateWallet", mock.Anything, int64(3), int64(0), tt.wantNewFines).Return(nil)
			}

			var savedRecord *entities.LoanRecord
			loanRecordRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				savedRecord = args.Get(1).(*entities.LoanRecord)
			}).Return(nil)

			var savedBook *entities.Book
			bookRepo.On("UpdateLending", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				savedBook = args.Get(1).(*entities.Book)
			}).Return(nil)

			service := newTestLendingService(userRepo, bookRepo, loanRecordRepo, publisher)
			receipt, err := service.Return(context.Background(), 10)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFine, receipt.FineCents)
			assert.Equal(t, int64(3), receipt.UserID)
			assert.Equal(t, testNow, receipt.ReturnDate)

			// Exactly one history record with matching fields.
			require.NotNil(t, savedRecord)
			assert.Equal(t, int64(10), savedRecord.BookID)
			assert.Equal(t, int64(3), savedRecord.UserID)
			assert.Equal(t, tt.dueDate.AddDate(0, 0, -14), savedRecord.BorrowDate)
			assert.Equal(t, testNow, savedRecord.ReturnDate)
			assert.Equal(t, tt.wantFine, savedRecord.FineCents)

			// Lending fields all cleared.
			require.NotNil(t, savedBook)
			assert.Nil(t, savedBook.BorrowedBy)
			assert.Nil(t, savedBook.BorrowDate)
			assert.Nil(t, savedBook.DueDate)

			userRepo.AssertExpectations(t)
			bookRepo.AssertExpectations(t)
			loanRecordRepo.AssertExpectations(t)
		})
	}
}

func TestLendingService_Return_NotBorrowed(t *testing.T) {
	t.Parallel()

	bookRepo := new(testhelpers.MockBookRepository)
	bookRepo.On("GetByID", mock.Anything, int64(10)).Return(availableBook(10), nil)

	service := newTestLendingService(new(testhelpers.MockUserRepository), bookRepo, new(testhelpers.MockLoanRecordRepository), &testhelpers.NoopPublisher{})
	_, err := service.Return(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNotBorrowed)
}

func TestLendingService_Return_LeavesReservationInPlace(t *testing.T) {
	t.Parallel()

	userRepo := new(testhelpers.MockUserRepository)
	bookRepo := new(testhelpers.MockBookRepository)
	loanRecordRepo := new(testhelpers.MockLoanRecordRepository)

	book := borrowedBook(10, 3, testNow.AddDate(0, 0, 7))
	book.ReservedBy = ptr(int64(42))
	bookRepo.On("GetByID", mock.Anything, int64(10)).Return(book, nil)
	loanRecordRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	var savedBook *entities.Book
	bookRepo.On("UpdateLending", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		savedBook = args.Get(1).(*entities.Book)
	}).Return(nil)

	service := newTestLendingService(userRepo, bookRepo, loanRecordRepo, &testhelpers.NoopPublisher{})
	receipt, err := service.Return(context.Background(), 10)
	require.NoError(t, err)

	require.NotNil(t, savedBook.ReservedBy)
	assert.Equal(t, int64(42), *savedBook.ReservedBy)
	require.NotNil(t, receipt.ReservedBy)
	assert.Equal(t, int64(42), *receipt.ReservedBy)
}

func TestLendingService_Reserve(t *testing.T) {
	t.Parallel()

	due := testNow.AddDate(0, 0, 7)

	tests := []struct {
		name       string
		book       *entities.Book
		setupMocks func(*testhelpers.MockUserRepository, *testhelpers.MockBookRepository)
		wantErr    error
		wantUpdate bool
	}{
		{
			name: "premium tier reserves a borrowed book",
			book: borrowedBook(10, 99, due),
			setupMocks: func(userRepo *testhelpers.MockUserRepository, bookRepo *testhelpers.MockBookRepository) {
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(studentUser(3, entities.TierPremium, 0), nil)
				bookRepo.On("CountReservedByUser", mock.Anything, int64(3)).Return(0, nil)
				bookRepo.On("UpdateLending", mock.Anything, mock.Anything).Return(nil)
			},
			wantUpdate: true,
		},
		{
			name:    "available book cannot be reserved",
			book:    availableBook(10),
			wantErr: ErrReservationNotApplicable,
		},
		{
			name:    "holder cannot reserve own loan",
			book:    borrowedBook(10, 3, due),
			wantErr: ErrSelfReservation,
		},
		{
			name: "re-reserving an already held reservation is a no-op",
			book: func() *entities.Book {
				b := borrowedBook(10, 99, due)
				b.ReservedBy = ptr(int64(3))
				return b
			}(),
		},
		{
			name: "reservation held by another user",
			book: func() *entities.Book {
				b := borrowedBook(10, 99, due)
				b.ReservedBy = ptr(int64(42))
				return b
			}(),
			wantErr: ErrAlreadyReserved,
		},
		{
			name: "standard tier has no reservation privilege",
			book: borrowedBook(10, 99, due),
			setupMocks: func(userRepo *testhelpers.MockUserRepository, bookRepo *testhelpers.MockBookRepository) {
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(studentUser(3, entities.TierStandard, 0), nil)
			},
			wantErr: ErrReservationsNotPermitted,
		},
		{
			name: "premium tier reservation cap of three",
			book: borrowedBook(10, 99, due),
			setupMocks: func(userRepo *testhelpers.MockUserRepository, bookRepo *testhelpers.MockBookRepository) {
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(studentUser(3, entities.TierPremium, 0), nil)
				bookRepo.On("CountReservedByUser", mock.Anything, int64(3)).Return(3, nil)
			},
			wantErr: ErrReservationLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userRepo := new(testhelpers.MockUserRepository)
			bookRepo := new(testhelpers.MockBookRepository)
			bookRepo.On("GetByID", mock.Anything, int64(10)).Return(tt.book, nil)
			if tt.setupMocks != nil {
				tt.setupMocks(userRepo, bookRepo)
			}

			service := newTestLendingService(userRepo, bookRepo, new(testhelpers.MockLoanRecordRepository), &testhelpers.NoopPublisher{})
			err := service.Reserve(context.Background(), 3, 10)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				if tt.wantUpdate {
					require.NotNil(t, tt.book.ReservedBy)
					assert.Equal(t, int64(3), *tt.book.ReservedBy)
				}
			}
			userRepo.AssertExpectations(t)
			bookRepo.AssertExpectations(t)
		})
	}
}

func TestLendingService_CancelReservation(t *testing.T) {
	t.Parallel()

	t.Run("clears a held reservation", func(t *testing.T) {
		t.Parallel()

		bookRepo := new(testhelpers.MockBookRepository)
		book := borrowedBook(10, 99, testNow.AddDate(0, 0, 7))
		book.ReservedBy = ptr(int64(3))
		bookRepo.On("GetByID", mock.Anything, int64(10)).Return(book, nil)
		bookRepo.On("UpdateLending", mock.Anything, mock.Anything).Return(nil)

		service := newTestLendingService(new(testhelpers.MockUserRepository), bookRepo, new(testhelpers.MockLoanRecordRepository), &testhelpers.NoopPublisher{})
		err := service.CancelReservation(context.Background(), 3, 10)
		require.NoError(t, err)
		assert.Nil(t, book.ReservedBy)
	})

	t.Run("rejects cancelling a reservation held by someone else", func(t *testing.T) {
		t.Parallel()

		bookRepo := new(testhelpers.MockBookRepository)
		book := borrowedBook(10, 99, testNow.AddDate(0, 0, 7))
		book.ReservedBy = ptr(int64(42))
		bookRepo.On("GetByID", mock.Anything, int64(10)).Return(book, nil)

		service := newTestLendingService(new(testhelpers.MockUserRepository), bookRepo, new(testhelpers.MockLoanRecordRepository), &testhelpers.NoopPublisher{})
		err := service.CancelReservation(context.Background(), 3, 10)
		assert.ErrorIs(t, err, ErrNotReserved)
	})
}

func TestLendingService_BorrowReturnRoundTrip(t *testing.T) {
	t.Parallel()

	userRepo := new(testhelpers.MockUserRepository)
	bookRepo := new(testhelpers.MockBookRepository)
	loanRecordRepo := new(testhelpers.MockLoanRecordRepository)
	publisher := &testhelpers.NoopPublisher{}

	book := availableBook(10)
	book.ReservedBy = ptr(int64(42)) // stale reservation from a previous cycle

	bookRepo.On("GetByID", mock.Anything, int64(10)).Return(book, nil)
	userRepo.On("GetByID", mock.Anything, int64(3)).Return(studentUser(3, entities.TierStandard, 0), nil)
	bookRepo.On("CountBorrowedByUser", mock.Anything, int64(3)).Return(0, nil)
	bookRepo.On("UpdateLending", mock.Anything, mock.Anything).Return(nil)
	loanRecordRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestLendingService(userRepo, bookRepo, loanRecordRepo, publisher)

	_, err := service.Borrow(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.True(t, book.IsBorrowed())

	receipt, err := service.Return(context.Background(), 10)
	require.NoError(t, err)

	assert.False(t, book.IsBorrowed())
	assert.Equal(t, int64(0), receipt.FineCents)
	// The reservation survives the whole cycle untouched.
	require.NotNil(t, book.ReservedBy)
	assert.Equal(t, int64(42), *book.ReservedBy)

	if errors.Is(err, ErrNotBorrowed) {
		t.Fatal("round trip left the book in an inconsistent state")
	}
}
