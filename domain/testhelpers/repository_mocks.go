package testhelpers

import (
	"context"
	"time"

	"libraminds/domain/entities"
	"libraminds/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, username, name string, role entities.Role, startingCents int64) (*entities.User, error) {
	args := m.Called(ctx, username, name, role, startingCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateWallet(ctx context.Context, userID, walletCents, fineCents int64) error {
	args := m.Called(ctx, userID, walletCents, fineCents)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateTier(ctx context.Context, userID int64, tier entities.Tier) error {
	args := m.Called(ctx, userID, tier)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// MockBookRepository is a mock implementation of BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) GetByID(ctx context.Context, id int64) (*entities.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, book *entities.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) UpdateLending(ctx context.Context, book *entities.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) GetAvailable(ctx context.Context) ([]*entities.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}

func (m *MockBookRepository) GetBorrowedByUser(ctx context.Context, userID int64) ([]*entities.Book, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}

func (m *MockBookRepository) CountBorrowedByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookRepository) CountReservedByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookRepository) GetOverdue(ctx context.Context, asOf time.Time) ([]*entities.Book, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}

func (m *MockBookRepository) Search(ctx context.Context, query string, categoryID *int64) ([]*entities.Book, error) {
	args := m.Called(ctx, query, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}

// MockLoanRecordRepository is a mock implementation of LoanRecordRepository
type MockLoanRecordRepository struct {
	mock.Mock
}

func (m *MockLoanRecordRepository) Create(ctx context.Context, record *entities.LoanRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockLoanRecordRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.LoanRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoanRecord), args.Error(1)
}

func (m *MockLoanRecordRepository) GetByBook(ctx context.Context, bookID int64, limit int) ([]*entities.LoanRecord, error) {
	args := m.Called(ctx, bookID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoanRecord), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateStatus(ctx context.Context, id int64, status entities.CategoryStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetAll(ctx context.Context, status *entities.CategoryStatus) ([]*entities.Category, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Category), args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByBook(ctx context.Context, bookID int64) ([]*entities.Review, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Review), args.Error(1)
}

func (m *MockReviewRepository) AverageRating(ctx context.Context, bookID int64) (float64, int, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

// MockWalletTransactionRepository is a mock implementation of WalletTransactionRepository
type MockWalletTransactionRepository struct {
	mock.Mock
}

func (m *MockWalletTransactionRepository) Record(ctx context.Context, tx *entities.WalletTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.WalletTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WalletTransaction), args.Error(1)
}

// NoopPublisher is an event publisher that records published events
type NoopPublisher struct {
	Events []events.Event
}

func (p *NoopPublisher) Publish(event events.Event) {
	p.Events = append(p.Events, event)
}
