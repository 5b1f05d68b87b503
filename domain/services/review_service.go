package services

import (
	"context"
	"fmt"

	"libraminds/domain/entities"
	"libraminds/domain/interfaces"
)

// reviewService implements book reviews and the average-rating rollup
type reviewService struct {
	reviewRepo interfaces.ReviewRepository
	bookRepo   interfaces.BookRepository
	userRepo   interfaces.UserRepository
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo interfaces.ReviewRepository,
	bookRepo interfaces.BookRepository,
	userRepo interfaces.UserRepository,
) interfaces.ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
	}
}

// AddReview stores a review and returns the book's recomputed average rating
func (s *reviewService) AddReview(ctx context.Context, bookID, userID int64, rating int, comment string) (*entities.ReviewSummary, error) {
	if !entities.ValidRating(rating) {
		return nil, ErrInvalidRating
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	review := &entities.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	average, count, err := s.reviewRepo.AverageRating(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute average rating: %w", err)
	}

	return &entities.ReviewSummary{
		Review:        review,
		AverageRating: average,
		ReviewCount:   count,
	}, nil
}

// ListByBook returns all reviews for a book
func (s *reviewService) ListByBook(ctx context.Context, bookID int64) ([]*entities.Review, error) {
	reviews, err := s.reviewRepo.GetByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
