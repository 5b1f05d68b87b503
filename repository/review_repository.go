package repository

import (
	"context"
	"fmt"

	"libraminds/database"
	"libraminds/domain/entities"
)

// ReviewRepository implements the ReviewRepository interface over Postgres
type ReviewRepository struct {
	q Queryable
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{q: db.Pool}
}

func newReviewRepository(q Queryable) *ReviewRepository {
	return &ReviewRepository{q: q}
}

// Create inserts a new review and fills its ID and timestamp
func (r *ReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	query := `
		INSERT INTO reviews (book_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.q.QueryRow(ctx, query,
		review.BookID, review.UserID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review for book %d: %w", review.BookID, err)
	}
	return nil
}

// GetByBook returns all reviews for a book, newest first
func (r *ReviewRepository) GetByBook(ctx context.Context, bookID int64) ([]*entities.Review, error) {
	query := `
		SELECT id, book_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.q.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for book %d: %w", bookID, err)
	}
	defer rows.Close()

	var reviews []*entities.Review
	for rows.Next() {
		var review entities.Review
		err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, &review)
	}
	return reviews, rows.Err()
}

// AverageRating returns the average rating and review count for a book.
// A book with no reviews averages zero.
func (r *ReviewRepository) AverageRating(ctx context.Context, bookID int64) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE book_id = $1
	`
	var avg float64
	var count int
	if err := r.q.QueryRow(ctx, query, bookID).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to get average rating for book %d: %w", bookID, err)
	}
	return avg, count, nil
}
