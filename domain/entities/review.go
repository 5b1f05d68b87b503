package entities

import "time"

// Review is a patron rating and comment on a book
type Review struct {
	ID        int64     `db:"id"`
	BookID    int64     `db:"book_id"`
	UserID    int64     `db:"user_id"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

// ValidRating reports whether a rating is on the 1-5 star scale
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
