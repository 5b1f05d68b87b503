package entities

import "time"

// CategoryStatus represents the approval state of a category
type CategoryStatus string

const (
	CategoryStatusPending  CategoryStatus = "pending"
	CategoryStatusApproved CategoryStatus = "approved"
)

// Category groups books. New categories always start pending; books may only
// be assigned to approved categories.
type Category struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Status    CategoryStatus `db:"status"`
	CreatedBy int64          `db:"created_by"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// IsApproved reports whether books may be assigned to this category
func (c *Category) IsApproved() bool {
	return c.Status == CategoryStatusApproved
}
