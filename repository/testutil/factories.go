package testutil

import (
	"context"
	"testing"
	"time"

	"libraminds/database"
	"libraminds/domain/entities"

	"github.com/stretchr/testify/require"
)

// CreateTestUser inserts a student account and returns it
func CreateTestUser(t *testing.T, db *database.DB, username string) *entities.User {
	return CreateTestUserWithRole(t, db, username, entities.RoleStudent)
}

// CreateTestUserWithRole inserts a user with the given role and returns it
func CreateTestUserWithRole(t *testing.T, db *database.DB, username string, role entities.Role) *entities.User {
	user := &entities.User{
		Username: username,
		Name:     "Test " + username,
		Role:     role,
		Tier:     entities.TierStandard,
	}
	query := `
		INSERT INTO users (username, name, role)
		VALUES ($1, $2, $3)
		RETURNING id, tier, wallet_cents, fine_cents, created_at, updated_at
	`
	err := db.Pool.QueryRow(context.Background(), query, user.Username, user.Name, user.Role).Scan(
		&user.ID, &user.Tier, &user.WalletCents, &user.FineCents, &user.CreatedAt, &user.UpdatedAt,
	)
	require.NoError(t, err)
	return user
}

// CreateTestCategory inserts an approved category owned by the given user
func CreateTestCategory(t *testing.T, db *database.DB, name string, createdBy int64) *entities.Category {
	return createCategory(t, db, name, createdBy, entities.CategoryStatusApproved)
}

// CreateTestPendingCategory inserts a pending category owned by the given user
func CreateTestPendingCategory(t *testing.T, db *database.DB, name string, createdBy int64) *entities.Category {
	return createCategory(t, db, name, createdBy, entities.CategoryStatusPending)
}

func createCategory(t *testing.T, db *database.DB, name string, createdBy int64, status entities.CategoryStatus) *entities.Category {
	category := &entities.Category{
		Name:      name,
		Status:    status,
		CreatedBy: createdBy,
	}
	query := `
		INSERT INTO categories (name, status, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := db.Pool.QueryRow(context.Background(), query, name, status, createdBy).Scan(
		&category.ID, &category.CreatedAt, &category.UpdatedAt,
	)
	require.NoError(t, err)
	return category
}

// CreateTestBook inserts an available book in the given category
func CreateTestBook(t *testing.T, db *database.DB, title string, categoryID int64) *entities.Book {
	book := &entities.Book{
		Title:      title,
		Author:     "Test Author",
		CategoryID: categoryID,
	}
	query := `
		INSERT INTO books (title, author, category_id, cover_url)
		VALUES ($1, $2, $3, '')
		RETURNING id, created_at, updated_at
	`
	err := db.Pool.QueryRow(context.Background(), query, book.Title, book.Author, book.CategoryID).Scan(
		&book.ID, &book.CreatedAt, &book.UpdatedAt,
	)
	require.NoError(t, err)
	return book
}

// LendTestBook marks a book as borrowed directly in the database
func LendTestBook(t *testing.T, db *database.DB, bookID, userID int64, borrowedAt time.Time, loanDays int) {
	due := borrowedAt.AddDate(0, 0, loanDays)
	query := `
		UPDATE books
		SET borrowed_by = $1, borrow_date = $2, due_date = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := db.Pool.Exec(context.Background(), query, userID, borrowedAt, due, bookID)
	require.NoError(t, err)
}
