package database

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Seed loads a small demo dataset: one account per role, two categories (one
// still pending approval) and a couple of books, one already on loan. It is
// idempotent: a database that already has users is left alone.
func Seed(ctx context.Context, db *DB, startingBalanceCents int64) error {
	var count int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if count > 0 {
		log.Info("Database already seeded, skipping")
		return nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	users := []struct {
		username string
		name     string
		role     string
	}{
		{"admin", "Alice Admin", "admin"},
		{"lib", "Larry Librarian", "librarian"},
		{"student", "Sam Student", "student"},
	}
	userIDs := make(map[string]int64, len(users))
	for _, u := range users {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO users (username, name, role, wallet_cents)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, u.username, u.name, u.role, startingBalanceCents).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed user %q: %w", u.username, err)
		}
		userIDs[u.username] = id
	}

	var csID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO categories (name, status, created_by)
		VALUES ('Computer Science', 'approved', $1)
		RETURNING id
	`, userIDs["admin"]).Scan(&csID)
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO categories (name, status, created_by)
		VALUES ('History', 'pending', $1)
	`, userIDs["lib"])
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO books (title, author, category_id, cover_url)
		VALUES ('The React Handbook', 'Flavio Copes', $1, 'https://picsum.photos/seed/react/300/400')
	`, csID)
	if err != nil {
		return fmt.Errorf("failed to seed books: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO books (title, author, category_id, cover_url, borrowed_by, borrow_date, due_date)
		VALUES ('Clean Code', 'Robert C. Martin', $1, 'https://picsum.photos/seed/clean/300/400',
		        $2, NOW(), NOW() + INTERVAL '14 days')
	`, csID, userIDs["student"])
	if err != nil {
		return fmt.Errorf("failed to seed books: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"users":      len(users),
		"categories": 2,
		"books":      2,
	}).Info("Seed data loaded")
	return nil
}
