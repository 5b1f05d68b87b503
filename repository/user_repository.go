package repository

import (
	"context"
	"fmt"

	"libraminds/database"
	"libraminds/domain/entities"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, name, role, tier, wallet_cents, fine_cents, created_at, updated_at`

// UserRepository implements the UserRepository interface over Postgres
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

func newUserRepository(q Queryable) *UserRepository {
	return &UserRepository{q: q}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Role,
		&user.Tier,
		&user.WalletCents,
		&user.FineCents,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID, returning nil when not found
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username, returning nil when not found
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return user, nil
}

// Create creates a new user account with the given starting balance
func (r *UserRepository) Create(ctx context.Context, username, name string, role entities.Role, startingCents int64) (*entities.User, error) {
	query := `
		INSERT INTO users (username, name, role, wallet_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, tier, created_at, updated_at
	`

	user := &entities.User{
		Username:    username,
		Name:        name,
		Role:        role,
		WalletCents: startingCents,
	}
	err := r.q.QueryRow(ctx, query, username, name, role, startingCents).Scan(
		&user.ID,
		&user.Tier,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}
	return user, nil
}

// UpdateWallet sets a user's wallet and fine balances atomically
func (r *UserRepository) UpdateWallet(ctx context.Context, userID, walletCents, fineCents int64) error {
	query := `
		UPDATE users
		SET wallet_cents = $1, fine_cents = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.q.Exec(ctx, query, walletCents, fineCents, userID)
	if err != nil {
		return fmt.Errorf("failed to update wallet for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}

// UpdateTier sets a user's membership tier
func (r *UserRepository) UpdateTier(ctx context.Context, userID int64, tier entities.Tier) error {
	query := `
		UPDATE users
		SET tier = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.q.Exec(ctx, query, tier, userID)
	if err != nil {
		return fmt.Errorf("failed to update tier for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}

// GetAll returns all users, newest first
func (r *UserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
