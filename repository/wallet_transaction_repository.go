package repository

import (
	"context"
	"fmt"

	"libraminds/database"
	"libraminds/domain/entities"
)

// WalletTransactionRepository implements wallet history tracking over Postgres
type WalletTransactionRepository struct {
	q Queryable
}

// NewWalletTransactionRepository creates a new wallet transaction repository
func NewWalletTransactionRepository(db *database.DB) *WalletTransactionRepository {
	return &WalletTransactionRepository{q: db.Pool}
}

func newWalletTransactionRepository(q Queryable) *WalletTransactionRepository {
	return &WalletTransactionRepository{q: q}
}

// Record creates a new wallet transaction entry
func (r *WalletTransactionRepository) Record(ctx context.Context, tx *entities.WalletTransaction) error {
	query := `
		INSERT INTO wallet_transactions (user_id, balance_before, balance_after, change_cents, transaction_type, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.q.QueryRow(ctx, query,
		tx.UserID, tx.BalanceBefore, tx.BalanceAfter, tx.ChangeCents, tx.Type, tx.Metadata,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record wallet transaction for user %d: %w", tx.UserID, err)
	}
	return nil
}

// GetByUser returns the most recent wallet transactions for a user
func (r *WalletTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.WalletTransaction, error) {
	query := `
		SELECT id, user_id, balance_before, balance_after, change_cents, transaction_type, metadata, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var transactions []*entities.WalletTransaction
	for rows.Next() {
		var tx entities.WalletTransaction
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.BalanceBefore,
			&tx.BalanceAfter,
			&tx.ChangeCents,
			&tx.Type,
			&tx.Metadata,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}
	return transactions, rows.Err()
}
