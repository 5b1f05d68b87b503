package entities

import (
	"errors"
	"time"
)

// TransactionType classifies a wallet balance change
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeFinePayment TransactionType = "fine_payment"
	TransactionTypeFineAssess  TransactionType = "fine_assessed"
	TransactionTypeTierChange  TransactionType = "tier_change"
)

// WalletTransaction records a single wallet balance change. Amounts are in
// cents; ChangeCents is negative for debits.
type WalletTransaction struct {
	ID            int64           `db:"id"`
	UserID        int64           `db:"user_id"`
	BalanceBefore int64           `db:"balance_before"`
	BalanceAfter  int64           `db:"balance_after"`
	ChangeCents   int64           `db:"change_cents"`
	Type          TransactionType `db:"transaction_type"`
	Metadata      map[string]any  `db:"metadata"`
	CreatedAt     time.Time       `db:"created_at"`
}

// IsDebit reports whether the change removed funds from the wallet
func (t *WalletTransaction) IsDebit() bool {
	return t.ChangeCents < 0
}

// Validate performs basic consistency checks before the record is persisted
func (t *WalletTransaction) Validate() error {
	if t.BalanceAfter != t.BalanceBefore+t.ChangeCents {
		return errors.New("balance calculation is inconsistent")
	}
	if t.BalanceAfter < 0 {
		return errors.New("balance cannot go negative")
	}
	return nil
}
