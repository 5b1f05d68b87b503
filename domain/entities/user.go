package entities

import (
	"errors"
	"time"
)

// Role represents what a user account is allowed to do
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLibrarian Role = "librarian"
	RoleStudent   Role = "student"
)

// User represents a patron or staff account. WalletBalance and Fines are in
// cents and never go negative; every mutation routes through WalletService
// or LendingService.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Name         string    `db:"name"`
	Role         Role      `db:"role"`
	Tier         Tier      `db:"tier"`
	WalletCents  int64     `db:"wallet_cents"`
	FineCents    int64     `db:"fine_cents"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// IsStudent reports whether the account participates in lending policy
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsPrivileged reports whether the account may invoke management operations
func (u *User) IsPrivileged() bool {
	return u.Role == RoleAdmin || u.Role == RoleLibrarian
}

// HasOutstandingFines reports whether any fine balance blocks new borrowing
func (u *User) HasOutstandingFines() bool {
	return u.FineCents > 0
}

// CanAfford checks if the wallet covers an amount in cents
func (u *User) CanAfford(cents int64) bool {
	return u.WalletCents >= cents
}

// ValidateAmount checks that an amount is a positive number of cents
func (u *User) ValidateAmount(cents int64) error {
	if cents <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}
