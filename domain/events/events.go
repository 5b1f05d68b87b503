package events

import (
	"time"

	"libraminds/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBookBorrowed     EventType = "book_borrowed"
	EventTypeBookReturned     EventType = "book_returned"
	EventTypeBalanceChange    EventType = "balance_change"
	EventTypeTierChanged      EventType = "tier_changed"
	EventTypeCategoryApproved EventType = "category_approved"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BookBorrowedEvent is published when a loan is opened
type BookBorrowedEvent struct {
	BookID  int64
	UserID  int64
	DueDate time.Time
}

func (e BookBorrowedEvent) Type() EventType {
	return EventTypeBookBorrowed
}

// BookReturnedEvent is published when a loan is closed. ReservedBy carries
// the pending reservation, if any, so a collaborator can notify the reserver.
type BookReturnedEvent struct {
	BookID     int64
	UserID     int64
	FineCents  int64
	ReservedBy *int64
}

func (e BookReturnedEvent) Type() EventType {
	return EventTypeBookReturned
}

// BalanceChangeEvent is published for every wallet mutation
type BalanceChangeEvent struct {
	UserID          int64
	OldBalance      int64
	NewBalance      int64
	ChangeCents     int64
	TransactionType entities.TransactionType
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// TierChangedEvent is published when a membership tier purchase completes
type TierChangedEvent struct {
	UserID    int64
	OldTier   entities.Tier
	NewTier   entities.Tier
	CostCents int64
}

func (e TierChangedEvent) Type() EventType {
	return EventTypeTierChanged
}

// CategoryApprovedEvent is published when a pending category is approved
type CategoryApprovedEvent struct {
	CategoryID int64
	Name       string
}

func (e CategoryApprovedEvent) Type() EventType {
	return EventTypeCategoryApproved
}
