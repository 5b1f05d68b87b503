package services

import (
	"context"
	"fmt"

	"libraminds/domain/entities"
	"libraminds/domain/events"
	"libraminds/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// walletService implements wallet, fine payment and membership operations.
// Every balance change is recorded as a wallet transaction with the balance
// before and after.
type walletService struct {
	userRepo       interfaces.UserRepository
	walletTxRepo   interfaces.WalletTransactionRepository
	eventPublisher interfaces.EventPublisher
}

// NewWalletService creates a new wallet service
func NewWalletService(
	userRepo interfaces.UserRepository,
	walletTxRepo interfaces.WalletTransactionRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.WalletService {
	return &walletService{
		userRepo:       userRepo,
		walletTxRepo:   walletTxRepo,
		eventPublisher: eventPublisher,
	}
}

// AddFunds credits a positive amount to the wallet. Payment capture itself
// happens upstream; by the time this is called the money has already moved.
func (s *walletService) AddFunds(ctx context.Context, userID, amountCents int64) (*entities.WalletStatement, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	newBalance := user.WalletCents + amountCents
	if err := s.userRepo.UpdateWallet(ctx, userID, newBalance, user.FineCents); err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	if err := s.recordChange(ctx, user, newBalance, amountCents, entities.TransactionTypeDeposit, nil); err != nil {
		return nil, err
	}

	return &entities.WalletStatement{
		UserID:      userID,
		WalletCents: newBalance,
		FineCents:   user.FineCents,
		Tier:        user.Tier,
	}, nil
}

// PayFine debits the wallet and reduces the fine balance. Overpayment is
// allowed and leaves fines at zero, never negative.
func (s *walletService) PayFine(ctx context.Context, userID, amountCents int64) (*entities.WalletStatement, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.CanAfford(amountCents) {
		return nil, ErrInsufficientFunds
	}

	newBalance := user.WalletCents - amountCents
	newFines := user.FineCents - amountCents
	if newFines < 0 {
		newFines = 0
	}
	if err := s.userRepo.UpdateWallet(ctx, userID, newBalance, newFines); err != nil {
		return nil, fmt.Errorf("failed to apply fine payment: %w", err)
	}

	meta := map[string]any{
		"fines_before": user.FineCents,
		"fines_after":  newFines,
	}
	if err := s.recordChange(ctx, user, newBalance, -amountCents, entities.TransactionTypeFinePayment, meta); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"userID":         userID,
		"amountCents":    amountCents,
		"remainingFines": newFines,
	}).Info("Fine payment applied")

	return &entities.WalletStatement{
		UserID:      userID,
		WalletCents: newBalance,
		FineCents:   newFines,
		Tier:        user.Tier,
	}, nil
}

// UpgradeTier charges the target tier's cost and switches the membership.
// Only solvency is checked: a member may buy a cheaper tier at that tier's
// cost. Re-buying the current tier is rejected.
func (s *walletService) UpgradeTier(ctx context.Context, userID int64, tier entities.Tier) (*entities.WalletStatement, error) {
	if !tier.IsValid() {
		return nil, ErrInvalidTier
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Tier == tier {
		return nil, ErrInvalidTier
	}

	cost := tier.MustRule().CostCents
	if !user.CanAfford(cost) {
		return nil, ErrInsufficientFunds
	}

	newBalance := user.WalletCents - cost
	if err := s.userRepo.UpdateWallet(ctx, userID, newBalance, user.FineCents); err != nil {
		return nil, fmt.Errorf("failed to charge tier cost: %w", err)
	}
	if err := s.userRepo.UpdateTier(ctx, userID, tier); err != nil {
		return nil, fmt.Errorf("failed to update tier: %w", err)
	}

	if cost > 0 {
		meta := map[string]any{
			"old_tier": string(user.Tier),
			"new_tier": string(tier),
		}
		if err := s.recordChange(ctx, user, newBalance, -cost, entities.TransactionTypeTierChange, meta); err != nil {
			return nil, err
		}
	}

	s.eventPublisher.Publish(events.TierChangedEvent{
		UserID:    userID,
		OldTier:   user.Tier,
		NewTier:   tier,
		CostCents: cost,
	})

	log.WithFields(log.Fields{
		"userID":  userID,
		"oldTier": user.Tier,
		"newTier": tier,
	}).Info("Membership tier changed")

	return &entities.WalletStatement{
		UserID:      userID,
		WalletCents: newBalance,
		FineCents:   user.FineCents,
		Tier:        tier,
	}, nil
}

// recordChange persists the wallet transaction and publishes the balance
// change event
func (s *walletService) recordChange(ctx context.Context, user *entities.User, newBalance, changeCents int64, txType entities.TransactionType, meta map[string]any) error {
	tx := &entities.WalletTransaction{
		UserID:        user.ID,
		BalanceBefore: user.WalletCents,
		BalanceAfter:  newBalance,
		ChangeCents:   changeCents,
		Type:          txType,
		Metadata:      meta,
	}
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid wallet transaction: %w", err)
	}
	if err := s.walletTxRepo.Record(ctx, tx); err != nil {
		return fmt.Errorf("failed to record wallet transaction: %w", err)
	}

	s.eventPublisher.Publish(events.BalanceChangeEvent{
		UserID:          user.ID,
		OldBalance:      user.WalletCents,
		NewBalance:      newBalance,
		ChangeCents:     changeCents,
		TransactionType: txType,
	})
	return nil
}
