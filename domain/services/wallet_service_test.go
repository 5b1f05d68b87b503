package services

import (
	"context"
	"testing"

	"libraminds/domain/entities"
	"libraminds/domain/events"
	"libraminds/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func walletUser(id, walletCents, fineCents int64, tier entities.Tier) *entities.User {
	return &entities.User{
		ID:          id,
		Username:    "student",
		Role:        entities.RoleStudent,
		Tier:        tier,
		WalletCents: walletCents,
		FineCents:   fineCents,
	}
}

func TestWalletService_AddFunds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		amountCents int64
		setupMocks  func(*testhelpers.MockUserRepository, *testhelpers.MockWalletTransactionRepository)
		wantErr     error
		wantBalance int64
	}{
		{
			name:        "credit is unconditional for positive amounts",
			amountCents: 2500,
			setupMocks: func(userRepo *testhelpers.MockUserRepository, txRepo *testhelpers.MockWalletTransactionRepository) {
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(walletUser(3, 1000, 0, entities.TierStandard), nil)
				userRepo.On("UpdateWallet", mock.Anything, int64(3), int64(3500), int64(0)).Return(nil)
				txRepo.On("Record", mock.Anything, mock.Anything).Return(nil)
			},
			wantBalance: 3500,
		},
		{
			name:        "zero amount rejected",
			amountCents: 0,
			wantErr:     ErrInvalidAmount,
		},
		{
			name:        "negative amount rejected",
			amountCents: -100,
			wantErr:     ErrInvalidAmount,
		},
		{
			name:        "unknown user",
			amountCents: 100,
			setupMocks: func(userRepo *testhelpers.MockUserRepository, txRepo *testhelpers.MockWalletTransactionRepository) {
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userRepo := new(testhelpers.MockUserRepository)
			txRepo := new(testhelpers.MockWalletTransactionRepository)
			publisher := &testhelpers.NoopPublisher{}
			if tt.setupMocks != nil {
				tt.setupMocks(userRepo, txRepo)
			}

			service := NewWalletService(userRepo, txRepo, publisher)
			statement, err := service.AddFunds(context.Background(), 3, tt.amountCents)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBalance, statement.WalletCents)
				require.Len(t, publisher.Events, 1)
				assert.Equal(t, events.EventTypeBalanceChange, publisher.Events[0].Type())
			}
			userRepo.AssertExpectations(t)
			txRepo.AssertExpectations(t)
		})
	}
}

func TestWalletService_PayFine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		user        *entities.User
		amountCents int64
		wantErr     error
		wantBalance int64
		wantFines   int64
	}{
		{
			name:        "full payment clears fines",
			user:        walletUser(3, 5000, 1500, entities.TierStandard),
			amountCents: 1500,
			wantBalance: 3500,
			wantFines:   0,
		},
		{
			name:        "partial payment reduces fines",
			user:        walletUser(3, 5000, 1500, entities.TierStandard),
			amountCents: 500,
			wantBalance: 4500,
			wantFines:   1000,
		},
		{
			name:        "overpayment succeeds and clamps fines at zero",
			user:        walletUser(3, 5000, 300, entities.TierStandard),
			amountCents: 1000,
			wantBalance: 4000,
			wantFines:   0,
		},
		{
			name:        "payment above wallet balance rejected",
			user:        walletUser(3, 400, 1500, entities.TierStandard),
			amountCents: 500,
			wantErr:     ErrInsufficientFunds,
		},
		{
			name:        "non-positive amount rejected",
			user:        walletUser(3, 5000, 1500, entities.TierStandard),
			amountCents: 0,
			wantErr:     ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userRepo := new(testhelpers.MockUserRepository)
			txRepo := new(testhelpers.MockWalletTransactionRepository)
			if tt.amountCents > 0 {
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(tt.user, nil)
			}
			if tt.wantErr == nil {
				userRepo.On("UpdateWallet", mock.Anything, int64(3), tt.wantBalance, tt.wantFines).Return(nil)
				txRepo.On("Record", mock.Anything, mock.Anything).Return(nil)
			}

			service := NewWalletService(userRepo, txRepo, &testhelpers.NoopPublisher{})
			statement, err := service.PayFine(context.Background(), 3, tt.amountCents)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBalance, statement.WalletCents)
				assert.Equal(t, tt.wantFines, statement.FineCents)
				assert.GreaterOrEqual(t, statement.FineCents, int64(0))
				assert.GreaterOrEqual(t, statement.WalletCents, int64(0))
			}
			userRepo.AssertExpectations(t)
			txRepo.AssertExpectations(t)
		})
	}
}

func TestWalletService_UpgradeTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		user        *entities.User
		newTier     entities.Tier
		wantErr     error
		wantBalance int64
	}{
		{
			name:        "exact balance covers premium cost",
			user:        walletUser(3, 2000, 0, entities.TierStandard),
			newTier:     entities.TierPremium,
			wantBalance: 0,
		},
		{
			name:        "scholar upgrade from premium",
			user:        walletUser(3, 9000, 0, entities.TierPremium),
			newTier:     entities.TierScholar,
			wantBalance: 4000,
		},
		{
			name:        "downgrade is permitted at the target tier's cost",
			user:        walletUser(3, 9000, 0, entities.TierScholar),
			newTier:     entities.TierPremium,
			wantBalance: 7000,
		},
		{
			name:    "insufficient funds leaves tier and balance unchanged",
			user:    walletUser(3, 1999, 0, entities.TierStandard),
			newTier: entities.TierPremium,
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "re-buying the current tier rejected",
			user:    walletUser(3, 9000, 0, entities.TierPremium),
			newTier: entities.TierPremium,
			wantErr: ErrInvalidTier,
		},
		{
			name:    "unknown tier rejected",
			user:    walletUser(3, 9000, 0, entities.TierStandard),
			newTier: entities.Tier("platinum"),
			wantErr: ErrInvalidTier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userRepo := new(testhelpers.MockUserRepository)
			txRepo := new(testhelpers.MockWalletTransactionRepository)
			if tt.newTier.IsValid() {
				userRepo.On("GetByID", mock.Anything, int64(3)).Return(tt.user, nil).Maybe()
			}
			if tt.wantErr == nil {
				userRepo.On("UpdateWallet", mock.Anything, int64(3), tt.wantBalance, tt.user.FineCents).Return(nil)
				userRepo.On("UpdateTier", mock.Anything, int64(3), tt.newTier).Return(nil)
				txRepo.On("Record", mock.Anything, mock.Anything).Return(nil)
			}

			service := NewWalletService(userRepo, txRepo, &testhelpers.NoopPublisher{})
			statement, err := service.UpgradeTier(context.Background(), 3, tt.newTier)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				userRepo.AssertNotCalled(t, "UpdateTier", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBalance, statement.WalletCents)
				assert.Equal(t, tt.newTier, statement.Tier)
			}
			userRepo.AssertExpectations(t)
			txRepo.AssertExpectations(t)
		})
	}
}

func TestWalletService_UpgradeTier_RecordsTransactionMetadata(t *testing.T) {
	t.Parallel()

	userRepo := new(testhelpers.MockUserRepository)
	txRepo := new(testhelpers.MockWalletTransactionRepository)

	userRepo.On("GetByID", mock.Anything, int64(3)).Return(walletUser(3, 2000, 0, entities.TierStandard), nil)
	userRepo.On("UpdateWallet", mock.Anything, int64(3), int64(0), int64(0)).Return(nil)
	userRepo.On("UpdateTier", mock.Anything, int64(3), entities.TierPremium).Return(nil)

	var recorded *entities.WalletTransaction
	txRepo.On("Record", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*entities.WalletTransaction)
	}).Return(nil)

	service := NewWalletService(userRepo, txRepo, &testhelpers.NoopPublisher{})
	_, err := service.UpgradeTier(context.Background(), 3, entities.TierPremium)
	require.NoError(t, err)

	require.NotNil(t, recorded)
	assert.Equal(t, entities.TransactionTypeTierChange, recorded.Type)
	assert.Equal(t, int64(2000), recorded.BalanceBefore)
	assert.Equal(t, int64(0), recorded.BalanceAfter)
	assert.Equal(t, int64(-2000), recorded.ChangeCents)
	assert.Equal(t, "standard", recorded.Metadata["old_tier"])
	assert.Equal(t, "premium", recorded.Metadata["new_tier"])
}
