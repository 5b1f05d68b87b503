package repository

import (
	"context"
	"testing"

	"libraminds/domain/entities"
	"libraminds/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user found", func(t *testing.T) {
		created, err := repo.Create(ctx, "amira", "Amira Hassan", entities.RoleStudent, 1500)
		require.NoError(t, err)

		user, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "amira", user.Username)
		assert.Equal(t, "Amira Hassan", user.Name)
		assert.Equal(t, entities.RoleStudent, user.Role)
		assert.Equal(t, entities.TierStandard, user.Tier)
		assert.Equal(t, int64(1500), user.WalletCents)
		assert.Equal(t, int64(0), user.FineCents)
	})
}

func TestUserRepository_GetByUsername(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("found", func(t *testing.T) {
		created, err := repo.Create(ctx, "marcus", "Marcus Webb", entities.RoleLibrarian, 0)
		require.NoError(t, err)

		user, err := repo.GetByUsername(ctx, "marcus")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, entities.RoleLibrarian, user.Role)
	})
}

func TestUserRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		user, err := repo.Create(ctx, "newuser", "New User", entities.RoleStudent, 2000)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.NotZero(t, user.ID)
		assert.Equal(t, entities.TierStandard, user.Tier)
		assert.Equal(t, int64(2000), user.WalletCents)
		assert.False(t, user.CreatedAt.IsZero())
		assert.False(t, user.UpdatedAt.IsZero())
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := repo.Create(ctx, "dupe", "First", entities.RoleStudent, 0)
		require.NoError(t, err)

		_, err = repo.Create(ctx, "dupe", "Second", entities.RoleStudent, 0)
		assert.Error(t, err)
	})
}

func TestUserRepository_UpdateWallet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("updates both balances", func(t *testing.T) {
		user, err := repo.Create(ctx, "walletuser", "Wallet User", entities.RoleStudent, 1000)
		require.NoError(t, err)

		err = repo.UpdateWallet(ctx, user.ID, 500, 1500)
		require.NoError(t, err)

		updated, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(500), updated.WalletCents)
		assert.Equal(t, int64(1500), updated.FineCents)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := repo.UpdateWallet(ctx, 999999, 100, 0)
		assert.Error(t, err)
	})

	t.Run("negative balance rejected by schema", func(t *testing.T) {
		user, err := repo.Create(ctx, "negativeuser", "Negative User", entities.RoleStudent, 0)
		require.NoError(t, err)

		err = repo.UpdateWallet(ctx, user.ID, -100, 0)
		assert.Error(t, err)
	})
}

func TestUserRepository_UpdateTier(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("upgrades tier", func(t *testing.T) {
		user, err := repo.Create(ctx, "tieruser", "Tier User", entities.RoleStudent, 5000)
		require.NoError(t, err)

		err = repo.UpdateTier(ctx, user.ID, entities.TierPremium)
		require.NoError(t, err)

		updated, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.TierPremium, updated.Tier)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := repo.UpdateTier(ctx, 999999, entities.TierScholar)
		assert.Error(t, err)
	})
}

func TestUserRepository_GetAll(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, "first", "First User", entities.RoleStudent, 0)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "second", "Second User", entities.RoleAdmin, 0)
	require.NoError(t, err)

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
