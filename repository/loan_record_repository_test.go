package repository

import (
	"context"
	"testing"
	"time"

	"libraminds/domain/entities"
	"libraminds/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanRecordRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLoanRecordRepository(testDB.DB)
	ctx := context.Background()

	librarian := testutil.CreateTestUserWithRole(t, testDB.DB, "librarian", entities.RoleLibrarian)
	category := testutil.CreateTestCategory(t, testDB.DB, "Fiction", librarian.ID)
	alice := testutil.CreateTestUser(t, testDB.DB, "alice")
	bob := testutil.CreateTestUser(t, testDB.DB, "bob")
	book := testutil.CreateTestBook(t, testDB.DB, "Dune", category.ID)

	borrowDate := time.Now().UTC().AddDate(0, 0, -16).Truncate(time.Microsecond)
	returnDate := borrowDate.AddDate(0, 0, 16)

	t.Run("create fills id and timestamp", func(t *testing.T) {
		record := &entities.LoanRecord{
			BookID:     book.ID,
			UserID:     alice.ID,
			BorrowDate: borrowDate,
			ReturnDate: returnDate,
			FineCents:  1000,
		}
		require.NoError(t, repo.Create(ctx, record))
		assert.NotZero(t, record.ID)
		assert.False(t, record.CreatedAt.IsZero())
	})

	t.Run("get by user newest first", func(t *testing.T) {
		second := &entities.LoanRecord{
			BookID:     book.ID,
			UserID:     alice.ID,
			BorrowDate: returnDate,
			ReturnDate: returnDate.AddDate(0, 0, 7),
		}
		require.NoError(t, repo.Create(ctx, second))

		records, err := repo.GetByUser(ctx, alice.ID, 10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, second.ID, records[0].ID)

		limited, err := repo.GetByUser(ctx, alice.ID, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		empty, err := repo.GetByUser(ctx, bob.ID, 10)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("get by book", func(t *testing.T) {
		records, err := repo.GetByBook(ctx, book.ID, 10)
		require.NoError(t, err)
		assert.Len(t, records, 2)
		for _, record := range records {
			assert.Equal(t, book.ID, record.BookID)
		}
	})

	t.Run("negative fine rejected by schema", func(t *testing.T) {
		record := &entities.LoanRecord{
			BookID:     book.ID,
			UserID:     alice.ID,
			BorrowDate: borrowDate,
			ReturnDate: returnDate,
			FineCents:  -500,
		}
		err := repo.Create(ctx, record)
		assert.Error(t, err)
	})
}
