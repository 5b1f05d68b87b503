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

func TestCategoryService_CreateCategory(t *testing.T) {
	t.Parallel()

	t.Run("new categories start pending", func(t *testing.T) {
		t.Parallel()

		categoryRepo := new(testhelpers.MockCategoryRepository)
		var created *entities.Category
		categoryRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(*entities.Category)
		}).Return(nil)

		service := NewCategoryService(categoryRepo, &testhelpers.NoopPublisher{})
		category, err := service.CreateCategory(context.Background(), "  Philosophy ", 2)
		require.NoError(t, err)

		assert.Equal(t, entities.CategoryStatusPending, category.Status)
		assert.Equal(t, "Philosophy", created.Name)
		assert.Equal(t, int64(2), created.CreatedBy)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		t.Parallel()

		service := NewCategoryService(new(testhelpers.MockCategoryRepository), &testhelpers.NoopPublisher{})
		_, err := service.CreateCategory(context.Background(), "   ", 2)
		assert.Error(t, err)
	})
}

func TestCategoryService_ApproveCategory(t *testing.T) {
	t.Parallel()

	t.Run("pending category transitions to approved", func(t *testing.T) {
		t.Parallel()

		categoryRepo := new(testhelpers.MockCategoryRepository)
		publisher := &testhelpers.NoopPublisher{}
		pending := &entities.Category{ID: 7, Name: "History", Status: entities.CategoryStatusPending}
		categoryRepo.On("GetByID", mock.Anything, int64(7)).Return(pending, nil)
		categoryRepo.On("UpdateStatus", mock.Anything, int64(7), entities.CategoryStatusApproved).Return(nil)

		service := NewCategoryService(categoryRepo, publisher)
		category, err := service.ApproveCategory(context.Background(), 7)
		require.NoError(t, err)

		assert.Equal(t, entities.CategoryStatusApproved, category.Status)
		require.Len(t, publisher.Events, 1)
		assert.Equal(t, events.EventTypeCategoryApproved, publisher.Events[0].Type())
	})

	t.Run("approving twice is a no-op", func(t *testing.T) {
		t.Parallel()

		categoryRepo := new(testhelpers.MockCategoryRepository)
		approved := &entities.Category{ID: 7, Name: "History", Status: entities.CategoryStatusApproved}
		categoryRepo.On("GetByID", mock.Anything, int64(7)).Return(approved, nil)

		service := NewCategoryService(categoryRepo, &testhelpers.NoopPublisher{})
		category, err := service.ApproveCategory(context.Background(), 7)
		require.NoError(t, err)

		assert.Equal(t, entities.CategoryStatusApproved, category.Status)
		categoryRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()

		categoryRepo := new(testhelpers.MockCategoryRepository)
		categoryRepo.On("GetByID", mock.Anything, int64(7)).Return(nil, nil)

		service := NewCategoryService(categoryRepo, &testhelpers.NoopPublisher{})
		_, err := service.ApproveCategory(context.Background(), 7)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}
