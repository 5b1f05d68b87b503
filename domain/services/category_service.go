package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"libraminds/domain/entities"
	"libraminds/domain/events"
	"libraminds/domain/interfaces"
)

// categoryService implements the category approval workflow. Creation always
// yields a pending category; the only transition is pending -> approved.
type categoryService struct {
	categoryRepo   interfaces.CategoryRepository
	eventPublisher interfaces.EventPublisher
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo interfaces.CategoryRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.CategoryService {
	return &categoryService{
		categoryRepo:   categoryRepo,
		eventPublisher: eventPublisher,
	}
}

// CreateCategory creates a category in pending status
func (s *categoryService) CreateCategory(ctx context.Context, name string, createdBy int64) (*entities.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name cannot be empty")
	}

	category := &entities.Category{
		Name:      name,
		Status:    entities.CategoryStatusPending,
		CreatedBy: createdBy,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// ApproveCategory transitions a category to approved. Approving an already
// approved category is a no-op.
func (s *categoryService) ApproveCategory(ctx context.Context, categoryID int64) (*entities.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if category.IsApproved() {
		return category, nil
	}

	if err := s.categoryRepo.UpdateStatus(ctx, categoryID, entities.CategoryStatusApproved); err != nil {
		return nil, fmt.Errorf("failed to approve category: %w", err)
	}
	category.Status = entities.CategoryStatusApproved

	s.eventPublisher.Publish(events.CategoryApprovedEvent{
		CategoryID: categoryID,
		Name:       category.Name,
	})

	return category, nil
}

// ListCategories returns categories, optionally filtered by status
func (s *categoryService) ListCategories(ctx context.Context, status *entities.CategoryStatus) ([]*entities.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
