package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type CreateCategoryInput struct {
	Name        string
	Description string
	Image       string
	IsActive    *bool
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Image       *string
	IsActive    *bool
}

type CategoryService interface {
	List(ctx context.Context, activeOnly bool, page, limit int) ([]*types.Category, int64, error)
	GetByID(ctx context.Context, categoryID uuid.UUID) (*types.Category, error)
	Create(ctx context.Context, input CreateCategoryInput) (*types.Category, error)
	Update(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*types.Category, error)
	Delete(ctx context.Context, categoryID uuid.UUID) error
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
}

func NewCategoryService(db *gorm.DB, log *logger.Logger, categoryRepo repos.CategoryRepo) CategoryService {
	serviceLog := log.With("service", "CategoryService")
	return &categoryService{db: db, log: serviceLog, categoryRepo: categoryRepo}
}

func (cs *categoryService) List(ctx context.Context, activeOnly bool, page, limit int) ([]*types.Category, int64, error) {
	offset := (page - 1) * limit
	return cs.categoryRepo.List(ctx, nil, activeOnly, offset, limit)
}

func (cs *categoryService) GetByID(ctx context.Context, categoryID uuid.UUID) (*types.Category, error) {
	found, err := cs.categoryRepo.GetByIDs(ctx, nil, []uuid.UUID{categoryID})
	if err != nil {
		return nil, fmt.Errorf("error fetching category: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, ErrNotFound
	}
	return found[0], nil
}

func (cs *categoryService) Create(ctx context.Context, input CreateCategoryInput) (*types.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	category := &types.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
		Image:       input.Image,
		IsActive:    isActive,
	}
	if _, err := cs.categoryRepo.Create(ctx, nil, []*types.Category{category}); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (cs *categoryService) Update(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*types.Category, error) {
	if _, err := cs.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Image != nil {
		fields["image"] = *input.Image
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if err := cs.categoryRepo.UpdateFields(ctx, nil, categoryID, fields); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return cs.GetByID(ctx, categoryID)
}

func (cs *categoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	deleted, err := cs.categoryRepo.Delete(ctx, nil, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
