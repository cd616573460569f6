package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type CreateProductInput struct {
	Name               string
	Description        string
	Price              float64
	DiscountPercentage float64
	Images             []string
	CategoryID         uuid.UUID
	Stock              int
	IsActive           *bool
	Specifications     map[string]any
}

type UpdateProductInput struct {
	Name               *string
	Description        *string
	Price              *float64
	DiscountPercentage *float64
	Images             []string
	CategoryID         *uuid.UUID
	Stock              *int
	IsActive           *bool
	Specifications     map[string]any
}

type ProductService interface {
	List(ctx context.Context, page, limit int) ([]*types.Product, int64, error)
	ListAdmin(ctx context.Context, page, limit int) ([]*types.Product, int64, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, page, limit int) ([]*types.Product, int64, error)
	Search(ctx context.Context, query string, page, limit int) ([]*types.Product, int64, error)
	GetByID(ctx context.Context, productID uuid.UUID) (*types.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*types.Product, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*types.Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error
}

type productService struct {
	db           *gorm.DB
	log          *logger.Logger
	productRepo  repos.ProductRepo
	categoryRepo repos.CategoryRepo
}

func NewProductService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, categoryRepo repos.CategoryRepo) ProductService {
	serviceLog := log.With("service", "ProductService")
	return &productService{db: db, log: serviceLog, productRepo: productRepo, categoryRepo: categoryRepo}
}

func (ps *productService) List(ctx context.Context, page, limit int) ([]*types.Product, int64, error) {
	offset := (page - 1) * limit
	return ps.productRepo.List(ctx, nil, repos.ProductFilter{ActiveOnly: true}, offset, limit)
}

func (ps *productService) ListAdmin(ctx context.Context, page, limit int) ([]*types.Product, int64, error) {
	offset := (page - 1) * limit
	return ps.productRepo.List(ctx, nil, repos.ProductFilter{}, offset, limit)
}

func (ps *productService) ListByCategory(ctx context.Context, categoryID uuid.UUID, page, limit int) ([]*types.Product, int64, error) {
	offset := (page - 1) * limit
	filter := repos.ProductFilter{ActiveOnly: true, CategoryID: &categoryID}
	return ps.productRepo.List(ctx, nil, filter, offset, limit)
}

func (ps *productService) Search(ctx context.Context, query string, page, limit int) ([]*types.Product, int64, error) {
	offset := (page - 1) * limit
	filter := repos.ProductFilter{ActiveOnly: true, Search: strings.TrimSpace(query)}
	return ps.productRepo.List(ctx, nil, filter, offset, limit)
}

func (ps *productService) GetByID(ctx context.Context, productID uuid.UUID) (*types.Product, error) {
	found, err := ps.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("error fetching product: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, ErrNotFound
	}
	return found[0], nil
}

func validatePricing(price, discountPercentage float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if discountPercentage < 0 || discountPercentage > 100 {
		return fmt.Errorf("%w: discount percentage must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}

func (ps *productService) Create(ctx context.Context, input CreateProductInput) (*types.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: product name and description are required", ErrInvalidInput)
	}
	if err := validatePricing(input.Price, input.DiscountPercentage); err != nil {
		return nil, err
	}
	if input.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}

	categories, err := ps.categoryRepo.GetByIDs(ctx, nil, []uuid.UUID{input.CategoryID})
	if err != nil {
		return nil, fmt.Errorf("error fetching category: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: category does not exist", ErrInvalidInput)
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	specs := input.Specifications
	if specs == nil {
		specs = map[string]any{}
	}
	product := &types.Product{
		ID:                 uuid.New(),
		Name:               name,
		Description:        input.Description,
		Price:              input.Price,
		DiscountPercentage: input.DiscountPercentage,
		Images:             datatypes.NewJSONSlice(input.Images),
		CategoryID:         input.CategoryID,
		Stock:              input.Stock,
		IsActive:           isActive,
		Specifications:     datatypes.JSONMap(specs),
	}
	if _, err := ps.productRepo.Create(ctx, nil, []*types.Product{product}); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (ps *productService) Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*types.Product, error) {
	current, err := ps.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	price := current.Price
	if input.Price != nil {
		price = *input.Price
	}
	discount := current.DiscountPercentage
	if input.DiscountPercentage != nil {
		discount = *input.DiscountPercentage
	}
	if err := validatePricing(price, discount); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.DiscountPercentage != nil {
		fields["discount_percentage"] = *input.DiscountPercentage
	}
	if input.Images != nil {
		fields["images"] = datatypes.NewJSONSlice(input.Images)
	}
	if input.CategoryID != nil {
		categories, err := ps.categoryRepo.GetByIDs(ctx, nil, []uuid.UUID{*input.CategoryID})
		if err != nil {
			return nil, fmt.Errorf("error fetching category: %w", err)
		}
		if len(categories) == 0 {
			return nil, fmt.Errorf("%w: category does not exist", ErrInvalidInput)
		}
		fields["category_id"] = *input.CategoryID
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
		}
		fields["stock"] = *input.Stock
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if input.Specifications != nil {
		fields["specifications"] = datatypes.JSONMap(input.Specifications)
	}
	if err := ps.productRepo.UpdateFields(ctx, nil, productID, fields); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return ps.GetByID(ctx, productID)
}

func (ps *productService) Delete(ctx context.Context, productID uuid.UUID) error {
	deleted, err := ps.productRepo.Delete(ctx, nil, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
