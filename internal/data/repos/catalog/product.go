package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

// ProductFilter narrows product listings. Zero value means "everything".
type ProductFilter struct {
	ActiveOnly bool
	CategoryID *uuid.UUID
	Search     string
}

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error)
	List(ctx context.Context, tx *gorm.DB, filter ProductFilter, offset, limit int) ([]*types.Product, int64, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, productID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int64, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, quantity int) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(products) == 0 {
		return []*types.Product{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (pr *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if len(productIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Category").
		Where("id IN ?", productIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func applyProductFilter(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	return query
}

func (pr *productRepo) List(ctx context.Context, tx *gorm.DB, filter ProductFilter, offset, limit int) ([]*types.Product, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Product
	if err := applyProductFilter(transaction.WithContext(ctx).Model(&types.Product{}), filter).
		Preload("Category").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := applyProductFilter(transaction.WithContext(ctx).Model(&types.Product{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (pr *productRepo) UpdateFields(ctx context.Context, tx *gorm.DB, productID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id = ?", productID).
		Updates(fields).Error
}

func (pr *productRepo) Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&types.Product{})
	return res.RowsAffected, res.Error
}

// DecrementStock subtracts quantity from the product's stock, clamping at
// zero in SQL so concurrent purchases can never drive it negative.
func (pr *productRepo) DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, quantity int) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", quantity)).Error
}
