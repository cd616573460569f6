package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
)

func SeedUser(t *testing.T, tx *gorm.DB, role string) *types.User {
	t.Helper()
	theUser := &types.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    fmt.Sprintf("user-%s@example.com", uuid.NewString()),
		Password: "$2a$10$notarealhashnotarealhashnotarealhashnotarealha",
		Role:     role,
	}
	if err := tx.Create(theUser).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return theUser
}

func SeedCategory(t *testing.T, tx *gorm.DB, name string) *types.Category {
	t.Helper()
	category := &types.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: "seeded category",
		IsActive:    true,
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

func SeedProduct(t *testing.T, tx *gorm.DB, categoryID uuid.UUID, name string, price float64, stock int) *types.Product {
	t.Helper()
	product := &types.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "seeded product",
		Price:       price,
		Images:      datatypes.NewJSONSlice([]string{"https://img.example.com/" + uuid.NewString()}),
		CategoryID:  categoryID,
		Stock:       stock,
		IsActive:    true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func SeedOrder(t *testing.T, tx *gorm.DB, userID uuid.UUID, items []types.OrderItem) *types.Order {
	t.Helper()
	var itemsPrice float64
	for _, item := range items {
		itemsPrice += item.Price * float64(item.Quantity)
	}
	theOrder := &types.Order{
		ID:         uuid.New(),
		UserID:     userID,
		OrderItems: datatypes.NewJSONSlice(items),
		ShippingAddress: types.ShippingAddress{
			Address:    "1 Test Street",
			City:       "Testville",
			PostalCode: "00000",
			Country:    "Testland",
		},
		PaymentMethod: "card",
		ItemsPrice:    itemsPrice,
		TotalPrice:    itemsPrice,
		Status:        types.OrderStatusPending,
		CreatedAt:     time.Now(),
	}
	if err := tx.Create(theOrder).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return theOrder
}
