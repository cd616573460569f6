package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
)

func TestProductRepo_List_SearchMatchesNameAndDescription(t *testing.T) {
	tx := testutil.Tx(t)
	repo := NewProductRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	category := testutil.SeedCategory(t, tx, "Peripherals")
	keyboard := testutil.SeedProduct(t, tx, category.ID, "Mechanical Keyboard", 120, 5)
	tx.Model(keyboard).Update("description", "clicky switches")
	mouse := testutil.SeedProduct(t, tx, category.ID, "Wireless Mouse", 45, 5)
	tx.Model(mouse).Update("description", "a keyboard companion")
	testutil.SeedProduct(t, tx, category.ID, "USB Cable", 8, 5)

	products, total, err := repo.List(ctx, tx, ProductFilter{Search: "KEYBOARD"}, 0, 10)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("expected 2 matches for case-insensitive search, got total=%d len=%d", total, len(products))
	}
}

func TestProductRepo_List_ActiveOnlyHidesInactive(t *testing.T) {
	tx := testutil.Tx(t)
	repo := NewProductRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	category := testutil.SeedCategory(t, tx, "Peripherals")
	testutil.SeedProduct(t, tx, category.ID, "Visible", 10, 1)
	hidden := testutil.SeedProduct(t, tx, category.ID, "Hidden", 10, 1)
	tx.Model(hidden).Update("is_active", false)

	products, total, err := repo.List(ctx, tx, ProductFilter{ActiveOnly: true}, 0, 10)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].Name != "Visible" {
		t.Fatalf("expected only the active product, got total=%d products=%+v", total, products)
	}

	_, allTotal, err := repo.List(ctx, tx, ProductFilter{}, 0, 10)
	if err != nil {
		t.Fatalf("list all products: %v", err)
	}
	if allTotal != 2 {
		t.Fatalf("expected unfiltered total 2, got %d", allTotal)
	}
}

func TestProductRepo_List_FiltersByCategory(t *testing.T) {
	tx := testutil.Tx(t)
	repo := NewProductRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	peripherals := testutil.SeedCategory(t, tx, "Peripherals")
	audio := testutil.SeedCategory(t, tx, "Audio")
	testutil.SeedProduct(t, tx, peripherals.ID, "Keyboard", 50, 5)
	testutil.SeedProduct(t, tx, audio.ID, "Headphones", 80, 5)

	products, total, err := repo.List(ctx, tx, ProductFilter{CategoryID: &audio.ID}, 0, 10)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].Name != "Headphones" {
		t.Fatalf("expected only the audio product, got total=%d products=%+v", total, products)
	}
	if products[0].Category == nil || products[0].Category.Name != "Audio" {
		t.Fatalf("expected category preloaded, got %+v", products[0].Category)
	}
}

func TestProductRepo_DecrementStock_ClampsAtZero(t *testing.T) {
	tx := testutil.Tx(t)
	repo := NewProductRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	category := testutil.SeedCategory(t, tx, "Peripherals")
	product := testutil.SeedProduct(t, tx, category.ID, "Keyboard", 50, 2)

	if err := repo.DecrementStock(ctx, tx, product.ID, 5); err != nil {
		t.Fatalf("decrement stock: %v", err)
	}

	reloaded, err := repo.GetByIDs(ctx, tx, []uuid.UUID{product.ID})
	if err != nil || len(reloaded) != 1 {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded[0].Stock != 0 {
		t.Fatalf("expected stock clamped at 0, got %d", reloaded[0].Stock)
	}
}
