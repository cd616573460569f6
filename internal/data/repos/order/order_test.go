package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	types "github.com/yungbote/storefront-backend/internal/domain"
)

func TestOrderRepo_CreateAndGet_PreservesItemSnapshots(t *testing.T) {
	tx := testutil.Tx(t)
	repo := NewOrderRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	buyer := testutil.SeedUser(t, tx, types.RoleUser)
	productID := uuid.New()
	seeded := testutil.SeedOrder(t, tx, buyer.ID, []types.OrderItem{
		{ProductID: productID, Name: "Keyboard", Price: 40, Quantity: 3, Image: "img"},
	})

	found, err := repo.GetByIDs(ctx, tx, []uuid.UUID{seeded.ID})
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 order, got %d", len(found))
	}
	got := found[0]
	if len(got.OrderItems) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(got.OrderItems))
	}
	item := got.OrderItems[0]
	if item.ProductID != productID || item.Name != "Keyboard" || item.Price != 40 || item.Quantity != 3 {
		t.Fatalf("snapshot mangled: %+v", item)
	}
	if got.User == nil || got.User.ID != buyer.ID {
		t.Fatalf("expected user preloaded, got %+v", got.User)
	}
}

func TestOrderRepo_ListByUserID_ScopesAndOrders(t *testing.T) {
	tx := testutil.Tx(t)
	repo := NewOrderRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	alice := testutil.SeedUser(t, tx, types.RoleUser)
	bob := testutil.SeedUser(t, tx, types.RoleUser)

	items := []types.OrderItem{{ProductID: uuid.New(), Name: "Mouse", Price: 25, Quantity: 1}}
	first := testutil.SeedOrder(t, tx, alice.ID, items)
	tx.Model(first).Update("created_at", time.Now().Add(-time.Hour))
	second := testutil.SeedOrder(t, tx, alice.ID, items)
	testutil.SeedOrder(t, tx, bob.ID, items)

	orders, err := repo.ListByUserID(ctx, tx, alice.ID)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders for alice, got %d", len(orders))
	}
	if orders[0].ID != second.ID {
		t.Fatalf("expected newest order first, got %s", orders[0].ID)
	}
}

func TestOrderRepo_UpdateFields_EmptyMapIsNoop(t *testing.T) {
	tx := testutil.Tx(t)
	repo := NewOrderRepo(tx, testutil.Logger(t))

	if err := repo.UpdateFields(context.Background(), tx, uuid.New(), map[string]any{}); err != nil {
		t.Fatalf("expected noop, got %v", err)
	}
}
