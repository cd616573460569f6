package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	types "github.com/yungbote/storefront-backend/internal/domain"
)

func newOrderServiceForTest(t *testing.T) (OrderService, *testServiceDeps) {
	t.Helper()
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	deps := &testServiceDeps{
		tx:          tx,
		userRepo:    repos.NewUserRepo(tx, log),
		productRepo: repos.NewProductRepo(tx, log),
		orderRepo:   repos.NewOrderRepo(tx, log),
	}
	return NewOrderService(tx, log, deps.orderRepo, deps.productRepo), deps
}

type testServiceDeps struct {
	tx          *gorm.DB
	userRepo    repos.UserRepo
	productRepo repos.ProductRepo
	orderRepo   repos.OrderRepo
}

func TestOrderService_Create_PricesCartAndDecrementsStock(t *testing.T) {
	svc, deps := newOrderServiceForTest(t)
	ctx := context.Background()

	buyer := testutil.SeedUser(t, deps.tx, types.RoleUser)
	category := testutil.SeedCategory(t, deps.tx, "Peripherals")
	keyboard := testutil.SeedProduct(t, deps.tx, category.ID, "Keyboard", 50, 5)
	deps.tx.Model(keyboard).Update("discount_percentage", 20)

	created, err := svc.Create(ctx, buyer.ID, CreateOrderInput{
		Items:         []OrderItemInput{{ProductID: keyboard.ID, Quantity: 3}},
		PaymentMethod: "card",
		ShippingAddress: types.ShippingAddress{
			Address: "1 Test Street", City: "Testville", PostalCode: "00000", Country: "Testland",
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if !floatEq(created.ItemsPrice, 120) || !floatEq(created.TaxPrice, 18) ||
		!floatEq(created.ShippingPrice, 0) || !floatEq(created.TotalPrice, 138) {
		t.Fatalf("unexpected price breakdown: %+v", created)
	}
	if created.Status != types.OrderStatusPending {
		t.Fatalf("expected pending status, got %q", created.Status)
	}
	if len(created.OrderItems) != 1 || created.OrderItems[0].Name != "Keyboard" {
		t.Fatalf("unexpected order items: %+v", created.OrderItems)
	}

	reloaded, err := deps.productRepo.GetByIDs(ctx, deps.tx, []uuid.UUID{keyboard.ID})
	if err != nil || len(reloaded) != 1 {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded[0].Stock != 2 {
		t.Fatalf("expected stock 2 after purchase, got %d", reloaded[0].Stock)
	}
}

func TestOrderService_Create_OutOfStockLeavesDatabaseUntouched(t *testing.T) {
	svc, deps := newOrderServiceForTest(t)
	ctx := context.Background()

	buyer := testutil.SeedUser(t, deps.tx, types.RoleUser)
	category := testutil.SeedCategory(t, deps.tx, "Peripherals")
	mouse := testutil.SeedProduct(t, deps.tx, category.ID, "Mouse", 25, 2)
	cable := testutil.SeedProduct(t, deps.tx, category.ID, "Cable", 5, 10)

	_, err := svc.Create(ctx, buyer.ID, CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: cable.ID, Quantity: 4},
			{ProductID: mouse.ID, Quantity: 3},
		},
		PaymentMethod: "card",
		ShippingAddress: types.ShippingAddress{
			Address: "1 Test Street", City: "Testville", PostalCode: "00000", Country: "Testland",
		},
	})
	var oos *OutOfStockError
	if !errors.As(err, &oos) {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}

	orders, err := deps.orderRepo.ListByUserID(ctx, deps.tx, buyer.ID)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders after failed create, got %d", len(orders))
	}

	reloaded, err := deps.productRepo.GetByIDs(ctx, deps.tx, []uuid.UUID{cable.ID})
	if err != nil || len(reloaded) != 1 {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded[0].Stock != 10 {
		t.Fatalf("expected cable stock untouched at 10, got %d", reloaded[0].Stock)
	}
}

func TestOrderService_UpdateStatus_DeliveredSetsDeliveryFlags(t *testing.T) {
	svc, deps := newOrderServiceForTest(t)
	ctx := context.Background()

	buyer := testutil.SeedUser(t, deps.tx, types.RoleUser)
	theOrder := testutil.SeedOrder(t, deps.tx, buyer.ID, []types.OrderItem{
		{ProductID: uuid.New(), Name: "Mouse", Price: 25, Quantity: 1},
	})

	tracking := "TRACK-123"
	updated, err := svc.UpdateStatus(ctx, theOrder.ID, types.OrderStatusDelivered, &tracking)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != types.OrderStatusDelivered {
		t.Fatalf("expected delivered status, got %q", updated.Status)
	}
	if !updated.IsDelivered || updated.DeliveredAt == nil {
		t.Fatalf("expected delivery flags set: %+v", updated)
	}
	if updated.TrackingNumber != tracking {
		t.Fatalf("expected tracking number %q, got %q", tracking, updated.TrackingNumber)
	}
}

func TestOrderService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := &orderService{}
	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "teleported", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOrderService_MarkAsPaid_MovesOrderToProcessing(t *testing.T) {
	svc, deps := newOrderServiceForTest(t)
	ctx := context.Background()

	buyer := testutil.SeedUser(t, deps.tx, types.RoleUser)
	theOrder := testutil.SeedOrder(t, deps.tx, buyer.ID, []types.OrderItem{
		{ProductID: uuid.New(), Name: "Mouse", Price: 25, Quantity: 1},
	})

	paid, err := svc.MarkAsPaid(ctx, theOrder.ID)
	if err != nil {
		t.Fatalf("mark as paid: %v", err)
	}
	if !paid.IsPaid || paid.PaidAt == nil {
		t.Fatalf("expected payment flags set: %+v", paid)
	}
	if paid.Status != types.OrderStatusProcessing {
		t.Fatalf("expected processing status after payment, got %q", paid.Status)
	}
}
