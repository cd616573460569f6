package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

const (
	taxRate               = 0.15
	freeShippingThreshold = 100.0
	flatShippingPrice     = 10.0
)

type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress types.ShippingAddress
	PaymentMethod   string
}

type OrderService interface {
	List(ctx context.Context, page, limit int) ([]*types.Order, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Order, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (*types.Order, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*types.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string, trackingNumber *string) (*types.Order, error)
	MarkAsPaid(ctx context.Context, orderID uuid.UUID) (*types.Order, error)
}

type orderService struct {
	db          *gorm.DB
	log         *logger.Logger
	orderRepo   repos.OrderRepo
	productRepo repos.ProductRepo
}

func NewOrderService(db *gorm.DB, log *logger.Logger, orderRepo repos.OrderRepo, productRepo repos.ProductRepo) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{db: db, log: serviceLog, orderRepo: orderRepo, productRepo: productRepo}
}

func (os *orderService) List(ctx context.Context, page, limit int) ([]*types.Order, int64, error) {
	offset := (page - 1) * limit
	return os.orderRepo.List(ctx, nil, offset, limit)
}

func (os *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Order, error) {
	return os.orderRepo.ListByUserID(ctx, nil, userID)
}

func (os *orderService) GetByID(ctx context.Context, orderID uuid.UUID) (*types.Order, error) {
	found, err := os.orderRepo.GetByIDs(ctx, nil, []uuid.UUID{orderID})
	if err != nil {
		return nil, fmt.Errorf("error fetching order: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, ErrNotFound
	}
	return found[0], nil
}

// buildOrderItems resolves each requested item against its product, rejecting
// anything out of stock, and returns the denormalized snapshots plus the
// accumulated items price.
func buildOrderItems(productsByID map[uuid.UUID]*types.Product, items []OrderItemInput) ([]types.OrderItem, float64, error) {
	snapshots := make([]types.OrderItem, 0, len(items))
	requested := make(map[uuid.UUID]int, len(items))
	var itemsPrice float64
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, 0, fmt.Errorf("%w: item quantity must be at least 1", ErrInvalidInput)
		}
		product, ok := productsByID[item.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("product %s: %w", item.ProductID, ErrNotFound)
		}
		// Stock is checked against the running total per product so duplicate
		// cart lines cannot each pass individually.
		requested[item.ProductID] += item.Quantity
		if product.Stock < requested[item.ProductID] {
			return nil, 0, &OutOfStockError{ProductName: product.Name}
		}
		price := product.EffectivePrice()
		itemsPrice += price * float64(item.Quantity)
		snapshots = append(snapshots, types.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     price,
			Quantity:  item.Quantity,
			Image:     product.FirstImage(),
		})
	}
	return snapshots, itemsPrice, nil
}

// computeTotals applies the tax rate and the free-shipping threshold.
func computeTotals(itemsPrice float64) (taxPrice, shippingPrice, totalPrice float64) {
	taxPrice = itemsPrice * taxRate
	shippingPrice = flatShippingPrice
	if itemsPrice > freeShippingThreshold {
		shippingPrice = 0
	}
	totalPrice = itemsPrice + taxPrice + shippingPrice
	return taxPrice, shippingPrice, totalPrice
}

// Create validates stock, prices the cart, persists the order, and decrements
// product stock — all inside one transaction, so a failed item or a crash
// mid-flow leaves the database untouched.
func (os *orderService) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*types.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if input.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrInvalidInput)
	}

	productIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	var created *types.Order
	if err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := os.productRepo.GetByIDs(ctx, tx, productIDs)
		if err != nil {
			return fmt.Errorf("error fetching products: %w", err)
		}
		productsByID := make(map[uuid.UUID]*types.Product, len(products))
		for _, product := range products {
			productsByID[product.ID] = product
		}

		snapshots, itemsPrice, err := buildOrderItems(productsByID, input.Items)
		if err != nil {
			return err
		}
		taxPrice, shippingPrice, totalPrice := computeTotals(itemsPrice)

		theOrder := &types.Order{
			ID:              uuid.New(),
			UserID:          userID,
			OrderItems:      datatypes.NewJSONSlice(snapshots),
			ShippingAddress: input.ShippingAddress,
			PaymentMethod:   input.PaymentMethod,
			ItemsPrice:      itemsPrice,
			TaxPrice:        taxPrice,
			ShippingPrice:   shippingPrice,
			TotalPrice:      totalPrice,
			Status:          types.OrderStatusPending,
		}
		if _, err := os.orderRepo.Create(ctx, tx, []*types.Order{theOrder}); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range input.Items {
			if err := os.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, err)
			}
		}

		created = theOrder
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

func (os *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string, trackingNumber *string) (*types.Order, error) {
	if !types.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, status)
	}
	if _, err := os.GetByID(ctx, orderID); err != nil {
		return nil, err
	}

	fields := map[string]any{"status": status}
	if status == types.OrderStatusDelivered {
		fields["is_delivered"] = true
		fields["delivered_at"] = time.Now()
	}
	if trackingNumber != nil && *trackingNumber != "" {
		fields["tracking_number"] = *trackingNumber
	}
	if err := os.orderRepo.UpdateFields(ctx, nil, orderID, fields); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return os.GetByID(ctx, orderID)
}

// MarkAsPaid records payment and independently forces the order into the
// processing state.
func (os *orderService) MarkAsPaid(ctx context.Context, orderID uuid.UUID) (*types.Order, error) {
	if _, err := os.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"is_paid": true,
		"paid_at": time.Now(),
		"status":  types.OrderStatusProcessing,
	}
	if err := os.orderRepo.UpdateFields(ctx, nil, orderID, fields); err != nil {
		return nil, fmt.Errorf("failed to mark order as paid: %w", err)
	}
	return os.GetByID(ctx, orderID)
}
