package order

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/storefront-backend/internal/domain/user"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ValidStatus reports whether status is one of the known order statuses.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a denormalized snapshot of a product at purchase time. It
// lives inside its parent order and is never updated when the product
// changes later.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image"`
}

// ShippingAddress is owned by its parent order and has no identity of its
// own.
type ShippingAddress struct {
	Address    string `gorm:"not null;column:shipping_address" json:"address"`
	City       string `gorm:"not null;column:shipping_city" json:"city"`
	PostalCode string `gorm:"not null;column:shipping_postal_code" json:"postal_code"`
	Country    string `gorm:"not null;column:shipping_country" json:"country"`
}

type Order struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	OrderItems      datatypes.JSONSlice[OrderItem] `gorm:"column:order_items;type:jsonb;not null" json:"order_items"`
	ShippingAddress ShippingAddress                `gorm:"embedded" json:"shipping_address"`
	PaymentMethod   string                         `gorm:"not null;column:payment_method" json:"payment_method"`

	// Price breakdown, computed once at creation and never recomputed.
	ItemsPrice    float64 `gorm:"not null;default:0;column:items_price" json:"items_price"`
	TaxPrice      float64 `gorm:"not null;default:0;column:tax_price" json:"tax_price"`
	ShippingPrice float64 `gorm:"not null;default:0;column:shipping_price" json:"shipping_price"`
	TotalPrice    float64 `gorm:"not null;default:0;column:total_price" json:"total_price"`

	IsPaid      bool       `gorm:"not null;default:false;column:is_paid" json:"is_paid"`
	PaidAt      *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	IsDelivered bool       `gorm:"not null;default:false;column:is_delivered" json:"is_delivered"`
	DeliveredAt *time.Time `gorm:"column:delivered_at" json:"delivered_at,omitempty"`

	Status         string `gorm:"not null;default:'pending';column:status;index" json:"status"`
	TrackingNumber string `gorm:"column:tracking_number" json:"tracking_number,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Order) TableName() string { return "order" }
