package domain

import (
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/domain/order"
	"github.com/yungbote/storefront-backend/internal/domain/user"
)

const (
	RoleUser       = user.RoleUser
	RoleAdmin      = user.RoleAdmin
	RoleSuperAdmin = user.RoleSuperAdmin

	OrderStatusPending    = order.StatusPending
	OrderStatusProcessing = order.StatusProcessing
	OrderStatusShipped    = order.StatusShipped
	OrderStatusDelivered  = order.StatusDelivered
	OrderStatusCancelled  = order.StatusCancelled
)

type User = user.User
type UserToken = user.UserToken

type Category = catalog.Category
type Product = catalog.Product

type Order = order.Order
type OrderItem = order.OrderItem
type ShippingAddress = order.ShippingAddress

var (
	ValidRole        = user.ValidRole
	ValidOrderStatus = order.ValidStatus
)
