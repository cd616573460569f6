package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/requestdata"
	"github.com/yungbote/storefront-backend/internal/services"
)

var errMissingQuery = errors.New("query parameter q is required")

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /api/orders
func (oh *OrderHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	orders, total, err := oh.orderService.List(c.Request.Context(), page, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"orders": orders, "total": total})
}

// GET /api/orders/my-orders
func (oh *OrderHandler) MyOrders(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", services.ErrInvalidToken)
		return
	}
	orders, err := oh.orderService.ListByUser(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"orders": orders})
}

// GET /api/orders/:id — owner or admin only.
func (oh *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	theOrder, err := oh.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if !callerMayAccessOrder(c, theOrder) {
		response.RespondError(c, http.StatusForbidden, "forbidden", services.ErrForbidden)
		return
	}
	response.RespondOK(c, gin.H{"order": theOrder})
}

// POST /api/orders
func (oh *OrderHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", services.ErrInvalidToken)
		return
	}
	var req struct {
		OrderItems []struct {
			ProductID uuid.UUID `json:"product_id" binding:"required"`
			Quantity  int       `json:"quantity" binding:"required,min=1"`
		} `json:"order_items"`
		ShippingAddress struct {
			Address    string `json:"address" binding:"required"`
			City       string `json:"city" binding:"required"`
			PostalCode string `json:"postal_code" binding:"required"`
			Country    string `json:"country" binding:"required"`
		} `json:"shipping_address" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	items := make([]services.OrderItemInput, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, services.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	theOrder, err := oh.orderService.Create(c.Request.Context(), rd.UserID, services.CreateOrderInput{
		Items: items,
		ShippingAddress: types.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"order": theOrder})
}

// PUT /api/orders/:id/status
func (oh *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Status         string  `json:"status" binding:"required"`
		TrackingNumber *string `json:"tracking_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	theOrder, err := oh.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status, req.TrackingNumber)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"order": theOrder})
}

// PUT /api/orders/:id/pay — owner or admin only.
func (oh *OrderHandler) Pay(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	theOrder, err := oh.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if !callerMayAccessOrder(c, theOrder) {
		response.RespondError(c, http.StatusForbidden, "forbidden", services.ErrForbidden)
		return
	}
	paid, err := oh.orderService.MarkAsPaid(c.Request.Context(), orderID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"order": paid})
}

func callerMayAccessOrder(c *gin.Context, theOrder *types.Order) bool {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		return false
	}
	if rd.Role == types.RoleAdmin || rd.Role == types.RoleSuperAdmin {
		return true
	}
	return theOrder.UserID == rd.UserID
}
