package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/services"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /api/products
func (ph *ProductHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	products, total, err := ph.productService.List(c.Request.Context(), page, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": products, "total": total})
}

// GET /api/products/admin
func (ph *ProductHandler) ListAdmin(c *gin.Context) {
	page, limit := parsePagination(c)
	products, total, err := ph.productService.ListAdmin(c.Request.Context(), page, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": products, "total": total})
}

// GET /api/products/search?q=
func (ph *ProductHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errMissingQuery)
		return
	}
	page, limit := parsePagination(c)
	products, total, err := ph.productService.Search(c.Request.Context(), query, page, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": products, "total": total})
}

// GET /api/products/category/:categoryId
func (ph *ProductHandler) ListByCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	page, limit := parsePagination(c)
	products, total, err := ph.productService.ListByCategory(c.Request.Context(), categoryID, page, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": products, "total": total})
}

// GET /api/products/:id
func (ph *ProductHandler) Get(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	product, err := ph.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"product": product})
}

// POST /api/products
func (ph *ProductHandler) Create(c *gin.Context) {
	var req struct {
		Name               string         `json:"name" binding:"required"`
		Description        string         `json:"description" binding:"required"`
		Price              float64        `json:"price" binding:"min=0"`
		DiscountPercentage float64        `json:"discount_percentage" binding:"min=0,max=100"`
		Images             []string       `json:"images"`
		CategoryID         uuid.UUID      `json:"category_id" binding:"required"`
		Stock              int            `json:"stock" binding:"min=0"`
		IsActive           *bool          `json:"is_active"`
		Specifications     map[string]any `json:"specifications"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	product, err := ph.productService.Create(c.Request.Context(), services.CreateProductInput{
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		DiscountPercentage: req.DiscountPercentage,
		Images:             req.Images,
		CategoryID:         req.CategoryID,
		Stock:              req.Stock,
		IsActive:           req.IsActive,
		Specifications:     req.Specifications,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"product": product})
}

// PUT /api/products/:id
func (ph *ProductHandler) Update(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Name               *string        `json:"name"`
		Description        *string        `json:"description"`
		Price              *float64       `json:"price"`
		DiscountPercentage *float64       `json:"discount_percentage"`
		Images             []string       `json:"images"`
		CategoryID         *uuid.UUID     `json:"category_id"`
		Stock              *int           `json:"stock"`
		IsActive           *bool          `json:"is_active"`
		Specifications     map[string]any `json:"specifications"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	product, err := ph.productService.Update(c.Request.Context(), productID, services.UpdateProductInput{
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		DiscountPercentage: req.DiscountPercentage,
		Images:             req.Images,
		CategoryID:         req.CategoryID,
		Stock:              req.Stock,
		IsActive:           req.IsActive,
		Specifications:     req.Specifications,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"product": product})
}

// DELETE /api/products/:id
func (ph *ProductHandler) Delete(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ph.productService.Delete(c.Request.Context(), productID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
