package http

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/storefront-backend/internal/domain"
	httpH "github.com/yungbote/storefront-backend/internal/http/handlers"
	httpMW "github.com/yungbote/storefront-backend/internal/http/middleware"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware
	CORSOrigins    []string

	AuthHandler     *httpH.AuthHandler
	UserHandler     *httpH.UserHandler
	CategoryHandler *httpH.CategoryHandler
	ProductHandler  *httpH.ProductHandler
	OrderHandler    *httpH.OrderHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	requireAuth := cfg.AuthMiddleware.RequireAuth()
	requireAdmin := cfg.AuthMiddleware.RequireRoles(types.RoleAdmin, types.RoleSuperAdmin)
	requireSuperAdmin := cfg.AuthMiddleware.RequireRoles(types.RoleSuperAdmin)

	api := r.Group("/api")

	// Auth (public + protected)
	if cfg.AuthHandler != nil {
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
		api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
		api.POST("/auth/logout", requireAuth, cfg.AuthHandler.Logout)
	}

	// Users
	if cfg.UserHandler != nil {
		users := api.Group("/users", requireAuth)
		users.GET("", requireAdmin, cfg.UserHandler.List)
		users.GET("/profile", cfg.UserHandler.Profile)
		users.POST("/admin", requireSuperAdmin, cfg.UserHandler.CreateAdmin)
		users.GET("/:id", requireAdmin, cfg.UserHandler.Get)
		users.PUT("/:id", requireAdmin, cfg.UserHandler.Update)
		users.PUT("/:id/role", requireSuperAdmin, cfg.UserHandler.ChangeRole)
		users.DELETE("/:id", requireSuperAdmin, cfg.UserHandler.Delete)
	}

	// Categories
	if cfg.CategoryHandler != nil {
		api.GET("/categories", cfg.CategoryHandler.List)
		api.GET("/categories/admin", requireAuth, requireAdmin, cfg.CategoryHandler.ListAdmin)
		api.GET("/categories/:id", cfg.CategoryHandler.Get)
		api.POST("/categories", requireAuth, requireAdmin, cfg.CategoryHandler.Create)
		api.PUT("/categories/:id", requireAuth, requireAdmin, cfg.CategoryHandler.Update)
		api.DELETE("/categories/:id", requireAuth, requireAdmin, cfg.CategoryHandler.Delete)
	}

	// Products
	if cfg.ProductHandler != nil {
		api.GET("/products", cfg.ProductHandler.List)
		api.GET("/products/admin", requireAuth, requireAdmin, cfg.ProductHandler.ListAdmin)
		api.GET("/products/search", cfg.ProductHandler.Search)
		api.GET("/products/category/:categoryId", cfg.ProductHandler.ListByCategory)
		api.GET("/products/:id", cfg.ProductHandler.Get)
		api.POST("/products", requireAuth, requireAdmin, cfg.ProductHandler.Create)
		api.PUT("/products/:id", requireAuth, requireAdmin, cfg.ProductHandler.Update)
		api.DELETE("/products/:id", requireAuth, requireAdmin, cfg.ProductHandler.Delete)
	}

	// Orders
	if cfg.OrderHandler != nil {
		orders := api.Group("/orders", requireAuth)
		orders.GET("", requireAdmin, cfg.OrderHandler.List)
		orders.GET("/my-orders", cfg.OrderHandler.MyOrders)
		orders.GET("/:id", cfg.OrderHandler.Get)
		orders.POST("", cfg.OrderHandler.Create)
		orders.PUT("/:id/status", requireAdmin, cfg.OrderHandler.UpdateStatus)
		orders.PUT("/:id/pay", cfg.OrderHandler.Pay)
	}

	return r
}
