package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/pkg/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Category services.CategoryService
	Product  services.ProductService
	Order    services.OrderService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")
	userService := services.NewUserService(db, log, r.User)
	authService := services.NewAuthService(db, log, r.User, r.UserToken, userService, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	categoryService := services.NewCategoryService(db, log, r.Category)
	productService := services.NewProductService(db, log, r.Product, r.Category)
	orderService := services.NewOrderService(db, log, r.Order, r.Product)
	return Services{
		Auth:     authService,
		User:     userService,
		Category: categoryService,
		Product:  productService,
		Order:    orderService,
	}
}
