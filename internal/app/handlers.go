package app

import (
	"github.com/yungbote/storefront-backend/internal/http/handlers"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Category *handlers.CategoryHandler
	Product  *handlers.ProductHandler
	Order    *handlers.OrderHandler
	Health   *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     handlers.NewAuthHandler(s.Auth),
		User:     handlers.NewUserHandler(s.User),
		Category: handlers.NewCategoryHandler(s.Category),
		Product:  handlers.NewProductHandler(s.Product),
		Order:    handlers.NewOrderHandler(s.Order),
		Health:   handlers.NewHealthHandler(),
	}
}
