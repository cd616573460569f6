package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/yungbote/storefront-backend/internal/http"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware) *gin.Engine {
	log.Info("Wiring router...")
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:             log,
		AuthMiddleware:  mw.Auth,
		CORSOrigins:     cfg.CORSOrigins,
		AuthHandler:     h.Auth,
		UserHandler:     h.User,
		CategoryHandler: h.Category,
		ProductHandler:  h.Product,
		OrderHandler:    h.Order,
		HealthHandler:   h.Health,
	})
}
