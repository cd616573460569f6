package db

import (
	types "github.com/yungbote/storefront-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Catalog
		&types.Category{},
		&types.Product{},

		// Orders
		&types.Order{},
	)
}
