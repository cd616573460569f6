package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Category  repos.CategoryRepo
	Product   repos.ProductRepo
	Order     repos.OrderRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Category:  repos.NewCategoryRepo(db, log),
		Product:   repos.NewProductRepo(db, log),
		Order:     repos.NewOrderRepo(db, log),
	}
}
