package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name               string                      `gorm:"not null;column:name;index" json:"name"`
	Description        string                      `gorm:"not null;column:description;type:text" json:"description"`
	Price              float64                     `gorm:"not null;column:price" json:"price"`
	DiscountPercentage float64                     `gorm:"not null;default:0;column:discount_percentage" json:"discount_percentage"`
	Images             datatypes.JSONSlice[string] `gorm:"column:images;type:jsonb" json:"images"`
	CategoryID         uuid.UUID                   `gorm:"type:uuid;not null;index" json:"category_id"`
	Category           *Category                   `gorm:"constraint:OnDelete:RESTRICT;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Stock              int                         `gorm:"not null;default:0;column:stock" json:"stock"`
	Rating             float64                     `gorm:"not null;default:0;column:rating" json:"rating"`
	NumReviews         int                         `gorm:"not null;default:0;column:num_reviews" json:"num_reviews"`
	IsActive           bool                        `gorm:"not null;default:true;column:is_active;index" json:"is_active"`
	Specifications     datatypes.JSONMap           `gorm:"column:specifications;type:jsonb" json:"specifications"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Product) TableName() string { return "product" }

// EffectivePrice is the unit price after the discount percentage is applied.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPercentage > 0 {
		return p.Price * (1 - p.DiscountPercentage/100)
	}
	return p.Price
}

// FirstImage returns the image captured into order snapshots, or "" when the
// product has none.
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
