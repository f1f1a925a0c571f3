package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is created once by an explicit user action and never updated.
type Product struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"column:name;not null" json:"name"`
	SKU       *string    `gorm:"column:sku" json:"sku"`
	Category  *string    `gorm:"column:category" json:"category"`
	CompanyID *uuid.UUID `gorm:"type:uuid;column:company_id;index" json:"company_id"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
