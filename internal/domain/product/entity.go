// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog item that can be put in a cart
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null;size:100" json:"name"`
	BasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	Image     string          `gorm:"size:500" json:"image,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName returns the table name for Product
func (Product) TableName() string {
	return "products"
}

// InStock reports whether at least one unit is available
func (p *Product) InStock() bool {
	return p.Stock > 0
}
