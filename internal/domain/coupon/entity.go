// internal/domain/coupon/entity.go
package coupon

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Coupon is a named percentage discount that can be switched off
type Coupon struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Code               string    `gorm:"uniqueIndex;not null;size:50" json:"code"`
	DiscountPercentage int       `gorm:"not null" json:"discount_percentage"`
	IsActive           bool      `gorm:"not null" json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName returns the table name for Coupon
func (Coupon) TableName() string {
	return "coupons"
}

// BeforeSave keeps stored codes in their normalized form
func (c *Coupon) BeforeSave(tx *gorm.DB) error {
	c.Code = NormalizeCode(c.Code)
	return nil
}

// NormalizeCode trims whitespace and uppercases a coupon code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
