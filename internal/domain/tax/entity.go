// internal/domain/tax/entity.go
package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

// Setting is one entry of the append-only tax rate history.
// The most recently created entry is the rate in force.
type Setting struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Percentage  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentage"`
	CreatedByID *uint           `gorm:"index" json:"created_by_id,omitempty"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
}

// TableName returns the table name for Setting
func (Setting) TableName() string {
	return "tax_settings"
}
