// internal/domain/inventory/entity.go
package inventory

import (
	"time"
)

// MovementType represents the direction of a stock movement
type MovementType string

const (
	MovementTypeInbound  MovementType = "inbound"  // Return, restock
	MovementTypeOutbound MovementType = "outbound" // Sale
)

// MovementReason represents the reason for a stock movement
type MovementReason string

const (
	ReasonSale   MovementReason = "sale"
	ReasonReturn MovementReason = "return"
)

// Movement is an audit record of one change to a product's stock
type Movement struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	ProductID        uint           `gorm:"not null;index" json:"product_id"`
	MovementType     MovementType   `gorm:"not null;size:20" json:"movement_type"`
	Reason           MovementReason `gorm:"not null;size:20" json:"reason"`
	Quantity         int            `gorm:"not null" json:"quantity"`
	PreviousQuantity int            `gorm:"not null" json:"previous_quantity"`
	NewQuantity      int            `gorm:"not null" json:"new_quantity"`
	ReferenceType    string         `gorm:"size:50" json:"reference_type"`
	ReferenceID      uint           `gorm:"index" json:"reference_id"`
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy        uint           `gorm:"index" json:"created_by"`
	CreatedAt        time.Time      `json:"created_at"`
}

// TableName returns the table name for Movement
func (Movement) TableName() string {
	return "inventory_movements"
}
