// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

var statusAliases = map[string]OrderStatus{
	"pending":   OrderStatusPending,
	"pendiente": OrderStatusPending,
	"shipped":   OrderStatusShipped,
	"enviado":   OrderStatusShipped,
	"delivered": OrderStatusDelivered,
	"entregado": OrderStatusDelivered,
}

// ParseStatus accepts a status value or its storefront label in any case
func ParseStatus(s string) (OrderStatus, error) {
	if status, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Order is created once per checkout and only its status changes afterwards
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"size:50;index" json:"order_number"`
	CustomerID      uint            `gorm:"not null;index" json:"customer_id"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shipping_address"`
	Status          OrderStatus     `gorm:"not null;size:20;index" json:"status"`
	CouponCode      string          `gorm:"size:50" json:"coupon_code,omitempty"`
	DiscountPercent int             `gorm:"not null;default:0" json:"discount_percent"`
	TaxPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_percent"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Discount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	Items         []OrderItem          `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Invoice       *Invoice             `gorm:"foreignKey:OrderID" json:"invoice,omitempty"`
	Returns       []Return             `gorm:"foreignKey:OrderID" json:"returns,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"`
}

// OrderItem is one line of an order, frozen at checkout
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Name      string          `gorm:"not null;size:100" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}

// Invoice is the billing document issued for an order
type Invoice struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	InvoiceNumber string    `gorm:"size:50" json:"invoice_number"`
	Document      string    `gorm:"size:500;not null" json:"document"`
	CreatedAt     time.Time `json:"created_at"`
}

// Return is a post-sale stock credit for a product of an order
type Return struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`
	Processed bool      `gorm:"not null" json:"processed"`
	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderStatusHistory records each status overwrite
type OrderStatusHistory struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	OrderID    uint        `gorm:"not null;index" json:"order_id"`
	FromStatus OrderStatus `gorm:"size:20" json:"from_status"`
	Status     OrderStatus `gorm:"not null;size:20" json:"status"`
	CreatedBy  uint        `gorm:"index" json:"created_by"`
	CreatedAt  time.Time   `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string              { return "orders" }
func (OrderItem) TableName() string          { return "order_items" }
func (Invoice) TableName() string            { return "invoices" }
func (Return) TableName() string             { return "order_returns" }
func (OrderStatusHistory) TableName() string { return "order_status_history" }

// GenerateOrderNumber builds the display number once the id is known
func (o *Order) GenerateOrderNumber() string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", o.CreatedAt.Format("20060102"), o.ID)
}

// GenerateInvoiceNumber builds the invoice number for an order
func (o *Order) GenerateInvoiceNumber() string {
	return fmt.Sprintf("FAC-%s-%05d", o.CreatedAt.Format("20060102"), o.ID)
}

// IsDelivered checks if the order reached the customer
func (o *Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

// LineTotal is unit price times quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
