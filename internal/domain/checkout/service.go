// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/domain/cart"
	"github.com/tienda-org/storefront/internal/domain/inventory"
	"github.com/tienda-org/storefront/internal/domain/order"
	"github.com/tienda-org/storefront/internal/domain/pricing"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrAddressRequired   = errors.New("shipping address is required")
	ErrInsufficientStock = inventory.ErrInsufficientStock
)

// Quoter prices a cart
type Quoter interface {
	Quote(ctx context.Context, c *cart.Cart, couponCode string) (*pricing.Quote, error)
}

// Service turns a session cart into a committed order
type Service struct {
	db        *gorm.DB
	config    *config.Config
	pricing   Quoter
	carts     *cart.Service
	inventory *inventory.Service
	logger    *logrus.Logger
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, cfg *config.Config, quoter Quoter, carts *cart.Service, inv *inventory.Service, logger *logrus.Logger) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		pricing:   quoter,
		carts:     carts,
		inventory: inv,
		logger:    logger,
	}
}

// PlaceOrderRequest represents the submitted checkout form
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" form:"direccion"`
	CouponCode      string `json:"coupon_code" form:"cupon"`
}

// Preview is what the checkout form shows before commit
type Preview struct {
	Cart  *cart.Summary  `json:"cart"`
	Quote *pricing.Quote `json:"quote"`
}

// Confirmation describes a committed checkout
type Confirmation struct {
	Order     *order.Order   `json:"order"`
	Invoice   *order.Invoice `json:"invoice"`
	Quote     *pricing.Quote `json:"quote"`
	TaxAmount string         `json:"tax_amount"`
}

// Preview prices the cart without committing anything
func (s *Service) Preview(ctx context.Context, c *cart.Cart, couponCode string) (*Preview, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	quote, err := s.pricing.Quote(ctx, c, couponCode)
	if err != nil {
		return nil, err
	}
	return &Preview{Cart: s.carts.Summary(c), Quote: quote}, nil
}

// PlaceOrder prices the cart and commits the order, its lines, the stock
// decrements and the invoice in one transaction. The cart is cleared only
// after the commit succeeds; on any failure nothing is written and the cart
// is left as it was.
func (s *Service) PlaceOrder(ctx context.Context, customerID uint, c *cart.Cart, req *PlaceOrderRequest) (*Confirmation, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	address := strings.TrimSpace(req.ShippingAddress)
	if address == "" {
		return nil, ErrAddressRequired
	}

	quote, err := s.pricing.Quote(ctx, c, req.CouponCode)
	if err != nil {
		return nil, err
	}

	placed := order.Order{
		CustomerID:      customerID,
		ShippingAddress: address,
		Status:          order.OrderStatusPending,
		CouponCode:      quote.CouponCode,
		DiscountPercent: quote.DiscountPercent,
		TaxPercent:      quote.TaxPercent,
		Subtotal:        quote.Subtotal,
		Discount:        quote.Discount,
		TaxAmount:       quote.Tax,
		Total:           quote.Total,
	}
	var invoice order.Invoice

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&placed).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		placed.OrderNumber = placed.GenerateOrderNumber()
		if err := tx.Model(&placed).UpdateColumn("order_number", placed.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to update order number: %w", err)
		}

		for _, item := range c.Items {
			_, err := s.inventory.RecordStockMovement(tx, &inventory.StockMovementRequest{
				ProductID:     item.ProductID,
				MovementType:  inventory.MovementTypeOutbound,
				Reason:        inventory.ReasonSale,
				Quantity:      item.Quantity,
				ReferenceType: "order",
				ReferenceID:   placed.ID,
				CreatedBy:     customerID,
			})
			if err != nil {
				return err
			}

			line := order.OrderItem{
				OrderID:   placed.ID,
				ProductID: item.ProductID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			placed.Items = append(placed.Items, line)
		}

		invoice = order.Invoice{
			OrderID:       placed.ID,
			InvoiceNumber: placed.GenerateInvoiceNumber(),
			Document:      s.config.Store.InvoicePlaceholder,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"customer_id": customerID,
			"session_id":  c.SessionID,
		}).WithError(err).Warn("checkout rolled back")
		return nil, err
	}

	s.carts.Clear(c)

	s.logger.WithFields(logrus.Fields{
		"order_id":    placed.ID,
		"customer_id": customerID,
		"total":       placed.Total.StringFixed(2),
		"coupon":      placed.CouponCode,
	}).Info("checkout committed")

	return &Confirmation{
		Order:     &placed,
		Invoice:   &invoice,
		Quote:     quote,
		TaxAmount: quote.Tax.StringFixed(2),
	}, nil
}
