// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/domain/inventory"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrInvalidQuantity = errors.New("return quantity must be at least 1")
)

// Service handles order queries, status changes and returns
type Service struct {
	db        *gorm.DB
	config    *config.Config
	inventory *inventory.Service
	logger    *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, inv *inventory.Service, logger *logrus.Logger) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		inventory: inv,
		logger:    logger,
	}
}

// ListRequest represents order queue query parameters
type ListRequest struct {
	Status string `form:"estado"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=50"`
}

// ReturnRequest represents a return registration
type ReturnRequest struct {
	ProductID uint   `json:"product_id" form:"producto_id" binding:"required"`
	Quantity  int    `json:"quantity" form:"cantidad"`
	Reason    string `json:"reason" form:"motivo"`
}

// ListOrders returns the warehouse queue, newest first
func (s *Service) ListOrders(ctx context.Context, req *ListRequest) ([]Order, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 200 {
		req.Limit = 50
	}

	query := s.db.WithContext(ctx).Model(&Order{}).Preload("Items")
	if req.Status != "" {
		status, err := ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		query = query.Where("status = ?", status)
	}

	var orders []Order
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListCustomerOrders returns a customer's own orders, newest first
func (s *Service) ListCustomerOrders(ctx context.Context, customerID uint) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns an order with its lines, invoice, returns and history
func (s *Service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Invoice").
		Preload("Returns").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// UpdateStatus overwrites the order status. Any known status may follow
// any other.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status OrderStatus, changedBy uint) (*Order, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to get order: %w", err)
		}

		previous := order.Status
		updates := map[string]interface{}{
			"status": status,
		}

		now := time.Now().UTC()
		switch status {
		case OrderStatusShipped:
			updates["shipped_at"] = now
		case OrderStatusDelivered:
			updates["delivered_at"] = now
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		history := OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: previous,
			Status:     status,
			CreatedBy:  changedBy,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}

		s.logger.WithFields(logrus.Fields{
			"order_id": order.ID,
			"from":     previous,
			"to":       status,
			"user_id":  changedBy,
		}).Info("order status updated")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, id)
}

// RegisterReturn records a return and credits the product's stock by the
// returned quantity. The quantity is not checked against the order lines.
func (s *Service) RegisterReturn(ctx context.Context, orderID uint, req *ReturnRequest, createdBy uint) (*Return, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = s.config.Store.DefaultReturnReason
	}

	ret := Return{
		OrderID:   orderID,
		ProductID: req.ProductID,
		Quantity:  quantity,
		Reason:    reason,
		CreatedBy: createdBy,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to get order: %w", err)
		}
		if count == 0 {
			return ErrOrderNotFound
		}

		if err := tx.Create(&ret).Error; err != nil {
			return fmt.Errorf("failed to create return: %w", err)
		}

		_, err := s.inventory.RecordStockMovement(tx, &inventory.StockMovementRequest{
			ProductID:     req.ProductID,
			MovementType:  inventory.MovementTypeInbound,
			Reason:        inventory.ReasonReturn,
			Quantity:      quantity,
			ReferenceType: "return",
			ReferenceID:   ret.ID,
			Notes:         reason,
			CreatedBy:     createdBy,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":   orderID,
		"product_id": req.ProductID,
		"quantity":   quantity,
	}).Info("return registered")

	return &ret, nil
}

// GetInvoice returns the invoice issued for an order
func (s *Service) GetInvoice(ctx context.Context, orderID uint) (*Invoice, error) {
	var invoice Invoice
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}
