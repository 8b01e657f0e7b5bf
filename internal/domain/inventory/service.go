// internal/domain/inventory/service.go
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/domain/product"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
)

// Service moves product stock and keeps the movement ledger
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// StockMovementRequest describes a stock change
type StockMovementRequest struct {
	ProductID     uint
	MovementType  MovementType
	Reason        MovementReason
	Quantity      int
	ReferenceType string
	ReferenceID   uint
	Notes         string
	CreatedBy     uint
}

// RecordStockMovement applies a stock change inside the caller's transaction
// and writes it to the ledger. The product row is locked for the rest of the
// transaction and an outbound change never takes stock below zero.
func (s *Service) RecordStockMovement(tx *gorm.DB, req *StockMovementRequest) (*Movement, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var prod product.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "name", "stock").
		First(&prod, req.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, product.ErrProductNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}

	previousQuantity := prod.Stock
	var newQuantity int

	switch req.MovementType {
	case MovementTypeInbound:
		result := tx.Model(&product.Product{}).
			Where("id = ?", prod.ID).
			UpdateColumn("stock", gorm.Expr("stock + ?", req.Quantity))
		if result.Error != nil {
			return nil, fmt.Errorf("failed to credit stock: %w", result.Error)
		}
		newQuantity = previousQuantity + req.Quantity
	case MovementTypeOutbound:
		result := tx.Model(&product.Product{}).
			Where("id = ? AND stock >= ?", prod.ID, req.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", req.Quantity))
		if result.Error != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, fmt.Errorf("%w for %s: available %d, requested %d",
				ErrInsufficientStock, prod.Name, previousQuantity, req.Quantity)
		}
		newQuantity = previousQuantity - req.Quantity
	default:
		return nil, fmt.Errorf("invalid movement type: %s", req.MovementType)
	}

	movement := &Movement{
		ProductID:        prod.ID,
		MovementType:     req.MovementType,
		Reason:           req.Reason,
		Quantity:         req.Quantity,
		PreviousQuantity: previousQuantity,
		NewQuantity:      newQuantity,
		ReferenceType:    req.ReferenceType,
		ReferenceID:      req.ReferenceID,
		Notes:            req.Notes,
		CreatedBy:        req.CreatedBy,
	}
	if err := tx.Create(movement).Error; err != nil {
		return nil, fmt.Errorf("failed to record movement: %w", err)
	}

	return movement, nil
}

// Movements lists the ledger for a product, newest first
func (s *Service) Movements(ctx context.Context, productID uint, limit int) ([]Movement, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var movements []Movement
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id DESC").
		Limit(limit).
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}
