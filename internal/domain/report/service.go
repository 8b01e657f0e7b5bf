// internal/domain/report/service.go
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/domain/order"
	"gorm.io/gorm"
)

// Service aggregates read-only financial figures
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new report service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// FinancialReport holds the figures shown to the financial role
type FinancialReport struct {
	RealizedRevenue decimal.Decimal `json:"realized_revenue"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	ReturnLosses    decimal.Decimal `json:"return_losses"`
	PendingOrders   int64           `json:"pending_orders"`
	OrdersByStatus  []StatusData    `json:"orders_by_status"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// StatusData represents order totals grouped by status
type StatusData struct {
	Status order.OrderStatus `json:"status"`
	Count  int64             `json:"count"`
	Total  decimal.Decimal   `json:"total"`
}

type returnLossRow struct {
	Quantity  int
	BasePrice decimal.Decimal
}

// FinancialReport computes revenue from delivered orders, receivables from
// all other orders, losses from every registered return at the product's
// current base price, and the number of pending orders.
func (s *Service) FinancialReport(ctx context.Context) (*FinancialReport, error) {
	db := s.db.WithContext(ctx)

	// Sums are taken with decimal arithmetic rather than SQL SUM so every
	// driver returns exact cents.
	var orders []order.Order
	if err := db.Select("status", "total").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load order totals: %w", err)
	}

	report := &FinancialReport{
		RealizedRevenue: decimal.Zero,
		Outstanding:     decimal.Zero,
		ReturnLosses:    decimal.Zero,
		GeneratedAt:     time.Now().UTC(),
	}

	byStatus := map[order.OrderStatus]*StatusData{}
	for _, row := range orders {
		if row.IsDelivered() {
			report.RealizedRevenue = report.RealizedRevenue.Add(row.Total)
		} else {
			report.Outstanding = report.Outstanding.Add(row.Total)
		}
		if row.Status == order.OrderStatusPending {
			report.PendingOrders++
		}

		data, ok := byStatus[row.Status]
		if !ok {
			data = &StatusData{Status: row.Status, Total: decimal.Zero}
			byStatus[row.Status] = data
		}
		data.Count++
		data.Total = data.Total.Add(row.Total)
	}

	for _, data := range byStatus {
		report.OrdersByStatus = append(report.OrdersByStatus, *data)
	}
	sort.Slice(report.OrdersByStatus, func(i, j int) bool {
		return report.OrdersByStatus[i].Status < report.OrdersByStatus[j].Status
	})

	var returns []returnLossRow
	err := db.Table("order_returns AS r").
		Select("r.quantity AS quantity, p.base_price AS base_price").
		Joins("JOIN products p ON p.id = r.product_id").
		Scan(&returns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load returns: %w", err)
	}
	for _, row := range returns {
		report.ReturnLosses = report.ReturnLosses.Add(row.BasePrice.Mul(decimal.NewFromInt(int64(row.Quantity))))
	}

	return report, nil
}

// OrderLines lists orders for export, oldest first
func (s *Service) OrderLines(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := s.db.WithContext(ctx).Preload("Items").Order("id ASC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
