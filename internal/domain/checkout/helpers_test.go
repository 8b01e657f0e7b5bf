package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/domain/cart"
	"github.com/tienda-org/storefront/internal/domain/coupon"
	"github.com/tienda-org/storefront/internal/domain/inventory"
	"github.com/tienda-org/storefront/internal/domain/order"
	"github.com/tienda-org/storefront/internal/domain/pricing"
	"github.com/tienda-org/storefront/internal/domain/product"
	"github.com/tienda-org/storefront/internal/domain/tax"
	"github.com/tienda-org/storefront/internal/pkg/logger"
	"github.com/tienda-org/storefront/internal/pkg/testdb"
	"gorm.io/gorm"
)

// storefront wires the real services over an in-memory database
type storefront struct {
	db       *gorm.DB
	products *product.Service
	coupons  *coupon.Service
	taxes    *tax.Service
	carts    *cart.Service
	checkout *Service
}

func newStorefront(t testing.TB) *storefront {
	db := testdb.New(t,
		&product.Product{}, &coupon.Coupon{}, &tax.Setting{}, &inventory.Movement{},
		&order.Order{}, &order.OrderItem{}, &order.Invoice{}, &order.Return{}, &order.OrderStatusHistory{},
	)
	cfg := &config.Config{Store: config.StoreConfig{
		DefaultTaxPercent:  decimal.NewFromInt(15),
		InvoicePlaceholder: "facturas/factura_placeholder.pdf",
	}}

	products := product.NewService(db, cfg)
	coupons := coupon.NewService(db, cfg)
	taxes := tax.NewService(db, cfg)
	carts := cart.NewService(products)
	engine := pricing.NewEngine(coupons, taxes)

	return &storefront{
		db:       db,
		products: products,
		coupons:  coupons,
		taxes:    taxes,
		carts:    carts,
		checkout: NewService(db, cfg, engine, carts, inventory.NewService(db, cfg), logger.Discard()),
	}
}

func (s *storefront) addProduct(t testing.TB, name, price string, stock int) *product.Product {
	p, err := s.products.CreateProduct(context.Background(), &product.ProductRequest{
		Name:      name,
		BasePrice: decimal.RequireFromString(price),
		Stock:     stock,
	})
	require.NoError(t, err)
	return p
}

func (s *storefront) fill(t testing.TB, c *cart.Cart, productID uint, quantity int) {
	for i := 0; i < quantity; i++ {
		require.NoError(t, s.carts.Add(context.Background(), c, productID))
	}
}

func (s *storefront) setStock(t testing.TB, productID uint, stock int) {
	require.NoError(t, s.db.Model(&product.Product{}).Where("id = ?", productID).UpdateColumn("stock", stock).Error)
}

func (s *storefront) stock(t testing.TB, productID uint) int {
	p, err := s.products.GetProduct(context.Background(), productID)
	require.NoError(t, err)
	return p.Stock
}

func (s *storefront) count(t testing.TB, model interface{}) int64 {
	var n int64
	require.NoError(t, s.db.Model(model).Count(&n).Error)
	return n
}
