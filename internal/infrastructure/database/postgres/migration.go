// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/domain/coupon"
	"github.com/tienda-org/storefront/internal/domain/inventory"
	"github.com/tienda-org/storefront/internal/domain/order"
	"github.com/tienda-org/storefront/internal/domain/product"
	"github.com/tienda-org/storefront/internal/domain/tax"
	"github.com/tienda-org/storefront/internal/domain/user"
	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&product.Product{},
		&tax.Setting{},
		&coupon.Coupon{},
		&inventory.Movement{},
		&order.Order{},
		&order.OrderItem{},
		&order.Invoice{},
		&order.Return{},
		&order.OrderStatusHistory{},
	}
}

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	config *config.Config
	log    *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		config: cfg,
		log:    log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("running database auto-migrations")

	for _, model := range Models() {
		m.log.Debugf("migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for the report and warehouse queries
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_created ON orders(customer_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_returns_order ON order_returns(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_movements_product ON inventory_movements(product_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_tax_settings_created ON tax_settings(created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.log.WithError(err).Warn("failed to create index")
			failCount++
		} else {
			successCount++
		}
	}

	m.log.WithFields(logrus.Fields{"created": successCount, "failed": failCount}).Info("indexes created")
	return nil
}

// SeedInitialData inserts the superuser, a tax rate and sample catalog data.
// Every step is idempotent.
func (m *Migration) SeedInitialData(ctx context.Context) error {
	m.log.Info("seeding initial data")

	admins := user.NewAdminService(m.db, m.config)
	if _, err := admins.EnsureSuperuser(ctx, m.config.Store.SuperuserEmail, m.config.Store.SuperuserPassword); err != nil {
		return fmt.Errorf("failed to seed superuser: %w", err)
	}

	if err := m.seedTaxSetting(ctx); err != nil {
		return fmt.Errorf("failed to seed tax setting: %w", err)
	}

	if !m.config.Store.SeedSampleData {
		return nil
	}

	if err := m.seedProducts(ctx); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	if err := m.seedCoupons(ctx); err != nil {
		return fmt.Errorf("failed to seed coupons: %w", err)
	}

	m.log.Info("initial data seeded")
	return nil
}

func (m *Migration) seedTaxSetting(ctx context.Context) error {
	var count int64
	if err := m.db.WithContext(ctx).Model(&tax.Setting{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := tax.NewService(m.db, m.config).Set(ctx, m.config.Store.DefaultTaxPercent, 0)
	return err
}

func (m *Migration) seedProducts(ctx context.Context) error {
	var count int64
	if err := m.db.WithContext(ctx).Model(&product.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		m.log.Debug("products already present, skipping sample catalog")
		return nil
	}

	samples := []product.ProductRequest{
		{Name: "Camiseta básica", BasePrice: decimal.RequireFromString("12.50"), Stock: 40},
		{Name: "Taza de cerámica", BasePrice: decimal.RequireFromString("6.75"), Stock: 25},
		{Name: "Mochila urbana", BasePrice: decimal.RequireFromString("39.90"), Stock: 10},
		{Name: "Cuaderno A5", BasePrice: decimal.RequireFromString("3.20"), Stock: 0},
	}

	products := product.NewService(m.db, m.config)
	for i := range samples {
		p, err := products.CreateProduct(ctx, &samples[i])
		if err != nil {
			return err
		}
		m.log.WithField("product", p.Name).Debug("created sample product")
	}
	return nil
}

func (m *Migration) seedCoupons(ctx context.Context) error {
	_, err := coupon.NewService(m.db, m.config).Create(ctx, &coupon.CreateRequest{
		Code:               "SAVE10",
		DiscountPercentage: 10,
	})
	if err != nil && !errors.Is(err, coupon.ErrCodeTaken) {
		return err
	}
	return nil
}

// DropAllTables drops every managed table. Used by development resets only.
func (m *Migration) DropAllTables() error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := m.db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", models[i], err)
		}
	}
	return nil
}
