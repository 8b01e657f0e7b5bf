// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/domain/cart"
	"github.com/tienda-org/storefront/internal/domain/checkout"
	"github.com/tienda-org/storefront/internal/domain/coupon"
	"github.com/tienda-org/storefront/internal/domain/inventory"
	"github.com/tienda-org/storefront/internal/domain/order"
	"github.com/tienda-org/storefront/internal/domain/pricing"
	"github.com/tienda-org/storefront/internal/domain/product"
	"github.com/tienda-org/storefront/internal/domain/report"
	"github.com/tienda-org/storefront/internal/domain/tax"
	"github.com/tienda-org/storefront/internal/domain/user"
	"github.com/tienda-org/storefront/internal/interfaces/http/handlers"
	"github.com/tienda-org/storefront/internal/interfaces/http/middleware"
	"github.com/tienda-org/storefront/internal/pkg/auth"
	"github.com/tienda-org/storefront/internal/pkg/pdf"
	"gorm.io/gorm"
)

// Services holds the domain services shared by the route groups
type Services struct {
	Products  *product.Service
	Taxes     *tax.Service
	Coupons   *coupon.Service
	Carts     *cart.Service
	CartStore cart.Store
	Inventory *inventory.Service
	Orders    *order.Service
	Checkout  *checkout.Service
	Reports   *report.Service
	Users     *user.Service
	Admins    *user.AdminService
	PDF       *pdf.Service
}

// NewServices wires every domain service over one database handle
func NewServices(db *gorm.DB, cfg *config.Config, store cart.Store, logger *logrus.Logger) *Services {
	products := product.NewService(db, cfg)
	taxes := tax.NewService(db, cfg)
	coupons := coupon.NewService(db, cfg)
	carts := cart.NewService(products)
	inv := inventory.NewService(db, cfg)
	engine := pricing.NewEngine(coupons, taxes)

	return &Services{
		Products:  products,
		Taxes:     taxes,
		Coupons:   coupons,
		Carts:     carts,
		CartStore: store,
		Inventory: inv,
		Orders:    order.NewService(db, cfg, inv, logger),
		Checkout:  checkout.NewService(db, cfg, engine, carts, inv, logger),
		Reports:   report.NewService(db, cfg),
		Users:     user.NewService(db, cfg),
		Admins:    user.NewAdminService(db, cfg),
		PDF:       pdf.NewService(cfg),
	}
}

// authenticated is the chain every logged-in route starts with
func authenticated(svc *Services, cfg *config.Config) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.AuthMiddleware(cfg),
		middleware.RequireActiveAccount(svc.Users),
	}
}

// SetupRoutes registers the storefront routes
func SetupRoutes(r gin.IRouter, svc *Services, cfg *config.Config, logger *logrus.Logger) {
	SetupCatalogRoutes(r, svc, cfg)
	SetupAuthRoutes(r, svc, cfg)
	SetupCartRoutes(r, svc, logger)
	SetupCheckoutRoutes(r, svc, cfg, logger)
	SetupWarehouseRoutes(r, svc, cfg)
	SetupFinancialRoutes(r, svc, cfg)
	SetupAdminRoutes(r, svc, cfg)
}

// SetupCatalogRoutes sets up the public catalog and product management
func SetupCatalogRoutes(r gin.IRouter, svc *Services, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(svc.Products)

	r.GET("/", productHandler.GetProducts)
	r.GET("/productos/:id", productHandler.GetProduct)

	manage := r.Group("/productos")
	manage.Use(authenticated(svc, cfg)...)
	manage.Use(middleware.RequireRoles(auth.RoleWarehouse, auth.RoleAdministrator))
	{
		manage.POST("", productHandler.CreateProduct)
		manage.PUT("/:id", productHandler.UpdateProduct)
		manage.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupAuthRoutes sets up registration, login and profile
func SetupAuthRoutes(r gin.IRouter, svc *Services, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(svc.Users)

	r.POST("/registro", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/perfil", append(authenticated(svc, cfg), authHandler.GetProfile)...)
}

// SetupCartRoutes sets up the session cart. No login is needed.
func SetupCartRoutes(r gin.IRouter, svc *Services, logger *logrus.Logger) {
	cartHandler := handlers.NewCartHandler(svc.Carts, svc.CartStore, logger)

	r.GET("/carrito", cartHandler.GetCart)
	r.POST("/agregar-carrito/:id", cartHandler.AddToCart)
	r.POST("/eliminar-carrito/:id", cartHandler.RemoveFromCart)
	r.POST("/actualizar-carrito/:id", cartHandler.UpdateCartItem)
}

// SetupCheckoutRoutes sets up checkout and the customer's orders
func SetupCheckoutRoutes(r gin.IRouter, svc *Services, cfg *config.Config, logger *logrus.Logger) {
	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout, svc.Carts, svc.CartStore, logger)
	orderHandler := handlers.NewOrderHandler(svc.Orders)
	invoiceHandler := handlers.NewInvoiceHandler(svc.Orders, svc.PDF)

	authed := r.Group("")
	authed.Use(authenticated(svc, cfg)...)
	{
		authed.GET("/checkout", checkoutHandler.GetCheckout)
		authed.POST("/checkout", checkoutHandler.PlaceOrder)

		authed.GET("/pedidos", orderHandler.GetOrders)
		authed.GET("/pedidos/:id", orderHandler.GetOrder)
		authed.GET("/pedidos/:id/factura", invoiceHandler.DownloadInvoice)
	}
}

// SetupWarehouseRoutes sets up the fulfillment queue
func SetupWarehouseRoutes(r gin.IRouter, svc *Services, cfg *config.Config) {
	warehouseHandler := handlers.NewWarehouseHandler(svc.Orders, svc.PDF)
	inventoryHandler := handlers.NewInventoryHandler(svc.Inventory)

	bodega := r.Group("/bodega")
	bodega.Use(authenticated(svc, cfg)...)
	bodega.Use(middleware.RequireRoles(auth.RoleWarehouse))
	{
		bodega.GET("", warehouseHandler.GetQueue)
		bodega.POST("/actualizar/:order_id", warehouseHandler.UpdateStatus)
		bodega.POST("/devolucion/:order_id", warehouseHandler.RegisterReturn)
		bodega.GET("/despacho/:order_id", warehouseHandler.DispatchSlip)
		bodega.GET("/movimientos/:product_id", inventoryHandler.GetMovements)
	}
}

// SetupFinancialRoutes sets up the report and tax configuration
func SetupFinancialRoutes(r gin.IRouter, svc *Services, cfg *config.Config) {
	reportHandler := handlers.NewReportHandler(svc.Reports)
	taxHandler := handlers.NewTaxHandler(svc.Taxes)

	financial := r.Group("")
	financial.Use(authenticated(svc, cfg)...)
	financial.Use(middleware.RequireRoles(auth.RoleFinancial))
	{
		financial.GET("/reporte", reportHandler.GetReport)
		financial.GET("/reporte/exportar", reportHandler.ExportReport)
		financial.GET("/iva", taxHandler.GetTax)
		financial.POST("/iva", taxHandler.SetTax)
	}
}

// SetupAdminRoutes sets up coupons and staff administration
func SetupAdminRoutes(r gin.IRouter, svc *Services, cfg *config.Config) {
	couponHandler := handlers.NewCouponHandler(svc.Coupons)
	userAdminHandler := handlers.NewUserAdminHandler(svc.Admins)

	admin := r.Group("")
	admin.Use(authenticated(svc, cfg)...)
	admin.Use(middleware.RequireRoles(auth.RoleAdministrator))
	{
		admin.GET("/cupones", couponHandler.GetCoupons)
		admin.POST("/cupones", couponHandler.CreateCoupon)
		admin.POST("/cupones/:id/activo", couponHandler.SetActive)

		admin.GET("/usuarios-tienda/usuarios", userAdminHandler.GetUsers)
		admin.POST("/usuarios-tienda/nuevo-empleado", userAdminHandler.CreateEmployee)
		admin.POST("/usuarios-tienda/usuarios/:id/activo", userAdminHandler.UpdateUserStatus)
	}
}
