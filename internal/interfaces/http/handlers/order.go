// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tienda-org/storefront/internal/domain/order"
	"github.com/tienda-org/storefront/internal/interfaces/http/middleware"
	"github.com/tienda-org/storefront/internal/pkg/auth"
)

// OrderHandler handles a customer's own orders
type OrderHandler struct {
	orderService *order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// GetOrders handles GET /pedidos
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	orders, err := h.orderService.ListCustomerOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// GetOrder handles GET /pedidos/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, ok := ownedOrder(c, h.orderService)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// ownedOrder loads the order in the :id parameter when the caller placed it
// or administers the store. Orders of other customers read as not found.
func ownedOrder(c *gin.Context, orders *order.Service) (*order.Order, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return nil, false
	}

	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}

	o, err := orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return nil, false
	}

	if o.CustomerID != principal.UserID && !principal.Has(auth.RoleAdministrator) {
		respondError(c, order.ErrOrderNotFound, "")
		return nil, false
	}
	return o, true
}
