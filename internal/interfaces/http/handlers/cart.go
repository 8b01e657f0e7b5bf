// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tienda-org/storefront/internal/domain/cart"
	"github.com/tienda-org/storefront/internal/interfaces/http/middleware"
)

// CartHandler handles the session cart endpoints
type CartHandler struct {
	cartService *cart.Service
	store       cart.Store
	logger      *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, store cart.Store, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		store:       store,
		logger:      logger,
	}
}

// UpdateQuantityRequest is the quantity form of POST /actualizar-carrito/:id
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" form:"cantidad" binding:"required"`
}

// loadCart returns the cart bound to the caller's session cookie
func loadCart(c *gin.Context, store cart.Store) (*cart.Cart, bool) {
	sessionID, err := middleware.CartSessionID(c)
	if err != nil {
		respondError(c, err, "Failed to start session")
		return nil, false
	}

	sessionCart, err := store.Load(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err, "Failed to retrieve cart")
		return nil, false
	}
	return sessionCart, true
}

// GetCart handles GET /carrito
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionCart, ok := loadCart(c, h.store)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.cartService.Summary(sessionCart),
	})
}

// AddToCart handles POST /agregar-carrito/:id
func (h *CartHandler) AddToCart(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	h.mutate(c, "Item added to cart", func(sessionCart *cart.Cart) error {
		return h.cartService.Add(c.Request.Context(), sessionCart, productID)
	})
}

// RemoveFromCart handles POST /eliminar-carrito/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	h.mutate(c, "Item removed from cart", func(sessionCart *cart.Cart) error {
		h.cartService.Remove(sessionCart, productID)
		return nil
	})
}

// UpdateCartItem handles POST /actualizar-carrito/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	h.mutate(c, "Cart updated", func(sessionCart *cart.Cart) error {
		return h.cartService.SetQuantity(c.Request.Context(), sessionCart, productID, *req.Quantity)
	})
}

func (h *CartHandler) mutate(c *gin.Context, message string, apply func(*cart.Cart) error) {
	sessionCart, ok := loadCart(c, h.store)
	if !ok {
		return
	}

	if err := apply(sessionCart); err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}

	if err := h.store.Save(c.Request.Context(), sessionCart); err != nil {
		h.logger.WithError(err).WithField("session_id", sessionCart.SessionID).Error("failed to save cart")
		respondError(c, err, "Failed to save cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    h.cartService.Summary(sessionCart),
	})
}
