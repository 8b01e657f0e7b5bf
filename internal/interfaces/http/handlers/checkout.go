// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tienda-org/storefront/internal/domain/cart"
	"github.com/tienda-org/storefront/internal/domain/checkout"
	"github.com/tienda-org/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the checkout form and order commit
type CheckoutHandler struct {
	checkoutService *checkout.Service
	cartService     *cart.Service
	store           cart.Store
	logger          *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, cartService *cart.Service, store cart.Store, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		cartService:     cartService,
		store:           store,
		logger:          logger,
	}
}

// GetCheckout handles GET /checkout. An empty cart sends the shopper back to
// the catalog.
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	sessionCart, ok := loadCart(c, h.store)
	if !ok {
		return
	}

	preview, err := h.checkoutService.Preview(c.Request.Context(), sessionCart, c.Query("cupon"))
	if errors.Is(err, checkout.ErrEmptyCart) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	} else if err != nil {
		respondError(c, err, "Failed to price cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout ready",
		"data":    preview,
	})
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	customerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req checkout.PlaceOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	sessionCart, ok := loadCart(c, h.store)
	if !ok {
		return
	}

	confirmation, err := h.checkoutService.PlaceOrder(c.Request.Context(), customerID, sessionCart, &req)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.Redirect(http.StatusSeeOther, "/")
		return
	case errors.Is(err, checkout.ErrAddressRequired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"data":  h.cartService.Summary(sessionCart),
		})
		return
	case err != nil:
		respondError(c, err, "Failed to place order")
		return
	}

	h.dropStoredCart(c, sessionCart)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    confirmation,
	})
}

// dropStoredCart removes the committed cart from the store. If the delete
// fails the emptied cart is written over it so a resubmit finds nothing to
// order.
func (h *CheckoutHandler) dropStoredCart(c *gin.Context, sessionCart *cart.Cart) {
	ctx := c.Request.Context()
	entry := h.logger.WithField("session_id", sessionCart.SessionID)

	err := h.store.Delete(ctx, sessionCart.SessionID)
	if err == nil {
		return
	}
	entry.WithError(err).Warn("failed to delete stored cart, saving it empty")

	if err := h.store.Save(ctx, sessionCart); err != nil {
		entry.WithError(err).Error("stored cart still holds a committed order")
	}
}
