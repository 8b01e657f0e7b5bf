// internal/interfaces/http/handlers/response.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tienda-org/storefront/internal/domain/coupon"
	"github.com/tienda-org/storefront/internal/domain/inventory"
	"github.com/tienda-org/storefront/internal/domain/order"
	"github.com/tienda-org/storefront/internal/domain/product"
	"github.com/tienda-org/storefront/internal/domain/tax"
	"github.com/tienda-org/storefront/internal/domain/user"
	"github.com/tienda-org/storefront/internal/pkg/auth"
)

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// respondError maps domain errors to status codes
func respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrInvoiceNotFound),
		errors.Is(err, coupon.ErrCouponNotFound),
		errors.Is(err, user.ErrUserNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, coupon.ErrCodeTaken):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, product.ErrInvalidProduct),
		errors.Is(err, coupon.ErrInvalidCoupon),
		errors.Is(err, tax.ErrInvalidPercentage),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrPasswordMismatch),
		errors.Is(err, user.ErrSuperuserLocked),
		errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{
		"error": message,
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}
