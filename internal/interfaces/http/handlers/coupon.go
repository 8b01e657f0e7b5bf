// internal/interfaces/http/handlers/coupon.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tienda-org/storefront/internal/domain/coupon"
)

// CouponHandler handles coupon administration
type CouponHandler struct {
	couponService *coupon.Service
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponService *coupon.Service) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// ActiveRequest toggles an active flag
type ActiveRequest struct {
	IsActive *bool `json:"is_active" form:"activo" binding:"required"`
}

// GetCoupons handles GET /cupones
func (h *CouponHandler) GetCoupons(c *gin.Context) {
	coupons, err := h.couponService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve coupons")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupons retrieved successfully",
		"data":    coupons,
	})
}

// CreateCoupon handles POST /cupones
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req coupon.CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.couponService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create coupon")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon created successfully",
		"data":    created,
	})
}

// SetActive handles POST /cupones/:id/activo
func (h *CouponHandler) SetActive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ActiveRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.couponService.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondError(c, err, "Failed to update coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon updated successfully",
		"data":    updated,
	})
}
