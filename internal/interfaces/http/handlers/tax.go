// internal/interfaces/http/handlers/tax.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tienda-org/storefront/internal/domain/tax"
	"github.com/tienda-org/storefront/internal/interfaces/http/middleware"
)

// TaxHandler handles the tax rate configuration
type TaxHandler struct {
	taxService *tax.Service
}

// NewTaxHandler creates a new tax handler
func NewTaxHandler(taxService *tax.Service) *TaxHandler {
	return &TaxHandler{
		taxService: taxService,
	}
}

// SetTaxRequest is the form of POST /iva
type SetTaxRequest struct {
	Percentage string `json:"percentage" form:"porcentaje" binding:"required"`
}

// GetTax handles GET /iva
func (h *TaxHandler) GetTax(c *gin.Context) {
	ctx := c.Request.Context()

	current, err := h.taxService.Current(ctx)
	if err != nil {
		respondError(c, err, "Failed to retrieve tax rate")
		return
	}

	history, err := h.taxService.History(ctx)
	if err != nil {
		respondError(c, err, "Failed to retrieve tax history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tax rate retrieved successfully",
		"data": gin.H{
			"current": current,
			"history": history,
		},
	})
}

// SetTax handles POST /iva
func (h *TaxHandler) SetTax(c *gin.Context) {
	var req SetTaxRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	percentage, err := decimal.NewFromString(req.Percentage)
	if err != nil {
		badRequest(c, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	setting, err := h.taxService.Set(c.Request.Context(), percentage, userID)
	if err != nil {
		respondError(c, err, "Failed to save tax rate")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tax rate saved successfully",
		"data":    setting,
	})
}
