// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tienda-org/storefront/internal/domain/inventory"
)

// InventoryHandler exposes the stock movement ledger
type InventoryHandler struct {
	inventoryService *inventory.Service
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *inventory.Service) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// GetMovements handles GET /bodega/movimientos/:product_id
func (h *InventoryHandler) GetMovements(c *gin.Context) {
	productID, ok := parseID(c, "product_id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	movements, err := h.inventoryService.Movements(c.Request.Context(), productID, limit)
	if err != nil {
		respondError(c, err, "Failed to retrieve movements")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Movements retrieved successfully",
		"data":    movements,
	})
}
