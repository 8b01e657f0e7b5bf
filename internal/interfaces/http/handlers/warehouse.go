// internal/interfaces/http/handlers/warehouse.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tienda-org/storefront/internal/domain/order"
	"github.com/tienda-org/storefront/internal/interfaces/http/middleware"
	"github.com/tienda-org/storefront/internal/pkg/pdf"
)

// WarehouseHandler handles the fulfillment queue
type WarehouseHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(orderService *order.Service, pdfService *pdf.Service) *WarehouseHandler {
	return &WarehouseHandler{
		orderService: orderService,
		pdfService:   pdfService,
	}
}

// UpdateStatusRequest is the form of POST /bodega/actualizar/:order_id
type UpdateStatusRequest struct {
	Status string `json:"status" form:"estado" binding:"required"`
}

// GetQueue handles GET /bodega
func (h *WarehouseHandler) GetQueue(c *gin.Context) {
	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// UpdateStatus handles POST /bodega/actualizar/:order_id
func (h *WarehouseHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		respondError(c, err, "")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	updated, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, status, userID)
	if err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    updated,
	})
}

// RegisterReturn handles POST /bodega/devolucion/:order_id
func (h *WarehouseHandler) RegisterReturn(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	var req order.ReturnRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	ret, err := h.orderService.RegisterReturn(c.Request.Context(), orderID, &req, userID)
	if err != nil {
		respondError(c, err, "Failed to register return")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Return registered successfully",
		"data":    ret,
	})
}

// DispatchSlip handles GET /bodega/despacho/:order_id
func (h *WarehouseHandler) DispatchSlip(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	buf, err := h.pdfService.GenerateDispatchSlip(o)
	if err != nil {
		respondError(c, err, "Failed to generate dispatch slip")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "despacho-"+o.OrderNumber+".pdf"))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
