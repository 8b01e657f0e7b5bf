// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tienda-org/storefront/internal/domain/order"
	"github.com/tienda-org/storefront/internal/pkg/pdf"
)

// InvoiceHandler serves invoice documents
type InvoiceHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(orderService *order.Service, pdfService *pdf.Service) *InvoiceHandler {
	return &InvoiceHandler{
		orderService: orderService,
		pdfService:   pdfService,
	}
}

// DownloadInvoice handles GET /pedidos/:id/factura
func (h *InvoiceHandler) DownloadInvoice(c *gin.Context) {
	o, ok := ownedOrder(c, h.orderService)
	if !ok {
		return
	}
	if o.Invoice == nil {
		respondError(c, order.ErrInvoiceNotFound, "")
		return
	}

	buf, err := h.pdfService.GenerateInvoice(o)
	if err != nil {
		respondError(c, err, "Failed to generate invoice")
		return
	}

	filename := fmt.Sprintf("%s.pdf", o.Invoice.InvoiceNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
