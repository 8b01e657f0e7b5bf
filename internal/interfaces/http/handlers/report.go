// internal/interfaces/http/handlers/report.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tienda-org/storefront/internal/domain/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles the financial report
type ReportHandler struct {
	reportService *report.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.Service) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetReport handles GET /reporte
func (h *ReportHandler) GetReport(c *gin.Context) {
	figures, err := h.reportService.FinancialReport(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report generated successfully",
		"data":    figures,
	})
}

// ExportReport handles GET /reporte/exportar
func (h *ReportHandler) ExportReport(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reportService.Export(c.Request.Context(), &buf); err != nil {
		respondError(c, err, "Failed to export report")
		return
	}

	filename := fmt.Sprintf("reporte-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
