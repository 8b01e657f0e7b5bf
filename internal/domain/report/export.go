// internal/domain/report/export.go
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
)

// Export writes the financial report and the order list as an xlsx workbook
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	summary, err := s.FinancialReport(ctx)
	if err != nil {
		return err
	}
	orders, err := s.OrderLines(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Resumen")
	if err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	title := sheet.AddRow()
	title.AddCell().SetString(fmt.Sprintf("%s - Reporte financiero", s.config.App.CompanyName))
	title.Cells[0].SetStyle(boldStyle())
	sheet.AddRow().AddCell().SetString("Generado: " + summary.GeneratedAt.Format("2006-01-02 15:04"))
	sheet.AddRow()

	summaryData := [][]string{
		{"Ingresos realizados", summary.RealizedRevenue.StringFixed(2)},
		{"Por cobrar", summary.Outstanding.StringFixed(2)},
		{"Pérdidas por devoluciones", summary.ReturnLosses.StringFixed(2)},
		{"Pedidos pendientes", fmt.Sprintf("%d", summary.PendingOrders)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	ordersSheet, err := file.AddSheet("Pedidos")
	if err != nil {
		return fmt.Errorf("failed to create orders sheet: %w", err)
	}

	headers := []string{"Pedido", "Número", "Cliente", "Fecha", "Estado", "Artículos", "Subtotal", "Descuento", "IVA %", "IVA", "Total"}
	headerRow := ordersSheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(boldStyle())
	}

	for _, o := range orders {
		items := 0
		for _, item := range o.Items {
			items += item.Quantity
		}

		row := ordersSheet.AddRow()
		row.AddCell().SetInt(int(o.ID))
		row.AddCell().SetString(o.OrderNumber)
		row.AddCell().SetInt(int(o.CustomerID))
		row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(string(o.Status))
		row.AddCell().SetInt(items)
		row.AddCell().SetString(o.Subtotal.StringFixed(2))
		row.AddCell().SetString(o.Discount.StringFixed(2))
		row.AddCell().SetString(o.TaxPercent.StringFixed(2))
		row.AddCell().SetString(o.TaxAmount.StringFixed(2))
		row.AddCell().SetString(o.Total.StringFixed(2))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func boldStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	return style
}
