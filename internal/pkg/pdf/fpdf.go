// internal/pkg/pdf/fpdf.go
package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/tienda-org/storefront/internal/domain/order"
)

func (s *Service) drawInvoice(data InvoiceData) (*bytes.Buffer, error) {
	o := data.Order
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	s.letterhead(pdf, tr)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "FACTURA")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(95, 8, tr("Factura #: "+data.InvoiceNumber))
	pdf.Cell(95, 8, tr("Fecha: "+data.InvoiceDate))
	pdf.Ln(8)
	pdf.Cell(95, 8, tr("Pedido #: "+o.OrderNumber))
	pdf.Ln(8)
	pdf.MultiCell(190, 7, tr("Dirección de envío: "+o.ShippingAddress), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 8, "Producto", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 8, "Cantidad", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Precio", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	for _, item := range o.Items {
		pdf.CellFormat(90, 8, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, "$"+item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, "$"+item.LineTotal().StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	total := func(label, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 12)
		pdf.CellFormat(150, 8, tr(label), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, amount, "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	total("Subtotal:", "$"+o.Subtotal.StringFixed(2), false)
	if o.CouponCode != "" {
		total(fmt.Sprintf("Descuento (%s %d%%):", o.CouponCode, o.DiscountPercent), "-$"+o.Discount.StringFixed(2), false)
	}
	total(fmt.Sprintf("IVA (%s%%):", o.TaxPercent.StringFixed(2)), "$"+o.TaxAmount.StringFixed(2), false)
	total("Total:", "$"+o.Total.StringFixed(2), true)

	pdf.Ln(12)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(190, 8, tr("Gracias por su compra."))

	return output(pdf)
}

// GenerateDispatchSlip renders the warehouse packing slip for an order
func (s *Service) GenerateDispatchSlip(o *order.Order) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	s.letterhead(pdf, tr)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, tr("GUÍA DE DESPACHO"))
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(95, 8, tr("Pedido #: "+o.OrderNumber))
	pdf.Cell(95, 8, "Fecha: "+o.CreatedAt.Format("02/01/2006 15:04"))
	pdf.Ln(8)
	pdf.Cell(95, 8, "Estado: "+string(o.Status))
	pdf.Ln(8)
	pdf.MultiCell(190, 7, tr("Entregar en: "+o.ShippingAddress), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(30, 8, tr("Código"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(120, 8, "Producto", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Cantidad", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	units := 0
	for _, item := range o.Items {
		pdf.CellFormat(30, 8, strconv.FormatUint(uint64(item.ProductID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(120, 8, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		units += item.Quantity
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(150, 8, "Unidades:", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, strconv.Itoa(units), "1", 0, "C", false, 0, "")
	pdf.Ln(20)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(95, 8, "Preparado por: ____________________")
	pdf.Cell(95, 8, "Recibido por: ____________________")

	return output(pdf)
}

func (s *Service) letterhead(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, tr(s.config.App.CompanyName))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	if s.config.App.CompanyAddress != "" {
		pdf.Cell(100, 7, tr(s.config.App.CompanyAddress))
		pdf.Ln(6)
	}
	contact := "Email: " + s.config.App.CompanyEmail
	if s.config.App.CompanyPhone != "" {
		contact += " | Tel: " + s.config.App.CompanyPhone
	}
	pdf.Cell(100, 7, tr(contact))
	pdf.Ln(12)
}

func output(pdf *gofpdf.Fpdf) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return &buf, nil
}
