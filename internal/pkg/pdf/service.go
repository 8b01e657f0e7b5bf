// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/domain/order"
)

// Service renders order documents
type Service struct {
	config *config.Config
	tmpl   *template.Template
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	if cfg.Store.WkhtmltopdfPath != "" {
		wkhtmltopdf.SetPath(cfg.Store.WkhtmltopdfPath)
	}
	return &Service{
		config: cfg,
		tmpl:   template.Must(template.New("invoice").Parse(invoiceTemplate)),
	}
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string       `json:"invoice_number"`
	InvoiceDate   string       `json:"invoice_date"`
	Order         *order.Order `json:"order"`
	Company       CompanyInfo  `json:"company"`
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// GenerateInvoice renders the invoice for an order. The HTML layout goes
// through wkhtmltopdf when enabled, otherwise the invoice is drawn directly.
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	data := s.invoiceData(o)

	if !s.config.Store.RenderInvoiceWithHTML {
		return s.drawInvoice(data)
	}

	htmlContent, err := s.InvoiceHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Encoding.Set("utf-8")
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// InvoiceHTML renders the invoice template
func (s *Service) InvoiceHTML(data InvoiceData) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) invoiceData(o *order.Order) InvoiceData {
	number := o.GenerateInvoiceNumber()
	if o.Invoice != nil && o.Invoice.InvoiceNumber != "" {
		number = o.Invoice.InvoiceNumber
	}
	return InvoiceData{
		InvoiceNumber: number,
		InvoiceDate:   time.Now().Format("02/01/2006"),
		Order:         o,
		Company: CompanyInfo{
			Name:    s.config.App.CompanyName,
			Address: s.config.App.CompanyAddress,
			Phone:   s.config.App.CompanyPhone,
			Email:   s.config.App.CompanyEmail,
		},
	}
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Factura {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #2563eb; }
        .items-table { width: 100%; border-collapse: collapse; margin: 30px 0; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .num { text-align: right; }
        .totals { float: right; width: 320px; }
        .totals td { padding: 6px 8px; border-bottom: 1px solid #eee; }
        .total-row { font-size: 18px; font-weight: bold; }
        .footer { clear: both; margin-top: 50px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Company.Name}}</h1>
        {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
        {{if .Company.Phone}}<p>Teléfono: {{.Company.Phone}}</p>{{end}}
        <p>Email: {{.Company.Email}}</p>
        <div class="invoice-title">FACTURA</div>
        <p><strong>Factura #:</strong> {{.InvoiceNumber}}</p>
        <p><strong>Fecha:</strong> {{.InvoiceDate}}</p>
        <p><strong>Pedido #:</strong> {{.Order.OrderNumber}}</p>
        <p><strong>Dirección de envío:</strong> {{.Order.ShippingAddress}}</p>
    </div>

    <table class="items-table">
        <thead>
            <tr><th>Producto</th><th class="num">Cantidad</th><th class="num">Precio</th><th class="num">Total</th></tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.Name}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">${{.UnitPrice.StringFixed 2}}</td>
                <td class="num">${{.LineTotal.StringFixed 2}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr><td>Subtotal:</td><td class="num">${{.Order.Subtotal.StringFixed 2}}</td></tr>
            {{if .Order.CouponCode}}<tr><td>Descuento ({{.Order.CouponCode}} {{.Order.DiscountPercent}}%):</td><td class="num">-${{.Order.Discount.StringFixed 2}}</td></tr>{{end}}
            <tr><td>IVA ({{.Order.TaxPercent.StringFixed 2}}%):</td><td class="num">${{.Order.TaxAmount.StringFixed 2}}</td></tr>
            <tr class="total-row"><td>Total:</td><td class="num">${{.Order.Total.StringFixed 2}}</td></tr>
        </table>
    </div>

    <div class="footer">
        <p>Gracias por su compra.</p>
        <p>Consultas: {{.Company.Email}}</p>
    </div>
</body>
</html>
`
