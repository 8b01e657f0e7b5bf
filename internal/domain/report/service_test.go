package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/domain/order"
	"github.com/tienda-org/storefront/internal/domain/product"
	"github.com/tienda-org/storefront/internal/pkg/testdb"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seed(t *testing.T) *Service {
	db := testdb.New(t, &product.Product{}, &order.Order{}, &order.OrderItem{}, &order.Return{})

	cafe := product.Product{Name: "Café", BasePrice: d("4.50"), Stock: 10}
	te := product.Product{Name: "Té", BasePrice: d("2.25"), Stock: 10}
	require.NoError(t, db.Create(&cafe).Error)
	require.NoError(t, db.Create(&te).Error)

	orders := []order.Order{
		{CustomerID: 1, ShippingAddress: "a", Status: order.OrderStatusDelivered, Total: d("31.05")},
		{CustomerID: 1, ShippingAddress: "b", Status: order.OrderStatusDelivered, Total: d("10.10")},
		{CustomerID: 2, ShippingAddress: "c", Status: order.OrderStatusShipped, Total: d("34.50")},
		{CustomerID: 2, ShippingAddress: "d", Status: order.OrderStatusPending, Total: d("5.75")},
		{CustomerID: 3, ShippingAddress: "e", Status: order.OrderStatusPending, Total: d("0.20")},
	}
	for i := range orders {
		orders[i].TaxPercent = decimal.NewFromInt(15)
		orders[i].Subtotal = orders[i].Total
		orders[i].Discount = decimal.Zero
		orders[i].TaxAmount = decimal.Zero
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	returns := []order.Return{
		{OrderID: orders[0].ID, ProductID: cafe.ID, Quantity: 2, Reason: "x"},
		{OrderID: orders[2].ID, ProductID: te.ID, Quantity: 1, Reason: "y", Processed: true},
	}
	require.NoError(t, db.Create(&returns).Error)

	// a deleted product still counts toward losses
	require.NoError(t, db.Delete(&te).Error)

	return NewService(db, &config.Config{App: config.AppConfig{CompanyName: "Tienda"}})
}

func TestFinancialReport(t *testing.T) {
	svc := seed(t)

	report, err := svc.FinancialReport(context.Background())
	require.NoError(t, err)

	assert.True(t, report.RealizedRevenue.Equal(d("41.15")), report.RealizedRevenue.String())
	assert.True(t, report.Outstanding.Equal(d("40.45")), report.Outstanding.String())
	assert.True(t, report.ReturnLosses.Equal(d("11.25")), report.ReturnLosses.String())
	assert.Equal(t, int64(2), report.PendingOrders)

	require.Len(t, report.OrdersByStatus, 3)
	assert.Equal(t, order.OrderStatusDelivered, report.OrdersByStatus[0].Status)
	assert.Equal(t, int64(2), report.OrdersByStatus[0].Count)
}

func TestFinancialReportEmpty(t *testing.T) {
	db := testdb.New(t, &product.Product{}, &order.Order{}, &order.Return{})
	svc := NewService(db, &config.Config{})

	report, err := svc.FinancialReport(context.Background())
	require.NoError(t, err)
	assert.True(t, report.RealizedRevenue.IsZero())
	assert.True(t, report.Outstanding.IsZero())
	assert.True(t, report.ReturnLosses.IsZero())
	assert.Zero(t, report.PendingOrders)
}

func TestExportWritesWorkbook(t *testing.T) {
	svc := seed(t)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)
	assert.Equal(t, "Resumen", file.Sheets[0].Name)

	revenue := ""
	for _, row := range file.Sheets[0].Rows {
		if len(row.Cells) >= 2 && row.Cells[0].Value == "Ingresos realizados" {
			revenue = row.Cells[1].Value
		}
	}
	assert.Equal(t, "41.15", revenue)
	assert.Len(t, file.Sheets[1].Rows, 6)
}
