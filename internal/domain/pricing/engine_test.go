package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-org/storefront/internal/domain/cart"
	"github.com/tienda-org/storefront/internal/domain/coupon"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func items(pairs ...interface{}) []cart.Item {
	var out []cart.Item
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, cart.Item{UnitPrice: d(pairs[i].(string)), Quantity: pairs[i+1].(int)})
	}
	return out
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "%s: want %s, got %s", field, want, got.String())
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		items      []cart.Item
		discount   int
		tax        string
		subtotal   string
		discountAm string
		taxBase    string
		taxAm      string
		total      string
	}{
		{"coupon then tax", items("10.00", 3), 10, "15", "30.00", "3.00", "27.00", "4.05", "31.05"},
		{"no coupon", items("10.00", 3), 0, "15", "30.00", "0.00", "30.00", "4.50", "34.50"},
		{"empty cart", nil, 10, "15", "0", "0", "0", "0", "0"},
		{"discount rounds half up", items("0.25", 1), 10, "0", "0.25", "0.03", "0.22", "0", "0.22"},
		{"tax rounds half up", items("0.10", 1), 0, "15", "0.10", "0", "0.10", "0.02", "0.12"},
		{"subtotal stays exact", items("1.005", 3, "2.50", 2), 0, "0", "8.015", "0", "8.015", "0", "8.02"},
		{"full discount", items("19.99", 2), 100, "12", "39.98", "39.98", "0", "0", "0"},
		{"fractional tax rate", items("100.00", 1), 5, "12.5", "100.00", "5.00", "95.00", "11.88", "106.88"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Calculate(tt.items, tt.discount, d(tt.tax))
			assertDecimal(t, tt.subtotal, q.Subtotal, "subtotal")
			assertDecimal(t, tt.discountAm, q.Discount, "discount")
			assertDecimal(t, tt.taxBase, q.TaxBase, "tax base")
			assertDecimal(t, tt.taxAm, q.Tax, "tax")
			assertDecimal(t, tt.total, q.Total, "total")
		})
	}
}

func TestCalculateTaxesTheDiscountedBase(t *testing.T) {
	for _, sub := range []string{"0.01", "3.33", "47.19", "1234.56"} {
		for _, pct := range []int{0, 7, 10, 33, 50} {
			q := Calculate(items(sub, 1), pct, d("15"))

			discount := d(sub).Mul(decimal.NewFromInt(int64(pct))).Div(hundred).Round(2)
			tax := d(sub).Sub(discount).Mul(d("15")).Div(hundred).Round(2)
			want := d(sub).Sub(discount).Add(tax).Round(2)

			assertDecimal(t, want.String(), q.Total, sub)
			assert.False(t, q.Total.GreaterThan(Calculate(items(sub, 1), 0, d("15")).Total), "a coupon never raises the total")
		}
	}
}

type stubCoupons map[string]*coupon.Coupon

func (s stubCoupons) FindActive(_ context.Context, code string) (*coupon.Coupon, error) {
	c, ok := s[coupon.NormalizeCode(code)]
	if !ok || !c.IsActive {
		return nil, nil
	}
	return c, nil
}

type stubTaxes struct {
	pct decimal.Decimal
	err error
}

func (s stubTaxes) CurrentPercentage(context.Context) (decimal.Decimal, error) {
	return s.pct, s.err
}

func sampleCart() *cart.Cart {
	c := cart.New("s")
	c.Items = items("10.00", 3)
	return c
}

func TestEngineQuote(t *testing.T) {
	coupons := stubCoupons{
		"SAVE10": {Code: "SAVE10", DiscountPercentage: 10, IsActive: true},
		"OLD50":  {Code: "OLD50", DiscountPercentage: 50, IsActive: false},
	}
	engine := NewEngine(coupons, stubTaxes{pct: d("15")})
	ctx := context.Background()

	q, err := engine.Quote(ctx, sampleCart(), " save10 ")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", q.CouponCode)
	assertDecimal(t, "3.00", q.Discount, "discount")
	assertDecimal(t, "27.00", q.TaxBase, "tax base")
	assertDecimal(t, "4.05", q.Tax, "tax")
	assertDecimal(t, "31.05", q.Total, "total")

	for _, code := range []string{"BADCODE", "OLD50", ""} {
		q, err := engine.Quote(ctx, sampleCart(), code)
		require.NoError(t, err)
		assert.Empty(t, q.CouponCode)
		assertDecimal(t, "0.00", q.Discount, code)
		assertDecimal(t, "4.50", q.Tax, code)
		assertDecimal(t, "34.50", q.Total, code)
	}
}

func TestEngineQuoteTaxError(t *testing.T) {
	engine := NewEngine(stubCoupons{}, stubTaxes{err: errors.New("db down")})

	_, err := engine.Quote(context.Background(), sampleCart(), "")
	assert.Error(t, err)
}
