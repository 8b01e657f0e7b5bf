// Package pricing turns a cart, an optional coupon code and the current tax
// rate into the figures charged at checkout.
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tienda-org/storefront/internal/domain/cart"
	"github.com/tienda-org/storefront/internal/domain/coupon"
)

var hundred = decimal.NewFromInt(100)

// Quote holds the priced figures for a cart
type Quote struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	CouponCode      string          `json:"coupon_code,omitempty"`
	DiscountPercent int             `json:"discount_percent"`
	Discount        decimal.Decimal `json:"discount"`
	TaxBase         decimal.Decimal `json:"tax_base"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
}

// Calculate prices the items. Discount comes off the subtotal first and tax
// is charged on what remains. Discount, tax and total are rounded half up to
// cents; the subtotal is left exact.
func Calculate(items []cart.Item, discountPercent int, taxPercent decimal.Decimal) Quote {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineSubtotal())
	}

	discount := subtotal.Mul(decimal.NewFromInt(int64(discountPercent))).Div(hundred).Round(2)
	taxBase := subtotal.Sub(discount)
	tax := taxBase.Mul(taxPercent).Div(hundred).Round(2)
	total := taxBase.Add(tax).Round(2)

	return Quote{
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		Discount:        discount,
		TaxBase:         taxBase,
		TaxPercent:      taxPercent,
		Tax:             tax,
		Total:           total,
	}
}

// CouponFinder resolves active coupons by code
type CouponFinder interface {
	FindActive(ctx context.Context, code string) (*coupon.Coupon, error)
}

// TaxRates reports the tax rate in force
type TaxRates interface {
	CurrentPercentage(ctx context.Context) (decimal.Decimal, error)
}

// Engine prices carts against the stored coupons and tax history
type Engine struct {
	coupons CouponFinder
	taxes   TaxRates
}

// NewEngine creates a pricing engine
func NewEngine(coupons CouponFinder, taxes TaxRates) *Engine {
	return &Engine{coupons: coupons, taxes: taxes}
}

// Quote prices a cart. An unknown or inactive code prices without discount.
func (e *Engine) Quote(ctx context.Context, c *cart.Cart, couponCode string) (*Quote, error) {
	taxPercent, err := e.taxes.CurrentPercentage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tax rate: %w", err)
	}

	found, err := e.coupons.FindActive(ctx, couponCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve coupon: %w", err)
	}

	discountPercent := 0
	if found != nil {
		discountPercent = found.DiscountPercentage
	}

	quote := Calculate(c.Items, discountPercent, taxPercent)
	if found != nil {
		quote.CouponCode = found.Code
	}
	return &quote, nil
}
