package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"github.com/tienda-org/storefront/internal/domain/cart"
	"github.com/tienda-org/storefront/internal/domain/coupon"
	"github.com/tienda-org/storefront/internal/domain/order"
	"github.com/tienda-org/storefront/internal/domain/product"
)

type checkoutContext struct {
	t        *testing.T
	store    *storefront
	products map[string]*product.Product
	cart     *cart.Cart
	result   *Confirmation
	err      error
}

func (c *checkoutContext) reset() {
	c.store = newStorefront(c.t)
	c.products = map[string]*product.Product{}
	c.cart = cart.New("feature-session")
	c.result = nil
	c.err = nil
}

func (c *checkoutContext) theTaxRateIs(pct string) error {
	_, err := c.store.taxes.Set(context.Background(), decimal.RequireFromString(pct), 1)
	return err
}

func (c *checkoutContext) anActiveCouponWorth(code string, pct int) error {
	_, err := c.store.coupons.Create(context.Background(), &coupon.CreateRequest{Code: code, DiscountPercentage: pct})
	return err
}

func (c *checkoutContext) theCouponIsDeactivated(code string) error {
	ctx := context.Background()
	list, err := c.store.coupons.List(ctx)
	if err != nil {
		return err
	}
	for _, cp := range list {
		if cp.Code == code {
			_, err := c.store.coupons.SetActive(ctx, cp.ID, false)
			return err
		}
	}
	return fmt.Errorf("coupon %s not found", code)
}

func (c *checkoutContext) aProductPricedWithStock(name, price string, stock int) error {
	p, err := c.store.products.CreateProduct(context.Background(), &product.ProductRequest{
		Name:      name,
		BasePrice: decimal.RequireFromString(price),
		Stock:     stock,
	})
	if err != nil {
		return err
	}
	c.products[name] = p
	return nil
}

func (c *checkoutContext) theCartHoldsOf(quantity int, name string) error {
	p, ok := c.products[name]
	if !ok {
		return fmt.Errorf("unknown product %s", name)
	}
	if item := c.cart.Find(p.ID); item != nil {
		if item.Quantity != quantity {
			return fmt.Errorf("cart holds %d of %s, want %d", item.Quantity, name, quantity)
		}
		return nil
	}
	for i := 0; i < quantity; i++ {
		if err := c.store.carts.Add(context.Background(), c.cart, p.ID); err != nil {
			return err
		}
	}
	return nil
}

func (c *checkoutContext) theShopperAddsMoreTimes(name string, times int) error {
	for i := 0; i < times; i++ {
		if err := c.store.carts.Add(context.Background(), c.cart, c.products[name].ID); err != nil {
			return err
		}
	}
	return nil
}

func (c *checkoutContext) stockDropsTo(name string, stock int) error {
	return c.store.db.Model(&product.Product{}).
		Where("id = ?", c.products[name].ID).
		UpdateColumn("stock", stock).Error
}

func (c *checkoutContext) theCustomerChecksOut(address, code string) error {
	c.result, c.err = c.store.checkout.PlaceOrder(context.Background(), 1, c.cart, &PlaceOrderRequest{
		ShippingAddress: address,
		CouponCode:      code,
	})
	return nil
}

func (c *checkoutContext) orderFigure(field string) func(string) error {
	return func(want string) error {
		if c.err != nil {
			return fmt.Errorf("checkout failed: %w", c.err)
		}
		var got decimal.Decimal
		switch field {
		case "subtotal":
			got = c.result.Order.Subtotal
		case "discount":
			got = c.result.Order.Discount
		case "tax":
			got = c.result.Order.TaxAmount
		case "total":
			got = c.result.Order.Total
		}
		if !got.Equal(decimal.RequireFromString(want)) {
			return fmt.Errorf("order %s is %s, want %s", field, got.StringFixed(2), want)
		}
		return nil
	}
}

func (c *checkoutContext) theCartIsEmpty() error {
	if !c.cart.IsEmpty() {
		return fmt.Errorf("cart still has %d items", len(c.cart.Items))
	}
	return nil
}

func (c *checkoutContext) hasInStock(name string, want int) error {
	p, err := c.store.products.GetProduct(context.Background(), c.products[name].ID)
	if err != nil {
		return err
	}
	if p.Stock != want {
		return fmt.Errorf("%s has %d in stock, want %d", name, p.Stock, want)
	}
	return nil
}

func (c *checkoutContext) theOrderHasAnInvoice() error {
	var invoice order.Invoice
	return c.store.db.Where("order_id = ?", c.result.Order.ID).First(&invoice).Error
}

func (c *checkoutContext) checkoutFailsWith(target error) func() error {
	return func() error {
		if !errors.Is(c.err, target) {
			return fmt.Errorf("expected %v, got %v", target, c.err)
		}
		return nil
	}
}

func (c *checkoutContext) noOrderExists() error {
	if n := c.store.count(c.t, &order.Order{}); n != 0 {
		return fmt.Errorf("%d orders exist", n)
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func TestCheckoutFeatures(t *testing.T) {
	tc := &checkoutContext{t: t}

	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
				tc.reset()
				return ctx, nil
			})

			ctx.Step(`^the tax rate is (\d+(?:\.\d+)?)%$`, tc.theTaxRateIs)
			ctx.Step(`^an active coupon "([^"]*)" worth (\d+)%$`, func(code, pct string) error {
				return tc.anActiveCouponWorth(code, atoi(pct))
			})
			ctx.Step(`^the coupon "([^"]*)" is deactivated$`, tc.theCouponIsDeactivated)
			ctx.Step(`^a product "([^"]*)" priced (\d+\.\d+) with stock (\d+)$`, func(name, price, stock string) error {
				return tc.aProductPricedWithStock(name, price, atoi(stock))
			})
			ctx.Step(`^the cart holds (\d+) of "([^"]*)"$`, func(qty, name string) error {
				return tc.theCartHoldsOf(atoi(qty), name)
			})
			ctx.Step(`^the shopper adds "([^"]*)" (\d+) more times$`, func(name, times string) error {
				return tc.theShopperAddsMoreTimes(name, atoi(times))
			})
			ctx.Step(`^"([^"]*)" stock drops to (\d+)$`, func(name, stock string) error {
				return tc.stockDropsTo(name, atoi(stock))
			})
			ctx.Step(`^the customer checks out to "([^"]*)" with coupon "([^"]*)"$`, tc.theCustomerChecksOut)
			ctx.Step(`^the order subtotal is (\d+\.\d+)$`, tc.orderFigure("subtotal"))
			ctx.Step(`^the order discount is (\d+\.\d+)$`, tc.orderFigure("discount"))
			ctx.Step(`^the order tax is (\d+\.\d+)$`, tc.orderFigure("tax"))
			ctx.Step(`^the order total is (\d+\.\d+)$`, tc.orderFigure("total"))
			ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
			ctx.Step(`^"([^"]*)" has (\d+) in stock$`, func(name, stock string) error {
				return tc.hasInStock(name, atoi(stock))
			})
			ctx.Step(`^the order has an invoice$`, tc.theOrderHasAnInvoice)
			ctx.Step(`^checkout fails because the address is missing$`, tc.checkoutFailsWith(ErrAddressRequired))
			ctx.Step(`^checkout fails for insufficient stock$`, tc.checkoutFailsWith(ErrInsufficientStock))
			ctx.Step(`^no order exists$`, tc.noOrderExists)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
