package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-org/storefront/internal/domain/cart"
	"github.com/tienda-org/storefront/internal/domain/coupon"
	"github.com/tienda-org/storefront/internal/domain/inventory"
	"github.com/tienda-org/storefront/internal/domain/order"
)

func TestPlaceOrderCommitsEverything(t *testing.T) {
	s := newStorefront(t)
	ctx := context.Background()
	_, err := s.coupons.Create(ctx, &coupon.CreateRequest{Code: "SAVE10", DiscountPercentage: 10})
	require.NoError(t, err)

	a := s.addProduct(t, "ProductA", "10.00", 5)
	b := s.addProduct(t, "ProductB", "2.50", 4)
	c := cart.New("session-1")
	s.fill(t, c, a.ID, 3)
	s.fill(t, c, b.ID, 2)

	conf, err := s.checkout.PlaceOrder(ctx, 11, c, &PlaceOrderRequest{ShippingAddress: " Calle 5 #12 ", CouponCode: "save10"})
	require.NoError(t, err)

	placed := conf.Order
	assert.Equal(t, "Calle 5 #12", placed.ShippingAddress)
	assert.Equal(t, order.OrderStatusPending, placed.Status)
	assert.Equal(t, "SAVE10", placed.CouponCode)
	assert.True(t, placed.Subtotal.Equal(decimal.RequireFromString("35.00")))
	assert.True(t, placed.Discount.Equal(decimal.RequireFromString("3.50")))
	assert.True(t, placed.TaxAmount.Equal(decimal.RequireFromString("4.73")))
	assert.True(t, placed.Total.Equal(decimal.RequireFromString("36.23")))
	assert.Equal(t, "4.73", conf.TaxAmount)
	assert.NotEmpty(t, placed.OrderNumber)

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 2, s.stock(t, a.ID))
	assert.Equal(t, 2, s.stock(t, b.ID))

	assert.Equal(t, int64(1), s.count(t, &order.Order{}))
	assert.Equal(t, int64(2), s.count(t, &order.OrderItem{}))
	assert.Equal(t, int64(2), s.count(t, &inventory.Movement{}))
	assert.Equal(t, "facturas/factura_placeholder.pdf", conf.Invoice.Document)
	assert.Equal(t, placed.ID, conf.Invoice.OrderID)
}

func TestPlaceOrderFreezesTaxPercentage(t *testing.T) {
	s := newStorefront(t)
	ctx := context.Background()
	_, err := s.taxes.Set(ctx, decimal.NewFromInt(12), 1)
	require.NoError(t, err)

	p := s.addProduct(t, "Vino", "20.00", 3)
	c := cart.New("session-1")
	s.fill(t, c, p.ID, 1)

	conf, err := s.checkout.PlaceOrder(ctx, 11, c, &PlaceOrderRequest{ShippingAddress: "Calle 1"})
	require.NoError(t, err)

	_, err = s.taxes.Set(ctx, decimal.NewFromInt(20), 1)
	require.NoError(t, err)

	var stored order.Order
	require.NoError(t, s.db.First(&stored, conf.Order.ID).Error)
	assert.True(t, stored.TaxPercent.Equal(decimal.NewFromInt(12)))
	assert.True(t, stored.TaxAmount.Equal(decimal.RequireFromString("2.40")))
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	s := newStorefront(t)

	_, err := s.checkout.PlaceOrder(context.Background(), 11, cart.New("s"), &PlaceOrderRequest{ShippingAddress: "Calle 1"})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, s.count(t, &order.Order{}))
}

func TestPlaceOrderRequiresAddress(t *testing.T) {
	s := newStorefront(t)
	p := s.addProduct(t, "Pan", "1.00", 5)
	c := cart.New("s")
	s.fill(t, c, p.ID, 2)

	_, err := s.checkout.PlaceOrder(context.Background(), 11, c, &PlaceOrderRequest{ShippingAddress: "   "})
	assert.ErrorIs(t, err, ErrAddressRequired)

	assert.Equal(t, 2, c.Find(p.ID).Quantity, "cart is preserved")
	assert.Equal(t, 5, s.stock(t, p.ID))
	assert.Zero(t, s.count(t, &order.Order{}))
}

func TestPlaceOrderInsufficientStockRollsBackEverything(t *testing.T) {
	s := newStorefront(t)
	a := s.addProduct(t, "ProductA", "10.00", 5)
	b := s.addProduct(t, "ProductB", "3.00", 5)
	c := cart.New("s")
	s.fill(t, c, a.ID, 2)
	s.fill(t, c, b.ID, 4)

	// someone else bought ProductB after it went into this cart
	s.setStock(t, b.ID, 3)

	_, err := s.checkout.PlaceOrder(context.Background(), 11, c, &PlaceOrderRequest{ShippingAddress: "Calle 1"})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Equal(t, 5, s.stock(t, a.ID), "earlier decrement is rolled back")
	assert.Equal(t, 3, s.stock(t, b.ID))
	assert.Zero(t, s.count(t, &order.Order{}))
	assert.Zero(t, s.count(t, &order.OrderItem{}))
	assert.Zero(t, s.count(t, &order.Invoice{}))
	assert.Zero(t, s.count(t, &inventory.Movement{}))
	assert.Len(t, c.Items, 2, "cart is preserved")
}

func TestPlaceOrderConcurrentCheckoutsNeverOversell(t *testing.T) {
	s := newStorefront(t)
	p := s.addProduct(t, "Cafe", "4.00", 5)

	const buyers = 8
	carts := make([]*cart.Cart, buyers)
	for i := range carts {
		carts[i] = cart.New(fmt.Sprintf("session-%d", i))
		s.fill(t, carts[i], p.ID, 2)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		placed   int
		rejected int
		other    []error
	)
	for i := range carts {
		wg.Add(1)
		go func(c *cart.Cart, customerID uint) {
			defer wg.Done()
			_, err := s.checkout.PlaceOrder(context.Background(), customerID, c, &PlaceOrderRequest{ShippingAddress: "Calle 1"})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				placed++
			case errors.Is(err, ErrInsufficientStock):
				rejected++
			default:
				other = append(other, err)
			}
		}(carts[i], uint(100+i))
	}
	wg.Wait()

	require.Empty(t, other)
	assert.Equal(t, 2, placed)
	assert.Equal(t, buyers-2, rejected)
	assert.Equal(t, 1, s.stock(t, p.ID))
	assert.Equal(t, int64(2), s.count(t, &order.Order{}))
	assert.Equal(t, int64(2), s.count(t, &inventory.Movement{}))
}

func TestPreview(t *testing.T) {
	s := newStorefront(t)
	ctx := context.Background()
	p := s.addProduct(t, "ProductA", "10.00", 5)
	c := cart.New("s")
	s.fill(t, c, p.ID, 3)

	preview, err := s.checkout.Preview(ctx, c, "BADCODE")
	require.NoError(t, err)
	assert.True(t, preview.Quote.Total.Equal(decimal.RequireFromString("34.50")))
	assert.True(t, preview.Cart.Total.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, 5, s.stock(t, p.ID))

	_, err = s.checkout.Preview(ctx, cart.New("empty"), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}
