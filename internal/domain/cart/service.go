// internal/domain/cart/service.go
package cart

import (
	"context"
	"time"

	"github.com/tienda-org/storefront/internal/domain/product"
)

// ProductLookup reads live product records from the catalog
type ProductLookup interface {
	GetProduct(ctx context.Context, id uint) (*product.Product, error)
}

// Service applies cart operations to a session's cart. The caller loads the
// cart from a Store and saves it back afterwards.
type Service struct {
	products ProductLookup
}

// NewService creates a new cart service
func NewService(products ProductLookup) *Service {
	return &Service{products: products}
}

// Add puts one unit of a product in the cart. A product already at its live
// stock, or one with no stock at all, is left untouched without an error.
func (s *Service) Add(ctx context.Context, c *Cart, productID uint) error {
	prod, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	if item := c.Find(productID); item != nil {
		if item.Quantity < prod.Stock {
			item.Quantity++
			c.touch()
		}
		return nil
	}

	if prod.Stock < 1 {
		return nil
	}

	c.Items = append(c.Items, Item{
		ProductID: prod.ID,
		Name:      prod.Name,
		UnitPrice: prod.BasePrice,
		Quantity:  1,
		Stock:     prod.Stock,
		Image:     prod.Image,
		AddedAt:   time.Now().UTC(),
	})
	c.touch()
	return nil
}

// Remove deletes a product's line if present
func (s *Service) Remove(c *Cart, productID uint) {
	if c.remove(productID) {
		c.touch()
	}
}

// SetQuantity stores a new quantity for a product already in the cart,
// clamped to the product's live stock. A result below 1 drops the line.
func (s *Service) SetQuantity(ctx context.Context, c *Cart, productID uint, quantity int) error {
	item := c.Find(productID)
	if item == nil {
		return nil
	}

	prod, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	if quantity > prod.Stock {
		quantity = prod.Stock
	}
	if quantity < 1 {
		s.Remove(c, productID)
		return nil
	}

	item.Quantity = quantity
	c.touch()
	return nil
}

// Summary builds the display view of the cart without changing it
func (s *Service) Summary(c *Cart) *Summary {
	summary := &Summary{
		SessionID: c.SessionID,
		Lines:     make([]SummaryLine, 0, len(c.Items)),
		ItemCount: len(c.Items),
	}

	for _, item := range c.Items {
		summary.Lines = append(summary.Lines, SummaryLine{Item: item, LineSubtotal: item.LineSubtotal()})
		summary.TotalQuantity += item.Quantity
	}
	summary.Total = c.Subtotal()

	return summary
}

// Clear empties the cart
func (s *Service) Clear(c *Cart) {
	c.Items = []Item{}
	c.touch()
}
