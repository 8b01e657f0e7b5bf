package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/pkg/testdb"
)

func newTestService(t *testing.T) *Service {
	return NewService(testdb.New(t, &Product{}), &config.Config{})
}

func TestCreateAndGetProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &ProductRequest{
		Name:      "  Café molido ",
		BasePrice: decimal.RequireFromString("4.50"),
		Stock:     12,
	})
	require.NoError(t, err)
	assert.Equal(t, "Café molido", created.Name)

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.BasePrice.Equal(decimal.RequireFromString("4.50")))
	assert.Equal(t, 12, got.Stock)
}

func TestGetProductNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  ProductRequest
	}{
		{"blank name", ProductRequest{Name: "  ", BasePrice: decimal.NewFromInt(1)}},
		{"negative price", ProductRequest{Name: "Té", BasePrice: decimal.NewFromInt(-1)}},
		{"negative stock", ProductRequest{Name: "Té", BasePrice: decimal.NewFromInt(1), Stock: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidProduct)
		})
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &ProductRequest{Name: "Pan", BasePrice: decimal.NewFromInt(2), Stock: 3})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, created.ID, &ProductRequest{Name: "Pan integral", BasePrice: decimal.RequireFromString("2.75"), Stock: 0})
	require.NoError(t, err)
	assert.Equal(t, "Pan integral", updated.Name)
	assert.Equal(t, 0, updated.Stock)
	assert.False(t, updated.InStock())

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	_, err = svc.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, created.ID), ErrProductNotFound)
}

func TestListProductsPaginates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Arroz", "Frijol", "Azúcar"} {
		_, err := svc.CreateProduct(ctx, &ProductRequest{Name: name, BasePrice: decimal.NewFromInt(1), Stock: 1})
		require.NoError(t, err)
	}

	page, err := svc.ListProducts(ctx, &ListRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, "Arroz", page.Products[0].Name)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.True(t, page.Pagination.HasNext)

	filtered, err := svc.ListProducts(ctx, &ListRequest{Search: "frij"})
	require.NoError(t, err)
	require.Len(t, filtered.Products, 1)
	assert.Equal(t, "Frijol", filtered.Products[0].Name)
}
