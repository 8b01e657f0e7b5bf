package coupon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-org/storefront/internal/config"
	"github.com/tienda-org/storefront/internal/pkg/testdb"
)

func newTestService(t *testing.T) *Service {
	return NewService(testdb.New(t, &Coupon{}), &config.Config{})
}

func TestCreateNormalizesCode(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), &CreateRequest{Code: " save10 ", DiscountPercentage: 10})
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", created.Code)
	assert.True(t, created.IsActive)
}

func TestCreateRejectsDuplicatesAfterNormalization(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateRequest{Code: "SAVE10", DiscountPercentage: 10})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateRequest{Code: "save10", DiscountPercentage: 20})
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateRequest{Code: "   ", DiscountPercentage: 10})
	assert.ErrorIs(t, err, ErrInvalidCoupon)
	_, err = svc.Create(ctx, &CreateRequest{Code: "MUCHO", DiscountPercentage: 101})
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestFindActiveIsCaseAndWhitespaceInsensitive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, &CreateRequest{Code: "SAVE10", DiscountPercentage: 10})
	require.NoError(t, err)

	for _, code := range []string{"SAVE10", " save10 ", "Save10\t"} {
		found, err := svc.FindActive(ctx, code)
		require.NoError(t, err)
		require.NotNil(t, found, code)
		assert.Equal(t, 10, found.DiscountPercentage)
	}
}

func TestFindActiveIgnoresUnknownAndInactive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	inactive := false
	_, err := svc.Create(ctx, &CreateRequest{Code: "VIEJO", DiscountPercentage: 50, IsActive: &inactive})
	require.NoError(t, err)

	for _, code := range []string{"", "BADCODE", "viejo"} {
		found, err := svc.FindActive(ctx, code)
		require.NoError(t, err)
		assert.Nil(t, found, code)
	}
}

func TestSetActive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, &CreateRequest{Code: "PROMO", DiscountPercentage: 5})
	require.NoError(t, err)

	updated, err := svc.SetActive(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	found, err := svc.FindActive(ctx, "PROMO")
	require.NoError(t, err)
	assert.Nil(t, found)

	_, err = svc.SetActive(ctx, 999, true)
	assert.ErrorIs(t, err, ErrCouponNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
