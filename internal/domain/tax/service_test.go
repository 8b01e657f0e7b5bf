package tax

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
	cfg := &config.Config{Store: config.StoreConfig{DefaultTaxPercent: decimal.RequireFromString("15.00")}}
	return NewService(testdb.New(t, &Setting{}), cfg)
}

func TestCurrentFallsBackToDefault(t *testing.T) {
	svc := newTestService(t)

	pct, err := svc.CurrentPercentage(context.Background())
	require.NoError(t, err)
	assert.True(t, pct.Equal(decimal.NewFromInt(15)))
}

func TestSetAppendsAndNewestWins(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, decimal.NewFromInt(12), 1)
	require.NoError(t, err)
	_, err = svc.Set(ctx, decimal.RequireFromString("15.5"), 1)
	require.NoError(t, err)

	pct, err := svc.CurrentPercentage(ctx)
	require.NoError(t, err)
	assert.True(t, pct.Equal(decimal.RequireFromString("15.50")))

	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[1].Percentage.Equal(decimal.NewFromInt(12)), "earlier entry is kept unchanged")
}

func TestSetRejectsOutOfRange(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, decimal.NewFromInt(-1), 0)
	assert.ErrorIs(t, err, ErrInvalidPercentage)
	_, err = svc.Set(ctx, decimal.NewFromInt(101), 0)
	assert.ErrorIs(t, err, ErrInvalidPercentage)

	history, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}
