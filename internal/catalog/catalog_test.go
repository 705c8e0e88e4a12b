package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eshoplabs.dev/eshop-web/internal/catalog"
)

type fakeLister struct {
	products []catalog.Product
	err      error
	calls    int
}

func (f *fakeLister) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	f.calls++
	return f.products, f.err
}

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "a", Name: "Linen Shirt", Category: "women", Price: decimal.NewFromInt(45), Rating: 4.2},
		{ID: "b", Name: "Denim Jacket", Category: "men", Price: decimal.NewFromInt(89), Rating: 4.8, New: true},
		{ID: "c", Name: "Canvas Sneakers", Category: "kids", Price: decimal.NewFromInt(35), Rating: 3.9},
	}
}

func TestListServesCacheWhileFresh(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{products: sampleProducts()}
	svc := catalog.NewService(lister, zap.NewNop())
	svc.SetCacheTTL(time.Hour)

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, lister.calls)
}

func TestListServesStaleCacheOnBackendFailure(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{products: sampleProducts()}
	svc := catalog.NewService(lister, zap.NewNop())
	svc.SetCacheTTL(time.Nanosecond)

	first, err := svc.List(context.Background())
	require.NoError(t, err)

	lister.err = errors.New("backend down")
	time.Sleep(time.Millisecond)

	second, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestListFailsWhenNothingCached(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{err: errors.New("backend down")}
	svc := catalog.NewService(lister, zap.NewNop())

	_, err := svc.List(context.Background())
	require.Error(t, err)
}

func TestByCategoryIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc := catalog.NewService(&fakeLister{products: sampleProducts()}, zap.NewNop())

	women, err := svc.ByCategory(context.Background(), "Women")
	require.NoError(t, err)
	require.Len(t, women, 1)
	require.Equal(t, "Linen Shirt", women[0].Name)
}

func TestByID(t *testing.T) {
	t.Parallel()

	svc := catalog.NewService(&fakeLister{products: sampleProducts()}, zap.NewNop())

	p, ok := svc.ByID(context.Background(), "b")
	require.True(t, ok)
	require.Equal(t, "Denim Jacket", p.Name)

	_, ok = svc.ByID(context.Background(), "missing")
	require.False(t, ok)
}

func TestNewestPrefersFlaggedProducts(t *testing.T) {
	t.Parallel()

	svc := catalog.NewService(&fakeLister{products: sampleProducts()}, zap.NewNop())

	newest, err := svc.Newest(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, newest, 1)
	require.Equal(t, "b", newest[0].ID)
}
