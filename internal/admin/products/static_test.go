package products

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStaticListFiltersByCategory(t *testing.T) {
	svc := NewStaticService()

	res, err := svc.List(context.Background(), "tok", Query{Category: "women"})
	require.NoError(t, err)
	require.Len(t, res.Products, 2)
	require.Equal(t, 2, res.Pagination.TotalItems)
	require.Contains(t, res.Categories, "kids")
}

func TestStaticListSearchAndPaging(t *testing.T) {
	svc := NewStaticService()

	res, err := svc.List(context.Background(), "tok", Query{Search: "shirt"})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	require.Equal(t, "Oxford Shirt", res.Products[0].Name)

	res, err = svc.List(context.Background(), "tok", Query{Page: 2, PageSize: 3})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	require.Equal(t, 2, res.Pagination.Page)
	require.Equal(t, 2, res.Pagination.TotalPages)
}

func TestStaticCreateValidates(t *testing.T) {
	svc := NewStaticService()

	_, err := svc.Create(context.Background(), "tok", Input{Name: "", Price: decimal.Zero})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.FieldErrors, "name")
	require.Contains(t, verr.FieldErrors, "price")
}

func TestStaticCreateUpdateDeleteRoundTrip(t *testing.T) {
	svc := NewStaticService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "tok", Input{
		Name:     "Canvas Tote",
		Category: "Women",
		Price:    decimal.NewFromFloat(24.5),
		Stock:    8,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "women", created.Category)

	updated, err := svc.Update(ctx, "tok", created.ID, Input{
		Name:  "Canvas Tote XL",
		Price: decimal.NewFromFloat(29),
		Stock: 6,
	})
	require.NoError(t, err)
	require.Equal(t, "Canvas Tote XL", updated.Name)

	require.NoError(t, svc.Delete(ctx, "tok", created.ID))
	_, err = svc.Get(ctx, "tok", created.ID)
	require.True(t, errors.Is(err, ErrProductNotFound))
}

func TestStaticUnknownIDs(t *testing.T) {
	svc := NewStaticService()
	ctx := context.Background()

	_, err := svc.Get(ctx, "tok", "ffffffffffffffffffffffff")
	require.ErrorIs(t, err, ErrProductNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "tok", "ffffffffffffffffffffffff"), ErrProductNotFound)
}
