package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticListSummary(t *testing.T) {
	svc := NewStaticService()

	res, err := svc.List(context.Background(), "tok", Query{})
	require.NoError(t, err)
	require.Len(t, res.Orders, 3)
	require.Equal(t, 3, res.Summary.TotalOrders)
	require.Equal(t, 1, res.Summary.PaidCount)
	require.Equal(t, 1, res.Summary.UnpaidCount)
	require.Equal(t, 1, res.Summary.DeliveredCount)
	// Revenue only counts paid orders: 119.98 + 34.
	require.Equal(t, "153.98", res.Summary.Revenue.StringFixed(2))
}

func TestStaticListStatusFilters(t *testing.T) {
	svc := NewStaticService()
	ctx := context.Background()

	res, err := svc.List(ctx, "tok", Query{Status: FilterUnpaid})
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	require.False(t, res.Orders[0].IsPaid)

	res, err = svc.List(ctx, "tok", Query{Status: FilterDelivered})
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	require.True(t, res.Orders[0].IsDelivered)

	res, err = svc.List(ctx, "tok", Query{Status: FilterPaid})
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	require.True(t, res.Orders[0].IsPaid)
	require.False(t, res.Orders[0].IsDelivered)
}

func TestStaticMarkDelivered(t *testing.T) {
	svc := NewStaticService()
	ctx := context.Background()

	order, err := svc.MarkDelivered(ctx, "tok", "64f1c0ffee0ddba11ca70a01")
	require.NoError(t, err)
	require.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)

	_, err = svc.MarkDelivered(ctx, "tok", "ffffffffffffffffffffffff")
	require.ErrorIs(t, err, ErrOrderNotFound)
}
