// Package dashboard aggregates store metrics for the admin landing page.
package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"eshoplabs.dev/eshop-web/internal/api"
)

// Service computes the dashboard overview.
type Service interface {
	// Overview returns headline metrics and the most recent orders.
	Overview(ctx context.Context, token string) (Overview, error)
}

// Overview is the admin landing page payload.
type Overview struct {
	Revenue       decimal.Decimal
	OrderCount    int
	PaidCount     int
	PendingCount  int
	ProductCount  int
	OutOfStock    int
	CustomerCount int
	RecentOrders  []api.Order
}

const recentOrderLimit = 5

// buildOverview folds raw backend listings into the overview. Revenue only
// counts paid orders; recent orders keep the backend's listing order.
func buildOverview(orders []api.Order, productCount, outOfStock, customerCount int) Overview {
	ov := Overview{
		OrderCount:    len(orders),
		ProductCount:  productCount,
		OutOfStock:    outOfStock,
		CustomerCount: customerCount,
	}
	for _, o := range orders {
		if o.IsPaid {
			ov.PaidCount++
			ov.Revenue = ov.Revenue.Add(o.Total)
		} else {
			ov.PendingCount++
		}
	}
	recent := orders
	if len(recent) > recentOrderLimit {
		recent = recent[:recentOrderLimit]
	}
	ov.RecentOrders = append([]api.Order(nil), recent...)
	return ov
}
