// Package orders exposes order management for the admin console.
package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"eshoplabs.dev/eshop-web/internal/api"
)

// Service exposes order listing and fulfillment capabilities for the admin UI.
type Service interface {
	// List returns a paginated set of orders matching the query.
	List(ctx context.Context, token string, query Query) (ListResult, error)

	// Get returns a single order by id.
	Get(ctx context.Context, token, id string) (api.Order, error)

	// MarkDelivered flags an order as delivered.
	MarkDelivered(ctx context.Context, token, id string) (api.Order, error)
}

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// StatusFilter selects a fulfillment slice of the order book.
type StatusFilter string

const (
	// FilterAll keeps every order.
	FilterAll StatusFilter = ""
	// FilterPaid keeps paid, not yet delivered orders.
	FilterPaid StatusFilter = "paid"
	// FilterUnpaid keeps orders awaiting payment.
	FilterUnpaid StatusFilter = "unpaid"
	// FilterDelivered keeps delivered orders.
	FilterDelivered StatusFilter = "delivered"
)

// Query captures filters and pagination arguments for listing orders.
type Query struct {
	Status   StatusFilter
	Page     int
	PageSize int
}

// Pagination captures pagination metadata.
type Pagination struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Summary aggregates quick metrics for the full order book.
type Summary struct {
	TotalOrders    int
	Revenue        decimal.Decimal
	PaidCount      int
	UnpaidCount    int
	DeliveredCount int
}

// ListResult represents a paginated orders response.
type ListResult struct {
	Orders     []api.Order
	Pagination Pagination
	Summary    Summary
}

func normalizeQuery(q Query) Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	q.Status = StatusFilter(strings.ToLower(strings.TrimSpace(string(q.Status))))
	return q
}

func matches(o api.Order, f StatusFilter) bool {
	switch f {
	case FilterPaid:
		return o.IsPaid && !o.IsDelivered
	case FilterUnpaid:
		return !o.IsPaid
	case FilterDelivered:
		return o.IsDelivered
	default:
		return true
	}
}

// summarize folds the whole order book into dashboard metrics. Revenue only
// counts paid orders.
func summarize(all []api.Order) Summary {
	s := Summary{TotalOrders: len(all)}
	for _, o := range all {
		switch {
		case o.IsDelivered:
			s.DeliveredCount++
		case o.IsPaid:
			s.PaidCount++
		default:
			s.UnpaidCount++
		}
		if o.IsPaid {
			s.Revenue = s.Revenue.Add(o.Total)
		}
	}
	return s
}

func filterAndPage(all []api.Order, q Query) ListResult {
	q = normalizeQuery(q)

	var filtered []api.Order
	for _, o := range all {
		if matches(o, q.Status) {
			filtered = append(filtered, o)
		}
	}

	total := len(filtered)
	pages := (total + q.PageSize - 1) / q.PageSize
	if pages < 1 {
		pages = 1
	}
	if q.Page > pages {
		q.Page = pages
	}
	start := (q.Page - 1) * q.PageSize
	end := start + q.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return ListResult{
		Orders:  filtered[start:end],
		Summary: summarize(all),
		Pagination: Pagination{
			Page:       q.Page,
			PageSize:   q.PageSize,
			TotalItems: total,
			TotalPages: pages,
		},
	}
}
