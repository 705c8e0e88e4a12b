package orders

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"eshoplabs.dev/eshop-web/internal/api"
)

// StaticService provides deterministic order data suitable for local
// development and tests.
type StaticService struct {
	mu     sync.Mutex
	orders []api.Order
}

// NewStaticService returns a StaticService populated with representative orders.
func NewStaticService() *StaticService {
	now := time.Now().UTC()
	paidAt := now.Add(-30 * time.Hour)
	deliveredAt := now.Add(-4 * time.Hour)

	return &StaticService{
		orders: []api.Order{
			{
				ID:        "64f1c0ffee0ddba11ca70a01",
				User:      &api.User{ID: "64f1c0ffee0ddba11ca7ee01", Name: "Jess", Email: "jess@example.com"},
				Total:     decimal.NewFromFloat(119.98),
				Status:    "processing",
				IsPaid:    true,
				PaidAt:    &paidAt,
				CreatedAt: now.Add(-31 * time.Hour),
				Items: []api.OrderItem{
					{ProductID: "64f1c0ffee0ddba11ca7e901", Name: "Denim Jacket", Price: decimal.NewFromFloat(59.99), Quantity: 2},
				},
			},
			{
				ID:          "64f1c0ffee0ddba11ca70a02",
				User:        &api.User{ID: "64f1c0ffee0ddba11ca7ee02", Name: "Sam", Email: "sam@example.com"},
				Total:       decimal.NewFromFloat(34),
				Status:      "delivered",
				IsPaid:      true,
				PaidAt:      &paidAt,
				IsDelivered: true,
				DeliveredAt: &deliveredAt,
				CreatedAt:   now.Add(-3 * 24 * time.Hour),
				Items: []api.OrderItem{
					{ProductID: "64f1c0ffee0ddba11ca7e903", Name: "Kids Sneakers", Price: decimal.NewFromFloat(34), Quantity: 1},
				},
			},
			{
				ID:        "64f1c0ffee0ddba11ca70a03",
				User:      &api.User{ID: "64f1c0ffee0ddba11ca7ee03", Name: "Ana", Email: "ana@example.com"},
				Total:     decimal.NewFromFloat(45),
				Status:    "pending",
				CreatedAt: now.Add(-2 * time.Hour),
				Items: []api.OrderItem{
					{ProductID: "64f1c0ffee0ddba11ca7e904", Name: "Oxford Shirt", Price: decimal.NewFromFloat(45), Quantity: 1},
				},
			},
		},
	}
}

// List returns a filtered page of the fixture orders.
func (s *StaticService) List(ctx context.Context, token string, query Query) (ListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := append([]api.Order(nil), s.orders...)
	return filterAndPage(all, query), nil
}

// Get returns one fixture order.
func (s *StaticService) Get(ctx context.Context, token, id string) (api.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return api.Order{}, ErrOrderNotFound
}

// MarkDelivered flags a fixture order as delivered.
func (s *StaticService) MarkDelivered(ctx context.Context, token, id string) (api.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			now := time.Now().UTC()
			s.orders[i].IsDelivered = true
			s.orders[i].DeliveredAt = &now
			s.orders[i].Status = "delivered"
			return s.orders[i], nil
		}
	}
	return api.Order{}, ErrOrderNotFound
}
