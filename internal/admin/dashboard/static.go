package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"eshoplabs.dev/eshop-web/internal/api"
)

// StaticService provides deterministic dashboard data suitable for local
// development and tests.
type StaticService struct{}

// NewStaticService returns the fixture dashboard service.
func NewStaticService() *StaticService { return &StaticService{} }

// Overview returns fixed representative metrics.
func (s *StaticService) Overview(ctx context.Context, token string) (Overview, error) {
	now := time.Now().UTC()
	orders := []api.Order{
		{
			ID:        "64f1c0ffee0ddba11ca70a01",
			User:      &api.User{Name: "Jess", Email: "jess@example.com"},
			Total:     decimal.NewFromFloat(119.98),
			IsPaid:    true,
			CreatedAt: now.Add(-31 * time.Hour),
		},
		{
			ID:        "64f1c0ffee0ddba11ca70a03",
			User:      &api.User{Name: "Ana", Email: "ana@example.com"},
			Total:     decimal.NewFromFloat(45),
			CreatedAt: now.Add(-2 * time.Hour),
		},
	}
	return buildOverview(orders, 4, 1, 3), nil
}
