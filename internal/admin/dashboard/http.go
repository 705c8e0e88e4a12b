package dashboard

import (
	"context"

	"eshoplabs.dev/eshop-web/internal/api"
)

// HTTPService implements Service against the backend REST API.
type HTTPService struct {
	client *api.Client
}

// NewHTTPService wraps the shared API client.
func NewHTTPService(client *api.Client) *HTTPService {
	return &HTTPService{client: client}
}

// Overview aggregates orders, products, and customers into headline metrics.
func (s *HTTPService) Overview(ctx context.Context, token string) (Overview, error) {
	orders, err := s.client.AllOrders(ctx, token)
	if err != nil {
		return Overview{}, err
	}
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return Overview{}, err
	}
	users, err := s.client.ListUsers(ctx, token)
	if err != nil {
		return Overview{}, err
	}

	outOfStock := 0
	for _, p := range products {
		if p.Stock == 0 {
			outOfStock++
		}
	}
	return buildOverview(orders, len(products), outOfStock, len(users)), nil
}
