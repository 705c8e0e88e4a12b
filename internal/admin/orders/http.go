package orders

import (
	"context"
	"errors"

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

// List fetches every order and applies filters locally; the backend has no
// list query parameters.
func (s *HTTPService) List(ctx context.Context, token string, query Query) (ListResult, error) {
	all, err := s.client.AllOrders(ctx, token)
	if err != nil {
		return ListResult{}, err
	}
	return filterAndPage(all, query), nil
}

// Get returns one order.
func (s *HTTPService) Get(ctx context.Context, token, id string) (api.Order, error) {
	o, err := s.client.Order(ctx, token, id)
	if err != nil {
		if isNotFound(err) {
			return api.Order{}, ErrOrderNotFound
		}
		return api.Order{}, err
	}
	return *o, nil
}

// MarkDelivered flags the order as delivered.
func (s *HTTPService) MarkDelivered(ctx context.Context, token, id string) (api.Order, error) {
	o, err := s.client.MarkDelivered(ctx, token, id)
	if err != nil {
		if isNotFound(err) {
			return api.Order{}, ErrOrderNotFound
		}
		return api.Order{}, err
	}
	return *o, nil
}

func isNotFound(err error) bool {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == 404
	}
	return false
}
