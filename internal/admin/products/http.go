package products

import (
	"context"
	"errors"
	"strings"

	"eshoplabs.dev/eshop-web/internal/api"
	"eshoplabs.dev/eshop-web/internal/catalog"
)

// HTTPService implements Service against the backend REST API.
type HTTPService struct {
	client *api.Client
}

// NewHTTPService wraps the shared API client.
func NewHTTPService(client *api.Client) *HTTPService {
	return &HTTPService{client: client}
}

// List fetches the full catalog and applies filters locally; the backend has
// no list query parameters.
func (s *HTTPService) List(ctx context.Context, token string, query Query) (ListResult, error) {
	all, err := s.client.ListProducts(ctx)
	if err != nil {
		return ListResult{}, err
	}
	return filterAndPage(all, query), nil
}

// Get returns a single product by id.
func (s *HTTPService) Get(ctx context.Context, token, id string) (catalog.Product, error) {
	p, err := s.client.Product(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return catalog.Product{}, ErrProductNotFound
		}
		return catalog.Product{}, err
	}
	return *p, nil
}

// Create adds a product.
func (s *HTTPService) Create(ctx context.Context, token string, input Input) (catalog.Product, error) {
	if err := input.Validate(); err != nil {
		return catalog.Product{}, err
	}
	p, err := s.client.CreateProduct(ctx, token, productFromInput(input))
	if err != nil {
		return catalog.Product{}, err
	}
	return *p, nil
}

// Update replaces a product's editable fields.
func (s *HTTPService) Update(ctx context.Context, token, id string, input Input) (catalog.Product, error) {
	if err := input.Validate(); err != nil {
		return catalog.Product{}, err
	}
	p, err := s.client.UpdateProduct(ctx, token, id, productFromInput(input))
	if err != nil {
		if isNotFound(err) {
			return catalog.Product{}, ErrProductNotFound
		}
		return catalog.Product{}, err
	}
	return *p, nil
}

// Delete removes a product.
func (s *HTTPService) Delete(ctx context.Context, token, id string) error {
	if err := s.client.DeleteProduct(ctx, token, id); err != nil {
		if isNotFound(err) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func productFromInput(in Input) catalog.Product {
	return catalog.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.ToLower(strings.TrimSpace(in.Category)),
		Image:       strings.TrimSpace(in.Image),
		Price:       in.Price,
		Stock:       in.Stock,
		New:         in.New,
	}
}

func isNotFound(err error) bool {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == 404
	}
	return false
}
