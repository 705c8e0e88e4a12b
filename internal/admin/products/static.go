package products

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"eshoplabs.dev/eshop-web/internal/catalog"
)

// StaticService provides deterministic product data suitable for local
// development and tests.
type StaticService struct {
	mu       sync.Mutex
	products []catalog.Product
	nextID   int
}

// NewStaticService returns a StaticService populated with representative products.
func NewStaticService() *StaticService {
	return &StaticService{
		nextID: 100,
		products: []catalog.Product{
			{
				ID:          "64f1c0ffee0ddba11ca7e901",
				Name:        "Denim Jacket",
				Description: "Classic fit denim jacket",
				Price:       decimal.NewFromFloat(59.99),
				Category:    "women",
				Stock:       5,
				Rating:      4.6,
				New:         true,
			},
			{
				ID:          "64f1c0ffee0ddba11ca7e902",
				Name:        "Wool Scarf",
				Description: "Soft merino scarf",
				Price:       decimal.NewFromFloat(19.5),
				Category:    "women",
				Stock:       12,
				Rating:      4.1,
			},
			{
				ID:          "64f1c0ffee0ddba11ca7e903",
				Name:        "Kids Sneakers",
				Description: "Lightweight everyday sneakers",
				Price:       decimal.NewFromFloat(34),
				Category:    "kids",
				Stock:       0,
				Rating:      3.9,
			},
			{
				ID:          "64f1c0ffee0ddba11ca7e904",
				Name:        "Oxford Shirt",
				Description: "Button-down oxford shirt",
				Price:       decimal.NewFromFloat(45),
				Category:    "men",
				Stock:       20,
				Rating:      4.4,
			},
		},
	}
}

// List returns a filtered page of the fixture products.
func (s *StaticService) List(ctx context.Context, token string, query Query) (ListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := append([]catalog.Product(nil), s.products...)
	return filterAndPage(all, query), nil
}

// Get returns one fixture product.
func (s *StaticService) Get(ctx context.Context, token, id string) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, ErrProductNotFound
}

// Create appends a fixture product with a generated id.
func (s *StaticService) Create(ctx context.Context, token string, input Input) (catalog.Product, error) {
	if err := input.Validate(); err != nil {
		return catalog.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p := catalog.Product{
		ID:          fmt.Sprintf("64f1c0ffee0ddba11ca7%04x", s.nextID),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.ToLower(strings.TrimSpace(input.Category)),
		Image:       strings.TrimSpace(input.Image),
		Price:       input.Price,
		Stock:       input.Stock,
		New:         input.New,
	}
	s.products = append(s.products, p)
	return p, nil
}

// Update replaces a fixture product's editable fields.
func (s *StaticService) Update(ctx context.Context, token, id string, input Input) (catalog.Product, error) {
	if err := input.Validate(); err != nil {
		return catalog.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := &s.products[i]
			p.Name = strings.TrimSpace(input.Name)
			p.Description = strings.TrimSpace(input.Description)
			p.Category = strings.ToLower(strings.TrimSpace(input.Category))
			p.Image = strings.TrimSpace(input.Image)
			p.Price = input.Price
			p.Stock = input.Stock
			p.New = input.New
			return *p, nil
		}
	}
	return catalog.Product{}, ErrProductNotFound
}

// Delete removes a fixture product.
func (s *StaticService) Delete(ctx context.Context, token, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}
