// Package products exposes catalog management for the admin console.
package products

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"eshoplabs.dev/eshop-web/internal/catalog"
)

// Service exposes product management capabilities for the admin UI.
type Service interface {
	// List returns a paginated set of products matching the query.
	List(ctx context.Context, token string, query Query) (ListResult, error)

	// Get returns a single product by id.
	Get(ctx context.Context, token, id string) (catalog.Product, error)

	// Create adds a new product to the catalog.
	Create(ctx context.Context, token string, input Input) (catalog.Product, error)

	// Update replaces the editable fields of an existing product.
	Update(ctx context.Context, token, id string, input Input) (catalog.Product, error)

	// Delete removes a product from the catalog.
	Delete(ctx context.Context, token, id string) error
}

var (
	// ErrProductNotFound is returned when a product does not exist.
	ErrProductNotFound = errors.New("product not found")
)

// Query captures filters and pagination arguments for listing products.
type Query struct {
	Search   string
	Category string
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

// ListResult represents a paginated products response.
type ListResult struct {
	Products   []catalog.Product
	Pagination Pagination
	Categories []string
}

// Input carries the editable product fields.
type Input struct {
	Name        string
	Description string
	Category    string
	Image       string
	Price       decimal.Decimal
	Stock       int
	New         bool
}

// ValidationError indicates the input failed validation.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "invalid product input"
}

// Validate checks the input and returns a ValidationError listing every
// failing field.
func (in Input) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		fields["price"] = "price must be positive"
	}
	if in.Stock < 0 {
		fields["stock"] = "stock cannot be negative"
	}
	if len(fields) > 0 {
		return &ValidationError{FieldErrors: fields}
	}
	return nil
}

func normalizeQuery(q Query) Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Category = strings.TrimSpace(strings.ToLower(q.Category))
	return q
}

// filterAndPage applies query filters and slices out the requested page.
func filterAndPage(all []catalog.Product, q Query) ListResult {
	q = normalizeQuery(q)

	seen := map[string]bool{}
	var categories []string
	needle := strings.ToLower(q.Search)
	var filtered []catalog.Product
	for _, p := range all {
		c := strings.ToLower(strings.TrimSpace(p.Category))
		if c != "" && !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
		if q.Category != "" && c != q.Category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		filtered = append(filtered, p)
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
		Products:   filtered[start:end],
		Categories: categories,
		Pagination: Pagination{
			Page:       q.Page,
			PageSize:   q.PageSize,
			TotalItems: total,
			TotalPages: pages,
		},
	}
}
