// Package customers exposes account management for the admin console.
package customers

import (
	"context"
	"errors"
	"strings"

	"eshoplabs.dev/eshop-web/internal/api"
)

// Service exposes customer listing and removal for the admin UI.
type Service interface {
	// List returns a paginated set of customers matching the query.
	List(ctx context.Context, token string, query Query) (ListResult, error)

	// Delete removes a customer account.
	Delete(ctx context.Context, token, id string) error
}

var (
	// ErrCustomerNotFound is returned when an account does not exist.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrCannotDeleteAdmin guards against removing staff accounts.
	ErrCannotDeleteAdmin = errors.New("cannot delete an admin account")
)

// Query captures filters and pagination arguments for listing customers.
type Query struct {
	Search   string
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

// ListResult represents a paginated customers response.
type ListResult struct {
	Customers  []api.User
	Pagination Pagination
}

func normalizeQuery(q Query) Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

func filterAndPage(all []api.User, q Query) ListResult {
	q = normalizeQuery(q)

	needle := strings.ToLower(q.Search)
	var filtered []api.User
	for _, u := range all {
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		filtered = append(filtered, u)
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
		Customers: filtered[start:end],
		Pagination: Pagination{
			Page:       q.Page,
			PageSize:   q.PageSize,
			TotalItems: total,
			TotalPages: pages,
		},
	}
}
