// Package testutil spins up the admin HTTP stack for integration tests.
package testutil

import (
	"net/http/httptest"
	"testing"

	"eshoplabs.dev/eshop-web/internal/admin/customers"
	"eshoplabs.dev/eshop-web/internal/admin/dashboard"
	"eshoplabs.dev/eshop-web/internal/admin/httpserver"
	adminorders "eshoplabs.dev/eshop-web/internal/admin/orders"
	adminproducts "eshoplabs.dev/eshop-web/internal/admin/products"
	"eshoplabs.dev/eshop-web/internal/admin/session"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithBasePath sets a custom base path for the admin routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithAuthenticator overrides the login authenticator.
func WithAuthenticator(auth httpserver.Authenticator) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Authenticator = auth
	}
}

// WithProductsService wires a custom products service implementation.
func WithProductsService(service adminproducts.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Products = service
	}
}

// WithOrdersService wires a custom orders service implementation.
func WithOrdersService(service adminorders.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Orders = service
	}
}

// WithCustomersService wires a custom customers service implementation.
func WithCustomersService(service customers.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Customers = service
	}
}

// WithDashboardService wires a custom dashboard service implementation.
func WithDashboardService(service dashboard.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Dashboard = service
	}
}

// NewServer constructs an httptest server running the admin HTTP stack with
// static services and a throwaway session key.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	sessions, err := session.NewManager(session.Config{
		HashKey:  []byte("0123456789abcdef0123456789abcdef"),
		BlockKey: []byte("fedcba9876543210fedcba9876543210"),
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	cfg := httpserver.Config{
		Address:       ":0",
		BasePath:      "/admin",
		Currency:      "USD",
		Sessions:      sessions,
		Authenticator: httpserver.NewStaticAuthenticator(),
		Products:      adminproducts.NewStaticService(),
		Orders:        adminorders.NewStaticService(),
		Customers:     customers.NewStaticService(),
		Dashboard:     dashboard.NewStaticService(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	handler, err := httpserver.Handler(cfg)
	if err != nil {
		t.Fatalf("admin handler: %v", err)
	}
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}
