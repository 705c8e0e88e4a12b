// Package httpserver assembles the admin console HTTP stack.
package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"eshoplabs.dev/eshop-web/internal/admin/customers"
	"eshoplabs.dev/eshop-web/internal/admin/dashboard"
	custommw "eshoplabs.dev/eshop-web/internal/admin/httpserver/middleware"
	"eshoplabs.dev/eshop-web/internal/admin/httpserver/ui"
	adminorders "eshoplabs.dev/eshop-web/internal/admin/orders"
	adminproducts "eshoplabs.dev/eshop-web/internal/admin/products"
	appsession "eshoplabs.dev/eshop-web/internal/admin/session"
)

// Config holds runtime options for the admin HTTP server.
type Config struct {
	Address   string
	BasePath  string
	LoginPath string
	Currency  string

	Sessions      *appsession.Manager
	Authenticator Authenticator
	Logger        *zap.Logger

	Products  adminproducts.Service
	Orders    adminorders.Service
	Customers customers.Service
	Dashboard dashboard.Service
}

// New constructs the HTTP server with middleware stack and embedded templates.
func New(cfg Config) (*http.Server, error) {
	handler, err := Handler(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}

// Handler builds the admin router without binding it to a listener. Tests use
// it directly under httptest.
func Handler(cfg Config) (http.Handler, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	basePath := normalizeBasePath(cfg.BasePath)
	loginPath := resolveLoginPath(basePath, cfg.LoginPath)

	handlers, err := ui.NewHandlers(ui.Dependencies{
		BasePath:  basePath,
		Currency:  cfg.Currency,
		Logger:    log,
		Products:  cfg.Products,
		Orders:    cfg.Orders,
		Customers: cfg.Customers,
		Dashboard: cfg.Dashboard,
	})
	if err != nil {
		return nil, err
	}

	auth := newAuthHandlers(cfg.Authenticator, handlers, basePath, loginPath, log)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(60 * time.Second))

	mountAdminRoutes(router, basePath, routeOptions{
		Sessions:  cfg.Sessions,
		LoginPath: loginPath,
		Logger:    log,
		UI:        handlers,
		Auth:      auth,
	})

	return router, nil
}

type routeOptions struct {
	Sessions  *appsession.Manager
	LoginPath string
	Logger    *zap.Logger
	UI        *ui.Handlers
	Auth      *authHandlers
}

func mountAdminRoutes(router chi.Router, base string, opts routeOptions) {
	router.Route(base, func(r chi.Router) {
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())
		r.Use(custommw.Session(opts.Sessions, opts.Logger))
		r.Use(custommw.CSRF(custommw.CSRFConfig{}))

		r.Get("/login", opts.Auth.LoginForm)
		r.Post("/login", opts.Auth.LoginSubmit)
		r.Post("/logout", opts.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(custommw.RequireUser(opts.LoginPath))

			r.Get("/", opts.UI.Dashboard)

			r.Get("/products", opts.UI.ProductList)
			r.Get("/products/new", opts.UI.ProductNew)
			r.Post("/products", opts.UI.ProductCreate)
			r.Get("/products/{id}", opts.UI.ProductEdit)
			r.Post("/products/{id}", opts.UI.ProductUpdate)
			r.Post("/products/{id}/delete", opts.UI.ProductDelete)

			r.Get("/orders", opts.UI.OrderList)
			r.Get("/orders/{id}", opts.UI.OrderDetail)
			r.Post("/orders/{id}/deliver", opts.UI.OrderMarkDelivered)

			r.Get("/customers", opts.UI.CustomerList)
			r.Post("/customers/{id}/delete", opts.UI.CustomerDelete)
		})
	})
}

func normalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/admin"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}

func resolveLoginPath(base string, override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	if base == "/" {
		return "/login"
	}
	return base + "/login"
}
