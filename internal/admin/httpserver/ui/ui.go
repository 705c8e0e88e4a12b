// Package ui renders the admin console pages.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"eshoplabs.dev/eshop-web/internal/admin/customers"
	"eshoplabs.dev/eshop-web/internal/admin/dashboard"
	custommw "eshoplabs.dev/eshop-web/internal/admin/httpserver/middleware"
	adminorders "eshoplabs.dev/eshop-web/internal/admin/orders"
	adminproducts "eshoplabs.dev/eshop-web/internal/admin/products"
	"eshoplabs.dev/eshop-web/internal/format"
)

//go:embed templates
var templateFS embed.FS

// Dependencies collects external services required by the UI handlers.
type Dependencies struct {
	BasePath  string
	Currency  string
	Logger    *zap.Logger
	Products  adminproducts.Service
	Orders    adminorders.Service
	Customers customers.Service
	Dashboard dashboard.Service
}

// Handlers exposes HTTP handlers for admin console pages.
type Handlers struct {
	basePath  string
	log       *zap.Logger
	products  adminproducts.Service
	orders    adminorders.Service
	customers customers.Service
	dashboard dashboard.Service
	pages     map[string]*template.Template
}

// NewHandlers wires the UI handler set and parses the embedded templates.
func NewHandlers(deps Dependencies) (*Handlers, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Currency == "" {
		deps.Currency = "USD"
	}

	pages, err := parseTemplates(deps.Currency)
	if err != nil {
		return nil, err
	}

	return &Handlers{
		basePath:  deps.BasePath,
		log:       deps.Logger,
		products:  deps.Products,
		orders:    deps.Orders,
		customers: deps.Customers,
		dashboard: deps.Dashboard,
		pages:     pages,
	}, nil
}

// Each page template is cloned onto the shared layout so page-local blocks
// never leak between pages.
func parseTemplates(currency string) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"price": func(d decimal.Decimal) string { return format.Price(d, currency) },
		"date":  format.Date,
		"short": shortID,
	}

	root, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout.tmpl")
	if err != nil {
		return nil, fmt.Errorf("ui: parse layout: %w", err)
	}

	names := []string{
		"login", "dashboard",
		"products", "product_form",
		"orders", "order",
		"customers",
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		clone, err := root.Clone()
		if err != nil {
			return nil, fmt.Errorf("ui: clone layout: %w", err)
		}
		t, err := clone.ParseFS(templateFS, "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("ui: parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// BaseData carries the chrome every admin page shares.
type BaseData struct {
	Title     string
	BasePath  string
	Active    string
	User      *custommw.User
	CSRFToken string
	Error     string
}

func (h *Handlers) newBaseData(r *http.Request, title, active string) BaseData {
	user, _ := custommw.UserFromContext(r.Context())
	return BaseData{
		Title:     title,
		BasePath:  h.basePath,
		Active:    active,
		User:      user,
		CSRFToken: custommw.CSRFTokenFromContext(r.Context()),
	}
}

func (h *Handlers) render(w http.ResponseWriter, name string, status int, data any) {
	t, ok := h.pages[name]
	if !ok {
		h.log.Error("admin page template missing", zap.String("page", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		h.log.Error("admin page render failed", zap.String("page", name), zap.Error(err))
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, what string, err error) {
	h.log.Error("admin request failed", zap.String("what", what), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
