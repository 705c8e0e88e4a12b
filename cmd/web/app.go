package main

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"eshoplabs.dev/eshop-web/internal/api"
	"eshoplabs.dev/eshop-web/internal/cart"
	"eshoplabs.dev/eshop-web/internal/catalog"
	"eshoplabs.dev/eshop-web/internal/config"
	"eshoplabs.dev/eshop-web/internal/content"
	"eshoplabs.dev/eshop-web/internal/format"
	"eshoplabs.dev/eshop-web/internal/handlers"
	"eshoplabs.dev/eshop-web/internal/identity"
	mw "eshoplabs.dev/eshop-web/internal/middleware"
	"eshoplabs.dev/eshop-web/internal/wishlist"
)

//go:embed templates
var templateFS embed.FS

//go:embed content
var contentFS embed.FS

// application bundles process-wide dependencies for the storefront handlers.
type application struct {
	cfg     config.Config
	log     *zap.Logger
	api     *api.Client
	catalog *catalog.Service
	pages   map[string]*template.Template
	frags   *template.Template
	content *content.Library
}

func newApplication(cfg config.Config, log *zap.Logger) (*application, error) {
	client, err := api.NewClient(cfg.API.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}

	mw.SetSigningKey([]byte(cfg.Web.SigningKey))

	pages, frags, err := parseTemplates(cfg.Store.Currency)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	pagesFS, err := fs.Sub(contentFS, "content")
	if err != nil {
		return nil, err
	}

	return &application{
		cfg:     cfg,
		log:     log,
		api:     client,
		catalog: catalog.NewService(client, log),
		pages:   pages,
		frags:   frags,
		content: content.NewLibrary(pagesFS),
	}, nil
}

func parseTemplates(currency string) (map[string]*template.Template, *template.Template, error) {
	funcs := template.FuncMap{
		"price": func(d decimal.Decimal) string { return format.Price(d, currency) },
		"date":  format.Date,
		"jsonld": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	root, err := template.New("_root").Funcs(funcs).ParseFS(templateFS,
		"templates/layout/*.tmpl", "templates/fragments/*.tmpl")
	if err != nil {
		return nil, nil, err
	}

	entries, err := fs.ReadDir(templateFS, "templates/pages")
	if err != nil {
		return nil, nil, err
	}
	pages := make(map[string]*template.Template, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".tmpl") {
			continue
		}
		t, err := root.Clone()
		if err != nil {
			return nil, nil, err
		}
		t, err = t.ParseFS(templateFS, "templates/pages/"+e.Name())
		if err != nil {
			return nil, nil, err
		}
		pages[strings.TrimSuffix(e.Name(), ".tmpl")] = t
	}
	if len(pages) == 0 {
		return nil, nil, fmt.Errorf("no page templates found")
	}
	return pages, root, nil
}

// render executes the named page through the base layout.
func (app *application) render(w http.ResponseWriter, r *http.Request, page string, vm handlers.PageData) {
	t, ok := app.pages[page]
	if !ok {
		app.log.Error("unknown page template", zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", vm); err != nil {
		app.log.Error("execute template", zap.String("page", page), zap.Error(err))
	}
}

// renderFragment executes a named htmx fragment without the layout.
func (app *application) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := app.frags.ExecuteTemplate(w, name, data); err != nil {
		app.log.Error("execute fragment", zap.String("fragment", name), zap.Error(err))
	}
}

// newPage seeds the shared layout view model from the request session.
func (app *application) newPage(r *http.Request, title string) handlers.PageData {
	vm := handlers.NewPageData(title, app.cfg.Store.Name, r.URL.Path)
	vm.Currency = app.cfg.Store.Currency

	sd := mw.GetSession(r)
	vm.CSRFToken = sd.CSRFToken
	vm.Flash = r.URL.Query().Get("flash")
	vm.User = mw.UserFromContext(r.Context())

	if state, ok := mw.CartStore(sd).Load(); ok {
		vm.CartCount = state.ItemCount()
	}
	if items, ok := mw.WishlistStore(sd).Load(); ok {
		vm.WishlistCount = len(items)
	}
	vm.SEO.Title = title + " | " + app.cfg.Store.Name
	vm.SEO.OG.SiteName = app.cfg.Store.Name
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Type = "website"
	vm.SEO.Twitter.Card = "summary_large_image"
	return vm
}

// cartFor builds the per-request cart orchestrator bound to the session.
func (app *application) cartFor(ctx context.Context, sd *mw.SessionData) *cart.Orchestrator {
	return cart.New(ctx, mw.CartStore(sd), app.api, mw.Tokens(sd), app.log)
}

func (app *application) identityFor(sd *mw.SessionData) *identity.Store {
	return identity.New(mw.Tokens(sd), app.api, app.log)
}

func (app *application) wishlistFor(sd *mw.SessionData) *wishlist.Wishlist {
	return wishlist.New(mw.WishlistStore(sd))
}

// loadUser resolves the authenticated profile into the request context so
// templates can show account state.
func (app *application) loadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd := mw.GetSession(r)
		if sd.Authenticated() {
			if user, ok := app.identityFor(sd).Current(r.Context()); ok && user != nil {
				ctx := mw.WithUser(r.Context(), &mw.User{ID: user.ID, Name: user.Name, Email: user.Email})
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth redirects anonymous visitors to the login page.
func (app *application) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd := mw.GetSession(r)
		if !sd.Authenticated() {
			http.Redirect(w, r, "/login?next="+r.URL.Path, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if ref := r.Header.Get("Referer"); ref != "" && strings.HasPrefix(ref, "/") {
		target = ref
	} else if ref != "" {
		// Same-host absolute referers are fine; anything else falls back.
		if u := r.Host; u != "" && strings.Contains(ref, "//"+u+"/") {
			target = ref[strings.Index(ref, "//"+u+"/")+len("//"+u):]
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
