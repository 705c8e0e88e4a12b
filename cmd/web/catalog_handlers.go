package main

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"eshoplabs.dev/eshop-web/internal/catalog"
	"eshoplabs.dev/eshop-web/internal/content"
	mw "eshoplabs.dev/eshop-web/internal/middleware"
	"eshoplabs.dev/eshop-web/internal/seo"
)

// HomeView is the landing page payload.
type HomeView struct {
	Featured   []catalog.Product
	Categories []string
}

// CatalogView backs category listings and search results.
type CatalogView struct {
	Heading  string
	Query    string
	Products []catalog.Product
}

// ProductView backs the product detail page.
type ProductView struct {
	Product    catalog.Product
	InWishlist bool
	Related    []catalog.Product
}

func (app *application) homePage(w http.ResponseWriter, r *http.Request) {
	featured, err := app.catalog.Newest(r.Context(), 8)
	if err != nil {
		app.log.Warn("home: catalog unavailable", zap.Error(err))
	}

	all, _ := app.catalog.List(r.Context())
	seen := map[string]bool{}
	var categories []string
	for _, p := range all {
		c := strings.ToLower(strings.TrimSpace(p.Category))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}
	sort.Strings(categories)

	vm := app.newPage(r, "Home")
	vm.SEO.Description = "Shop the latest arrivals at " + app.cfg.Store.Name + "."
	vm.SEO.JSONLD = append(vm.SEO.JSONLD,
		seo.JSON(seo.Organization(app.cfg.Store.Name, "", "")),
		seo.JSON(seo.WebSite(app.cfg.Store.Name, "", "/search?q=")))
	vm.Home = HomeView{Featured: featured, Categories: categories}
	app.render(w, r, "home", vm)
}

func (app *application) categoryPage(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	products, err := app.catalog.ByCategory(r.Context(), category)
	if err != nil {
		app.log.Warn("category: catalog unavailable", zap.String("category", category), zap.Error(err))
	}

	heading := titleCase(category)
	vm := app.newPage(r, heading)
	vm.SEO.Description = heading + " collection at " + app.cfg.Store.Name + "."
	vm.Catalog = CatalogView{Heading: heading, Products: products}
	app.render(w, r, "catalog", vm)
}

func (app *application) searchPage(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	var matches []catalog.Product
	if query != "" {
		all, err := app.catalog.List(r.Context())
		if err != nil {
			app.log.Warn("search: catalog unavailable", zap.Error(err))
		}
		needle := strings.ToLower(query)
		for _, p := range all {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) {
				matches = append(matches, p)
			}
		}
	}

	vm := app.newPage(r, "Search")
	vm.Catalog = CatalogView{Heading: "Search results", Query: query, Products: matches}
	app.render(w, r, "catalog", vm)
}

func (app *application) productPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, ok := app.catalog.ByID(r.Context(), id)
	if !ok {
		app.notFound(w, r)
		return
	}

	related, _ := app.catalog.ByCategory(r.Context(), product.Category)
	trimmed := related[:0]
	for _, p := range related {
		if p.ID != product.ID {
			trimmed = append(trimmed, p)
		}
	}
	if len(trimmed) > 4 {
		trimmed = trimmed[:4]
	}

	sd := mw.GetSession(r)
	vm := app.newPage(r, product.Name)
	vm.SEO.Description = product.Description
	vm.SEO.OG.Image = product.Image
	vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(seo.Product(
		product.Name, product.Description, r.URL.Path, product.Image,
		product.ID, product.Price.StringFixed(2), app.cfg.Store.Currency)))
	vm.Product = ProductView{
		Product:    *product,
		InWishlist: app.wishlistFor(sd).Contains(product.ID),
		Related:    trimmed,
	}
	app.render(w, r, "product", vm)
}

func (app *application) contentPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page, err := app.content.Get(slug)
	if err != nil {
		if err == content.ErrNotFound {
			app.notFound(w, r)
			return
		}
		app.log.Error("content page", zap.String("slug", slug), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	vm := app.newPage(r, page.Title)
	if page.SEO.Title != "" {
		vm.SEO.Title = page.SEO.Title
	}
	vm.SEO.Description = page.SEO.Description
	vm.Content = page
	app.render(w, r, "content", vm)
}

func titleCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	vm := app.newPage(r, "Not found")
	t, ok := app.pages["notfound"]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := t.ExecuteTemplate(w, "base", vm); err != nil {
		app.log.Error("execute template", zap.String("page", "notfound"), zap.Error(err))
	}
}
