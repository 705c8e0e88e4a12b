package handlers

import (
	mw "eshoplabs.dev/eshop-web/internal/middleware"
	"eshoplabs.dev/eshop-web/internal/nav"
	"eshoplabs.dev/eshop-web/internal/seo"
)

// PageData is the view model for pages using the shared storefront layout.
type PageData struct {
	Title     string
	StoreName string
	Currency  string
	SEO       seo.Meta
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	User          *mw.User
	CartCount     int
	WishlistCount int
	CSRFToken     string
	Flash         string

	// Optional per-page view model payloads
	Home     any
	Catalog  any
	Product  any
	Cart     any
	Wishlist any
	Checkout any
	Orders   any
	Order    any
	Account  any
	Content  any
	Form     any
}

// NewPageData seeds the layout fields shared by every page.
func NewPageData(title, storeName, path string) PageData {
	return PageData{
		Title:       title,
		StoreName:   storeName,
		Path:        path,
		Nav:         nav.Build(path),
		Breadcrumbs: nav.Breadcrumbs(path),
		Analytics:   LoadAnalyticsFromEnv(),
	}
}
