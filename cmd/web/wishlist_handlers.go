package main

import (
	"net/http"
	"strings"

	"eshoplabs.dev/eshop-web/internal/cart"
	mw "eshoplabs.dev/eshop-web/internal/middleware"
)

// WishlistView backs the wishlist page and fragment.
type WishlistView struct {
	Items []cart.Product
	Count int
}

func (app *application) wishlistPage(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	wl := app.wishlistFor(sd)

	vm := app.newPage(r, "Wishlist")
	vm.WishlistCount = wl.Len()
	vm.Wishlist = WishlistView{Items: wl.Items(), Count: wl.Len()}
	app.render(w, r, "wishlist", vm)
}

func (app *application) wishlistAdd(w http.ResponseWriter, r *http.Request) {
	productID := formProductID(w, r)
	if productID == "" {
		return
	}

	product, ok := app.catalog.ByID(r.Context(), productID)
	if !ok {
		app.notFound(w, r)
		return
	}

	sd := mw.GetSession(r)
	wl := app.wishlistFor(sd)
	wl.Add(cart.Product{ID: product.ID, Name: product.Name, Price: product.Price, Image: product.Image})

	app.respondWishlist(w, r, wl.Items())
}

func (app *application) wishlistRemove(w http.ResponseWriter, r *http.Request) {
	productID := formProductID(w, r)
	if productID == "" {
		return
	}

	sd := mw.GetSession(r)
	wl := app.wishlistFor(sd)
	wl.Remove(productID)

	app.respondWishlist(w, r, wl.Items())
}

// wishlistMoveToCart removes the item from the wishlist and adds one unit to
// the cart in a single post.
func (app *application) wishlistMoveToCart(w http.ResponseWriter, r *http.Request) {
	productID := formProductID(w, r)
	if productID == "" {
		return
	}

	sd := mw.GetSession(r)
	wl := app.wishlistFor(sd)
	orch := app.cartFor(r.Context(), sd)
	wl.MoveToCart(r.Context(), orch, productID)

	app.respondWishlist(w, r, wl.Items())
}

func (app *application) respondWishlist(w http.ResponseWriter, r *http.Request, items []cart.Product) {
	if mw.IsHTMX(r.Context()) {
		app.renderFragment(w, r, "frag_wishlist", WishlistView{Items: items, Count: len(items)})
		return
	}
	redirectBack(w, r, "/wishlist")
}

func formProductID(w http.ResponseWriter, r *http.Request) string {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return ""
	}
	id := strings.TrimSpace(r.PostFormValue("product_id"))
	if id == "" {
		http.Error(w, "missing product", http.StatusBadRequest)
	}
	return id
}
