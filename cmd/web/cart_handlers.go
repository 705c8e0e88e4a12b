package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"eshoplabs.dev/eshop-web/internal/cart"
	mw "eshoplabs.dev/eshop-web/internal/middleware"
)

// CartLineView is a single rendered cart row.
type CartLineView struct {
	Product   cart.Product
	Quantity  int
	LineTotal decimal.Decimal
}

// CartView backs the cart page and the htmx cart fragment.
type CartView struct {
	Lines []CartLineView
	Total decimal.Decimal
	Count int
}

func buildCartView(state cart.State) CartView {
	view := CartView{Total: state.Total, Count: state.ItemCount()}
	for _, line := range state.Lines {
		view.Lines = append(view.Lines, CartLineView{
			Product:   line.Product,
			Quantity:  line.Quantity,
			LineTotal: line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return view
}

func (app *application) cartPage(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	orch := app.cartFor(r.Context(), sd)

	view := buildCartView(orch.State())
	vm := app.newPage(r, "Cart")
	vm.CartCount = view.Count
	vm.Cart = view
	app.render(w, r, "cart", vm)
}

// cartAdd handles add-to-cart posts. The product snapshot travels with the
// form so guest carts can render lines without another catalog round trip.
func (app *application) cartAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	productID := strings.TrimSpace(r.PostFormValue("product_id"))
	if productID == "" {
		http.Error(w, "missing product", http.StatusBadRequest)
		return
	}
	quantity := formQuantity(r, 1)

	ref := cart.RefID(productID)
	if p, ok := app.catalog.ByID(r.Context(), productID); ok {
		ref = cart.RefProduct(cart.Product{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Image: p.Image,
		})
	}

	sd := mw.GetSession(r)
	orch := app.cartFor(r.Context(), sd)
	orch.Add(r.Context(), ref, quantity)

	app.respondCart(w, r, orch.State(), "/cart")
}

func (app *application) cartUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	productID := strings.TrimSpace(r.PostFormValue("product_id"))
	if productID == "" {
		http.Error(w, "missing product", http.StatusBadRequest)
		return
	}

	sd := mw.GetSession(r)
	orch := app.cartFor(r.Context(), sd)
	orch.Update(r.Context(), productID, formQuantity(r, 1))

	app.respondCart(w, r, orch.State(), "/cart")
}

func (app *application) cartRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	productID := strings.TrimSpace(r.PostFormValue("product_id"))
	if productID == "" {
		http.Error(w, "missing product", http.StatusBadRequest)
		return
	}

	sd := mw.GetSession(r)
	orch := app.cartFor(r.Context(), sd)
	orch.Remove(r.Context(), productID)

	app.respondCart(w, r, orch.State(), "/cart")
}

func (app *application) cartClear(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	orch := app.cartFor(r.Context(), sd)
	orch.Clear(r.Context())

	app.respondCart(w, r, orch.State(), "/cart")
}

// respondCart renders the cart fragment for htmx requests and redirects
// everyone else.
func (app *application) respondCart(w http.ResponseWriter, r *http.Request, state cart.State, fallback string) {
	if mw.IsHTMX(r.Context()) {
		app.renderFragment(w, r, "frag_cart", buildCartView(state))
		return
	}
	redirectBack(w, r, fallback)
}

func formQuantity(r *http.Request, fallback int) int {
	raw := strings.TrimSpace(r.PostFormValue("quantity"))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
