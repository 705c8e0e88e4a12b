package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"eshoplabs.dev/eshop-web/internal/api"
	mw "eshoplabs.dev/eshop-web/internal/middleware"
)

// CheckoutView backs the checkout form page.
type CheckoutView struct {
	Cart    CartView
	Address api.ShippingAddress
	Error   string
}

// OrderListView backs the order history page.
type OrderListView struct {
	Orders []api.Order
}

// OrderView backs the order detail, success, and cancel pages.
type OrderView struct {
	Order   api.Order
	Message string
}

func (app *application) checkoutPage(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	orch := app.cartFor(r.Context(), sd)

	view := buildCartView(orch.State())
	if view.Count == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	vm := app.newPage(r, "Checkout")
	vm.Checkout = CheckoutView{Cart: view}
	app.render(w, r, "checkout", vm)
}

// checkoutSubmit creates the order from the current cart, clears the cart,
// and hands off to payment.
func (app *application) checkoutSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	address := api.ShippingAddress{
		FullName:   strings.TrimSpace(r.PostFormValue("full_name")),
		Line1:      strings.TrimSpace(r.PostFormValue("address")),
		City:       strings.TrimSpace(r.PostFormValue("city")),
		PostalCode: strings.TrimSpace(r.PostFormValue("postal_code")),
		Country:    strings.TrimSpace(r.PostFormValue("country")),
		Phone:      strings.TrimSpace(r.PostFormValue("phone")),
	}

	sd := mw.GetSession(r)
	orch := app.cartFor(r.Context(), sd)
	state := orch.State()

	fail := func(msg string, status int) {
		vm := app.newPage(r, "Checkout")
		vm.Checkout = CheckoutView{Cart: buildCartView(state), Address: address, Error: msg}
		w.WriteHeader(status)
		app.render(w, r, "checkout", vm)
	}

	if state.Empty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	if address.FullName == "" || address.Line1 == "" || address.City == "" ||
		address.PostalCode == "" || address.Country == "" {
		fail("Please fill in every required address field.", http.StatusUnprocessableEntity)
		return
	}

	token, ok := mw.Tokens(sd).Token()
	if !ok {
		http.Redirect(w, r, "/login?next=/checkout", http.StatusSeeOther)
		return
	}

	req := api.CreateOrderRequest{
		Shipping:      address,
		PaymentMethod: "card",
		Total:         state.Total,
	}
	for _, line := range state.Lines {
		req.Items = append(req.Items, api.OrderItem{
			ProductID: line.Product.Identifier(),
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Image:     line.Product.Image,
		})
	}

	order, err := app.api.CreateOrder(r.Context(), token, req)
	if errors.Is(err, api.ErrUnauthorized) {
		// The backend no longer honors the token. Tear down the stale
		// identity and send the shopper back through login.
		app.identityFor(sd).Logout()
		http.Redirect(w, r, "/login?next=/checkout", http.StatusSeeOther)
		return
	}
	if err != nil {
		app.log.Error("create order", zap.Error(err))
		fail("We could not place your order. Please try again.", http.StatusBadGateway)
		return
	}

	orch.Clear(r.Context())
	http.Redirect(w, r, "/checkout/pay/"+order.ID, http.StatusSeeOther)
}

// checkoutPay creates a hosted payment session and redirects to it.
func (app *application) checkoutPay(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	sd := mw.GetSession(r)
	token, ok := mw.Tokens(sd).Token()
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session, err := app.api.CreateCheckoutSession(r.Context(), token, orderID, "")
	if err != nil {
		app.log.Error("create checkout session", zap.String("order_id", orderID), zap.Error(err))
		http.Redirect(w, r, "/checkout/cancel?order="+orderID, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, session.URL, http.StatusSeeOther)
}

func (app *application) checkoutSuccess(w http.ResponseWriter, r *http.Request) {
	// Record the payment on the order. The backend webhook is authoritative;
	// this covers deployments without one. Failures only get logged, the
	// shopper still sees the confirmation.
	orderID := strings.TrimSpace(r.URL.Query().Get("order"))
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if orderID != "" {
		sd := mw.GetSession(r)
		if token, ok := mw.Tokens(sd).Token(); ok {
			result := map[string]any{"status": "COMPLETED"}
			if sessionID != "" {
				result["id"] = sessionID
			}
			if _, err := app.api.PayOrder(r.Context(), token, orderID, result); err != nil {
				app.log.Warn("record payment", zap.String("order_id", orderID), zap.Error(err))
			}
		}
	}

	app.renderOrderOutcome(w, r, "Order confirmed",
		"Thank you for your purchase. A confirmation email is on its way.")
}

func (app *application) checkoutCancel(w http.ResponseWriter, r *http.Request) {
	app.renderOrderOutcome(w, r, "Payment not completed",
		"Your payment was not completed. The order is still awaiting payment.")
}

func (app *application) renderOrderOutcome(w http.ResponseWriter, r *http.Request, title, message string) {
	sd := mw.GetSession(r)
	view := OrderView{Message: message}
	if orderID := strings.TrimSpace(r.URL.Query().Get("order")); orderID != "" {
		if token, ok := mw.Tokens(sd).Token(); ok {
			if order, err := app.api.Order(r.Context(), token, orderID); err == nil {
				view.Order = *order
			}
		}
	}
	vm := app.newPage(r, title)
	vm.Order = view
	app.render(w, r, "order_outcome", vm)
}

func (app *application) ordersPage(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	token, _ := mw.Tokens(sd).Token()

	orders, err := app.api.MyOrders(r.Context(), token)
	if err != nil {
		app.log.Warn("list orders", zap.Error(err))
	}

	vm := app.newPage(r, "Your orders")
	vm.Orders = OrderListView{Orders: orders}
	app.render(w, r, "orders", vm)
}

func (app *application) orderPage(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	sd := mw.GetSession(r)
	token, _ := mw.Tokens(sd).Token()

	order, err := app.api.Order(r.Context(), token, orderID)
	if err != nil {
		app.notFound(w, r)
		return
	}

	vm := app.newPage(r, "Order "+order.ID)
	vm.Order = OrderView{Order: *order}
	app.render(w, r, "order", vm)
}

func (app *application) orderCancel(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	sd := mw.GetSession(r)
	token, _ := mw.Tokens(sd).Token()

	if _, err := app.api.CancelOrder(r.Context(), token, orderID); err != nil {
		app.log.Warn("cancel order", zap.String("order_id", orderID), zap.Error(err))
	}
	http.Redirect(w, r, "/account/orders/"+orderID, http.StatusSeeOther)
}
