package ui

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	custommw "eshoplabs.dev/eshop-web/internal/admin/httpserver/middleware"
	adminorders "eshoplabs.dev/eshop-web/internal/admin/orders"
	"eshoplabs.dev/eshop-web/internal/api"
)

// OrderListData is the payload for the order index page.
type OrderListData struct {
	BaseData
	Result adminorders.ListResult
	Status adminorders.StatusFilter
}

// OrderData is the payload for the order detail page.
type OrderData struct {
	BaseData
	Order api.Order
}

// OrderList renders the order book with status filtering.
func (h *Handlers) OrderList(w http.ResponseWriter, r *http.Request) {
	user, _ := custommw.UserFromContext(r.Context())

	status := adminorders.StatusFilter(r.URL.Query().Get("status"))
	result, err := h.orders.List(r.Context(), user.Token, adminorders.Query{
		Status: status,
		Page:   queryInt(r, "page"),
	})
	if err != nil {
		h.serverError(w, "list orders", err)
		return
	}

	h.render(w, "orders", http.StatusOK, OrderListData{
		BaseData: h.newBaseData(r, "Orders", "orders"),
		Result:   result,
		Status:   status,
	})
}

// OrderDetail renders a single order with its line items.
func (h *Handlers) OrderDetail(w http.ResponseWriter, r *http.Request) {
	user, _ := custommw.UserFromContext(r.Context())

	order, err := h.orders.Get(r.Context(), user.Token, chi.URLParam(r, "id"))
	if errors.Is(err, adminorders.ErrOrderNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, "load order", err)
		return
	}

	h.render(w, "order", http.StatusOK, OrderData{
		BaseData: h.newBaseData(r, "Order "+shortID(order.ID), "orders"),
		Order:    order,
	})
}

// OrderMarkDelivered flags an order as delivered and re-renders the detail page.
func (h *Handlers) OrderMarkDelivered(w http.ResponseWriter, r *http.Request) {
	user, _ := custommw.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if _, err := h.orders.MarkDelivered(r.Context(), user.Token, id); err != nil {
		if errors.Is(err, adminorders.ErrOrderNotFound) {
			http.NotFound(w, r)
			return
		}
		h.serverError(w, "mark delivered", err)
		return
	}
	http.Redirect(w, r, joinBasePath(h.basePath, "/orders/"+id), http.StatusSeeOther)
}
