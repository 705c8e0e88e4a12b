package ui

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eshoplabs.dev/eshop-web/internal/admin/customers"
	custommw "eshoplabs.dev/eshop-web/internal/admin/httpserver/middleware"
)

// CustomerListData is the payload for the customer index page.
type CustomerListData struct {
	BaseData
	Result customers.ListResult
	Search string
}

// CustomerList renders the searchable customer index.
func (h *Handlers) CustomerList(w http.ResponseWriter, r *http.Request) {
	user, _ := custommw.UserFromContext(r.Context())

	search := r.URL.Query().Get("q")
	result, err := h.customers.List(r.Context(), user.Token, customers.Query{
		Search: search,
		Page:   queryInt(r, "page"),
	})
	if err != nil {
		h.serverError(w, "list customers", err)
		return
	}

	h.render(w, "customers", http.StatusOK, CustomerListData{
		BaseData: h.newBaseData(r, "Customers", "customers"),
		Result:   result,
		Search:   search,
	})
}

// CustomerDelete removes an account. Admin accounts are refused with a flash
// message on the index.
func (h *Handlers) CustomerDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := custommw.UserFromContext(r.Context())

	err := h.customers.Delete(r.Context(), user.Token, chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, customers.ErrCannotDeleteAdmin):
		result, lerr := h.customers.List(r.Context(), user.Token, customers.Query{})
		if lerr != nil {
			h.serverError(w, "list customers", lerr)
			return
		}
		data := CustomerListData{
			BaseData: h.newBaseData(r, "Customers", "customers"),
			Result:   result,
		}
		data.Error = "Admin accounts cannot be deleted."
		h.render(w, "customers", http.StatusUnprocessableEntity, data)
		return
	case errors.Is(err, customers.ErrCustomerNotFound):
		// Already gone, fall through to the index.
	case err != nil:
		h.serverError(w, "delete customer", err)
		return
	}
	http.Redirect(w, r, joinBasePath(h.basePath, "/customers"), http.StatusSeeOther)
}
