package ui

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	custommw "eshoplabs.dev/eshop-web/internal/admin/httpserver/middleware"
	adminproducts "eshoplabs.dev/eshop-web/internal/admin/products"
	"eshoplabs.dev/eshop-web/internal/catalog"
)

// ProductListData is the payload for the product index page.
type ProductListData struct {
	BaseData
	Result adminproducts.ListResult
	Query  adminproducts.Query
}

// ProductFormData is the payload for the create and edit pages.
type ProductFormData struct {
	BaseData
	Product     catalog.Product
	IsNew       bool
	FieldErrors map[string]string
}

// ProductList renders the filterable product index.
func (h *Handlers) ProductList(w http.ResponseWriter, r *http.Request) {
	user, _ := custommw.UserFromContext(r.Context())

	query := adminproducts.Query{
		Search:   r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Page:     queryInt(r, "page"),
	}
	result, err := h.products.List(r.Context(), user.Token, query)
	if err != nil {
		h.serverError(w, "list products", err)
		return
	}

	h.render(w, "products", http.StatusOK, ProductListData{
		BaseData: h.newBaseData(r, "Products", "products"),
		Result:   result,
		Query:    query,
	})
}

// ProductNew renders an empty product form.
func (h *Handlers) ProductNew(w http.ResponseWriter, r *http.Request) {
	h.render(w, "product_form", http.StatusOK, ProductFormData{
		BaseData: h.newBaseData(r, "New product", "products"),
		IsNew:    true,
	})
}

// ProductEdit renders the edit form for an existing product.
func (h *Handlers) ProductEdit(w http.ResponseWriter, r *http.Request) {
	user, _ := custommw.UserFromContext(r.Context())

	product, err := h.products.Get(r.Context(), user.Token, chi.URLParam(r, "id"))
	if errors.Is(err, adminproducts.ErrProductNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, "load product", err)
		return
	}

	h.render(w, "product_form", http.StatusOK, ProductFormData{
		BaseData: h.newBaseData(r, "Edit "+product.Name, "products"),
		Product:  product,
	})
}

// ProductCreate handles the new product form submission.
func (h *Handlers) ProductCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := custommw.UserFromContext(r.Context())

	input, draft, ferr := parseProductForm(r)
	if ferr != nil {
		h.renderProductForm(w, r, draft, true, ferr.FieldErrors)
		return
	}

	if _, err := h.products.Create(r.Context(), user.Token, input); err != nil {
		var verr *adminproducts.ValidationError
		if errors.As(err, &verr) {
			h.renderProductForm(w, r, draft, true, verr.FieldErrors)
			return
		}
		h.serverError(w, "create product", err)
		return
	}
	h.redirectToList(w, r)
}

// ProductUpdate handles the edit form submission.
func (h *Handlers) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	user, _ := custommw.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	input, draft, ferr := parseProductForm(r)
	draft.ID = id
	if ferr != nil {
		h.renderProductForm(w, r, draft, false, ferr.FieldErrors)
		return
	}

	if _, err := h.products.Update(r.Context(), user.Token, id, input); err != nil {
		if errors.Is(err, adminproducts.ErrProductNotFound) {
			http.NotFound(w, r)
			return
		}
		var verr *adminproducts.ValidationError
		if errors.As(err, &verr) {
			h.renderProductForm(w, r, draft, false, verr.FieldErrors)
			return
		}
		h.serverError(w, "update product", err)
		return
	}
	h.redirectToList(w, r)
}

// ProductDelete removes a product and returns to the index.
func (h *Handlers) ProductDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := custommw.UserFromContext(r.Context())

	err := h.products.Delete(r.Context(), user.Token, chi.URLParam(r, "id"))
	if err != nil && !errors.Is(err, adminproducts.ErrProductNotFound) {
		h.serverError(w, "delete product", err)
		return
	}
	h.redirectToList(w, r)
}

func (h *Handlers) renderProductForm(w http.ResponseWriter, r *http.Request, draft catalog.Product, isNew bool, fieldErrors map[string]string) {
	title := "Edit " + draft.Name
	if isNew {
		title = "New product"
	}
	h.render(w, "product_form", http.StatusUnprocessableEntity, ProductFormData{
		BaseData:    h.newBaseData(r, title, "products"),
		Product:     draft,
		IsNew:       isNew,
		FieldErrors: fieldErrors,
	})
}

func (h *Handlers) redirectToList(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, joinBasePath(h.basePath, "/products"), http.StatusSeeOther)
}

// parseProductForm reads the submitted fields. A price that does not parse is
// reported as a field error; the draft keeps the rest of the submission so the
// form can be re-rendered filled in.
func parseProductForm(r *http.Request) (adminproducts.Input, catalog.Product, *adminproducts.ValidationError) {
	_ = r.ParseForm()

	input := adminproducts.Input{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
		Image:       strings.TrimSpace(r.PostFormValue("image")),
		New:         r.PostFormValue("is_new") != "",
	}

	fieldErrors := map[string]string{}

	rawPrice := strings.TrimSpace(r.PostFormValue("price"))
	price, err := decimal.NewFromString(rawPrice)
	if err != nil || rawPrice == "" {
		fieldErrors["price"] = "Enter a price, for example 19.99."
	} else {
		input.Price = price
	}

	rawStock := strings.TrimSpace(r.PostFormValue("stock"))
	stock, err := strconv.Atoi(rawStock)
	if err != nil || stock < 0 {
		fieldErrors["stock"] = "Enter a whole number of units."
	} else {
		input.Stock = stock
	}

	draft := catalog.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Image:       input.Image,
		Price:       input.Price,
		Stock:       input.Stock,
		New:         input.New,
	}

	var verr *adminproducts.ValidationError
	if errors.As(input.Validate(), &verr) {
		for k, v := range verr.FieldErrors {
			if _, taken := fieldErrors[k]; !taken {
				fieldErrors[k] = v
			}
		}
	}
	if len(fieldErrors) > 0 {
		return input, draft, &adminproducts.ValidationError{FieldErrors: fieldErrors}
	}
	return input, draft, nil
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}
