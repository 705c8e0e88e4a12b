package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eshoplabs.dev/eshop-web/internal/config"
)

const (
	testProductID = "64f1c0ffee0ddba11ca7e901"
	testToken     = "token-abc"
)

// newFakeBackend emulates the REST API the storefront proxies to.
func newFakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	products := []map[string]any{
		{"_id": testProductID, "name": "Denim Jacket", "price": 59.99, "category": "women", "stock": 5, "isNew": true},
		{"_id": "64f1c0ffee0ddba11ca7e902", "name": "Wool Scarf", "price": 19.5, "category": "women", "stock": 12},
		{"_id": "64f1c0ffee0ddba11ca7e903", "name": "Kids Sneakers", "price": 34.0, "category": "kids", "stock": 0},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(products)
	})
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "jess@example.com" || body.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": testToken,
			"user":  map[string]any{"_id": "64f1c0ffee0ddba11ca7ee01", "name": "Jess", "email": body.Email},
		})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"_id": "64f1c0ffee0ddba11ca7ee01", "name": "Jess", "email": "jess@example.com"})
	})
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}, "total": 0})
	})
	mux.HandleFunc("POST /cart/add", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"product": products[0], "quantity": body.Quantity},
			},
		})
	})
	mux.HandleFunc("GET /orders/myorders", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]any{})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	backend := newFakeBackend(t)
	cfg := config.Config{
		Env:      "test",
		Store:    config.Store{Name: "E-Shop", Currency: "USD"},
		API:      config.API{BaseURL: backend.URL},
		Web:      config.Web{Addr: ":0"},
		LogLevel: "error",
	}
	app, err := newApplication(cfg, zap.NewNop())
	require.NoError(t, err)

	srv := httptest.NewServer(app.routes())
	t.Cleanup(srv.Close)
	return srv
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func getDoc(t *testing.T, client *http.Client, url string) (*goquery.Document, *http.Response) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	require.NoError(t, err)
	return doc, resp
}

func csrfFrom(t *testing.T, doc *goquery.Document) string {
	t.Helper()
	token, ok := doc.Find(`input[name="csrf_token"]`).First().Attr("value")
	require.True(t, ok, "no csrf token in page")
	return token
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, "ok", strings.TrimSpace(string(body)))
}

func TestHomePageShowsNewArrivals(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	doc, resp := getDoc(t, client, srv.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	// Only the isNew-flagged product shows under new arrivals.
	require.Equal(t, 1, doc.Find(".product-card").Length())
	require.Contains(t, doc.Find(".product-card h3").Text(), "Denim Jacket")
	require.Contains(t, doc.Find("h1").Text(), "E-Shop")
}

func TestCategoryPageFilters(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	doc, resp := getDoc(t, client, srv.URL+"/category/women")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, doc.Find(".product-card").Length())

	doc, _ = getDoc(t, client, srv.URL+"/category/kids")
	require.Equal(t, 1, doc.Find(".product-card").Length())
}

func TestProductPageRendersDetail(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	doc, resp := getDoc(t, client, srv.URL+"/product/"+testProductID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, doc.Find("h1").Text(), "Denim Jacket")
	require.Contains(t, doc.Find(".price").First().Text(), "$59.99")
}

func TestProductPageUnknownIDReturns404(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	_, resp := getDoc(t, client, srv.URL+"/product/ffffffffffffffffffffffff")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGuestCartAddPersistsAcrossRequests(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	doc, _ := getDoc(t, client, srv.URL+"/product/"+testProductID)
	token := csrfFrom(t, doc)

	form := url.Values{"csrf_token": {token}, "product_id": {testProductID}, "quantity": {"2"}}
	resp, err := client.PostForm(srv.URL+"/cart/add", form)
	require.NoError(t, err)
	resp.Body.Close()

	doc, _ = getDoc(t, client, srv.URL+"/cart")
	require.Equal(t, 1, doc.Find(".cart-table tbody tr").Length())
	require.Contains(t, doc.Find(".cart-total").Text(), "$119.98")
	require.Equal(t, "2", doc.Find("#cart-badge").First().Text())
}

func TestCartClearEmptiesGuestCart(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	doc, _ := getDoc(t, client, srv.URL+"/product/"+testProductID)
	token := csrfFrom(t, doc)

	resp, err := client.PostForm(srv.URL+"/cart/add",
		url.Values{"csrf_token": {token}, "product_id": {testProductID}})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.PostForm(srv.URL+"/cart/clear", url.Values{"csrf_token": {token}})
	require.NoError(t, err)
	resp.Body.Close()

	doc, _ = getDoc(t, client, srv.URL+"/cart")
	require.Equal(t, 0, doc.Find(".cart-table tbody tr").Length())
	require.Contains(t, doc.Find(".cart-empty").Text(), "empty")
}

func TestCartPostWithoutCSRFRejected(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	resp, err := client.PostForm(srv.URL+"/cart/add",
		url.Values{"product_id": {testProductID}})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	doc, _ := getDoc(t, client, srv.URL+"/login")
	token := csrfFrom(t, doc)

	resp, err := client.PostForm(srv.URL+"/login",
		url.Values{"csrf_token": {token}, "email": {"jess@example.com"}, "password": {"wrong"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	require.NoError(t, err)
	require.Contains(t, doc.Find(".form-error").Text(), "Invalid email or password")
}

func TestLoginThenAccountShowsProfile(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	doc, _ := getDoc(t, client, srv.URL+"/login")
	token := csrfFrom(t, doc)

	resp, err := client.PostForm(srv.URL+"/login",
		url.Values{"csrf_token": {token}, "email": {"jess@example.com"}, "password": {"secret1"}})
	require.NoError(t, err)
	resp.Body.Close()

	doc, accountResp := getDoc(t, client, srv.URL+"/account")
	require.Equal(t, http.StatusOK, accountResp.StatusCode)
	require.Equal(t, "Jess", doc.Find(".account-name").Text())
	require.Equal(t, "jess@example.com", doc.Find(".account-email").Text())
}

func TestCheckoutRequiresLogin(t *testing.T) {
	srv := newTestServer(t)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(srv.URL + "/checkout")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login?next=/checkout", resp.Header.Get("Location"))
}

func TestWishlistAddAndMoveToCart(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	doc, _ := getDoc(t, client, srv.URL+"/product/"+testProductID)
	token := csrfFrom(t, doc)

	resp, err := client.PostForm(srv.URL+"/wishlist/add",
		url.Values{"csrf_token": {token}, "product_id": {testProductID}})
	require.NoError(t, err)
	resp.Body.Close()

	doc, _ = getDoc(t, client, srv.URL+"/wishlist")
	require.Equal(t, 1, doc.Find(".wishlist li").Length())

	resp, err = client.PostForm(srv.URL+"/wishlist/move",
		url.Values{"csrf_token": {token}, "product_id": {testProductID}})
	require.NoError(t, err)
	resp.Body.Close()

	doc, _ = getDoc(t, client, srv.URL+"/wishlist")
	require.Equal(t, 0, doc.Find(".wishlist li").Length())

	doc, _ = getDoc(t, client, srv.URL+"/cart")
	require.Equal(t, 1, doc.Find(".cart-table tbody tr").Length())
}

func TestContentPageRendersMarkdown(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	doc, resp := getDoc(t, client, srv.URL+"/pages/shipping")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, doc.Find("h1").Text(), "Shipping Policy")
	require.Contains(t, doc.Find(".static-page .body").Text(), "ship the same business day")
}

func TestContentPageUnknownSlug404(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	_, resp := getDoc(t, client, srv.URL+"/pages/no-such-page")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchFiltersByName(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	doc, resp := getDoc(t, client, srv.URL+"/search?q=scarf")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, doc.Find(".product-card").Length())
	require.Contains(t, doc.Find(".product-card h3").Text(), "Wool Scarf")
}

func TestLoginRefreshesCartBadgeFromServer(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	doc, _ := getDoc(t, client, srv.URL+"/product/"+testProductID)
	token := csrfFrom(t, doc)
	resp, err := client.PostForm(srv.URL+"/cart/add",
		url.Values{"csrf_token": {token}, "product_id": {testProductID}, "quantity": {"2"}})
	require.NoError(t, err)
	resp.Body.Close()

	doc, _ = getDoc(t, client, srv.URL+"/login")
	token = csrfFrom(t, doc)
	resp, err = client.PostForm(srv.URL+"/login",
		url.Values{"csrf_token": {token}, "email": {"jess@example.com"}, "password": {"secret1"}})
	require.NoError(t, err)
	resp.Body.Close()

	// The server cart is empty, so the abandoned guest count must not linger.
	doc, _ = getDoc(t, client, srv.URL+"/")
	require.Equal(t, "0", doc.Find("#cart-badge").First().Text())

	doc, _ = getDoc(t, client, srv.URL+"/product/"+testProductID)
	token = csrfFrom(t, doc)
	resp, err = client.PostForm(srv.URL+"/cart/add",
		url.Values{"csrf_token": {token}, "product_id": {testProductID}, "quantity": {"3"}})
	require.NoError(t, err)
	resp.Body.Close()

	// The badge follows the reconciled server quantity on every page.
	doc, _ = getDoc(t, client, srv.URL+"/")
	require.Equal(t, "3", doc.Find("#cart-badge").First().Text())
}

func TestCheckoutOrderRejectedWithStaleTokenForcesRelogin(t *testing.T) {
	product := map[string]any{"_id": testProductID, "name": "Denim Jacket", "price": 59.99, "category": "women", "stock": 5}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]any{product})
	})
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": testToken,
			"user":  map[string]any{"_id": "64f1c0ffee0ddba11ca7ee01", "name": "Jess", "email": "jess@example.com"},
		})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"_id": "64f1c0ffee0ddba11ca7ee01", "name": "Jess", "email": "jess@example.com"})
	})
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{"product": product, "quantity": 1}},
			"total": 59.99,
		})
	})
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	})
	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)

	cfg := config.Config{
		Env:      "test",
		Store:    config.Store{Name: "E-Shop", Currency: "USD"},
		API:      config.API{BaseURL: backend.URL},
		Web:      config.Web{Addr: ":0"},
		LogLevel: "error",
	}
	app, err := newApplication(cfg, zap.NewNop())
	require.NoError(t, err)
	srv := httptest.NewServer(app.routes())
	t.Cleanup(srv.Close)

	client := newBrowser(t)
	doc, _ := getDoc(t, client, srv.URL+"/login")
	resp, err := client.PostForm(srv.URL+"/login",
		url.Values{"csrf_token": {csrfFrom(t, doc)}, "email": {"jess@example.com"}, "password": {"secret1"}})
	require.NoError(t, err)
	resp.Body.Close()

	doc, _ = getDoc(t, client, srv.URL+"/checkout")
	form := url.Values{
		"csrf_token":  {csrfFrom(t, doc)},
		"full_name":   {"Jess Doe"},
		"address":     {"1 Main St"},
		"city":        {"Springfield"},
		"postal_code": {"12345"},
		"country":     {"US"},
	}

	noRedirect := &http.Client{Jar: client.Jar, CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err = noRedirect.PostForm(srv.URL+"/checkout", form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login?next=/checkout", resp.Header.Get("Location"))

	// The stale token is gone: protected pages bounce to login again.
	resp, err = noRedirect.Get(srv.URL + "/account")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login?next=/account", resp.Header.Get("Location"))
}
