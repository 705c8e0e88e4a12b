package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	mw "eshoplabs.dev/eshop-web/internal/middleware"
)

func csrfStack() http.Handler {
	return mw.Session(mw.CSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})))
}

func TestCSRFAllowsSafeMethods(t *testing.T) {
	h := csrfStack()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	h := csrfStack()

	// establish session + csrf cookie first
	seed := httptest.NewRecorder()
	h.ServeHTTP(seed, httptest.NewRequest(http.MethodGet, "/", nil))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	for _, c := range seed.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCSRFAcceptsHeaderAndFormToken(t *testing.T) {
	h := csrfStack()

	seed := httptest.NewRecorder()
	h.ServeHTTP(seed, httptest.NewRequest(http.MethodGet, "/", nil))
	var token string
	for _, c := range seed.Result().Cookies() {
		if c.Name == "csrf_token" {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	// header variant
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	for _, c := range seed.Result().Cookies() {
		req.AddCookie(c)
	}
	req.Header.Set("X-CSRF-Token", token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// hidden form field variant
	form := url.Values{"csrf_token": {token}}
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range seed.Result().Cookies() {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHTMXDetection(t *testing.T) {
	var seen bool
	h := mw.HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = mw.IsHTMX(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, seen)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, seen)
}
