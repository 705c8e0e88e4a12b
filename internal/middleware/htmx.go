package middleware

import (
	"net/http"
	"strings"
)

// HTMX marks requests coming from htmx so handlers can answer with fragments
// instead of full pages.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := strings.EqualFold(r.Header.Get("HX-Request"), "true")
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), is)))
	})
}
