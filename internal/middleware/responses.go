package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError answers htmx callers with a JSON body they can surface inline;
// plain navigations get the stock text error.
func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if !IsHTMX(r.Context()) {
		http.Error(w, msg, code)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg})
}
