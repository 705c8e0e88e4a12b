package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	appsession "eshoplabs.dev/eshop-web/internal/admin/session"
)

type authContextKey string

const userContextKey authContextKey = "auth.user"

// User is the staff member resolved for the current request.
type User struct {
	ID    string
	Name  string
	Email string
	Token string
}

// RequireUser gates routes behind an authenticated admin session. Requests
// without a signed-in user are redirected to the login page with the original
// path preserved in ?next=.
func RequireUser(loginPath string) func(http.Handler) http.Handler {
	if loginPath == "" {
		loginPath = "/login"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok || sess.User() == nil || sess.APIToken() == "" {
				handleUnauthorized(w, r, loginPath)
				return
			}

			su := sess.User()
			user := &User{
				ID:    su.ID,
				Name:  su.Name,
				Email: su.Email,
				Token: sess.APIToken(),
			}
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user if present.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok && user != nil
}

// SessionUser converts the context user back into its session form.
func (u *User) SessionUser() *appsession.User {
	return &appsession.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

func handleUnauthorized(w http.ResponseWriter, r *http.Request, loginPath string) {
	if IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", loginPath)
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	redirect := loginPath
	if u, err := url.Parse(loginPath); err == nil && r.URL.Path != "" && r.Method == http.MethodGet {
		q := u.Query()
		q.Set("next", r.URL.Path)
		u.RawQuery = q.Encode()
		redirect = u.String()
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}

// SafeNext validates a post-login redirect target. Only same-site absolute
// paths are accepted.
func SafeNext(next, fallback string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return fallback
	}
	return next
}
