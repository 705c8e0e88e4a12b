package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	custommw "eshoplabs.dev/eshop-web/internal/admin/httpserver/middleware"
	"eshoplabs.dev/eshop-web/internal/admin/httpserver/ui"
	appsession "eshoplabs.dev/eshop-web/internal/admin/session"
	"eshoplabs.dev/eshop-web/internal/api"
)

var (
	// ErrInvalidLogin is returned for unknown accounts or wrong passwords.
	ErrInvalidLogin = errors.New("invalid email or password")
	// ErrNotAdmin is returned when a regular customer signs in to the console.
	ErrNotAdmin = errors.New("account is not an administrator")
)

// Authenticator exchanges console credentials for a backend token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*appsession.User, string, error)
}

// APIAuthenticator signs administrators in through the backend REST API.
// Accounts without the admin flag are rejected even when the password checks
// out.
type APIAuthenticator struct {
	client *api.Client
}

// NewAPIAuthenticator wraps the shared API client.
func NewAPIAuthenticator(client *api.Client) *APIAuthenticator {
	return &APIAuthenticator{client: client}
}

// Login implements Authenticator.
func (a *APIAuthenticator) Login(ctx context.Context, email, password string) (*appsession.User, string, error) {
	sess, err := a.client.Login(ctx, email, password)
	if errors.Is(err, api.ErrUnauthorized) {
		return nil, "", ErrInvalidLogin
	}
	if err != nil {
		return nil, "", err
	}
	if sess.User == nil || !sess.User.IsAdmin {
		return nil, "", ErrNotAdmin
	}
	return &appsession.User{
		ID:    sess.User.ID,
		Name:  sess.User.Name,
		Email: sess.User.Email,
	}, sess.Token, nil
}

// StaticAuthenticator accepts one fixed credential pair. It backs local
// development against the static services.
type StaticAuthenticator struct {
	Email    string
	Password string
}

// NewStaticAuthenticator returns the development authenticator.
func NewStaticAuthenticator() *StaticAuthenticator {
	return &StaticAuthenticator{Email: "admin@example.com", Password: "admin123"}
}

// Login implements Authenticator.
func (a *StaticAuthenticator) Login(_ context.Context, email, password string) (*appsession.User, string, error) {
	if !strings.EqualFold(strings.TrimSpace(email), a.Email) || password != a.Password {
		return nil, "", ErrInvalidLogin
	}
	return &appsession.User{ID: "admin", Name: "Admin", Email: a.Email}, "static-admin-token", nil
}

type authHandlers struct {
	authenticator Authenticator
	ui            *ui.Handlers
	basePath      string
	loginPath     string
	log           *zap.Logger
}

func newAuthHandlers(authenticator Authenticator, handlers *ui.Handlers, basePath, loginPath string, log *zap.Logger) *authHandlers {
	if authenticator == nil {
		authenticator = NewStaticAuthenticator()
	}
	return &authHandlers{
		authenticator: authenticator,
		ui:            handlers,
		basePath:      basePath,
		loginPath:     loginPath,
		log:           log,
	}
}

func (h *authHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok && sess.User() != nil {
		http.Redirect(w, r, h.redirectTarget(r.URL.Query().Get("next")), http.StatusFound)
		return
	}

	state := ui.LoginState{Next: r.URL.Query().Get("next")}
	if r.URL.Query().Get("status") == "logged_out" {
		state.Message = "You have been signed out."
	}
	h.ui.RenderLogin(w, r, state, http.StatusOK)
}

func (h *authHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ui.RenderLogin(w, r, ui.LoginState{Error: "Could not read the form. Please try again."}, http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	next := r.PostFormValue("next")

	state := ui.LoginState{Email: email, Next: next}

	if email == "" || password == "" {
		state.Error = "Enter your email and password."
		h.ui.RenderLogin(w, r, state, http.StatusUnprocessableEntity)
		return
	}

	user, token, err := h.authenticator.Login(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidLogin):
			state.Error = "Invalid email or password."
		case errors.Is(err, ErrNotAdmin):
			state.Error = "This account does not have console access."
		default:
			h.log.Error("admin login failed", zap.Error(err))
			state.Error = "Sign in is unavailable right now. Please try again shortly."
		}
		h.ui.RenderLogin(w, r, state, http.StatusUnprocessableEntity)
		return
	}

	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.SetUser(user)
		sess.SetAPIToken(token)
	}

	target := h.redirectTarget(next)
	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *authHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.Destroy()
	}

	redirect := h.loginPath + "?" + url.Values{"status": {"logged_out"}}.Encode()
	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", redirect)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (h *authHandlers) redirectTarget(next string) string {
	return custommw.SafeNext(next, h.basePath)
}
