package main

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"eshoplabs.dev/eshop-web/internal/identity"
	mw "eshoplabs.dev/eshop-web/internal/middleware"
)

// AuthFormView carries login/register form state back to the template.
type AuthFormView struct {
	Email string
	Name  string
	Next  string
	Error string
}

func (app *application) loginPage(w http.ResponseWriter, r *http.Request) {
	vm := app.newPage(r, "Sign in")
	vm.Form = AuthFormView{Next: safeNext(r.URL.Query().Get("next"))}
	app.render(w, r, "login", vm)
}

func (app *application) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	next := safeNext(r.PostFormValue("next"))

	sd := mw.GetSession(r)
	_, err := app.identityFor(sd).Login(r.Context(), email, password)
	if err != nil {
		msg := "Something went wrong. Please try again."
		if errors.Is(err, identity.ErrInvalidCredentials) {
			msg = "Invalid email or password."
		} else {
			app.log.Warn("login failed", zap.Error(err))
		}
		vm := app.newPage(r, "Sign in")
		vm.Form = AuthFormView{Email: email, Next: next, Error: msg}
		w.WriteHeader(http.StatusUnprocessableEntity)
		app.render(w, r, "login", vm)
		return
	}

	// Reconcile the server cart now so the very next render sees it instead
	// of the abandoned guest cart.
	app.cartFor(r.Context(), sd)

	if next == "" {
		next = "/account"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (app *application) registerPage(w http.ResponseWriter, r *http.Request) {
	vm := app.newPage(r, "Create account")
	vm.Form = AuthFormView{}
	app.render(w, r, "register", vm)
}

func (app *application) registerSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	fail := func(msg string) {
		vm := app.newPage(r, "Create account")
		vm.Form = AuthFormView{Name: name, Email: email, Error: msg}
		w.WriteHeader(http.StatusUnprocessableEntity)
		app.render(w, r, "register", vm)
	}

	if name == "" || email == "" || len(password) < 6 {
		fail("All fields are required and the password needs at least 6 characters.")
		return
	}

	sd := mw.GetSession(r)
	if _, err := app.identityFor(sd).Register(r.Context(), name, email, password); err != nil {
		app.log.Warn("register failed", zap.Error(err))
		fail("We could not create your account. Please try again.")
		return
	}
	app.cartFor(r.Context(), sd)

	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	app.identityFor(sd).Logout()
	mw.CartStore(sd).Drop()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AccountView backs the account overview page.
type AccountView struct {
	Name         string
	Email        string
	RecentOrders int
}

func (app *application) accountPage(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	user := mw.UserFromContext(r.Context())
	if user == nil {
		if current, ok := app.identityFor(sd).Current(r.Context()); ok && current != nil {
			user = &mw.User{ID: current.ID, Name: current.Name, Email: current.Email}
		}
	}
	if user == nil {
		http.Redirect(w, r, "/login?next=/account", http.StatusSeeOther)
		return
	}

	view := AccountView{Name: user.Name, Email: user.Email}
	if token, ok := mw.Tokens(sd).Token(); ok {
		if orders, err := app.api.MyOrders(r.Context(), token); err == nil {
			view.RecentOrders = len(orders)
		}
	}

	vm := app.newPage(r, "Account")
	vm.Account = view
	app.render(w, r, "account", vm)
}

// safeNext only allows same-site relative redirect targets.
func safeNext(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	if _, err := url.Parse(raw); err != nil {
		return ""
	}
	return raw
}
