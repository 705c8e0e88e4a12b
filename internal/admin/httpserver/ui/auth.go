package ui

import "net/http"

// LoginState carries the login form's rendered state across submissions.
type LoginState struct {
	Email   string
	Next    string
	Error   string
	Message string
}

// LoginData is the payload for the login page.
type LoginData struct {
	BaseData
	Form LoginState
}

// RenderLogin draws the login page with the given form state.
func (h *Handlers) RenderLogin(w http.ResponseWriter, r *http.Request, state LoginState, status int) {
	h.render(w, "login", status, LoginData{
		BaseData: h.newBaseData(r, "Sign in", ""),
		Form:     state,
	})
}
