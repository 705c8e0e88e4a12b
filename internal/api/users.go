package api

import (
	"context"
	"net/http"
	"strings"
)

// User is the backend account record.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Session is the login/register response: a bearer token plus the account it
// belongs to.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{
		"email":    strings.TrimSpace(email),
		"password": password,
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/users/login", body, "")
	if err != nil {
		return Session{}, err
	}
	return c.doSession(req, "login")
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	body := map[string]string{
		"name":     strings.TrimSpace(name),
		"email":    strings.TrimSpace(email),
		"password": password,
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/users/register", body, "")
	if err != nil {
		return Session{}, err
	}
	return c.doSession(req, "register")
}

// CurrentUser fetches the profile behind a bearer token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users/me", nil, token)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}
	var user User
	if err := decodeInto(resp, &user, "current user"); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account. Admin token required.
func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users", nil, token)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}
	var users []User
	if err := decodeInto(resp, &users, "list users"); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes an account. Admin token required.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/users/"+strings.TrimSpace(id), nil, token)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.errorFromResponse(resp)
	}
	return nil
}

func (c *Client) doSession(req *http.Request, what string) (Session, error) {
	resp, err := c.do(req)
	if err != nil {
		return Session{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Session{}, c.errorFromResponse(resp)
	}
	var session Session
	if err := decodeInto(resp, &session, what); err != nil {
		return Session{}, err
	}
	return session, nil
}
