// Package identity owns the authentication flag and bearer token lifecycle.
// The token lives in the durable token store (the session cookie); this
// package is the only place that writes or clears it.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"eshoplabs.dev/eshop-web/internal/api"
)

// TokenStore is the durable home of the bearer token.
type TokenStore interface {
	Token() (string, bool)
	SetToken(token string)
	ClearToken()
}

// API is the backend auth surface the store drives.
type API interface {
	Login(ctx context.Context, email, password string) (api.Session, error)
	Register(ctx context.Context, name, email, password string) (api.Session, error)
	CurrentUser(ctx context.Context, token string) (*api.User, error)
}

// ErrInvalidCredentials is returned for empty or rejected credentials.
var ErrInvalidCredentials = errors.New("identity: invalid credentials")

// Store tracks LoggedOut -> LoggingIn -> LoggedIn. LoggingIn is only the
// in-flight window of the login call; a failed login never touches durable
// storage. On success the token is persisted immediately, before the profile
// fetch, so the rest of the app sees the authenticated state even when the
// follow-up /users/me call fails.
type Store struct {
	tokens TokenStore
	api    API
	log    *zap.Logger
}

// New builds an identity store over the given token store and backend.
func New(tokens TokenStore, backend API, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{tokens: tokens, api: backend, log: log}
}

// IsAuthenticated reports whether a bearer token is present.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.tokens.Token()
	return ok
}

// Token implements the token source consumed by the cart orchestrator.
func (s *Store) Token() (string, bool) {
	return s.tokens.Token()
}

// Login exchanges credentials for a session. The returned user may be nil
// when the profile fetch failed; the caller is still logged in.
func (s *Store) Login(ctx context.Context, email, password string) (*api.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	session, err := s.api.Login(ctx, email, password)
	if errors.Is(err, api.ErrUnauthorized) {
		// Rejected credentials are a validation outcome, not a backend fault.
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("identity: login: %w", err)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("identity: login: backend returned no token")
	}

	// Persist before the profile fetch: authentication holds even if the
	// detail call below fails.
	s.tokens.SetToken(session.Token)

	if session.User != nil {
		return session.User, nil
	}
	user, err := s.api.CurrentUser(ctx, session.Token)
	if err != nil {
		s.log.Warn("identity: profile fetch after login failed", zap.Error(err))
		return nil, nil
	}
	return user, nil
}

// Register creates an account and logs it in with the same persistence rules
// as Login.
func (s *Store) Register(ctx context.Context, name, email, password string) (*api.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	session, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return nil, fmt.Errorf("identity: register: %w", err)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("identity: register: backend returned no token")
	}
	s.tokens.SetToken(session.Token)
	return session.User, nil
}

// Logout destroys the persisted token.
func (s *Store) Logout() {
	s.tokens.ClearToken()
}

// Current resolves the profile behind the stored token. A 401 tears the
// token down; other failures leave identity intact.
func (s *Store) Current(ctx context.Context) (*api.User, bool) {
	token, ok := s.tokens.Token()
	if !ok {
		return nil, false
	}
	user, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.log.Info("identity: stored token rejected, clearing")
			s.tokens.ClearToken()
			return nil, false
		}
		s.log.Warn("identity: profile fetch failed", zap.Error(err))
		return nil, true
	}
	return user, true
}
