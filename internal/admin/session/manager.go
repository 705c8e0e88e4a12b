// Package session persists admin console sign-in state in a signed,
// encrypted cookie.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	defaultCookieName  = "eshop_admin_session"
	defaultCookiePath  = "/"
	defaultLifetime    = 12 * time.Hour
	defaultIdleTimeout = 30 * time.Minute
)

// ErrExpired indicates the stored session is no longer valid due to idle or absolute expiry.
var ErrExpired = errors.New("session expired")

// ErrInvalidConfig indicates the manager was initialised with missing or invalid options.
var ErrInvalidConfig = errors.New("session: invalid config")

// User captures the authenticated staff profile persisted in the session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Data represents the full persisted session payload.
type Data struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
	ExpiresAt  time.Time `json:"expiresAt,omitempty"`
	CSRFToken  string    `json:"csrfToken,omitempty"`
	User       *User     `json:"user,omitempty"`
	APIToken   string    `json:"apiToken,omitempty"`
}

// Session holds mutable state for the current request lifecycle.
type Session struct {
	data      Data
	dirty     bool
	destroyed bool
	cfg       *Config
}

// Config controls cookie encoding and lifecycle limits for the session manager.
type Config struct {
	CookieName     string
	HashKey        []byte
	BlockKey       []byte
	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite http.SameSite

	IdleTimeout time.Duration
	Lifetime    time.Duration
	Now         func() time.Time
}

// Manager decodes and persists session state via signed (and optionally encrypted) cookies.
type Manager struct {
	cfg   Config
	codec *securecookie.SecureCookie
	now   func() time.Time
}

// NewManager constructs a Manager using the provided configuration.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.HashKey) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidConfig)
	}

	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = defaultCookiePath
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = defaultLifetime
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	if cfg.CookieSameSite == http.SameSiteDefaultMode {
		cfg.CookieSameSite = http.SameSiteLaxMode
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &Manager{cfg: cfg, codec: codec, now: nowFn}, nil
}

// Load retrieves the session from the incoming request or creates a new one.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return m.newSession(m.now()), nil
	}

	var stored Data
	if err := m.codec.Decode(m.cfg.CookieName, cookie.Value, &stored); err != nil {
		return m.newSession(m.now()), nil
	}

	sess := m.sessionFromData(stored)
	if m.isExpired(sess, m.now()) {
		return nil, ErrExpired
	}
	return sess, nil
}

// Save writes the session back to the response as a cookie. Destroyed sessions clear the cookie.
func (m *Manager) Save(w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return errors.New("session: nil session")
	}

	if sess.destroyed {
		http.SetCookie(w, m.expiredCookie())
		return nil
	}

	sess.Touch(m.now())
	data := sess.data

	encoded, err := m.codec.Encode(m.cfg.CookieName, data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	cookie := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    encoded,
		Path:     m.cfg.CookiePath,
		Domain:   m.cfg.CookieDomain,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: m.cfg.CookieSameSite,
	}
	if !data.ExpiresAt.IsZero() {
		expiry := data.ExpiresAt.UTC()
		cookie.Expires = expiry
		remaining := expiry.Sub(m.now())
		if remaining <= 0 {
			cookie.MaxAge = -1
		} else {
			cookie.MaxAge = int(remaining.Round(time.Second).Seconds())
		}
	}

	http.SetCookie(w, cookie)
	return nil
}

// Destroy invalidates the session cookie immediately.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, m.expiredCookie())
}

func (m *Manager) newSession(now time.Time) *Session {
	data := Data{
		ID:         mustGenerateToken(32),
		CreatedAt:  now.UTC(),
		LastActive: now.UTC(),
	}
	data.ExpiresAt = m.cfg.computeExpiry(now)
	return &Session{data: data, dirty: true, cfg: &m.cfg}
}

// New returns a new empty session instance using the manager configuration.
func (m *Manager) New() *Session {
	return m.newSession(m.now())
}

func (m *Manager) sessionFromData(d Data) *Session {
	if d.ID == "" {
		d.ID = mustGenerateToken(32)
		d.CreatedAt = m.now().UTC()
		d.LastActive = d.CreatedAt
		d.ExpiresAt = m.cfg.computeExpiry(d.CreatedAt)
	}
	return &Session{data: d, cfg: &m.cfg}
}

func (m *Manager) isExpired(sess *Session, now time.Time) bool {
	if sess == nil {
		return true
	}
	now = now.UTC()

	if !sess.data.ExpiresAt.IsZero() && now.After(sess.data.ExpiresAt.UTC()) {
		return true
	}
	if m.cfg.IdleTimeout > 0 {
		last := sess.data.LastActive
		if last.IsZero() {
			last = sess.data.CreatedAt
		}
		if !last.IsZero() && now.Sub(last) > m.cfg.IdleTimeout {
			return true
		}
	}
	return false
}

func (m *Manager) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     m.cfg.CookiePath,
		Domain:   m.cfg.CookieDomain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: m.cfg.CookieSameSite,
	}
}

// ID returns the stable session identifier.
func (s *Session) ID() string { return s.data.ID }

// CreatedAt returns the session creation timestamp.
func (s *Session) CreatedAt() time.Time { return s.data.CreatedAt }

// ExpiresAt returns the absolute expiry timestamp for the session.
func (s *Session) ExpiresAt() time.Time { return s.data.ExpiresAt }

// EnsureCSRFToken returns the existing CSRF token or generates a new one on demand.
func (s *Session) EnsureCSRFToken() (string, error) {
	if s.data.CSRFToken != "" {
		return s.data.CSRFToken, nil
	}
	token, err := generateToken(32)
	if err != nil {
		return "", err
	}
	s.data.CSRFToken = token
	s.dirty = true
	return token, nil
}

// CSRFToken returns the stored CSRF token value.
func (s *Session) CSRFToken() string { return s.data.CSRFToken }

// User returns the persisted staff profile, if present.
func (s *Session) User() *User { return s.data.User }

// SetUser updates the session user profile.
func (s *Session) SetUser(user *User) {
	if user == nil {
		if s.data.User == nil {
			return
		}
		s.data.User = nil
		s.dirty = true
		return
	}
	if s.data.User != nil && *s.data.User == *user {
		return
	}
	copied := *user
	s.data.User = &copied
	s.dirty = true
}

// APIToken returns the stored backend bearer token.
func (s *Session) APIToken() string { return s.data.APIToken }

// SetAPIToken stores the backend bearer token; the session id rotates so a
// pre-login cookie cannot be fixed onto the signed-in session.
func (s *Session) SetAPIToken(token string) {
	if s.data.APIToken == token {
		return
	}
	s.data.APIToken = token
	s.data.ID = mustGenerateToken(32)
	s.dirty = true
}

// Destroy marks the session for deletion at the end of the request.
func (s *Session) Destroy() {
	s.destroyed = true
	s.dirty = true
}

// Destroyed exposes the destroy marker.
func (s *Session) Destroyed() bool { return s.destroyed }

// Touch updates the last active timestamp.
func (s *Session) Touch(now time.Time) {
	now = now.UTC()
	if now.After(s.data.LastActive) {
		s.data.LastActive = now
		s.dirty = true
	}
}

// Dirty indicates whether the session contents have changed during this request.
func (s *Session) Dirty() bool { return s.dirty }

func (cfg *Config) computeExpiry(from time.Time) time.Time {
	if cfg == nil || cfg.Lifetime <= 0 {
		return time.Time{}
	}
	return from.UTC().Add(cfg.Lifetime).UTC()
}

func mustGenerateToken(length int) string {
	token, err := generateToken(length)
	if err != nil {
		panic(err)
	}
	return token
}

func generateToken(length int) (string, error) {
	if length <= 0 {
		length = 32
	}
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
