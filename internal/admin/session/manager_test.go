package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fixedClock struct {
	current time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.current
}

func newTestManager(t *testing.T) (*Manager, *fixedClock) {
	t.Helper()

	hashKey := []byte("12345678901234567890123456789012")
	blockKey := []byte("abcdefghijklmnopqrstuv0123456789")
	clock := &fixedClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	mgr, err := NewManager(Config{
		CookieName:  "test_session",
		HashKey:     hashKey,
		BlockKey:    blockKey,
		CookiePath:  "/",
		IdleTimeout: 10 * time.Minute,
		Lifetime:    2 * time.Hour,
		Now:         clock.Now,
	})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	return mgr, clock
}

func TestManager_NewSessionLifecycle(t *testing.T) {
	mgr, clock := newTestManager(t)

	req := httptest.NewRequest("GET", "/admin", nil)
	sess, err := mgr.Load(req)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if sess == nil || sess.ID() == "" {
		t.Fatalf("expected session with ID")
	}
	if !sess.CreatedAt().Equal(clock.current) {
		t.Fatalf("unexpected CreatedAt: %v", sess.CreatedAt())
	}

	sess.SetUser(&User{ID: "64f1c0ffee0ddba11ca7ee01", Name: "Val", Email: "val@example.com"})
	sess.SetAPIToken("token-xyz")
	token, err := sess.EnsureCSRFToken()
	if err != nil || token == "" {
		t.Fatalf("expected csrf token: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := mgr.Save(rec, sess); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	cookie := findCookie(rec.Result().Cookies(), "test_session")
	if cookie == nil {
		t.Fatalf("expected session cookie to be set")
	}

	clock.current = clock.current.Add(5 * time.Minute)
	req2 := httptest.NewRequest("GET", "/admin", nil)
	req2.AddCookie(cookie)
	sess2, err := mgr.Load(req2)
	if err != nil {
		t.Fatalf("Load existing error: %v", err)
	}
	if sess2.User() == nil || sess2.User().Email != "val@example.com" {
		t.Fatalf("expected user to persist")
	}
	if sess2.APIToken() != "token-xyz" {
		t.Fatalf("expected api token to persist")
	}
	if sess2.CSRFToken() != token {
		t.Fatalf("expected csrf token to persist")
	}
}

func TestManager_SetAPITokenRotatesID(t *testing.T) {
	mgr, _ := newTestManager(t)
	sess := mgr.New()
	before := sess.ID()
	sess.SetAPIToken("token-abc")
	if sess.ID() == before {
		t.Fatalf("expected session id rotation on login")
	}
}

func TestManager_IdleTimeout(t *testing.T) {
	mgr, clock := newTestManager(t)
	req := httptest.NewRequest("GET", "/admin", nil)
	sess, err := mgr.Load(req)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	rec := httptest.NewRecorder()
	if err := mgr.Save(rec, sess); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	cookie := findCookie(rec.Result().Cookies(), "test_session")

	clock.current = clock.current.Add(20 * time.Minute)
	req2 := httptest.NewRequest("GET", "/admin", nil)
	req2.AddCookie(cookie)
	if _, err := mgr.Load(req2); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestManager_TamperedCookieYieldsFreshSession(t *testing.T) {
	mgr, _ := newTestManager(t)
	sess := mgr.New()
	sess.SetAPIToken("token-abc")
	rec := httptest.NewRecorder()
	if err := mgr.Save(rec, sess); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	cookie := findCookie(rec.Result().Cookies(), "test_session")
	cookie.Value = cookie.Value[:len(cookie.Value)-2] + "xx"

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(cookie)
	fresh, err := mgr.Load(req)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if fresh.APIToken() != "" {
		t.Fatalf("expected fresh session after tamper")
	}
}

func TestManager_Destroy(t *testing.T) {
	mgr, _ := newTestManager(t)
	req := httptest.NewRequest("GET", "/admin", nil)
	sess, _ := mgr.Load(req)
	rec := httptest.NewRecorder()
	sess.Destroy()
	if err := mgr.Save(rec, sess); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	cookie := findCookie(rec.Result().Cookies(), "test_session")
	if cookie == nil || cookie.MaxAge != -1 {
		t.Fatalf("expected session cookie cleared")
	}
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
