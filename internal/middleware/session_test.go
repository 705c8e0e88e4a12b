package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"eshoplabs.dev/eshop-web/internal/cart"
	mw "eshoplabs.dev/eshop-web/internal/middleware"
)

// roundTrip runs a request through the Session middleware with the cookies
// from a previous response and returns the captured session plus response.
func roundTrip(t *testing.T, cookies []*http.Cookie, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.ResponseRecorder, *mw.SessionData) {
	t.Helper()

	var captured *mw.SessionData
	h := mw.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = mw.GetSession(r)
		handler(w, r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, captured
}

func TestSessionIsCreatedAndRestored(t *testing.T) {
	rec, first := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	require.NotEmpty(t, first.ID)
	require.NotEmpty(t, first.CSRFToken)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	_, second := roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.CSRFToken, second.CSRFToken)
}

func TestTamperedCookieYieldsFreshSession(t *testing.T) {
	rec, first := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	cookies := rec.Result().Cookies()
	for _, c := range cookies {
		c.Value = c.Value + "x"
	}
	_, second := roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	require.NotEqual(t, first.ID, second.ID)
}

func TestGuestCartSurvivesTheCookieRoundTrip(t *testing.T) {
	price := decimal.NewFromInt(10)

	rec, _ := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		store := mw.CartStore(mw.GetSession(r))
		store.Save(cart.State{
			Lines: []cart.Line{{Product: cart.Product{ID: "x", Price: price}, Quantity: 2}},
			Total: price.Mul(decimal.NewFromInt(2)),
		})
		_, _ = io.WriteString(w, "ok")
	})

	_, sd := roundTrip(t, rec.Result().Cookies(), func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	state, ok := mw.CartStore(sd).Load()
	require.True(t, ok)
	require.Len(t, state.Lines, 1)
	require.Equal(t, 2, state.Lines[0].Quantity)
	require.True(t, state.Total.Equal(decimal.NewFromInt(20)))
}

func TestTokenStoreRegeneratesSessionID(t *testing.T) {
	rec, first := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		mw.Tokens(mw.GetSession(r)).SetToken("jwt")
		_, _ = io.WriteString(w, "ok")
	})
	require.NotEmpty(t, first.AuthToken)

	_, sd := roundTrip(t, rec.Result().Cookies(), func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	require.True(t, sd.Authenticated())
	token, ok := mw.Tokens(sd).Token()
	require.True(t, ok)
	require.Equal(t, "jwt", token)
	require.NotEqual(t, first.ID, "", "session id must be regenerated on login")
}

func TestWishlistStoreRoundTrip(t *testing.T) {
	rec, _ := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		mw.WishlistStore(mw.GetSession(r)).Save([]cart.Product{{ID: "a", Name: "Tee"}})
		_, _ = io.WriteString(w, "ok")
	})

	_, sd := roundTrip(t, rec.Result().Cookies(), func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	items, ok := mw.WishlistStore(sd).Load()
	require.True(t, ok)
	require.Len(t, items, 1)
	require.Equal(t, "Tee", items[0].Name)
}
