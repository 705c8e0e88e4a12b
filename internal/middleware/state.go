package middleware

import (
	"encoding/json"

	"eshoplabs.dev/eshop-web/internal/cart"
)

// The session cookie is the durable client-side mirror. These adapters give
// the domain packages typed access to their slots without leaking cookie
// mechanics into them.

// Authenticated reports whether the session carries a bearer token.
func (s *SessionData) Authenticated() bool { return s.AuthToken != "" }

// SessionCartStore implements cart.Store over the session's cart slot. The
// slot holds the guest cart for anonymous shoppers and a mirror of the last
// reconciled server cart for authenticated ones, so render-time reads (the
// layout badge) never need a backend call.
type SessionCartStore struct {
	sd *SessionData
}

// CartStore returns a cart.Store view of the session.
func CartStore(sd *SessionData) *SessionCartStore {
	return &SessionCartStore{sd: sd}
}

// Load implements cart.Store.
func (s *SessionCartStore) Load() (cart.State, bool) {
	if len(s.sd.GuestCart) == 0 {
		return cart.State{}, false
	}
	state, err := cart.UnmarshalState(s.sd.GuestCart)
	if err != nil {
		return cart.State{}, false
	}
	return state, true
}

// Save implements cart.Store.
func (s *SessionCartStore) Save(state cart.State) {
	raw, err := cart.MarshalState(state)
	if err != nil {
		return
	}
	s.sd.GuestCart = raw
	s.sd.MarkDirty()
}

// Drop empties the cart slot. Logout uses it so the mirrored server cart does
// not survive into the next guest session.
func (s *SessionCartStore) Drop() {
	if len(s.sd.GuestCart) == 0 {
		return
	}
	s.sd.GuestCart = nil
	s.sd.MarkDirty()
}

// SessionWishlistStore persists the wishlist product list in the session.
type SessionWishlistStore struct {
	sd *SessionData
}

// WishlistStore returns a wishlist store view of the session.
func WishlistStore(sd *SessionData) *SessionWishlistStore {
	return &SessionWishlistStore{sd: sd}
}

// Load returns the persisted wishlist items.
func (s *SessionWishlistStore) Load() ([]cart.Product, bool) {
	if len(s.sd.Wishlist) == 0 {
		return nil, false
	}
	var items []cart.Product
	if err := json.Unmarshal(s.sd.Wishlist, &items); err != nil {
		return nil, false
	}
	return items, true
}

// Save persists the wishlist items.
func (s *SessionWishlistStore) Save(items []cart.Product) {
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	s.sd.Wishlist = raw
	s.sd.MarkDirty()
}

// SessionTokens exposes the bearer token slot to the identity store.
type SessionTokens struct {
	sd *SessionData
}

// Tokens returns a token store view of the session.
func Tokens(sd *SessionData) *SessionTokens {
	return &SessionTokens{sd: sd}
}

// Token returns the stored bearer token.
func (s *SessionTokens) Token() (string, bool) {
	return s.sd.AuthToken, s.sd.AuthToken != ""
}

// SetToken persists a new bearer token. The session id is regenerated to
// prevent fixation across the authentication boundary.
func (s *SessionTokens) SetToken(token string) {
	if s.sd.AuthToken == token {
		return
	}
	s.sd.AuthToken = token
	s.sd.RegenerateID()
}

// ClearToken drops the bearer token. The cart slot is not touched here;
// logout drops it separately via SessionCartStore.Drop.
func (s *SessionTokens) ClearToken() {
	if s.sd.AuthToken == "" {
		return
	}
	s.sd.AuthToken = ""
	s.sd.RegenerateID()
}
