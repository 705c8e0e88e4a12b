// Package wishlist keeps a locally persisted list of product snapshots. It is
// never synced to the backend; the session cookie is its only durable home.
package wishlist

import (
	"context"

	"eshoplabs.dev/eshop-web/internal/cart"
)

// Store persists the wishlist between requests.
type Store interface {
	Load() ([]cart.Product, bool)
	Save([]cart.Product)
}

// CartAdder is the slice of the cart orchestrator used by move-to-cart.
type CartAdder interface {
	Add(ctx context.Context, ref cart.ProductRef, quantity int)
}

// Wishlist holds the in-memory list; mutations persist synchronously.
type Wishlist struct {
	store Store
	items []cart.Product
}

// New loads the persisted wishlist, starting empty when nothing usable is
// stored.
func New(store Store) *Wishlist {
	w := &Wishlist{store: store}
	if store != nil {
		if items, ok := store.Load(); ok {
			w.items = items
		}
	}
	return w
}

// Items returns the current wishlist contents.
func (w *Wishlist) Items() []cart.Product { return w.items }

// Len returns the number of wishlist entries.
func (w *Wishlist) Len() int { return len(w.items) }

// Add appends a product unless one with the same identifier is present.
func (w *Wishlist) Add(p cart.Product) {
	id := p.Identifier()
	if id == "" || w.Contains(id) {
		return
	}
	w.items = append(w.items, p)
	w.persist()
}

// Remove drops the product with the given identifier; unknown ids are a
// no-op.
func (w *Wishlist) Remove(productID string) {
	for i := range w.items {
		if w.items[i].Identifier() == productID {
			w.items = append(w.items[:i], w.items[i+1:]...)
			w.persist()
			return
		}
	}
}

// Clear empties the wishlist.
func (w *Wishlist) Clear() {
	w.items = nil
	w.persist()
}

// Contains reports whether a product id is on the list.
func (w *Wishlist) Contains(productID string) bool {
	for i := range w.items {
		if w.items[i].Identifier() == productID {
			return true
		}
	}
	return false
}

// MoveToCart removes the product from the wishlist and adds one unit to the
// cart. Unknown ids are a no-op.
func (w *Wishlist) MoveToCart(ctx context.Context, adder CartAdder, productID string) {
	for i := range w.items {
		if w.items[i].Identifier() == productID {
			p := w.items[i]
			w.items = append(w.items[:i], w.items[i+1:]...)
			w.persist()
			adder.Add(ctx, cart.RefProduct(p), 1)
			return
		}
	}
}

func (w *Wishlist) persist() {
	if w.store != nil {
		w.store.Save(w.items)
	}
}
