package cart

import (
	"context"

	"go.uber.org/zap"
)

// Backend is the server cart surface the orchestrator reconciles against.
// Mutating calls return the full server cart so local state can be replaced
// wholesale.
type Backend interface {
	FetchCart(ctx context.Context, token string) (State, error)
	AddCartItem(ctx context.Context, token, productID string, quantity int) (State, error)
	UpdateCartItem(ctx context.Context, token, productID string, quantity int) (State, error)
	RemoveCartItem(ctx context.Context, token, productID string) (State, error)
	ClearCart(ctx context.Context, token string) error
}

// TokenSource exposes the current bearer token. The orchestrator never
// mutates identity; a 401 is the identity store's problem.
type TokenSource interface {
	Token() (string, bool)
}

// Orchestrator is the single authority for reading and mutating cart
// contents. It hides the guest/authenticated split: callers invoke the same
// operations in either state and the orchestrator decides whether the guest
// store or the server proxy backs them.
//
// Guest mutations apply locally and persist synchronously. Authenticated
// mutations apply optimistically, then reconcile from the server response;
// failures degrade per operation (keep the optimistic state for Add, re-fetch
// server truth for Update/Remove/Clear) and are logged, never returned.
//
// Every state change, reconciled or local, is mirrored into the store so that
// rendering (layout cart badge included) can read the orchestrator's state
// without a backend round trip.
type Orchestrator struct {
	store   Store
	backend Backend
	tokens  TokenSource
	log     *zap.Logger

	state State
}

// New builds an orchestrator and runs the entry action for the current
// identity state: authenticated sessions fetch the server cart (empty cart on
// failure), guest sessions replay the persisted guest cart.
func New(ctx context.Context, store Store, backend Backend, tokens TokenSource, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	o := &Orchestrator{
		store:   store,
		backend: backend,
		tokens:  tokens,
		log:     log,
	}
	if token, ok := o.token(); ok {
		o.fetch(ctx, token)
	} else if store != nil {
		if s, ok := store.Load(); ok {
			o.state = s
		}
	}
	return o
}

// State returns the current in-memory cart state.
func (o *Orchestrator) State() State { return o.state }

// Authenticated reports whether operations run against the server proxy.
func (o *Orchestrator) Authenticated() bool {
	_, ok := o.token()
	return ok
}

func (o *Orchestrator) token() (string, bool) {
	if o.tokens == nil {
		return "", false
	}
	return o.tokens.Token()
}

// Add appends a new line or increments an existing one. Guest adds are purely
// local; authenticated adds call the backend when the identifier is a valid
// object id and otherwise degrade to the local path so the action is never
// lost.
func (o *Orchestrator) Add(ctx context.Context, ref ProductRef, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	productID, snapshot, ok := ref.Resolve()
	if !ok {
		o.log.Warn("cart add: unresolvable product reference")
		return
	}

	token, authed := o.token()
	if !authed {
		o.applyLocalAdd(productID, snapshot, quantity)
		o.persist()
		return
	}

	if !IsValidObjectID(productID) {
		o.log.Warn("cart add: product id is not a valid object id, keeping local-only line",
			zap.String("product_id", productID))
		o.applyLocalAdd(productID, snapshot, quantity)
		o.persist()
		return
	}

	next, err := o.backend.AddCartItem(ctx, token, productID, quantity)
	if err != nil {
		o.log.Error("cart add: backend call failed, keeping optimistic local line",
			zap.String("product_id", productID), zap.Error(err))
		o.applyLocalAdd(productID, snapshot, quantity)
		o.persist()
		return
	}
	o.replace(next)
}

// Update sets the quantity of the matching line. Quantities below one are
// rejected as a guard against zero or negative updates. A backend failure
// triggers a full re-fetch: a half-applied update must not drift from server
// truth.
func (o *Orchestrator) Update(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		return
	}
	if i := o.state.findLine(productID); i >= 0 {
		o.state.Lines[i].Quantity = quantity
		o.state.recompute()
	}

	token, authed := o.token()
	if !authed {
		o.persist()
		return
	}
	if !IsValidObjectID(productID) {
		o.log.Warn("cart update: product id is not a valid object id, updated locally only",
			zap.String("product_id", productID))
		o.persist()
		return
	}

	next, err := o.backend.UpdateCartItem(ctx, token, productID, quantity)
	if err != nil {
		o.log.Error("cart update: backend call failed, re-fetching server cart",
			zap.String("product_id", productID), zap.Error(err))
		o.fetch(ctx, token)
		return
	}
	o.replace(next)
}

// Remove drops the matching line. Removing an unknown id leaves the cart
// unchanged. Backend failure re-fetches server truth.
func (o *Orchestrator) Remove(ctx context.Context, productID string) {
	if i := o.state.findLine(productID); i >= 0 {
		o.state.Lines = append(o.state.Lines[:i], o.state.Lines[i+1:]...)
		o.state.recompute()
	}

	token, authed := o.token()
	if !authed {
		o.persist()
		return
	}
	if !IsValidObjectID(productID) {
		o.log.Warn("cart remove: product id is not a valid object id, removed locally only",
			zap.String("product_id", productID))
		o.persist()
		return
	}

	next, err := o.backend.RemoveCartItem(ctx, token, productID)
	if err != nil {
		o.log.Error("cart remove: backend call failed, re-fetching server cart",
			zap.String("product_id", productID), zap.Error(err))
		o.fetch(ctx, token)
		return
	}
	o.replace(next)
}

// Clear resets the cart to empty immediately. The authenticated path fires
// the server clear without reconciling its response; on failure it re-fetches
// to correct any drift.
func (o *Orchestrator) Clear(ctx context.Context) {
	o.state = State{}
	o.persist()

	token, authed := o.token()
	if !authed {
		return
	}
	if err := o.backend.ClearCart(ctx, token); err != nil {
		o.log.Error("cart clear: backend call failed, re-fetching server cart", zap.Error(err))
		o.fetch(ctx, token)
	}
}

// Fetch replaces in-memory state with the server cart. It is a no-op for
// guest sessions.
func (o *Orchestrator) Fetch(ctx context.Context) {
	if token, ok := o.token(); ok {
		o.fetch(ctx, token)
	}
}

func (o *Orchestrator) fetch(ctx context.Context, token string) {
	next, err := o.backend.FetchCart(ctx, token)
	if err != nil {
		o.log.Error("cart fetch: backend call failed, falling back to empty cart", zap.Error(err))
		o.state = State{}
		o.persist()
		return
	}
	o.replace(next)
}

// replace adopts server state wholesale, recomputing the total when the
// response did not carry one. The adopted state is mirrored into the store.
func (o *Orchestrator) replace(next State) {
	if next.Total.IsZero() && len(next.Lines) > 0 {
		next.recompute()
	}
	o.state = next
	o.persist()
}

func (o *Orchestrator) applyLocalAdd(productID string, snapshot *Product, quantity int) {
	if i := o.state.findLine(productID); i >= 0 {
		o.state.Lines[i].Quantity += quantity
	} else {
		p := Product{ID: productID}
		if snapshot != nil {
			p = *snapshot
		}
		o.state.Lines = append(o.state.Lines, Line{Product: p, Quantity: quantity})
	}
	o.state.recompute()
}

func (o *Orchestrator) persist() {
	if o.store != nil {
		o.store.Save(o.state)
	}
}
