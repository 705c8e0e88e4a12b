package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Store is the durable mirror for guest cart state. While the orchestrator is
// live its in-memory State is authoritative; the store only replays it at
// startup and absorbs it after each guest mutation.
type Store interface {
	// Load returns the persisted guest cart. ok is false when nothing usable
	// was stored.
	Load() (State, bool)
	// Save persists the guest cart. Implementations must not fail loudly; a
	// lost write degrades to an empty cart on next load.
	Save(State)
}

// persistedCartVersion tags the guest cart wire format so stale payloads can
// be rejected instead of half-parsed.
const persistedCartVersion = 1

type persistedCart struct {
	Version int             `json:"version"`
	Items   []Line          `json:"items"`
	Total   decimal.Decimal `json:"total"`
}

// MarshalState encodes a guest cart into its versioned persisted form.
func MarshalState(s State) ([]byte, error) {
	return json.Marshal(persistedCart{
		Version: persistedCartVersion,
		Items:   s.Lines,
		Total:   s.Total,
	})
}

// UnmarshalState decodes a versioned guest cart payload. Payloads without a
// version tag are treated as the legacy {items,total} shape.
func UnmarshalState(raw []byte) (State, error) {
	var p persistedCart
	if err := json.Unmarshal(raw, &p); err != nil {
		return State{}, fmt.Errorf("cart: decode persisted state: %w", err)
	}
	if p.Version != 0 && p.Version != persistedCartVersion {
		return State{}, fmt.Errorf("cart: unsupported persisted version %d", p.Version)
	}
	s := State{Lines: p.Items, Total: p.Total}
	if s.Total.IsZero() {
		s.recompute()
	}
	return s, nil
}

// MemStore is an in-memory Store used by tests and as a fallback when no
// session is available.
type MemStore struct {
	raw []byte
	set bool
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

// Load implements Store.
func (m *MemStore) Load() (State, bool) {
	if !m.set {
		return State{}, false
	}
	s, err := UnmarshalState(m.raw)
	if err != nil {
		return State{}, false
	}
	return s, true
}

// Save implements Store.
func (m *MemStore) Save(s State) {
	raw, err := MarshalState(s)
	if err != nil {
		return
	}
	m.raw = raw
	m.set = true
}
