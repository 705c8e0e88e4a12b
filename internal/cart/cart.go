package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the partial product snapshot carried on a cart line. Guest lines
// hold whatever was cached at add time; authenticated lines hold the
// server-echoed product reference. Only the identifier and price are required
// for cart math.
type Product struct {
	ID    string          `json:"_id,omitempty"`
	AltID string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// Identifier returns the canonical product identifier, preferring _id over id.
func (p Product) Identifier() string {
	if p.ID != "" {
		return p.ID
	}
	return p.AltID
}

// Line pairs a product snapshot with a quantity. A cart holds at most one
// line per distinct product identifier.
type Line struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// State is the full cart contents plus the derived total.
type State struct {
	Lines []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Empty reports whether the cart has no lines.
func (s State) Empty() bool { return len(s.Lines) == 0 }

// ItemCount returns the summed quantity across all lines.
func (s State) ItemCount() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

// ComputeTotal derives the cart total from its lines: sum of quantity times
// unit price, decimal-exact.
func ComputeTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (s *State) recompute() {
	s.Total = ComputeTotal(s.Lines)
}

func (s *State) findLine(productID string) int {
	for i := range s.Lines {
		if s.Lines[i].Product.Identifier() == productID {
			return i
		}
	}
	return -1
}

// ProductRef is a tagged reference to a product: either a bare identifier or
// a full snapshot. It replaces shape probing on an argument of unknown type.
type ProductRef struct {
	id       string
	snapshot *Product
}

// RefID builds a ProductRef from a bare identifier string.
func RefID(id string) ProductRef {
	return ProductRef{id: strings.TrimSpace(id)}
}

// RefProduct builds a ProductRef carrying a display-ready snapshot.
func RefProduct(p Product) ProductRef {
	return ProductRef{snapshot: &p}
}

// Resolve returns the canonical identifier and, when present, the snapshot.
// ok is false when no identifier can be derived at all.
func (r ProductRef) Resolve() (id string, snapshot *Product, ok bool) {
	if r.snapshot != nil {
		id = r.snapshot.Identifier()
		return id, r.snapshot, id != ""
	}
	return r.id, nil, r.id != ""
}

// IsValidObjectID reports whether s is a 24-character hexadecimal identifier,
// the only shape the backend accepts for product ids.
func IsValidObjectID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
