package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Product is a catalog item as served by the backend.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	Image       string          `json:"image,omitempty"`
	Stock       int             `json:"stock,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
	New         bool            `json:"isNew,omitempty"`
}

// Lister is the backend surface the catalog service reads from.
type Lister interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

const defaultCacheTTL = 2 * time.Minute

// Service serves the product catalog with a short-lived in-memory cache so
// page renders do not hit the backend on every request.
type Service struct {
	lister Lister
	log    *zap.Logger
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	products []Product
	expires  time.Time
	loaded   bool
}

// NewService builds a catalog service over the given backend.
func NewService(lister Lister, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		lister: lister,
		log:    log,
		ttl:    defaultCacheTTL,
		now:    time.Now,
	}
}

// SetCacheTTL overrides the cache duration (primarily for tests).
func (s *Service) SetCacheTTL(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.mu.Unlock()
}

// List returns all products, serving cached data while fresh. A backend
// failure serves the stale cache when one exists, otherwise the error.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	if s.loaded && s.now().Before(s.expires) {
		cached := s.products
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	return s.refresh(ctx)
}

// Refresh discards the cache and pulls the catalog from the backend.
func (s *Service) Refresh(ctx context.Context) ([]Product, error) {
	return s.refresh(ctx)
}

func (s *Service) refresh(ctx context.Context) ([]Product, error) {
	products, err := s.lister.ListProducts(ctx)
	if err != nil {
		s.mu.RLock()
		loaded, stale := s.loaded, s.products
		s.mu.RUnlock()
		if loaded {
			s.log.Warn("catalog refresh failed, serving stale cache", zap.Error(err))
			return stale, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.products = products
	s.expires = s.now().Add(s.ttl)
	s.loaded = true
	s.mu.Unlock()
	return products, nil
}

// ByCategory filters the catalog on the category field, case-insensitive.
func (s *Service) ByCategory(ctx context.Context, category string) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	category = strings.ToLower(strings.TrimSpace(category))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.ToLower(p.Category) == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// ByID looks a single product up in the cached catalog.
func (s *Service) ByID(ctx context.Context, id string) (*Product, bool) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, false
	}
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, true
		}
	}
	return nil, false
}

// Newest returns up to n products flagged as new, falling back to the head of
// the catalog when none are flagged.
func (s *Service) Newest(ctx context.Context, n int) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	flagged := make([]Product, 0, n)
	for _, p := range products {
		if p.New {
			flagged = append(flagged, p)
		}
	}
	if len(flagged) == 0 {
		flagged = append(flagged, products...)
	}
	sort.SliceStable(flagged, func(i, j int) bool { return flagged[i].Rating > flagged[j].Rating })
	if len(flagged) > n {
		flagged = flagged[:n]
	}
	return flagged, nil
}
