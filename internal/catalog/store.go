package catalog

import (
	"sync"

	"github.com/dshills/labelcritic/internal/nutrition"
)

// Store holds the active catalog and lets a reloader replace it while
// readers keep resolving.
type Store struct {
	mu  sync.RWMutex
	cur *Catalog
}

// NewStore returns a store serving c.
func NewStore(c *Catalog) *Store {
	return &Store{cur: c}
}

// Current returns the active catalog.
func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Swap replaces the active catalog and returns the previous one.
func (s *Store) Swap(c *Catalog) *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.cur
	s.cur = c
	return prev
}

// Resolve implements nutrition.Resolver against the active catalog.
func (s *Store) Resolve(id string) (nutrition.Product, bool) {
	c := s.Current()
	if c == nil {
		return nutrition.Product{}, false
	}
	return c.Resolve(id)
}
