package server

import (
	"sync"

	"github.com/google/uuid"
	"github.com/tomoyak/saturation-charts/pkg/chart"
)

// generation is one stored chart set. Documents are immutable once produced,
// so handing out the stored pointers is safe.
type generation struct {
	acquisition *chart.Document
	cost        *chart.Document
}

// Store retains generated chart sets between the generate call and later
// download calls, bounded by a fixed capacity with oldest-first eviction.
type Store struct {
	mu       sync.Mutex
	capacity int
	order    []string
	items    map[string]generation
}

// NewStore returns a store retaining up to capacity generations.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = 1
	}
	return &Store{
		capacity: capacity,
		items:    make(map[string]generation),
	}
}

// Put stores a chart set and returns its generation ID.
func (s *Store) Put(acquisition, cost *chart.Document) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[id] = generation{acquisition: acquisition, cost: cost}
	s.order = append(s.order, id)
	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.items, oldest)
	}

	return id
}

// Get returns the stored chart set for id.
func (s *Store) Get(id string) (acquisition, cost *chart.Document, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, nil, false
	}
	return item.acquisition, item.cost, true
}

// Len returns the number of retained generations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
