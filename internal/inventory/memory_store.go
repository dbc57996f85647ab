package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type categoryCounter struct {
	capacity  int
	available int
}

// MemoryStore implements Store over an in-process map. The mutex gives it
// the same check-and-write atomicity the SQL store gets from its conditional
// UPDATE. It backs unit tests and the concurrency tests that hammer a single
// category from many goroutines.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[uuid.UUID]*categoryCounter
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[uuid.UUID]*categoryCounter)}
}

// AddCategory registers a category with the given capacity, fully available.
func (s *MemoryStore) AddCategory(categoryID uuid.UUID, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[categoryID] = &categoryCounter{capacity: capacity, available: capacity}
}

func (s *MemoryStore) Reserve(ctx context.Context, categoryID uuid.UUID, quantity int) (int, error) {
	if quantity < 1 {
		return 0, fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counter, ok := s.counters[categoryID]
	if !ok {
		return 0, ErrCategoryNotFound
	}
	if counter.available < quantity {
		return 0, ErrInsufficient
	}
	counter.available -= quantity
	return counter.available, nil
}

func (s *MemoryStore) Release(ctx context.Context, categoryID uuid.UUID, quantity int) (int, error) {
	if quantity < 1 {
		return 0, fmt.Errorf("release quantity must be positive, got %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counter, ok := s.counters[categoryID]
	if !ok {
		return 0, ErrCategoryNotFound
	}
	if counter.available+quantity > counter.capacity {
		return 0, ErrOverRelease
	}
	counter.available += quantity
	return counter.available, nil
}

func (s *MemoryStore) Availability(ctx context.Context, categoryID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter, ok := s.counters[categoryID]
	if !ok {
		return 0, ErrCategoryNotFound
	}
	return counter.available, nil
}
