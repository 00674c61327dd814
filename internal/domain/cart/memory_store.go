// internal/domain/cart/memory_store.go
package cart

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process cart store used in tests and single-node
// development setups.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[uint][]LineItem
}

// NewMemoryStore creates an empty in-memory cart store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[uint][]LineItem),
	}
}

// Items returns a snapshot of the user's cart lines
func (s *MemoryStore) Items(ctx context.Context, userID uint) ([]LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, len(s.carts[userID]))
	copy(items, s.carts[userID])
	return items, nil
}

// AddItem adds a line to the user's cart
func (s *MemoryStore) AddItem(ctx context.Context, userID uint, item LineItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			return nil
		}
	}
	s.carts[userID] = append(items, item)
	return nil
}

// Clear removes the user's cart entirely
func (s *MemoryStore) Clear(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}
