// internal/domain/order/memory_store.go
package order

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process order store used in tests
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint
	orders []Order
}

// NewMemoryStore creates an empty in-memory order store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Create persists a new order and assigns its id and order number
func (s *MemoryStore) Create(ctx context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.nextID
	s.nextID++
	o.OrderNumber = o.GenerateOrderNumber()

	stored := *o
	stored.Items = make([]OrderItem, len(o.Items))
	copy(stored.Items, o.Items)
	s.orders = append(s.orders, stored)
	return nil
}

// GetByNumber returns a single order by its order number
func (s *MemoryStore) GetByNumber(ctx context.Context, userID uint, orderNumber string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].OrderNumber == orderNumber && s.orders[i].UserID == userID {
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

// ListByUser returns the user's orders, newest first
func (s *MemoryStore) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []Order
	for i := range s.orders {
		if s.orders[i].UserID == userID {
			orders = append(orders, s.orders[i])
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].ID > orders[j].ID
	})
	return orders, nil
}
