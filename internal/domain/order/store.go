// internal/domain/order/store.go
package order

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an order does not exist.
var ErrNotFound = errors.New("order not found")

// Store persists finalized orders. The checkout core only ever creates; the
// read side serves the confirmation and history screens.
type Store interface {
	// Create persists a new order and assigns its id and order number.
	Create(ctx context.Context, o *Order) error

	// GetByNumber returns a single order by its order number.
	GetByNumber(ctx context.Context, userID uint, orderNumber string) (*Order, error)

	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
}

// GormStore is the Postgres-backed order store
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new database-backed order store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Create persists a new order with its items in one transaction
func (s *GormStore) Create(ctx context.Context, o *Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Order number depends on the generated id
		o.OrderNumber = o.GenerateOrderNumber()
		if err := tx.Model(o).Update("order_number", o.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to update order number: %w", err)
		}

		return nil
	})
}

// GetByNumber returns a single order by its order number
func (s *GormStore) GetByNumber(ctx context.Context, userID uint, orderNumber string) (*Order, error) {
	var o Order
	result := s.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ? AND user_id = ?", orderNumber, userID).
		First(&o)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &o, nil
}

// ListByUser returns the user's orders, newest first
func (s *GormStore) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}
