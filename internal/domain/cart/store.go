// internal/domain/cart/store.go
package cart

import (
	"context"
	"errors"
)

// ErrEmptyCart is returned when an operation requires a non-empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// Store is the cart collaborator the checkout core depends on. The checkout
// flow only ever reads a snapshot of the items and clears the cart after a
// successful order; it never mutates individual lines.
type Store interface {
	// Items returns a snapshot of the user's cart lines.
	Items(ctx context.Context, userID uint) ([]LineItem, error)

	// AddItem adds a line to the user's cart, merging quantity into an
	// existing line for the same product.
	AddItem(ctx context.Context, userID uint, item LineItem) error

	// Clear removes the user's cart entirely.
	Clear(ctx context.Context, userID uint) error
}
