// internal/domain/cart/entity.go
package cart

import "time"

// LineItem represents a single cart line as the checkout core sees it.
// UnitPrice is in cents.
type LineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// SessionCart is the stored form of a user's cart (kept in Redis)
type SessionCart struct {
	UserID    uint       `json:"user_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Subtotal sums unit price times quantity over all items
func Subtotal(items []LineItem) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return subtotal
}
