// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	// OrderStatusProcessing is the status every order is created with.
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// Order represents a finalized checkout. Orders are created exactly once per
// successful checkout and are immutable from the checkout core's
// perspective; later lifecycle changes belong to order management.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Status      OrderStatus `gorm:"not null;default:'processing'" json:"status"`

	// Financial information, all in cents. Derived by the pricing
	// calculator, never edited independently.
	SubtotalAmount int64 `gorm:"not null" json:"subtotal_amount"`
	ShippingAmount int64 `gorm:"default:0" json:"shipping_amount"`
	TaxAmount      int64 `gorm:"default:0" json:"tax_amount"`
	TotalAmount    int64 `gorm:"not null" json:"total_amount"`

	Currency string `gorm:"size:3;default:'usd'" json:"currency"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	ShippingMethod  string  `gorm:"size:50" json:"shipping_method"` // Standard or Express

	// PaymentMethod is a display descriptor only, e.g.
	// "Credit Card (ending in 4242)". Raw card data is never stored.
	PaymentMethod   string `gorm:"size:100" json:"payment_method"`
	PaymentIntentID string `gorm:"size:255;index" json:"payment_intent_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is a snapshot of a cart line at the time the order was placed
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	ProductID  string    `gorm:"not null;size:100;index" json:"product_id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Image      string    `gorm:"size:512" json:"image,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      int64     `gorm:"not null" json:"price"`       // Price per unit in cents
	TotalPrice int64     `gorm:"not null" json:"total_price"` // Quantity * Price
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Address represents the shipping address captured at checkout
type Address struct {
	Name    string `gorm:"size:100" json:"name"`
	Street  string `gorm:"size:255" json:"street"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:100" json:"state"`
	Zip     string `gorm:"size:20" json:"zip"`
	Country string `gorm:"size:100" json:"country"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GenerateOrderNumber generates a unique order number
func (o *Order) GenerateOrderNumber() string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), o.ID)
}

// GetFormattedTotal returns total amount as float dollars
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalAmount) / 100
}
