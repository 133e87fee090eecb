package order

import "time"

// Status values the system itself writes. Admins may overwrite an order's
// status with arbitrary text; nothing downstream enforces a transition graph.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCompleted = "completed"
)

type Order struct {
	ID         uint      `json:"order_id"`
	UserID     uint      `json:"user_id"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	Items      []Item    `json:"items"`
}

// Item is a snapshot of (product, quantity, price) at order time. Price is
// decoupled from the live catalog so historical orders stay stable.
type Item struct {
	ID        uint    `json:"order_item_id,omitempty"`
	OrderID   uint    `json:"-"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name,omitempty"`
}

// CreateResult reports a successful order-creation transaction.
type CreateResult struct {
	OrderID    uint    `json:"order_id"`
	TotalPrice float64 `json:"total_price"`
	ItemsCount int     `json:"items_count"`
}
