package cart

import "time"

// Line is one cart row as stored.
type Line struct {
	CartID    uint      `json:"cart_id"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is a cart line joined with live product data. Price and name are the
// current catalog values; order creation snapshots them at checkout time.
type Item struct {
	CartID    uint    `json:"cart_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type AddParams struct {
	UserID    uint
	ProductID uint
	Quantity  int
}
