package product

import "time"

type Product struct {
	ID            uint      `json:"product_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Category      *string   `json:"category"`
	ImageURL      *string   `json:"image_url"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListParams carries the public catalog query: free-text search, price and
// category filters, a whitelisted sort column and pagination.
type ListParams struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Category string
	Sort     string
	Order    string
	Page     int
	PageSize int
}

// ListResult is one page of the catalog plus the total row count.
type ListResult struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
	Sort       string    `json:"sort"`
	Order      string    `json:"order"`
}

type CreateParams struct {
	Name          string
	Description   string
	Price         float64
	Category      *string
	ImageURL      *string
	StockQuantity int
}

// UpdateParams uses nil to mean "leave unchanged".
type UpdateParams struct {
	Name          *string
	Description   *string
	Price         *float64
	Category      *string
	ImageURL      *string
	StockQuantity *int
}
