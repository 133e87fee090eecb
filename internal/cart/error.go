package cart

import "errors"

var (
	ErrCartEmpty       = errors.New("cart is empty")
	ErrLineNotFound    = errors.New("cart item not found")
	ErrProductNotFound = errors.New("product not found")
)
