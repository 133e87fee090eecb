package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidInput    = errors.New("name and price are required")
)
