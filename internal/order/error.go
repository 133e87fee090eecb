package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNoItems       = errors.New("no items to order")
)
