package cart

import (
	"context"
	"errors"

	"storefront-be/internal/product"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, params AddParams) (*Line, error)
	GetCart(ctx context.Context, userID uint) ([]Item, error)
	RemoveFromCart(ctx context.Context, userID, productID uint) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) AddToCart(ctx context.Context, params AddParams) (*Line, error) {
	if params.Quantity <= 0 {
		params.Quantity = 1
	}

	// Reject unknown products up front rather than surfacing an FK violation.
	if _, err := s.productRepo.GetByID(ctx, params.ProductID); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return s.repo.AddItem(ctx, params)
}

func (s *service) GetCart(ctx context.Context, userID uint) ([]Item, error) {
	return s.repo.GetItems(ctx, userID)
}

func (s *service) RemoveFromCart(ctx context.Context, userID, productID uint) error {
	return s.repo.RemoveItem(ctx, userID, productID)
}
