package order

import (
	"context"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for orders. CreateFromItems is the
// order-creation transaction entry point used by both checkout paths.
type Service interface {
	CreateFromItems(ctx context.Context, userID uint, items []cart.Item, status string) (*CreateResult, error)
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	GetByID(ctx context.Context, orderID, userID uint) (*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateFromItems totals the snapshot prices carried in the aggregate (never
// re-queried) and runs the atomic insert/insert/delete sequence.
func (s *service) CreateFromItems(
	ctx context.Context,
	userID uint,
	items []cart.Item,
	status string,
) (*CreateResult, error) {

	if len(items) == 0 {
		return nil, ErrNoItems
	}

	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	orderID, err := s.repo.CreateOrderTx(ctx, userID, items, total, status)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order created",
		zap.Uint("order_id", orderID),
		zap.Uint("user_id", userID),
		zap.Float64("total_price", total),
		zap.Int("items_count", len(items)),
	)

	return &CreateResult{
		OrderID:    orderID,
		TotalPrice: total,
		ItemsCount: len(items),
	}, nil
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) GetByID(ctx context.Context, orderID, userID uint) (*Order, error) {
	return s.repo.GetByID(ctx, orderID, userID)
}

func (s *service) UpdateStatus(ctx context.Context, orderID uint, status string) (*Order, error) {
	return s.repo.UpdateStatus(ctx, orderID, status)
}
