package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"

	"go.uber.org/zap"
)

var (
	// ErrHostedUnavailable means no payment provider is configured; only
	// direct checkout works.
	ErrHostedUnavailable = errors.New("hosted checkout is not available")

	// ErrUntrustedPaymentLabel rejects a caller-supplied "stripe" label on
	// the direct path. Payment confirmation only ever arrives via the
	// provider webhook.
	ErrUntrustedPaymentLabel = errors.New("payment method not supported on direct checkout")
)

// Service dispatches between the immediate checkout path and the
// provider-hosted one. Both end in the same order-creation transaction;
// they differ only in when it runs and with which status.
type Service interface {
	DirectCheckout(ctx context.Context, userID uint, paymentMethod string) (*order.CreateResult, error)
	StartHostedCheckout(ctx context.Context, userID uint) (*payment.Session, error)
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error
}

type service struct {
	carts       cart.Repository
	orders      order.Service
	gateway     payment.Gateway
	frontendURL string
}

// NewService wires the dispatcher. gateway may be nil when no provider is
// configured; hosted checkout then reports ErrHostedUnavailable.
func NewService(carts cart.Repository, orders order.Service, gateway payment.Gateway, frontendURL string) Service {
	return &service{
		carts:       carts,
		orders:      orders,
		gateway:     gateway,
		frontendURL: frontendURL,
	}
}

// DirectCheckout aggregates the cart and runs the order transaction with
// status pending. An empty cart is a precondition failure with no side
// effects.
func (s *service) DirectCheckout(ctx context.Context, userID uint, paymentMethod string) (*order.CreateResult, error) {
	if paymentMethod == "stripe" {
		// The original flow marked such orders completed without any
		// verification; that shortcut is rejected here.
		return nil, ErrUntrustedPaymentLabel
	}

	items, err := s.carts.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, cart.ErrCartEmpty
	}

	return s.orders.CreateFromItems(ctx, userID, items, order.StatusPending)
}

// StartHostedCheckout creates a provider session for the current cart
// contents. No order is created here; that is deferred to the webhook.
func (s *service) StartHostedCheckout(ctx context.Context, userID uint) (*payment.Session, error) {
	if s.gateway == nil {
		return nil, ErrHostedUnavailable
	}

	items, err := s.carts.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, cart.ErrCartEmpty
	}

	lineItems := make([]payment.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, payment.LineItem{
			Name:       item.Name,
			UnitAmount: int64(math.Round(item.Price * 100)),
			Quantity:   int64(item.Quantity),
		})
	}

	session, err := s.gateway.CreateSession(ctx,
		lineItems,
		s.frontendURL+"/cart?success=true",
		s.frontendURL+"/cart?canceled=true",
		map[string]string{"user_id": strconv.FormatUint(uint64(userID), 10)},
	)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("hosted checkout session created",
		zap.Uint("user_id", userID),
		zap.String("session_id", session.ID),
	)

	return session, nil
}

// HandleWebhook verifies the provider signature and, on a completed
// checkout session, re-runs aggregate → order creation with status paid.
// An unverifiable event is rejected before any read or write. A cart that
// is already empty (e.g. a direct checkout won the race) makes this a
// no-op.
func (s *service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if s.gateway == nil {
		return ErrHostedUnavailable
	}

	event, err := s.gateway.VerifyWebhook(payload, sigHeader)
	if err != nil {
		return err
	}

	if event.Type != payment.EventCheckoutCompleted {
		return nil
	}

	rawID, ok := event.Metadata["user_id"]
	if !ok {
		return fmt.Errorf("webhook event missing user_id metadata")
	}
	userID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("webhook event has invalid user_id metadata: %w", err)
	}

	log := logger.FromCtx(ctx).With(zap.Uint64("user_id", userID))
	log.Info("processing completed checkout session")

	items, err := s.carts.GetItems(ctx, uint(userID))
	if err != nil {
		return err
	}
	if len(items) == 0 {
		log.Info("cart already empty, skipping order creation")
		return nil
	}

	result, err := s.orders.CreateFromItems(ctx, uint(userID), items, order.StatusPaid)
	if err != nil {
		return err
	}

	log.Info("webhook order created",
		zap.Uint("order_id", result.OrderID),
		zap.Float64("total_price", result.TotalPrice),
	)

	return nil
}
