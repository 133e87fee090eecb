package checkout

import (
	"errors"
	"io"
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func (h *Handler) Checkout(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
		return
	}

	var req checkoutRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.svc.DirectCheckout(c.Request.Context(), u.ID, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrCartEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
		case errors.Is(err, ErrUntrustedPaymentLabel):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Use the hosted checkout session for card payments",
			})
		default:
			logger.FromCtx(c.Request.Context()).Error("direct checkout failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Order created successfully",
		"order_id":    result.OrderID,
		"total_price": result.TotalPrice,
		"items_count": result.ItemsCount,
	})
}

func (h *Handler) CreateSession(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
		return
	}

	session, err := h.svc.StartHostedCheckout(c.Request.Context(), u.ID)
	if err != nil {
		switch {
		case errors.Is(err, ErrHostedUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Stripe checkout is not available. Please use direct checkout instead.",
			})
		case errors.Is(err, cart.ErrCartEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
		default:
			logger.FromCtx(c.Request.Context()).Error("create checkout session failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// Webhook receives provider events. The raw body is required for signature
// verification, so no JSON binding happens before the gateway has verified
// the payload.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid body"})
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")

	if err := h.svc.HandleWebhook(c.Request.Context(), payload, sigHeader); err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			logger.FromCtx(c.Request.Context()).Warn("webhook rejected", zap.Error(err))
			c.String(http.StatusBadRequest, "Webhook Error: %s", err.Error())
			return
		}
		logger.FromCtx(c.Request.Context()).Error("webhook processing failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
