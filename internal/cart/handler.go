package cart

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type addRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

func (h *Handler) Add(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
		return
	}

	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	line, err := h.svc.AddToCart(c.Request.Context(), AddParams{
		UserID:    u.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		logger.FromCtx(c.Request.Context()).Error("add to cart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, line)
}

func (h *Handler) View(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
		return
	}

	items, err := h.svc.GetCart(c.Request.Context(), u.ID)
	if err != nil {
		logger.FromCtx(c.Request.Context()).Error("get cart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Remove(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	if err := h.svc.RemoveFromCart(c.Request.Context(), u.ID, uint(productID)); err != nil {
		if errors.Is(err, ErrLineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
			return
		}
		logger.FromCtx(c.Request.Context()).Error("remove from cart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}
