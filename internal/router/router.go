package router

import (
	"net/http"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Users    *user.Handler
	Products *product.Handler
	Carts    *cart.Handler
	Orders   *order.Handler
	Checkout *checkout.Handler
}

// New builds the gin engine with the full middleware chain and route table.
func New(cfg *config.Config, userRepo user.Repository, h Handlers) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(logger.RequestLogger())
	r.Use(middleware.RateLimit())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Ecommerce API is running!"})
	})

	authRequired := middleware.RequireAuth(userRepo, cfg.JWTSecret)
	adminOnly := middleware.RequireAdmin()

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Users.Register)
		auth.POST("/login", h.Users.Login)
		auth.GET("/me", authRequired, h.Users.Me)
	}

	products := r.Group("/api/products")
	{
		products.GET("", h.Products.List)
		products.GET("/categories", h.Products.Categories)
		products.GET("/:id", h.Products.Get)
		products.POST("", authRequired, adminOnly, h.Products.Create)
		products.PUT("/:id", authRequired, adminOnly, h.Products.Update)
		products.DELETE("/:id", authRequired, adminOnly, h.Products.Delete)
	}

	carts := r.Group("/api/cart")
	{
		carts.POST("/add", authRequired, h.Carts.Add)
		carts.GET("", authRequired, h.Carts.View)
		carts.DELETE("/:product_id", authRequired, h.Carts.Remove)
		carts.POST("/checkout", authRequired, h.Checkout.Checkout)
		carts.POST("/create-checkout-session", authRequired, h.Checkout.CreateSession)
		// Signed by the provider, not by a user token.
		carts.POST("/webhook", h.Checkout.Webhook)
	}

	orders := r.Group("/api/orders")
	{
		orders.GET("", authRequired, h.Orders.List)
		orders.GET("/:id", authRequired, h.Orders.Get)
		orders.PUT("/:id/status", authRequired, adminOnly, h.Orders.UpdateStatus)
	}

	return r
}
