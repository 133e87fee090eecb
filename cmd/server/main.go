package main

import (
	"log"

	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/product"
	"storefront-be/internal/router"
	"storefront-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	// The payment client is built once here and injected; hosted checkout
	// stays disabled when no key is configured.
	var gateway payment.Gateway
	if cfg.StripeEnabled() {
		gateway = payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
		log.Println("Stripe gateway initialized")
	} else {
		log.Println("Stripe disabled: only direct checkout available")
	}

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, cfg.JWTSecret)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	checkoutSvc := checkout.NewService(cartRepo, orderSvc, gateway, cfg.FrontendURL)

	r := router.New(cfg, userRepo, router.Handlers{
		Users:    user.NewHandler(userSvc),
		Products: product.NewHandler(productSvc),
		Carts:    cart.NewHandler(cartSvc),
		Orders:   order.NewHandler(orderSvc),
		Checkout: checkout.NewHandler(checkoutSvc),
	})

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(r.Run(":" + cfg.AppPort))
}
