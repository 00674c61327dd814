// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/shopapp-backend/internal/config"
	"github.com/your-org/shopapp-backend/internal/domain/cart"
	"github.com/your-org/shopapp-backend/internal/domain/checkout"
	"github.com/your-org/shopapp-backend/internal/domain/order"
	"github.com/your-org/shopapp-backend/internal/domain/payment"
	"github.com/your-org/shopapp-backend/internal/interfaces/http/handlers"
	"github.com/your-org/shopapp-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires up all API routes and the services behind them
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	// Stores
	cartStore := cart.NewRedisStore(redisClient, cfg)
	orderStore := order.NewGormStore(db)
	recordStore := payment.NewGormRecordStore(db)

	// Payment service fronting the processor
	processor := payment.NewStripeClient(cfg)
	paymentService := payment.NewService(cfg, processor, recordStore, logger)

	// Checkout orchestration. The gateway client calls the payment endpoints
	// over HTTP so the intent contract is exercised end to end; card
	// confirmation goes straight to the processor.
	gateway := checkout.NewHTTPGatewayClient(cfg)
	confirmer := payment.NewServerConfirmer(processor)
	checkoutService := checkout.NewService(cfg, cartStore, orderStore, gateway, confirmer, logger)

	cartHandler := handlers.NewCartHandler(cartStore)
	orderHandler := handlers.NewOrderHandler(orderStore)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cfg)

	// Payment service endpoints. Unauthenticated by contract: callers are
	// trusted clients holding the service URL.
	paymentGroup := rg.Group("/payment")
	{
		paymentGroup.POST("/create-payment-intent", paymentHandler.CreatePaymentIntent)
		paymentGroup.POST("/refund-payment", paymentHandler.RefundPayment)
	}

	// Cart routes require authentication
	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.AuthMiddleware(cfg))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.GET("/totals", cartHandler.EstimateTotals)
	}

	// Checkout session routes require authentication
	checkoutGroup := rg.Group("/checkout")
	checkoutGroup.Use(middleware.AuthMiddleware(cfg))
	{
		checkoutGroup.POST("/session", checkoutHandler.StartSession)
		checkoutGroup.GET("/session/:id", checkoutHandler.GetSession)
		checkoutGroup.PUT("/session/:id/shipping", checkoutHandler.UpdateShipping)
		checkoutGroup.PUT("/session/:id/payment", checkoutHandler.UpdatePayment)
		checkoutGroup.POST("/session/:id/continue", checkoutHandler.ContinueToPayment)
		checkoutGroup.POST("/session/:id/back", checkoutHandler.Back)
		checkoutGroup.POST("/session/:id/place-order", checkoutHandler.PlaceOrder)
	}

	// Order history routes require authentication
	orderGroup := rg.Group("/orders")
	orderGroup.Use(middleware.AuthMiddleware(cfg))
	{
		orderGroup.GET("", orderHandler.ListOrders)
		orderGroup.GET("/:number", orderHandler.GetOrder)
	}
}
