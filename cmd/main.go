package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/order-saga-service/internal/client"
	"github.com/cloud-wave-best-zizon/order-saga-service/internal/events"
	"github.com/cloud-wave-best-zizon/order-saga-service/internal/handler"
	"github.com/cloud-wave-best-zizon/order-saga-service/internal/repository"
	"github.com/cloud-wave-best-zizon/order-saga-service/internal/service"
	"github.com/cloud-wave-best-zizon/order-saga-service/pkg/config"
	"github.com/cloud-wave-best-zizon/order-saga-service/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.String("product_service_url", cfg.ProductServiceURL),
		zap.String("payment_service_url", cfg.PaymentServiceURL))

	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}
	orderRepo := repository.NewOrderRepository(dynamoClient, cfg.OrderTableName)

	producer := events.NewProducer(cfg.KafkaBrokers, logger)
	defer producer.Close()

	productClient := client.NewProductClient(cfg.ProductServiceURL, cfg.ClientTimeout, cfg.ClientMaxRetries, logger)
	paymentClient := client.NewPaymentClient(cfg.PaymentServiceURL, cfg.ClientTimeout, cfg.ClientMaxRetries, logger)

	orderService := service.NewOrderService(orderRepo, productClient, paymentClient, producer,
		service.BreakerSettings{
			FailureThreshold: cfg.BreakerFailureThreshold,
			Interval:         cfg.BreakerInterval,
			Cooldown:         cfg.BreakerCooldown,
			HalfOpenRequests: cfg.BreakerHalfOpenRequests,
		}, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	v1 := router.Group("/order")
	{
		v1.POST("/placeorder", orderHandler.PlaceOrder)
		v1.GET("/:orderId", orderHandler.GetOrderDetails)
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "order-saga-service",
			"port":    cfg.Port,
		})
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
