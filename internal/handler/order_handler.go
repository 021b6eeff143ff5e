package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/order-saga-service/internal/domain"
)

// Orchestrator is the saga surface the HTTP layer depends on.
type Orchestrator interface {
	PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest, requestID string) (string, error)
	GetOrderDetails(ctx context.Context, orderID string) (domain.OrderDetailView, error)
}

type OrderHandler struct {
	orders Orchestrator
	logger *zap.Logger
}

func NewOrderHandler(orders Orchestrator, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req domain.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	requestID := c.GetString("request_id")

	orderID, err := h.orders.PlaceOrder(c.Request.Context(), req, requestID)
	if err != nil {
		h.logger.Error("Failed to place order",
			zap.String("request_id", requestID),
			zap.Error(err))

		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{
				"error":      "Insufficient stock for product",
				"request_id": requestID,
			})
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":      "Product not found",
				"request_id": requestID,
			})
		default:
			body := gin.H{
				"error":      "Failed to place order",
				"request_id": requestID,
			}
			// Finalize failures still carry the created order id.
			if orderID != "" {
				body["order_id"] = orderID
			}
			c.JSON(http.StatusBadGateway, body)
		}
		return
	}

	c.JSON(http.StatusCreated, domain.PlaceOrderResponse{
		OrderID: orderID,
	})
}

func (h *OrderHandler) GetOrderDetails(c *gin.Context) {
	orderID := c.Param("orderId")

	view, err := h.orders.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":    "Order not found",
				"order_id": orderID,
			})
			return
		}
		h.logger.Error("Failed to get order details",
			zap.String("order_id", orderID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order details"})
		return
	}

	c.JSON(http.StatusOK, view)
}
