package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cloud-wave-best-zizon/order-saga-service/internal/domain"
	"github.com/cloud-wave-best-zizon/order-saga-service/internal/events"
)

// OrderStore is the keyed persistence contract for order records. Create
// assigns the order id.
type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}

// ProductClient reserves stock and looks up product facts.
type ProductClient interface {
	Reserve(ctx context.Context, productID string, quantity int) error
	GetProduct(ctx context.Context, productID string) (*domain.ProductDetails, error)
}

// PaymentClient executes payments and looks up payment facts by order.
type PaymentClient interface {
	Pay(ctx context.Context, req domain.PaymentRequest) (string, error)
	GetPaymentByOrder(ctx context.Context, orderID string) (*domain.PaymentDetails, error)
}

// EventProducer publishes saga events. Publishing is best-effort; a publish
// failure never fails the saga.
type EventProducer interface {
	PublishOrderPlaced(event events.OrderPlacedEvent) error
	PublishCompensation(event events.CompensationEvent) error
}

// BreakerSettings tunes the circuit breaker around the detail-aggregation
// workflow. These are deployment policy, not contract values.
type BreakerSettings struct {
	// FailureThreshold is the number of consecutive downstream failures that
	// opens the breaker.
	FailureThreshold uint32
	// Interval is the rolling window over which counts are cleared while the
	// breaker is closed.
	Interval time.Duration
	// Cooldown is how long the breaker stays open before allowing trial calls.
	Cooldown time.Duration
	// HalfOpenRequests is the number of trial calls permitted half-open.
	HalfOpenRequests uint32
}

func (bs BreakerSettings) withDefaults() BreakerSettings {
	if bs.FailureThreshold == 0 {
		bs.FailureThreshold = 5
	}
	if bs.Cooldown == 0 {
		bs.Cooldown = 30 * time.Second
	}
	if bs.HalfOpenRequests == 0 {
		bs.HalfOpenRequests = 1
	}
	return bs
}

// OrderService orchestrates the order placement saga and the detail
// aggregation read path across the product service, the payment service and
// the order store.
type OrderService struct {
	store    OrderStore
	products ProductClient
	payments PaymentClient
	producer EventProducer
	breaker  *gobreaker.CircuitBreaker[domain.OrderDetailView]
	logger   *zap.Logger
}

func NewOrderService(store OrderStore, products ProductClient, payments PaymentClient, producer EventProducer, bs BreakerSettings, logger *zap.Logger) *OrderService {
	bs = bs.withDefaults()
	s := &OrderService{
		store:    store,
		products: products,
		payments: payments,
		producer: producer,
		logger:   logger,
	}

	s.breaker = gobreaker.NewCircuitBreaker[domain.OrderDetailView](gobreaker.Settings{
		Name:        "order-details",
		MaxRequests: bs.HalfOpenRequests,
		Interval:    bs.Interval,
		Timeout:     bs.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.FailureThreshold
		},
		// An unknown order id says nothing about downstream health, so it
		// must not count toward the failure budget.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrOrderNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return s
}

// PlaceOrder runs the placement saga: reserve stock, persist the order as
// CREATED, attempt payment, finalize the status. Once the order record exists
// its id is returned even when later steps fail; callers must inspect the
// order status to learn the payment outcome.
func (s *OrderService) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest, requestID string) (string, error) {
	if err := s.products.Reserve(ctx, req.ProductID, req.Quantity); err != nil {
		s.logger.Error("Inventory reservation failed, aborting placement",
			zap.String("product_id", req.ProductID),
			zap.Int("quantity", req.Quantity),
			zap.String("request_id", requestID),
			zap.Error(err))
		return "", fmt.Errorf("reserve inventory: %w", err)
	}

	order := &domain.Order{
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		Amount:      req.TotalAmount,
		PaymentMode: req.PaymentMode,
		OrderDate:   time.Now().UTC(),
		Status:      domain.OrderStatusCreated,
	}
	if err := s.store.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist order",
			zap.String("product_id", req.ProductID),
			zap.String("request_id", requestID),
			zap.Error(err))
		return "", fmt.Errorf("persist order: %w", err)
	}

	outcome := s.attemptPayment(ctx, order)

	next := domain.OrderStatusPlaced
	if !outcome.Paid {
		next = domain.OrderStatusPaymentFailed
	}
	if err := order.Transition(next); err != nil {
		return order.OrderID, err
	}
	if err := s.store.Update(ctx, order); err != nil {
		s.logger.Error("Failed to finalize order status",
			zap.String("order_id", order.OrderID),
			zap.String("status", string(order.Status)),
			zap.Error(err))
		return order.OrderID, fmt.Errorf("finalize order %s: %w", order.OrderID, err)
	}

	s.publishOutcome(order, outcome, requestID)

	s.logger.Info("Order placement finished",
		zap.String("order_id", order.OrderID),
		zap.String("status", string(order.Status)),
		zap.String("request_id", requestID))
	return order.OrderID, nil
}

// attemptPayment is the saga's payment step. A rejected or unreachable
// payment service is a normal outcome here, reflected in the order status
// rather than an error.
func (s *OrderService) attemptPayment(ctx context.Context, order *domain.Order) domain.PaymentOutcome {
	paymentID, err := s.payments.Pay(ctx, domain.PaymentRequest{
		OrderID:         order.OrderID,
		PaymentMode:     order.PaymentMode,
		Amount:          order.Amount,
		ReferenceNumber: order.OrderID,
	})
	if err != nil {
		s.logger.Error("Payment attempt failed",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		return domain.PaymentOutcome{Reason: err.Error()}
	}
	return domain.PaymentOutcome{Paid: true, PaymentID: paymentID}
}

func (s *OrderService) publishOutcome(order *domain.Order, outcome domain.PaymentOutcome, requestID string) {
	if outcome.Paid {
		err := s.producer.PublishOrderPlaced(events.OrderPlacedEvent{
			EventID:   uuid.New().String(),
			OrderID:   order.OrderID,
			ProductID: order.ProductID,
			Quantity:  order.Quantity,
			Amount:    order.Amount,
			PaymentID: outcome.PaymentID,
			Status:    string(order.Status),
			Timestamp: time.Now().UTC(),
			RequestID: requestID,
		})
		if err != nil {
			s.logger.Error("Failed to publish order placed event",
				zap.String("order_id", order.OrderID),
				zap.Error(err))
		}
		return
	}

	// The reservation is not rolled back in-line; the compensation consumer
	// releases it from this event.
	err := s.producer.PublishCompensation(events.CompensationEvent{
		EventID:   uuid.New().String(),
		OrderID:   order.OrderID,
		ProductID: order.ProductID,
		Quantity:  order.Quantity,
		Reason:    outcome.Reason,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Failed to publish compensation event",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}
}

// GetOrderDetails assembles the order record with product and payment facts.
// The whole read path runs under the circuit breaker: while it is open the
// zero view is returned with no error. An unknown order id is surfaced as
// domain.ErrOrderNotFound in every breaker state that lets the call through.
func (s *OrderService) GetOrderDetails(ctx context.Context, orderID string) (domain.OrderDetailView, error) {
	view, err := s.breaker.Execute(func() (domain.OrderDetailView, error) {
		return s.assembleDetails(ctx, orderID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.logger.Warn("Order details degraded to fallback view",
				zap.String("order_id", orderID))
			return domain.OrderDetailView{}, nil
		}
		return domain.OrderDetailView{}, err
	}
	return view, nil
}

func (s *OrderService) assembleDetails(ctx context.Context, orderID string) (domain.OrderDetailView, error) {
	order, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return domain.OrderDetailView{}, err
	}

	var (
		product *domain.ProductDetails
		payment *domain.PaymentDetails
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		product, err = s.products.GetProduct(gctx, order.ProductID)
		return err
	})
	g.Go(func() error {
		var err error
		payment, err = s.payments.GetPaymentByOrder(gctx, order.OrderID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Order detail lookup failed",
			zap.String("order_id", orderID),
			zap.Error(err))
		return domain.OrderDetailView{}, err
	}

	return domain.OrderDetailView{
		OrderID:        order.OrderID,
		Status:         order.Status,
		Amount:         order.Amount,
		OrderDate:      order.OrderDate,
		ProductDetails: *product,
		PaymentDetails: *payment,
	}, nil
}
