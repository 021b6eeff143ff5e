package domain

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusCreated       OrderStatus = "CREATED"
	OrderStatusPlaced        OrderStatus = "PLACED"
	OrderStatusPaymentFailed OrderStatus = "PAYMENT_FAILED"
	OrderStatusCancelled     OrderStatus = "CANCELLED"
)

// Terminal reports whether no further automated transition leaves the status.
// CREATED is the sole non-terminal state.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPlaced || s == OrderStatusPaymentFailed || s == OrderStatusCancelled
}

type PaymentMode string

const (
	PaymentModeCash PaymentMode = "CASH"
	PaymentModeCard PaymentMode = "CARD"
	PaymentModeUPI  PaymentMode = "UPI"
)

// Order is the durable record owned by the order store. Field names and the
// status set are a compatibility surface other services read.
type Order struct {
	OrderID     string      `json:"id"`
	ProductID   string      `json:"product_id"`
	Quantity    int         `json:"quantity"`
	Amount      float64     `json:"amount"`
	PaymentMode PaymentMode `json:"payment_mode"`
	OrderDate   time.Time   `json:"order_date"`
	Status      OrderStatus `json:"status"`
}

// Transition moves the order to next. Terminal states are one-way; a second
// transition attempt is a programming error surfaced to the caller.
func (o *Order) Transition(next OrderStatus) error {
	if o.Status.Terminal() {
		return ErrOrderFinalized
	}
	o.Status = next
	return nil
}

type PlaceOrderRequest struct {
	ProductID   string      `json:"product_id" binding:"required"`
	Quantity    int         `json:"quantity" binding:"required,gt=0"`
	TotalAmount float64     `json:"total_amount" binding:"gte=0"`
	PaymentMode PaymentMode `json:"payment_mode" binding:"required"`
}

type PlaceOrderResponse struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

// PaymentRequest is the ephemeral payload sent to the payment service. The
// reference number is the order id, giving the payment service a stable
// idempotency handle for one order.
type PaymentRequest struct {
	OrderID         string      `json:"order_id"`
	PaymentMode     PaymentMode `json:"payment_mode"`
	Amount          float64     `json:"amount"`
	ReferenceNumber string      `json:"reference_number"`
}

// PaymentOutcome is the two-outcome result of the payment step: a paid attempt
// carries the payment id, a failed one the reason. A failed payment is a
// normal saga outcome, not an error.
type PaymentOutcome struct {
	Paid      bool
	PaymentID string
	Reason    string
}

type ProductDetails struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
}

type PaymentDetails struct {
	PaymentID   string      `json:"payment_id"`
	Status      string      `json:"status"`
	PaymentMode PaymentMode `json:"payment_mode"`
	PaymentDate time.Time   `json:"payment_date"`
}

// OrderDetailView is the per-read composition of the order record with product
// and payment facts. The zero value doubles as the breaker fallback view.
type OrderDetailView struct {
	OrderID        string         `json:"order_id"`
	Status         OrderStatus    `json:"status"`
	Amount         float64        `json:"amount"`
	OrderDate      time.Time      `json:"order_date"`
	ProductDetails ProductDetails `json:"product_details"`
	PaymentDetails PaymentDetails `json:"payment_details"`
}
