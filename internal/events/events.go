package events

import (
	"time"
)

// OrderPlacedEvent announces a successfully paid order on `order-events`.
type OrderPlacedEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   string    `json:"order_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Amount    float64   `json:"amount"`
	PaymentID string    `json:"payment_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// CompensationEvent asks the products service to release a reservation that
// will never be paid for. The placement saga itself does not roll stock back;
// this event is the compensation hook.
type CompensationEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   string    `json:"order_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}
