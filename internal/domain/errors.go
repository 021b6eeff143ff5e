package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderFinalized    = errors.New("order already in a terminal status")
)

// NotFoundError wraps ErrOrderNotFound with the offending id so the caller can
// echo it back.
func NotFoundError(orderID string) error {
	return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
}
