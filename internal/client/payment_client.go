package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/order-saga-service/internal/domain"
)

// PaymentClient talks to the payment service.
type PaymentClient struct {
	httpClient
}

func NewPaymentClient(baseURL string, timeout time.Duration, maxRetries int, logger *zap.Logger) *PaymentClient {
	return &PaymentClient{
		httpClient: newHTTPClient(baseURL, timeout, maxRetries, logger),
	}
}

type payResponse struct {
	PaymentID string `json:"payment_id"`
}

// Pay executes the payment and returns the payment id assigned by the payment
// service.
func (c *PaymentClient) Pay(ctx context.Context, req domain.PaymentRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal payment request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/payment", body)
	if err != nil {
		return "", fmt.Errorf("pay order %s: %w", req.OrderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		se := decodeError(resp)
		return "", fmt.Errorf("pay order %s: status %d: %s", req.OrderID, resp.StatusCode, se.Message)
	}

	var pr payResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("decode payment response for order %s: %w", req.OrderID, err)
	}
	return pr.PaymentID, nil
}

func (c *PaymentClient) GetPaymentByOrder(ctx context.Context, orderID string) (*domain.PaymentDetails, error) {
	url := fmt.Sprintf("%s/payment/order/%s", c.baseURL, orderID)

	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get payment for order %s: %w", orderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		se := decodeError(resp)
		return nil, fmt.Errorf("get payment for order %s: status %d: %s", orderID, resp.StatusCode, se.Message)
	}

	var payment domain.PaymentDetails
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("decode payment for order %s: %w", orderID, err)
	}
	return &payment, nil
}
