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

// ProductClient talks to the products service: stock reservation and product
// lookup.
type ProductClient struct {
	httpClient
}

func NewProductClient(baseURL string, timeout time.Duration, maxRetries int, logger *zap.Logger) *ProductClient {
	return &ProductClient{
		httpClient: newHTTPClient(baseURL, timeout, maxRetries, logger),
	}
}

// Reserve decrements stock for the product by quantity. The decrement is a
// single atomic operation on the products service; it is not reversed here.
func (c *ProductClient) Reserve(ctx context.Context, productID string, quantity int) error {
	url := fmt.Sprintf("%s/product/reduceQuantity/%s?quantity=%d", c.baseURL, productID, quantity)

	resp, err := c.do(ctx, http.MethodPut, url, nil)
	if err != nil {
		return fmt.Errorf("reserve product %s: %w", productID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	se := decodeError(resp)
	switch se.ErrorCode {
	case "INSUFFICIENT_QUANTITY":
		return fmt.Errorf("product %s: %w", productID, domain.ErrInsufficientStock)
	case "PRODUCT_NOT_FOUND":
		return fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
	default:
		return fmt.Errorf("reserve product %s: status %d: %s", productID, resp.StatusCode, se.Message)
	}
}

func (c *ProductClient) GetProduct(ctx context.Context, productID string) (*domain.ProductDetails, error) {
	url := fmt.Sprintf("%s/product/%s", c.baseURL, productID)

	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		se := decodeError(resp)
		if se.ErrorCode == "PRODUCT_NOT_FOUND" {
			return nil, fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
		}
		return nil, fmt.Errorf("get product %s: status %d: %s", productID, resp.StatusCode, se.Message)
	}

	var product domain.ProductDetails
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", productID, err)
	}
	return &product, nil
}
