// Package client holds the HTTP clients for the product and payment services.
// Each client owns its transport handle: base URL, a timeout-bounded
// http.Client, and a small retry budget for transient failures.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// serviceError is the error envelope both downstream services return.
type serviceError struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

type httpClient struct {
	baseURL    string
	client     *http.Client
	maxRetries int
	logger     *zap.Logger
}

func newHTTPClient(baseURL string, timeout time.Duration, maxRetries int, logger *zap.Logger) httpClient {
	return httpClient{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// do issues the request, retrying network errors and 5xx responses. The body
// is kept as bytes so every attempt replays it from the start. 4xx responses
// are returned to the caller untouched; they carry service-level error codes
// that map to typed errors.
func (c httpClient) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			}
		}

		var rdr io.Reader
		if body != nil {
			rdr = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rdr)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Warn("downstream call failed",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
			c.logger.Warn("downstream call returned server error",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1))
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

// decodeError reads the service error envelope off a non-2xx response.
func decodeError(resp *http.Response) serviceError {
	defer resp.Body.Close()
	var se serviceError
	if err := json.NewDecoder(resp.Body).Decode(&se); err != nil {
		se.Message = resp.Status
	}
	return se
}
