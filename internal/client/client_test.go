package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/order-saga-service/internal/domain"
)

func TestProductClientReserve(t *testing.T) {
	var gotMethod, gotPath, gotQuantity string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuantity = r.URL.Query().Get("quantity")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL, time.Second, 0, zap.NewNop())
	err := c.Reserve(context.Background(), "1", 2)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/product/reduceQuantity/1", gotPath)
	assert.Equal(t, "2", gotQuantity)
}

func TestProductClientReserveInsufficientStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error_code": "INSUFFICIENT_QUANTITY",
			"message":    "Product does not have sufficient quantity",
		})
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL, time.Second, 0, zap.NewNop())
	err := c.Reserve(context.Background(), "1", 500)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestProductClientReserveUnknownProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error_code": "PRODUCT_NOT_FOUND"})
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL, time.Second, 0, zap.NewNop())
	err := c.Reserve(context.Background(), "99", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductClientRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL, time.Second, 2, zap.NewNop())
	err := c.Reserve(context.Background(), "1", 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestProductClientGetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/1", r.URL.Path)
		json.NewEncoder(w).Encode(domain.ProductDetails{ProductID: "1", ProductName: "Soap"})
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL, time.Second, 0, zap.NewNop())
	product, err := c.GetProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Soap", product.ProductName)
}

func TestPaymentClientPay(t *testing.T) {
	var gotReq domain.PaymentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]string{"payment_id": "77"})
	}))
	defer srv.Close()

	c := NewPaymentClient(srv.URL, time.Second, 0, zap.NewNop())
	paymentID, err := c.Pay(context.Background(), domain.PaymentRequest{
		OrderID:         "order-1",
		PaymentMode:     domain.PaymentModeCash,
		Amount:          100,
		ReferenceNumber: "order-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "77", paymentID)
	assert.Equal(t, "order-1", gotReq.OrderID)
	assert.Equal(t, "order-1", gotReq.ReferenceNumber)
}

func TestPaymentClientPayRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "card declined"})
	}))
	defer srv.Close()

	c := NewPaymentClient(srv.URL, time.Second, 0, zap.NewNop())
	_, err := c.Pay(context.Background(), domain.PaymentRequest{OrderID: "order-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card declined")
}

func TestPaymentClientGetPaymentByOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/order/order-1", r.URL.Path)
		json.NewEncoder(w).Encode(domain.PaymentDetails{
			PaymentID:   "77",
			Status:      "SUCCESS",
			PaymentMode: domain.PaymentModeCash,
		})
	}))
	defer srv.Close()

	c := NewPaymentClient(srv.URL, time.Second, 0, zap.NewNop())
	payment, err := c.GetPaymentByOrder(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "77", payment.PaymentID)
	assert.Equal(t, "SUCCESS", payment.Status)
}

func TestClientTimeoutIsBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL, 50*time.Millisecond, 0, zap.NewNop())
	err := c.Reserve(context.Background(), "1", 1)
	assert.Error(t, err, "a hung downstream must not block indefinitely")
}
