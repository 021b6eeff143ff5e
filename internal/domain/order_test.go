package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTerminality(t *testing.T) {
	assert.False(t, OrderStatusCreated.Terminal())
	assert.True(t, OrderStatusPlaced.Terminal())
	assert.True(t, OrderStatusPaymentFailed.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
}

func TestTransitionIsOneWay(t *testing.T) {
	order := &Order{Status: OrderStatusCreated}
	require.NoError(t, order.Transition(OrderStatusPlaced))
	assert.Equal(t, OrderStatusPlaced, order.Status)

	err := order.Transition(OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrOrderFinalized)
	assert.Equal(t, OrderStatusPlaced, order.Status, "terminal status sticks")
}

func TestNotFoundErrorCarriesID(t *testing.T) {
	err := NotFoundError("order-42")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Contains(t, err.Error(), "order-42")
}
