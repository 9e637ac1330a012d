package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListScan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(`["red","gold"]`))
	assert.Equal(t, StringList{"red", "gold"}, l)

	require.NoError(t, l.Scan([]byte(`[]`)))
	assert.Empty(t, l)

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)

	require.Error(t, l.Scan(`{"not":"a list"`), "corrupt column must surface an error")
	require.Error(t, l.Scan(42))
}

func TestStringListValue(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringList{"cotton"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["cotton"]`, v)
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPaid, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusPaid, false},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPaid, false},
		{OrderStatusDelivered, OrderStatusPaid, false},
		{OrderStatusPending, OrderStatus("refunded"), false},
	}
	for _, tc := range tests {
		err := tc.from.CanTransitionTo(tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.Error(t, err, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, OrderStatusCancelled.Valid())
	assert.False(t, OrderStatus("refunded").Valid())
	assert.True(t, PaymentStatusFailed.Valid())
	assert.False(t, PaymentStatus("chargeback").Valid())
	assert.True(t, RequestStatusDeclined.Valid())
	assert.False(t, RequestStatus("archived").Valid())
}
