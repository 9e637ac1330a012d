package models

import "fmt"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusPaid:       1,
	OrderStatusProcessing: 2,
	OrderStatusShipped:    3,
	OrderStatusDelivered:  4,
}

func (s OrderStatus) Valid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := orderStatusRank[s]
	return ok
}

// CanTransitionTo enforces forward-only order lifecycle: pending -> paid ->
// processing -> shipped -> delivered. Cancellation is allowed from any
// non-terminal status, never from delivered.
func (s OrderStatus) CanTransitionTo(next OrderStatus) error {
	if !next.Valid() {
		return fmt.Errorf("unknown order status %q", next)
	}
	if s == OrderStatusCancelled || s == OrderStatusDelivered {
		return fmt.Errorf("order status %q is terminal", s)
	}
	if next == OrderStatusCancelled {
		return nil
	}
	if orderStatusRank[next] <= orderStatusRank[s] {
		return fmt.Errorf("order status cannot move from %q to %q", s, next)
	}
	return nil
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSucceeded, PaymentStatusFailed:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusReviewing  RequestStatus = "reviewing"
	RequestStatusAccepted   RequestStatus = "accepted"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusDeclined   RequestStatus = "declined"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusReviewing, RequestStatusAccepted,
		RequestStatusInProgress, RequestStatusCompleted, RequestStatusDeclined:
		return true
	}
	return false
}
