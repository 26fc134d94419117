package ordering

// OrderStatus tracks an order through the kitchen pipeline
type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusPrepared  OrderStatus = "prepared"
	OrderStatusDelivered OrderStatus = "delivered"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusReceived, OrderStatusPrepared, OrderStatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Orders only move forward, one step at a time.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusReceived:
		return target == OrderStatusPrepared
	case OrderStatusPrepared:
		return target == OrderStatusDelivered
	case OrderStatusDelivered:
		return false // terminal state
	}
	return false
}
