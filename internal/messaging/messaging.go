// Package messaging defines the one-way publisher that hands shipped
// orders to the external logistics consumer.
package messaging

import (
	"context"
	"fmt"
)

// ShippingNotification tells the logistics consumer where to deliver an
// order that has just been marked as shipped.
type ShippingNotification struct {
	OrderID          int64  `json:"order_id"`
	CustomerFullName string `json:"customer_full_name"`
	ShippingAddress  string `json:"shipping_address"`
}

// MessageID derives the identifier the consumer uses to deduplicate
// redeliveries of the same order.
func (n ShippingNotification) MessageID() string {
	return fmt.Sprintf("order-%d", n.OrderID)
}

// Publisher publishes one shipping notification. Implementations return
// an error when the underlying transport cannot accept the message; the
// fulfillment workflow is the sole caller and the sole place that decides
// to swallow that failure.
type Publisher interface {
	PublishShippingNotification(ctx context.Context, n ShippingNotification) error
	Close() error
}
