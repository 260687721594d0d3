package ports

import (
	"context"

	"mealdelivery/internal/core/domain/model/order"
)

// EventPublisher delivers order status changes to other services. It is
// called only after the change is committed.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, events ...order.StatusChanged) error
}
