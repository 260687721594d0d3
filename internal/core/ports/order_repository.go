// Package ports defines the contracts between the ordering core and its
// infrastructure: repositories, the unit of work and the event publisher.
package ports

import (
	"context"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their line items and payment sub-state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and its number must not be taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the surrounding
	// transaction ends. Lifecycle commands use it so that two operations on the
	// same order never interleave.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves every order currently in status, oldest number first.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetAllPaidInStatus is GetAllInStatus restricted to paid orders.
	GetAllPaidInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// NextNumber returns the highest order number plus one, or order.FirstNumber
	// when there are no orders yet.
	NextNumber(ctx context.Context) (int, error)
}
