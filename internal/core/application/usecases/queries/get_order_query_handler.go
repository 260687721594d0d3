package queries

import (
	"context"

	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/core/ports"
)

// GetOrderQueryHandler restores the order aggregate and projects it. The
// snapshot carries the lifecycle records, which a flat SQL projection would
// have to reassemble by hand.
type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

// Handle returns an *errs.ObjectNotFoundError for an unknown order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}

	return o.Snapshot(), nil
}
