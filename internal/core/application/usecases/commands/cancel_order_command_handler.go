package commands

import (
	"context"

	"mealdelivery/internal/core/domain/model/transaction"
)

// CancelOrderCommandHandler cancels an order on behalf of its owner.
// When the order was already paid the refund transaction and the owner's new
// balance are stored in the same transaction as the order.
type CancelOrderCommandHandler struct {
	uowFactory PaymentUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory PaymentUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the refund, or nil when the order was not paid.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*transaction.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	userRepo := uow.UserRepository()
	u, err := userRepo.GetForUpdate(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	refund, err := o.Cancel(cmd.Reason(), u)
	if err != nil {
		return nil, err
	}

	if err = storeRefund(ctx, uow, refund, u); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return refund, nil
}
