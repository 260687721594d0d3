package commands

import (
	"context"

	"mealdelivery/internal/core/domain/model/transaction"
	"mealdelivery/internal/core/domain/model/user"
)

// RejectOrderCommandHandler rejects an order and refunds its owner if the
// order was paid.
type RejectOrderCommandHandler struct {
	uowFactory PaymentUoWFactory
}

func NewRejectOrderCommandHandler(uowFactory PaymentUoWFactory) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the refund, or nil when the order was not paid.
func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) (*transaction.Transaction, error) {
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

	u, err := uow.UserRepository().GetForUpdate(ctx, o.UserID())
	if err != nil {
		return nil, err
	}

	refund, err := o.Reject(cmd.Reason(), u)
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

// storeRefund saves refund and the balance it changed. A nil refund is a no-op.
func storeRefund(ctx context.Context, uow PaymentUoW, refund *transaction.Transaction, u *user.User) error {
	if refund == nil {
		return nil
	}

	if err := uow.TransactionRepository().Add(ctx, refund); err != nil {
		return err
	}

	return uow.UserRepository().Update(ctx, u)
}
