package commands

import (
	"context"

	"mealdelivery/internal/core/domain/model/order"
)

// PayOrderCommandHandler charges an order from its owner's balance.
//
// Insufficient funds are an outcome, not an error: the handler still commits
// so that the credit taken on the user and the credited flag on the payment
// survive the attempt.
type PayOrderCommandHandler struct {
	uowFactory PaymentUoWFactory
	observer   PaymentObserver
}

// NewPayOrderCommandHandler creates the handler. A nil observer is allowed.
func NewPayOrderCommandHandler(uowFactory PaymentUoWFactory, observer PaymentObserver) PayOrderCommandHandler {
	if observer == nil {
		observer = nopObserver{}
	}
	return PayOrderCommandHandler{
		uowFactory: uowFactory,
		observer:   observer,
	}
}

// Handle runs one payment attempt and reports how it ended.
func (h *PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) (order.PayOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return order.PayOutcome{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.PayOutcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return order.PayOutcome{}, err
	}

	userRepo := uow.UserRepository()
	u, err := userRepo.GetForUpdate(ctx, cmd.UserID())
	if err != nil {
		return order.PayOutcome{}, err
	}

	outcome, err := o.Pay(u)
	if err != nil {
		return order.PayOutcome{}, err
	}

	switch outcome.Kind {
	case order.OutcomePaid:
		if err = uow.TransactionRepository().Add(ctx, outcome.Transaction); err != nil {
			return order.PayOutcome{}, err
		}
		fallthrough
	case order.OutcomeInsufficientFunds:
		if err = userRepo.Update(ctx, u); err != nil {
			return order.PayOutcome{}, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return order.PayOutcome{}, err
		}
	default:
	}

	if err = uow.Commit(ctx); err != nil {
		return order.PayOutcome{}, err
	}

	h.observer.ObservePayment(outcome.Kind.String())
	return outcome, nil
}
