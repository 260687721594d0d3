package commands

import (
	"context"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/transaction"
)

// AddFundsCommandHandler books an income transaction and raises the user's
// balance by the same amount.
type AddFundsCommandHandler struct {
	uowFactory LedgerUoWFactory
	clock      kernel.Clock
}

func NewAddFundsCommandHandler(uowFactory LedgerUoWFactory, clock kernel.Clock) AddFundsCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return AddFundsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *AddFundsCommandHandler) Handle(ctx context.Context, cmd AddFundsCommand) (*transaction.Transaction, error) {
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

	userRepo := uow.UserRepository()
	u, err := userRepo.GetForUpdate(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	tx, err := transaction.NewTransaction(transaction.Income, cmd.Amount(), u, h.clock)
	if err != nil {
		return nil, err
	}

	if cmd.PaidAt() != "" {
		if err = tx.MarkPaidAtString(cmd.PaidAt()); err != nil {
			return nil, err
		}
	}

	if err = uow.TransactionRepository().Add(ctx, tx); err != nil {
		return nil, err
	}

	if err = userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tx, nil
}
