package commands

import (
	"context"
)

type ChangeOrderAddressCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeOrderAddressCommandHandler(uowFactory OrderUoWFactory) ChangeOrderAddressCommandHandler {
	return ChangeOrderAddressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle replaces the address. Orders past Created answer with an
// *errs.InvalidStateError and are not touched.
func (h *ChangeOrderAddressCommandHandler) Handle(ctx context.Context, cmd ChangeOrderAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.ChangeAddress(cmd.Address()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
