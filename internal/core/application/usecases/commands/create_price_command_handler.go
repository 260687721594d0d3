package commands

import (
	"context"
	"errors"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/price"
)

type CreatePriceCommandHandler struct {
	uowFactory PriceUoWFactory
	clock      kernel.Clock
}

func NewCreatePriceCommandHandler(uowFactory PriceUoWFactory, clock kernel.Clock) CreatePriceCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return CreatePriceCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle stores a new price rule. The date must be after today.
func (h *CreatePriceCommandHandler) Handle(ctx context.Context, cmd CreatePriceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := price.NewPrice(cmd.PriceID(), cmd.Value(), cmd.Date(), h.clock)
	if err != nil {
		return err
	}

	items := cmd.Items()
	errList := make([]error, 0, len(items))
	for _, item := range items {
		errList = append(errList, p.AddItem(item.DishID(), item.Size()))
	}
	if err = errors.Join(errList...); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PriceRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
