package commands

import (
	"context"

	"mealdelivery/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// It loads everything the order factory needs inside one transaction:
// the owner, the dishes, the menus and the prices valid on the shipment date,
// and the next free order number.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, services.NewOrderFactory(
//	    services.NewPriceResolver(), kernel.SystemClock{}))
//	number, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Printf("Order #%d created", number)
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	factory    services.OrderFactory
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, factory services.OrderFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		factory:    factory,
	}
}

// Handle creates and stores the order and returns its number.
// Unknown dishes and users surface as *errs.ObjectNotFoundError.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owner, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return 0, err
	}

	dishRepo := uow.DishRepository()
	for _, dishID := range cmd.DishIDs() {
		if _, err = dishRepo.Get(ctx, dishID); err != nil {
			return 0, err
		}
	}

	menus, err := uow.MenuRepository().GetValidOn(ctx, cmd.ShipmentDate())
	if err != nil {
		return 0, err
	}

	prices, err := uow.PriceRepository().GetValidOn(ctx, cmd.ShipmentDate())
	if err != nil {
		return 0, err
	}

	orderRepo := uow.OrderRepository()
	number, err := orderRepo.NextNumber(ctx)
	if err != nil {
		return 0, err
	}

	o, err := h.factory.Create(services.OrderDraft{
		OrderID:      cmd.OrderID(),
		Number:       number,
		Owner:        owner,
		Address:      cmd.Address(),
		ShipmentDate: cmd.ShipmentDate(),
		Items:        cmd.Items(),
		Menus:        menus,
		Prices:       prices,
	})
	if err != nil {
		return 0, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return o.Number(), nil
}
