package commands

import (
	"errors"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/pkg/guard"
)

var ErrPayOrderCommandIsNotConstructed = errors.New(
	"PayOrderCommand must be created via NewPayOrderCommand constructor",
)

// PayOrderCommand asks to charge an order's price from the user's balance.
type PayOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewPayOrderCommand(orderID kernel.UUID, userID kernel.UUID) (PayOrderCommand, error) {
	cmd := PayOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(orderID.Validate(), userID.Validate()); err != nil {
		return PayOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.userID = userID
	return cmd, nil
}

func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

func (c PayOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PayOrderCommand) UserID() kernel.UUID {
	return c.userID
}
