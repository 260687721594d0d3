package commands

import (
	"errors"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is a customer withdrawing their own order.
// The reason may be empty; its length is checked by the order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, userID kernel.UUID, reason string) (CancelOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), userID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		userID:  userID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}
