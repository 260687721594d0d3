package commands

import (
	"errors"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/pkg/guard"
)

var ErrChangeOrderAddressCommandIsNotConstructed = errors.New(
	"ChangeOrderAddressCommand must be created via NewChangeOrderAddressCommand constructor",
)

// ChangeOrderAddressCommand moves the delivery of a not yet started order.
type ChangeOrderAddressCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	address string

	guard guard.ConstructorGuard
}

func NewChangeOrderAddressCommand(orderID kernel.UUID, address string) (ChangeOrderAddressCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ChangeOrderAddressCommand{}, err
	}

	return ChangeOrderAddressCommand{
		orderID: orderID,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderAddressCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderAddressCommandIsNotConstructed)
}

func (c ChangeOrderAddressCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderAddressCommand) Address() string {
	return c.address
}
