package commands

import (
	"errors"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/pkg/guard"
)

var ErrAddFundsCommandIsNotConstructed = errors.New(
	"AddFundsCommand must be created via NewAddFundsCommand constructor",
)

// AddFundsCommand records money a user paid in outside the system, such as
// cash handed to a courier or a bank transfer.
type AddFundsCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	amount kernel.Money
	paidAt string

	guard guard.ConstructorGuard
}

// NewAddFundsCommand creates the command. paidAt is optional and is parsed
// by the transaction; amount limits are checked there too.
func NewAddFundsCommand(userID kernel.UUID, amount kernel.Money, paidAt string) (AddFundsCommand, error) {
	if err := userID.Validate(); err != nil {
		return AddFundsCommand{}, err
	}

	return AddFundsCommand{
		userID: userID,
		amount: amount,
		paidAt: paidAt,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c AddFundsCommand) Validate() error {
	return c.guard.Validate(ErrAddFundsCommandIsNotConstructed)
}

func (c AddFundsCommand) UserID() kernel.UUID {
	return c.userID
}

func (c AddFundsCommand) Amount() kernel.Money {
	return c.amount
}

func (c AddFundsCommand) PaidAt() string {
	return c.paidAt
}
