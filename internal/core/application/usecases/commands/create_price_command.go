package commands

import (
	"errors"
	"fmt"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/price"
	"mealdelivery/internal/pkg/guard"
)

var ErrCreatePriceCommandIsNotConstructed = errors.New(
	"CreatePriceCommand must be created via NewCreatePriceCommand constructor",
)

// CreatePriceCommand adds a price rule to the price list. One item makes a
// single-dish price, several items make a bundle.
type CreatePriceCommand struct { //nolint:recvcheck //using for validation
	priceID kernel.UUID
	value   kernel.Money
	date    time.Time
	items   []price.Item

	guard guard.ConstructorGuard
}

func NewCreatePriceCommand(
	priceID kernel.UUID,
	value kernel.Money,
	date time.Time,
	items []DishItem,
) (CreatePriceCommand, error) {
	cmd := CreatePriceCommand{
		value: value,
		date:  date,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(priceID.Validate(), cmd.setItems(items)); err != nil {
		return CreatePriceCommand{}, err
	}

	cmd.priceID = priceID
	return cmd, nil
}

func (c CreatePriceCommand) Validate() error {
	return c.guard.Validate(ErrCreatePriceCommandIsNotConstructed)
}

func (c CreatePriceCommand) PriceID() kernel.UUID {
	return c.priceID
}

func (c CreatePriceCommand) Value() kernel.Money {
	return c.value
}

func (c CreatePriceCommand) Date() time.Time {
	return c.date
}

func (c CreatePriceCommand) Items() []price.Item {
	items := make([]price.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreatePriceCommand) setItems(items []DishItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	priceItems := make([]price.Item, 0, len(items))
	errList := make([]error, 0)
	for i, item := range items {
		size, err := kernel.ParseSize(item.Size)
		if err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
			continue
		}

		priceItem, err := price.NewItem(item.DishID, size)
		if err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		priceItems = append(priceItems, priceItem)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = priceItems
	return nil
}
