package commands

import (
	"errors"
	"fmt"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/pkg/errs"
	"mealdelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// DishItem is a dish and portion size as they arrive from the outside: the size is
// still a string.
type DishItem struct {
	DishID kernel.UUID
	Size   string
}

// CreateOrderCommand represents a request to place a new meal order.
// Items are parsed into line items once, here; handlers never see raw sizes.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), userID, "", tomorrow,
//	    []DishItem{{DishID: soupID, Size: "big"}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	number, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	userID       kernel.UUID
	address      string
	shipmentDate time.Time
	items        []order.LineItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// An empty address means the owner's address is used.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	address string,
	shipmentDate time.Time,
	items []DishItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setShipmentDate(shipmentDate),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateOrderCommand) Address() string {
	return c.address
}

func (c CreateOrderCommand) ShipmentDate() time.Time {
	return c.shipmentDate
}

// Items returns a copy of the parsed line items, duplicates included.
func (c CreateOrderCommand) Items() []order.LineItem {
	items := make([]order.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// DishIDs lists every distinct dish referenced by the command.
func (c CreateOrderCommand) DishIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.items))
	seen := make(map[string]struct{}, len(c.items))
	for _, item := range c.items {
		key := item.DishID().String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		ids = append(ids, item.DishID())
	}
	return ids
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setShipmentDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("shipment date")
	}

	c.shipmentDate = date
	return nil
}

func (c *CreateOrderCommand) setItems(items []DishItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	lineItems := make([]order.LineItem, 0, len(items))
	errList := make([]error, 0)
	for i, item := range items {
		size, err := kernel.ParseSize(item.Size)
		if err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
			continue
		}

		lineItem, err := order.NewLineItem(item.DishID, size)
		if err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		lineItems = append(lineItems, lineItem)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = lineItems
	return nil
}
