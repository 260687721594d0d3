package services

import (
	"errors"
	"fmt"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/menu"
	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/core/domain/model/price"
	"mealdelivery/internal/core/domain/model/user"
	"mealdelivery/internal/pkg/errs"
)

var (
	// ErrShipmentDateIsInvalid is returned when the shipment date is not after today.
	ErrShipmentDateIsInvalid = errs.NewValueIsInvalidErrorWithCause(
		"shipment date", errors.New("shipment date must be after today"))

	// ErrDishIsNotCooked is wrapped when no menu offers a dish on the shipment date.
	ErrDishIsNotCooked = errors.New("not cooking today")
)

// OrderDraft is everything needed to build an order. The caller loads the
// owner, menus and prices; the factory only decides.
type OrderDraft struct {
	OrderID      kernel.UUID
	Number       int
	Owner        *user.User
	Address      string
	ShipmentDate time.Time
	Items        []order.LineItem
	Menus        []*menu.Menu
	Prices       []*price.Price
}

// OrderFactory builds priced orders from drafts.
type OrderFactory struct {
	resolver PriceResolver
	clock    kernel.Clock
}

func NewOrderFactory(resolver PriceResolver, clock kernel.Clock) OrderFactory {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return OrderFactory{resolver: resolver, clock: clock}
}

// Create validates d and returns a new order.
//
// Business rules:
//   - The shipment date must be after today
//   - At least one line item is required
//   - Every dish must be offered by a menu valid on the shipment date
//   - An empty address falls back to the owner's address
//   - Duplicate dishes collapse to the first line item before pricing
func (f OrderFactory) Create(d OrderDraft) (*order.Order, error) {
	if err := d.Owner.Validate(); err != nil {
		return nil, err
	}

	if !kernel.IsAfterDay(d.ShipmentDate, f.clock.Now()) {
		return nil, ErrShipmentDateIsInvalid
	}

	if len(d.Items) == 0 {
		return nil, errs.NewValueIsRequiredError("line items")
	}

	address := d.Address
	if address == "" {
		address = d.Owner.Address()
	}

	o, err := order.NewOrder(d.OrderID, d.Number, d.Owner.ID(), address, d.ShipmentDate, d.Items,
		kernel.ZeroMoney(), f.clock)
	if err != nil {
		return nil, err
	}

	items := o.LineItems()
	if err = f.checkMenus(items, d.ShipmentDate, d.Menus); err != nil {
		return nil, err
	}

	total, err := f.resolver.Resolve(items, d.ShipmentDate, d.Prices)
	if err != nil {
		return nil, err
	}

	if err = o.SetPrice(total); err != nil {
		return nil, err
	}

	return o, nil
}

func (f OrderFactory) checkMenus(items []order.LineItem, day time.Time, menus []*menu.Menu) error {
	errList := make([]error, 0)
	for _, item := range items {
		if !isCooked(item.DishID(), day, menus) {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("dish",
				fmt.Errorf("%w: %s on %s", ErrDishIsNotCooked, item.DishID(), day.Format(time.DateOnly))))
		}
	}
	return errors.Join(errList...)
}

func isCooked(dishID kernel.UUID, day time.Time, menus []*menu.Menu) bool {
	for _, m := range menus {
		if m.IsValidOn(day) && m.Offers(dishID) {
			return true
		}
	}
	return false
}
