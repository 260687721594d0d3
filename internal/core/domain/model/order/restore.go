package order

import (
	"errors"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/pkg/guard"
)

// State carries everything persisted about an order.
type State struct {
	ID           kernel.UUID
	Number       int
	UserID       kernel.UUID
	Address      string
	ShipmentDate time.Time
	Status       Status
	Price        kernel.Money
	LineItems    []LineItem
	Payment      Payment
	CreatedAt    time.Time
	Cancellation *Cancellation
	Rejection    *Rejection
	Delivery     *Delivery
}

// RestoreOrder rebuilds an order loaded from storage. No events are recorded.
func RestoreOrder(s State, clock kernel.Clock) (*Order, error) {
	if clock == nil {
		clock = kernel.SystemClock{}
	}

	o := &Order{
		createdAt: s.CreatedAt,
		payment:   s.Payment,
		clock:     clock,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setUserID(s.UserID),
		o.setAddress(s.Address),
		o.setShipmentDate(s.ShipmentDate),
		o.setLineItems(s.LineItems),
		o.SetPrice(s.Price),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = s.Status
	if s.Cancellation != nil {
		c := *s.Cancellation
		o.cancellation = &c
	}
	if s.Rejection != nil {
		r := *s.Rejection
		o.rejection = &r
	}
	if s.Delivery != nil {
		d := *s.Delivery
		o.delivery = &d
	}

	return o, nil
}
