package order

import (
	"errors"
	"fmt"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/transaction"
	"mealdelivery/internal/core/domain/model/user"
	"mealdelivery/internal/pkg/errs"
	"mealdelivery/internal/pkg/guard"
)

const (
	// FirstNumber is the number given to the very first order.
	FirstNumber = 1000

	addressMinLength = 1
	addressMaxLength = 150
	carrierMinLength = 4
	carrierMaxLength = 150
	cancelMaxLength  = 150
	rejectMinLength  = 1
	rejectMaxLength  = 150
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")

	// ErrUserIsNotOwner is returned when a user acts on another user's order.
	ErrUserIsNotOwner = errs.NewValueIsInvalidErrorWithCause("user", errors.New("order belongs to another user"))
)

// Order is the aggregate root of the ordering domain. It owns the line items,
// the payment sub-state and the lifecycle records, and enforces the status
// state machine.
//
// Order follows these invariants:
//   - Line items are unique by dish; the first item of a dish wins
//   - Address is 1 to 150 characters and can only change while Created
//   - Price is computed once by the caller and kept
//   - Guard failures return an error and leave the order unchanged
//
// Order is not safe for concurrent use. Callers serialize access per order,
// normally by loading it with a row lock inside a unit of work.
type Order struct {
	id           kernel.UUID
	number       int
	userID       kernel.UUID
	address      string
	shipmentDate time.Time
	status       Status
	price        kernel.Money
	lineItems    []LineItem
	payment      Payment

	createdAt    time.Time
	cancellation *Cancellation
	rejection    *Rejection
	delivery     *Delivery

	events []StatusChanged
	clock  kernel.Clock
	guard  guard.ConstructorGuard
}

// NewOrder creates an order in Created status, stamped with the current time
// from clock and holding a fresh unpaid Payment.
//
// Parameters:
//   - id: Unique identifier for the order
//   - number: Sequential order number handed out by the repository
//   - userID: The customer placing the order
//   - address: Delivery address, 1 to 150 characters
//   - shipmentDate: Day of delivery; the caller checks it is after today
//   - items: Line items; duplicates of a dish are dropped silently
//   - price: Price resolved for the items on the shipment date
//   - clock: Time source for lifecycle stamps; nil means the system clock
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: All validation errors joined together
func NewOrder(
	id kernel.UUID,
	number int,
	userID kernel.UUID,
	address string,
	shipmentDate time.Time,
	items []LineItem,
	price kernel.Money,
	clock kernel.Clock,
) (*Order, error) {
	if clock == nil {
		clock = kernel.SystemClock{}
	}

	now := clock.Now()
	o := &Order{
		status:    Created,
		createdAt: now,
		payment:   NewPayment(now),
		clock:     clock,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setUserID(userID),
		o.setAddress(address),
		o.setShipmentDate(shipmentDate),
		o.setLineItems(items),
		o.SetPrice(price),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() int {
	return o.number
}

func (o *Order) UserID() kernel.UUID {
	return o.userID
}

func (o *Order) Address() string {
	return o.address
}

func (o *Order) ShipmentDate() time.Time {
	return o.shipmentDate
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Price() kernel.Money {
	return o.price
}

// LineItems returns a copy; use ReplaceLineItems to change them.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// Payment returns a copy of the payment sub-state.
func (o *Order) Payment() Payment {
	return o.payment
}

func (o *Order) IsPaid() bool {
	return o.payment.IsPaid()
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Cancellation() (Cancellation, bool) {
	if o.cancellation == nil {
		return Cancellation{}, false
	}
	return *o.cancellation, true
}

func (o *Order) Rejection() (Rejection, bool) {
	if o.rejection == nil {
		return Rejection{}, false
	}
	return *o.rejection, true
}

func (o *Order) Delivery() (Delivery, bool) {
	if o.delivery == nil {
		return Delivery{}, false
	}
	return *o.delivery, true
}

// DomainEvents returns the status changes recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []StatusChanged {
	return append([]StatusChanged(nil), o.events...)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// ChangeAddress replaces the delivery address. Only Created orders accept a
// new address; afterwards it is frozen.
func (o *Order) ChangeAddress(address string) error {
	if o.status != Created {
		return errs.NewInvalidStateErrorWithCause("update failed",
			fmt.Errorf("address of a %s order can not be changed", o.status))
	}
	return o.setAddress(address)
}

// ReplaceLineItems swaps the whole line item set, dropping duplicate dishes.
// The price is not recomputed.
func (o *Order) ReplaceLineItems(items []LineItem) error {
	return o.setLineItems(items)
}

// SetPrice overrides the stored price. Used by data migrations and tests.
func (o *Order) SetPrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	o.price = price
	return nil
}

// StartProgress moves a Created order to InProgress.
// A canceled order that still waits in Created because of its refund is
// never started.
func (o *Order) StartProgress() error {
	next, err := o.status.StartProgress()
	if err != nil {
		return err
	}

	if o.cancellation != nil {
		return ErrAlreadyCanceled
	}

	o.changeStatus(next)
	return nil
}

// Deliver stamps the delivery with carrier and moves an InProgress order to
// Delivered. The carrier name must be 4 to 150 characters.
func (o *Order) Deliver(carrier string) error {
	next, err := o.status.Deliver()
	if err != nil {
		return err
	}

	if err = kernel.ValidateText("carrier", carrier, carrierMinLength, carrierMaxLength); err != nil {
		return err
	}

	o.delivery = &Delivery{At: o.clock.Now(), Carrier: carrier}
	o.changeStatus(next)
	return nil
}

// Close moves a Delivered and paid order to Closed.
func (o *Order) Close() error {
	next, err := o.status.Close(o.payment.IsPaid())
	if err != nil {
		return err
	}

	o.changeStatus(next)
	return nil
}

// Cancel withdraws a Created order on behalf of its owner.
//
// The cancellation is stamped with reason (up to 150 characters, may be
// empty). An unpaid order becomes Canceled and no transaction is returned.
// A paid order gets a refund transaction for its full price and keeps its
// Created status until the refund is reconciled by the caller. A second
// cancellation fails with ErrAlreadyCanceled.
//
// Parameters:
//   - reason: Free text explaining the cancellation
//   - u: The order's owner; the refund is credited to this user
//
// Returns:
//   - *transaction.Transaction: The refund, or nil for an unpaid order
//   - error: State, ownership or validation failure; the order is unchanged
func (o *Order) Cancel(reason string, u *user.User) (*transaction.Transaction, error) {
	next, err := o.status.Cancel()
	if err != nil {
		return nil, err
	}

	if o.cancellation != nil {
		return nil, ErrAlreadyCanceled
	}

	if err = errors.Join(
		o.validateOwner(u),
		kernel.ValidateText("cancel reason", reason, 0, cancelMaxLength),
	); err != nil {
		return nil, err
	}

	refund, err := o.payment.refund(o.price, u, o.clock)
	if err != nil {
		return nil, err
	}

	o.cancellation = &Cancellation{At: o.clock.Now(), Reason: reason}
	if refund == nil {
		o.changeStatus(next)
	}

	return refund, nil
}

// Reject refuses the order. Any status except Closed and Rejected can be
// rejected. The reason must be 1 to 150 characters. A paid order that was
// not refunded yet gets a refund transaction for its full price.
func (o *Order) Reject(reason string, u *user.User) (*transaction.Transaction, error) {
	next, err := o.status.Reject()
	if err != nil {
		return nil, err
	}

	if err = errors.Join(
		o.validateOwner(u),
		kernel.ValidateText("reject reason", reason, rejectMinLength, rejectMaxLength),
	); err != nil {
		return nil, err
	}

	refund, err := o.payment.refund(o.price, u, o.clock)
	if err != nil {
		return nil, err
	}

	o.rejection = &Rejection{At: o.clock.Now(), Reason: reason}
	o.changeStatus(next)
	return refund, nil
}

// Pay charges the order price from its owner.
//
// Canceled and Rejected orders can not be paid. A Closed order is paid by
// definition and returns OutcomeAlreadyClosed without touching the payment.
// Otherwise the attempt is delegated to Payment.Pay.
func (o *Order) Pay(u *user.User) (PayOutcome, error) {
	if err := o.status.ValidatePay(); err != nil {
		return PayOutcome{}, err
	}

	if err := o.validateOwner(u); err != nil {
		return PayOutcome{}, err
	}

	if o.status == Closed {
		return PayOutcome{Kind: OutcomeAlreadyClosed}, nil
	}

	return o.payment.Pay(o.price, u, o.clock)
}

func (o *Order) changeStatus(next Status) {
	o.events = append(o.events, StatusChanged{
		OrderID:     o.id,
		OrderNumber: o.number,
		UserID:      o.userID,
		From:        o.status,
		To:          next,
		At:          o.clock.Now(),
	})
	o.status = next
}

func (o *Order) validateOwner(u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if !u.ID().IsEqual(o.userID) {
		return ErrUserIsNotOwner
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number int) error {
	if number < FirstNumber {
		return errs.NewValueIsOutOfRangeError("order number", number, FirstNumber, "unbounded")
	}
	o.number = number
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setAddress(address string) error {
	if err := kernel.ValidateText("address", address, addressMinLength, addressMaxLength); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setShipmentDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("shipment date")
	}
	o.shipmentDate = kernel.StartOfDay(date)
	return nil
}

func (o *Order) setLineItems(items []LineItem) error {
	errList := make([]error, 0, len(items))
	for _, item := range items {
		errList = append(errList, item.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.lineItems = uniqueByDish(items)
	return nil
}
