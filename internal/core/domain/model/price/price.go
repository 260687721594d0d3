// Package price holds administratively defined price rules. A Price applies to
// an exact set of (dish, size) pairs from its date onwards; a rule with one
// item prices a single dish portion, a rule with several items is a bundle.
package price

import (
	"errors"
	"fmt"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/pkg/errs"
	"mealdelivery/internal/pkg/guard"
)

var (
	ErrPriceIsNotConstructed = errs.NewValueIsRequiredError(
		"price must be created via NewPrice or RestorePrice constructors")

	// ErrDateIsInvalid is returned when a new price does not start after today.
	ErrDateIsInvalid = errs.NewValueIsInvalidErrorWithCause(
		"date", errors.New("price date must be after today"))

	// ErrPriceIsInvalid is returned for a zero value and by Value when the
	// price has no items.
	ErrPriceIsInvalid = errs.NewValueIsInvalidErrorWithCause(
		"price", errors.New("zero given"))
)

// Price is a value applicable to a set of items from a given day.
type Price struct {
	id    kernel.UUID
	value kernel.Money
	date  time.Time
	items []Item

	guard guard.ConstructorGuard
}

// NewPrice creates a rule starting on date. The date must fall after today
// according to clock. Negative values are stored as their absolute value.
// Items are attached afterwards with AddItem. A nil clock means the system
// clock.
func NewPrice(id kernel.UUID, value kernel.Money, date time.Time, clock kernel.Clock) (*Price, error) {
	if clock == nil {
		clock = kernel.SystemClock{}
	}

	p := &Price{
		guard: guard.NewConstructorGuard(),
	}

	var dateErr error
	if !kernel.IsAfterDay(date, clock.Now()) {
		dateErr = ErrDateIsInvalid
	}

	if err := errors.Join(
		p.setID(id),
		p.setValue(value),
		dateErr,
	); err != nil {
		return nil, err
	}

	p.date = kernel.StartOfDay(date)
	return p, nil
}

// RestorePrice rebuilds a persisted rule. Past dates are allowed.
func RestorePrice(id kernel.UUID, value kernel.Money, date time.Time, items []Item) (*Price, error) {
	p := &Price{
		date:  kernel.StartOfDay(date),
		items: make([]Item, 0, len(items)),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setID(id), p.setValue(value)); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		p.items = append(p.items, item)
	}

	return p, nil
}

func (p *Price) Validate() error {
	if p == nil {
		return ErrPriceIsNotConstructed
	}
	return p.guard.Validate(ErrPriceIsNotConstructed)
}

func (p *Price) ID() kernel.UUID {
	return p.id
}

// Value returns the rule's amount. A rule without items has no meaningful
// value yet and yields ErrPriceIsInvalid.
func (p *Price) Value() (kernel.Money, error) {
	if len(p.items) == 0 {
		return kernel.Money{}, fmt.Errorf("%w: price %s has no items", ErrPriceIsInvalid, p.id)
	}
	return p.value, nil
}

// Date is the first day the rule applies.
func (p *Price) Date() time.Time {
	return p.date
}

// Items returns a copy of the rule's items.
func (p *Price) Items() []Item {
	items := make([]Item, len(p.items))
	copy(items, p.items)
	return items
}

// AddItem attaches a (dish, size) pair to the rule.
func (p *Price) AddItem(dishID kernel.UUID, size kernel.Size) error {
	item, err := NewItem(dishID, size)
	if err != nil {
		return err
	}
	p.items = append(p.items, item)
	return nil
}

// IsSingle reports whether the rule prices exactly one item.
func (p *Price) IsSingle() bool {
	return len(p.items) == 1
}

// IsValidOn reports whether the rule already applies on day.
func (p *Price) IsValidOn(day time.Time) bool {
	return !kernel.IsAfterDay(p.date, day)
}

// HasSameItems reports whether items and the rule's items are equal as
// multisets of (dish, size) pairs. Each item is matched at most once.
func (p *Price) HasSameItems(items []Item) bool {
	if len(items) != len(p.items) {
		return false
	}

	matched := make([]bool, len(items))
	for _, own := range p.items {
		found := false
		for i, candidate := range items {
			if !matched[i] && own.IsEqual(candidate) {
				matched[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// IsEqual compares value, day and item multiset; ids are ignored.
func (p *Price) IsEqual(other *Price) bool {
	if other == nil {
		return false
	}
	return p.value.IsEqual(other.value) &&
		p.date.Equal(other.date) &&
		p.HasSameItems(other.items)
}

func (p *Price) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Price) setValue(value kernel.Money) error {
	if value.IsZero() {
		return ErrPriceIsInvalid
	}
	p.value = value.Abs()
	return nil
}
