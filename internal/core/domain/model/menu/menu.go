package menu

import (
	"errors"
	"fmt"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/pkg/errs"
	"mealdelivery/internal/pkg/guard"
)

var ErrMenuIsNotConstructed = errors.New("menu must be created via NewMenu constructor")

// Menu lists the dishes cooked on the days between dateFrom and dateTo inclusive.
type Menu struct {
	id       kernel.UUID
	name     string
	dateFrom time.Time
	dateTo   time.Time
	dishIDs  []kernel.UUID

	guard guard.ConstructorGuard
}

func NewMenu(id kernel.UUID, name string, dateFrom, dateTo time.Time, dishIDs []kernel.UUID) (*Menu, error) {
	m := &Menu{
		id:       id,
		name:     name,
		dateFrom: kernel.StartOfDay(dateFrom),
		dateTo:   kernel.StartOfDay(dateTo),
		guard:    guard.NewConstructorGuard(),
	}

	errList := []error{
		id.Validate(),
		kernel.ValidateText("menu name", name, 1, 150),
	}
	if m.dateFrom.After(m.dateTo) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("menu dates",
			fmt.Errorf("%s is after %s", m.dateFrom.Format(time.DateOnly), m.dateTo.Format(time.DateOnly))))
	}
	for _, dishID := range dishIDs {
		errList = append(errList, dishID.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	m.dishIDs = append(make([]kernel.UUID, 0, len(dishIDs)), dishIDs...)
	return m, nil
}

func (m *Menu) Validate() error {
	if m == nil {
		return ErrMenuIsNotConstructed
	}
	return m.guard.Validate(ErrMenuIsNotConstructed)
}

func (m *Menu) ID() kernel.UUID {
	return m.id
}

func (m *Menu) Name() string {
	return m.name
}

func (m *Menu) DateFrom() time.Time {
	return m.dateFrom
}

func (m *Menu) DateTo() time.Time {
	return m.dateTo
}

func (m *Menu) DishIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), m.dishIDs...)
}

// IsValidOn reports whether day falls inside the menu's window.
func (m *Menu) IsValidOn(day time.Time) bool {
	return !kernel.IsAfterDay(m.dateFrom, day) && !kernel.IsAfterDay(day, m.dateTo)
}

// Offers reports whether the menu includes the dish.
func (m *Menu) Offers(dishID kernel.UUID) bool {
	for _, id := range m.dishIDs {
		if id.IsEqual(dishID) {
			return true
		}
	}
	return false
}
