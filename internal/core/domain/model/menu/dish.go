// Package menu is the read side of the catalog that order creation needs:
// dishes that can be ordered and the menus that say on which days they are
// cooked. Catalog management lives elsewhere; this package only restores and
// queries what is stored.
package menu

import (
	"errors"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/pkg/guard"
)

var ErrDishIsNotConstructed = errors.New("dish must be created via NewDish constructor")

// Dish is a catalog food item.
type Dish struct {
	id   kernel.UUID
	name string

	guard guard.ConstructorGuard
}

func NewDish(id kernel.UUID, name string) (*Dish, error) {
	if err := errors.Join(id.Validate(), kernel.ValidateText("dish name", name, 1, 150)); err != nil {
		return nil, err
	}
	return &Dish{id: id, name: name, guard: guard.NewConstructorGuard()}, nil
}

func (d *Dish) Validate() error {
	if d == nil {
		return ErrDishIsNotConstructed
	}
	return d.guard.Validate(ErrDishIsNotConstructed)
}

func (d *Dish) ID() kernel.UUID {
	return d.id
}

func (d *Dish) Name() string {
	return d.name
}
