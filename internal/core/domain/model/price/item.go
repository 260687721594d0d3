package price

import (
	"errors"

	"mealdelivery/internal/core/domain/model/kernel"
)

// Item is one (dish, size) pair a Price applies to.
type Item struct {
	id     kernel.UUID
	dishID kernel.UUID
	size   kernel.Size
}

// NewItem builds an item with a fresh id.
func NewItem(dishID kernel.UUID, size kernel.Size) (Item, error) {
	return RestoreItem(kernel.NewUUID(), dishID, size)
}

func RestoreItem(id kernel.UUID, dishID kernel.UUID, size kernel.Size) (Item, error) {
	if err := errors.Join(id.Validate(), dishID.Validate(), size.Validate()); err != nil {
		return Item{}, err
	}
	return Item{id: id, dishID: dishID, size: size}, nil
}

func (i Item) ID() kernel.UUID {
	return i.id
}

func (i Item) DishID() kernel.UUID {
	return i.dishID
}

func (i Item) Size() kernel.Size {
	return i.size
}

// IsEqual compares the (dish, size) pair; ids are ignored.
func (i Item) IsEqual(other Item) bool {
	return i.dishID.IsEqual(other.dishID) && i.size == other.size
}

// Validate rejects the zero Item.
func (i Item) Validate() error {
	return errors.Join(i.id.Validate(), i.dishID.Validate(), i.size.Validate())
}
