package order

import (
	"errors"

	"mealdelivery/internal/core/domain/model/kernel"
)

// LineItem is one ordered dish in one portion size.
type LineItem struct {
	id     kernel.UUID
	dishID kernel.UUID
	size   kernel.Size
}

// NewLineItem builds a line item with a fresh id. Unknown sizes fail.
func NewLineItem(dishID kernel.UUID, size kernel.Size) (LineItem, error) {
	return RestoreLineItem(kernel.NewUUID(), dishID, size)
}

func RestoreLineItem(id kernel.UUID, dishID kernel.UUID, size kernel.Size) (LineItem, error) {
	if err := errors.Join(id.Validate(), dishID.Validate(), size.Validate()); err != nil {
		return LineItem{}, err
	}
	return LineItem{id: id, dishID: dishID, size: size}, nil
}

func (li LineItem) ID() kernel.UUID {
	return li.id
}

func (li LineItem) DishID() kernel.UUID {
	return li.dishID
}

func (li LineItem) Size() kernel.Size {
	return li.size
}

func (li LineItem) Validate() error {
	return errors.Join(li.id.Validate(), li.dishID.Validate(), li.size.Validate())
}

// uniqueByDish keeps the first line item of every dish and drops the rest.
func uniqueByDish(items []LineItem) []LineItem {
	unique := make([]LineItem, 0, len(items))
	for _, item := range items {
		duplicate := false
		for _, kept := range unique {
			if kept.dishID.IsEqual(item.dishID) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, item)
		}
	}
	return unique
}
