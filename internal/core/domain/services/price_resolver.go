package services

import (
	"errors"
	"fmt"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/core/domain/model/price"
	"mealdelivery/internal/pkg/errs"
)

// ErrPriceNotFound is wrapped into the error returned when a line item has no
// single-item price.
var ErrPriceNotFound = errors.New("price not found")

// PriceResolver finds the price of a set of line items.
//
// Resolution algorithm:
//   - Only rules valid on the shipment date are considered
//   - A rule whose items equal the line items exactly (a bundle) wins and its value is returned
//   - Otherwise every line item is priced by a single-item rule and the values are summed
//
// Rules are examined in the order given and the first match wins; repositories
// return them newest first so the most recent rule applies.
type PriceResolver struct{}

func NewPriceResolver() PriceResolver {
	return PriceResolver{}
}

// Resolve returns the price of items shipped on shipmentDate.
//
// Parameters:
//   - items: The order's line items, already deduplicated by dish
//   - shipmentDate: Delivery day; time of day is ignored
//   - prices: Known rules, newest first
//
// Returns:
//   - kernel.Money: The bundle value or the sum of single-item values
//   - error: ErrPriceNotFound (as an object-not-found error naming the dish)
//     when a line item has no single-item rule
func (r PriceResolver) Resolve(items []order.LineItem, shipmentDate time.Time, prices []*price.Price) (kernel.Money, error) {
	if len(items) == 0 {
		return kernel.Money{}, errs.NewValueIsRequiredError("line items")
	}

	wanted := make([]price.Item, 0, len(items))
	for _, li := range items {
		item, err := price.NewItem(li.DishID(), li.Size())
		if err != nil {
			return kernel.Money{}, err
		}
		wanted = append(wanted, item)
	}

	candidates := make([]*price.Price, 0, len(prices))
	for _, p := range prices {
		if p.IsValidOn(shipmentDate) {
			candidates = append(candidates, p)
		}
	}

	for _, p := range candidates {
		if p.HasSameItems(wanted) {
			return p.Value()
		}
	}

	total := kernel.ZeroMoney()
	for _, item := range wanted {
		value, err := r.singleItemValue(item, candidates)
		if err != nil {
			return kernel.Money{}, err
		}
		total = total.Add(value)
	}

	return total, nil
}

func (r PriceResolver) singleItemValue(item price.Item, candidates []*price.Price) (kernel.Money, error) {
	for _, p := range candidates {
		if p.IsSingle() && p.Items()[0].IsEqual(item) {
			return p.Value()
		}
	}

	return kernel.Money{}, errs.NewObjectNotFoundErrorWithCause(
		"price",
		fmt.Sprintf("dish %s (%s)", item.DishID(), item.Size()),
		ErrPriceNotFound,
	)
}
