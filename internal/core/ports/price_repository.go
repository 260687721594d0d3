package ports

import (
	"context"
	"time"

	"mealdelivery/internal/core/domain/model/price"
)

// PriceRepository stores price rules.
type PriceRepository interface {
	Add(ctx context.Context, p *price.Price) error

	// GetValidOn returns the rules whose date is on or before day, newest date
	// first. Price resolution relies on this order: the first match wins.
	GetValidOn(ctx context.Context, day time.Time) ([]*price.Price, error)
}
