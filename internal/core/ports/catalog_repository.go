package ports

import (
	"context"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/menu"
)

// DishRepository looks dishes up by id.
type DishRepository interface {
	// Get returns an *errs.ObjectNotFoundError for an unknown dish.
	Get(ctx context.Context, id kernel.UUID) (*menu.Dish, error)
}

// MenuRepository looks menus up by validity window.
type MenuRepository interface {
	// GetValidOn returns the menus whose window contains day.
	GetValidOn(ctx context.Context, day time.Time) ([]*menu.Menu, error)
}
