package ports

import (
	"context"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/user"
)

// UserRepository stores users and their balance and credit.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetForUpdate locks the user's row so balance changes are serialized per user.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error)
}
