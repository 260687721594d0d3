package ports

import (
	"context"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/transaction"
)

// TransactionRepository records balance movements. Transactions are never updated.
type TransactionRepository interface {
	Add(ctx context.Context, tx *transaction.Transaction) error

	// GetAllByUser returns a user's transactions, newest first.
	GetAllByUser(ctx context.Context, userID kernel.UUID) ([]*transaction.Transaction, error)
}
