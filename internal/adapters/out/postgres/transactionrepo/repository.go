// Package transactionrepo stores the append-only log of balance movements.
package transactionrepo

import (
	"context"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/transaction"

	"gorm.io/gorm"
)

// GormTransactionRepository implements ports.TransactionRepository using GORM.
type GormTransactionRepository struct {
	db *gorm.DB
}

func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) Add(ctx context.Context, tx *transaction.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tx)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllByUser returns the user's transactions, newest first.
func (r *GormTransactionRepository) GetAllByUser(
	ctx context.Context,
	userID kernel.UUID,
) ([]*transaction.Transaction, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransactionDTO
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	txs := make([]*transaction.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		tx, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
