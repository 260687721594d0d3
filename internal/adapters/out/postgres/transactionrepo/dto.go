package transactionrepo

import (
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/transaction"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Type      int             `gorm:"type:smallint"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	UserID    uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt time.Time
	PaidAt    *time.Time
}

func (TransactionDTO) TableName() string {
	return "transactions"
}

func fromDomain(tx *transaction.Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:        tx.ID().Bytes(),
		Type:      int(tx.Type()),
		Amount:    tx.Amount().Decimal(),
		UserID:    tx.UserID().Bytes(),
		CreatedAt: tx.CreatedAt(),
	}
	if paidAt, ok := tx.PaidAt(); ok {
		dto.PaidAt = &paidAt
	}
	return dto
}

func toDomain(dto TransactionDTO) (*transaction.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return transaction.RestoreTransaction(id, transaction.Type(dto.Type),
		kernel.MoneyFromDecimal(dto.Amount), userID, dto.CreatedAt, dto.PaidAt)
}
