package userrepo

import (
	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserDTO struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name    string          `gorm:"type:varchar(150)"`
	Address string          `gorm:"type:varchar(150)"`
	Balance decimal.Decimal `gorm:"type:numeric(12,2)"`
	Credit  decimal.Decimal `gorm:"type:numeric(12,2)"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:      u.ID().Bytes(),
		Name:    u.Name(),
		Address: u.Address(),
		Balance: u.Balance().Decimal(),
		Credit:  u.Credit().Decimal(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, dto.Address,
		kernel.MoneyFromDecimal(dto.Balance), kernel.MoneyFromDecimal(dto.Credit))
}
