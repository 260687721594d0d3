package pricerepo

import (
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/price"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PriceDTO struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Value decimal.Decimal `gorm:"type:numeric(12,2)"`
	Date  time.Time       `gorm:"type:date"`

	Items []ItemDTO `gorm:"foreignKey:PriceID;constraint:OnDelete:CASCADE"`
}

func (PriceDTO) TableName() string {
	return "prices"
}

type ItemDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	PriceID uuid.UUID `gorm:"type:uuid;index"`
	DishID  uuid.UUID `gorm:"type:uuid"`
	Size    int       `gorm:"type:smallint"`
}

func (ItemDTO) TableName() string {
	return "price_items"
}

// fromDomain stores the raw value: Price.Value refuses rules without items,
// the table does not.
func fromDomain(p *price.Price, value kernel.Money) PriceDTO {
	dto := PriceDTO{
		ID:    p.ID().Bytes(),
		Value: value.Decimal(),
		Date:  p.Date(),
	}
	for _, item := range p.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ID:      item.ID().Bytes(),
			PriceID: dto.ID,
			DishID:  item.DishID().Bytes(),
			Size:    int(item.Size()),
		})
	}
	return dto
}

func toDomain(dto PriceDTO) (*price.Price, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]price.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		dishID, itemErr := kernel.UUIDFromBytes(itemDTO.DishID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := price.RestoreItem(itemID, dishID, kernel.Size(itemDTO.Size))
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return price.RestorePrice(id, kernel.MoneyFromDecimal(dto.Value), dto.Date, items)
}
