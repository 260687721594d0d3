package catalogrepo

import (
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

type DishDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(150)"`
}

func (DishDTO) TableName() string {
	return "dishes"
}

type MenuDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(150)"`
	DateFrom time.Time `gorm:"type:date"`
	DateTo   time.Time `gorm:"type:date"`

	Dishes []MenuDishDTO `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
}

func (MenuDTO) TableName() string {
	return "menus"
}

type MenuDishDTO struct {
	MenuID uuid.UUID `gorm:"type:uuid;primaryKey"`
	DishID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (MenuDishDTO) TableName() string {
	return "menu_dishes"
}

func dishToDomain(dto DishDTO) (*menu.Dish, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return menu.NewDish(id, dto.Name)
}

func menuFromDomain(m *menu.Menu) MenuDTO {
	dto := MenuDTO{
		ID:       m.ID().Bytes(),
		Name:     m.Name(),
		DateFrom: m.DateFrom(),
		DateTo:   m.DateTo(),
	}
	for _, dishID := range m.DishIDs() {
		dto.Dishes = append(dto.Dishes, MenuDishDTO{MenuID: dto.ID, DishID: dishID.Bytes()})
	}
	return dto
}

func menuToDomain(dto MenuDTO) (*menu.Menu, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	dishIDs := make([]kernel.UUID, 0, len(dto.Dishes))
	for _, d := range dto.Dishes {
		dishID, dishErr := kernel.UUIDFromBytes(d.DishID[:])
		if dishErr != nil {
			return nil, dishErr
		}
		dishIDs = append(dishIDs, dishID)
	}

	return menu.NewMenu(id, dto.Name, dto.DateFrom, dto.DateTo, dishIDs)
}
