// Package catalogrepo reads dishes and menus. The catalog is maintained by
// another service; Add exists for seeding.
package catalogrepo

import (
	"context"
	"errors"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/menu"
	"mealdelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDishRepository implements ports.DishRepository using GORM.
type GormDishRepository struct {
	db *gorm.DB
}

func NewGormDishRepository(db *gorm.DB) *GormDishRepository {
	return &GormDishRepository{db: db}
}

func (r *GormDishRepository) Add(ctx context.Context, d *menu.Dish) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := DishDTO{ID: d.ID().Bytes(), Name: d.Name()}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDishRepository) Get(ctx context.Context, id kernel.UUID) (*menu.Dish, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DishDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dish", id.String())
		}
		return nil, err
	}

	return dishToDomain(dto)
}

// GormMenuRepository implements ports.MenuRepository using GORM.
type GormMenuRepository struct {
	db *gorm.DB
}

func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// Add saves a menu and its dish list. The dishes must exist.
func (r *GormMenuRepository) Add(ctx context.Context, m *menu.Menu) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := menuFromDomain(m)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}
	if len(dto.Dishes) == 0 {
		return nil
	}
	return db.Create(&dto.Dishes).Error
}

// GetValidOn returns the menus whose window includes day, by start date.
func (r *GormMenuRepository) GetValidOn(ctx context.Context, day time.Time) ([]*menu.Menu, error) {
	date := day.Format(time.DateOnly)

	var dtos []MenuDTO
	if err := r.db.WithContext(ctx).
		Preload("Dishes").
		Where("date_from <= ? AND date_to >= ?", date, date).
		Order("date_from").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	menus := make([]*menu.Menu, 0, len(dtos))
	for _, dto := range dtos {
		m, err := menuToDomain(dto)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, nil
}
