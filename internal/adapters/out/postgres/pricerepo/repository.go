// Package pricerepo persists price rules and their (dish, size) items.
package pricerepo

import (
	"context"
	"time"

	"mealdelivery/internal/core/domain/model/price"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPriceRepository implements ports.PriceRepository using GORM.
type GormPriceRepository struct {
	db *gorm.DB
}

func NewGormPriceRepository(db *gorm.DB) *GormPriceRepository {
	return &GormPriceRepository{db: db}
}

// Add saves a rule together with its items. Rules are never updated.
func (r *GormPriceRepository) Add(ctx context.Context, p *price.Price) error {
	if err := p.Validate(); err != nil {
		return err
	}

	value, err := p.Value()
	if err != nil {
		return err
	}

	dto := fromDomain(p, value)
	db := r.db.WithContext(ctx)
	if err = db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}
	return db.Create(&dto.Items).Error
}

// GetValidOn returns rules dated on or before day, newest first. Rules of the
// same date come back in insertion-independent id order.
func (r *GormPriceRepository) GetValidOn(ctx context.Context, day time.Time) ([]*price.Price, error) {
	var dtos []PriceDTO
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("date <= ?", day.Format(time.DateOnly)).
		Order("date DESC").
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	prices := make([]*price.Price, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, nil
}
