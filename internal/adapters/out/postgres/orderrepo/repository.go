package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	clock   kernel.Clock
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. Restored orders
// take their timestamps from clock; nil means the system clock.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker, clock kernel.Clock) *GormOrderRepository {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
		clock:   clock,
	}
}

// Add saves a new order with its line items. A taken order number means a
// concurrent create won the number race and is reported as an
// *errs.InvalidStateError.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewInvalidStateError(fmt.Sprintf("Order number %d is already taken", dto.Number))
		}
		return err
	}

	if err := r.saveLineItems(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order and replaces its line items.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&LineItemDTO{}).Error; err != nil {
		return err
	}

	if err := r.saveLineItems(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order and holds its row lock until the
// surrounding transaction ends. Outside a transaction the lock is released
// immediately.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetAllInStatus retrieves every order in status, ordered by number.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", int(status)))
}

// GetAllPaidInStatus retrieves every paid order in status, ordered by number.
func (r *GormOrderRepository) GetAllPaidInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ? AND paid", int(status)))
}

// NextNumber returns the highest order number plus one, never less than
// order.FirstNumber.
func (r *GormOrderRepository) NextNumber(ctx context.Context) (int, error) {
	var maxNumber int
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Select("COALESCE(MAX(number), 0)").
		Scan(&maxNumber).Error; err != nil {
		return 0, err
	}

	if maxNumber < order.FirstNumber {
		return order.FirstNumber, nil
	}
	return maxNumber + 1, nil
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("position").
		Find(&dto.LineItems).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, r.clock)
}

func (r *GormOrderRepository) find(db *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := db.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("number").Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto, r.clock)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) saveLineItems(db *gorm.DB, dto OrderDTO) error {
	if len(dto.LineItems) == 0 {
		return nil
	}
	return db.Create(&dto.LineItems).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
