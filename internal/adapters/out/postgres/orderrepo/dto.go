// Package orderrepo persists order aggregates: the order row carries the
// payment sub-state and the lifecycle records, line items live in their own table.
package orderrepo

import (
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number       int             `gorm:"uniqueIndex:idx_orders_number"`
	UserID       uuid.UUID       `gorm:"type:uuid"`
	Address      string          `gorm:"type:varchar(150)"`
	ShipmentDate time.Time       `gorm:"type:date"`
	Status       int             `gorm:"type:smallint"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreatedAt    time.Time

	Payment PaymentDTO `gorm:"embedded"`

	CanceledAt   *time.Time
	CancelReason *string `gorm:"type:varchar(150)"`
	RejectedAt   *time.Time
	RejectReason *string `gorm:"type:varchar(150)"`
	DeliveredAt  *time.Time
	Carrier      *string `gorm:"type:varchar(150)"`

	LineItems []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// PaymentDTO is the payment sub-state, stored in the order row.
type PaymentDTO struct {
	StartedAt time.Time `gorm:"column:payment_started_at"`
	Paid      bool
	PaidAt    *time.Time
	Credited  bool
	Refunded  bool
}

type LineItemDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	DishID   uuid.UUID `gorm:"type:uuid"`
	Size     int       `gorm:"type:smallint"`
	Position int       `gorm:"type:smallint"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

func fromDomain(o *order.Order) OrderDTO {
	payment := o.Payment()
	dto := OrderDTO{
		ID:           o.ID().Bytes(),
		Number:       o.Number(),
		UserID:       o.UserID().Bytes(),
		Address:      o.Address(),
		ShipmentDate: o.ShipmentDate(),
		Status:       int(o.Status()),
		Price:        o.Price().Decimal(),
		CreatedAt:    o.CreatedAt(),
		Payment: PaymentDTO{
			StartedAt: payment.StartedAt(),
			Paid:      payment.IsPaid(),
			Credited:  payment.IsCredited(),
			Refunded:  payment.IsRefunded(),
		},
	}

	if paidAt, ok := payment.PaidAt(); ok {
		dto.Payment.PaidAt = &paidAt
	}
	if c, ok := o.Cancellation(); ok {
		dto.CanceledAt, dto.CancelReason = &c.At, &c.Reason
	}
	if r, ok := o.Rejection(); ok {
		dto.RejectedAt, dto.RejectReason = &r.At, &r.Reason
	}
	if d, ok := o.Delivery(); ok {
		dto.DeliveredAt, dto.Carrier = &d.At, &d.Carrier
	}

	for i, item := range o.LineItems() {
		dto.LineItems = append(dto.LineItems, LineItemDTO{
			ID:       item.ID().Bytes(),
			OrderID:  dto.ID,
			DishID:   item.DishID().Bytes(),
			Size:     int(item.Size()),
			Position: i,
		})
	}

	return dto
}

func toDomain(dto OrderDTO, clock kernel.Clock) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.LineItems))
	for _, itemDTO := range dto.LineItems {
		item, itemErr := lineItemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	state := order.State{
		ID:           id,
		Number:       dto.Number,
		UserID:       userID,
		Address:      dto.Address,
		ShipmentDate: dto.ShipmentDate,
		Status:       order.Status(dto.Status),
		Price:        kernel.MoneyFromDecimal(dto.Price),
		LineItems:    items,
		Payment: order.RestorePayment(dto.Payment.StartedAt, dto.Payment.PaidAt,
			dto.Payment.Paid, dto.Payment.Credited, dto.Payment.Refunded),
		CreatedAt: dto.CreatedAt,
	}

	if dto.CanceledAt != nil {
		state.Cancellation = &order.Cancellation{At: *dto.CanceledAt, Reason: deref(dto.CancelReason)}
	}
	if dto.RejectedAt != nil {
		state.Rejection = &order.Rejection{At: *dto.RejectedAt, Reason: deref(dto.RejectReason)}
	}
	if dto.DeliveredAt != nil {
		state.Delivery = &order.Delivery{At: *dto.DeliveredAt, Carrier: deref(dto.Carrier)}
	}

	return order.RestoreOrder(state, clock)
}

func lineItemToDomain(dto LineItemDTO) (order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	dishID, err := kernel.UUIDFromBytes(dto.DishID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	return order.RestoreLineItem(id, dishID, kernel.Size(dto.Size))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
