package order

import "time"

// LineItemSnapshot is the plain-data projection of a LineItem.
type LineItemSnapshot struct {
	ID   string `json:"id"`
	Dish string `json:"dish"`
	Size string `json:"size"`
}

// CreatedSnapshot projects the creation record.
type CreatedSnapshot struct {
	At time.Time `json:"at"`
}

// ReasonSnapshot projects a cancellation or a rejection.
type ReasonSnapshot struct {
	At     time.Time `json:"at"`
	Reason string    `json:"reason"`
}

// CarrierSnapshot projects a delivery.
type CarrierSnapshot struct {
	At      time.Time `json:"at"`
	Carrier string    `json:"carrier"`
}

// Snapshot is the plain-data projection of an Order used for transport.
// Absent lifecycle records are null.
type Snapshot struct {
	ID           string             `json:"id"`
	Price        float64            `json:"price"`
	OrderNumber  int                `json:"orderNumber"`
	User         string             `json:"user"`
	ShipmentDate *string            `json:"shipmentDate"`
	Address      string             `json:"address"`
	Items        []LineItemSnapshot `json:"items"`
	Status       string             `json:"status"`
	Paid         bool               `json:"paid"`
	Created      *CreatedSnapshot   `json:"created"`
	Canceled     *ReasonSnapshot    `json:"canceled"`
	Rejected     *ReasonSnapshot    `json:"rejected"`
	Delivered    *CarrierSnapshot   `json:"delivered"`
}

func (li LineItem) Snapshot() LineItemSnapshot {
	return LineItemSnapshot{
		ID:   li.id.String(),
		Dish: li.dishID.String(),
		Size: li.size.String(),
	}
}

func (o *Order) Snapshot() Snapshot {
	items := make([]LineItemSnapshot, 0, len(o.lineItems))
	for _, item := range o.lineItems {
		items = append(items, item.Snapshot())
	}

	s := Snapshot{
		ID:          o.id.String(),
		Price:       o.price.Float64(),
		OrderNumber: o.number,
		User:        o.userID.String(),
		Address:     o.address,
		Items:       items,
		Status:      o.status.String(),
		Paid:        o.payment.IsPaid(),
		Created:     &CreatedSnapshot{At: o.createdAt},
	}

	if !o.shipmentDate.IsZero() {
		date := o.shipmentDate.Format(time.DateOnly)
		s.ShipmentDate = &date
	}
	if o.cancellation != nil {
		s.Canceled = &ReasonSnapshot{At: o.cancellation.At, Reason: o.cancellation.Reason}
	}
	if o.rejection != nil {
		s.Rejected = &ReasonSnapshot{At: o.rejection.At, Reason: o.rejection.Reason}
	}
	if o.delivery != nil {
		s.Delivered = &CarrierSnapshot{At: o.delivery.At, Carrier: o.delivery.Carrier}
	}

	return s
}
