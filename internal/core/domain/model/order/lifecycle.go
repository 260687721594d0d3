package order

import (
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
)

// Cancellation records when and why the customer canceled.
type Cancellation struct {
	At     time.Time
	Reason string
}

// Rejection records when and why the business rejected the order.
type Rejection struct {
	At     time.Time
	Reason string
}

// Delivery records when and by whom the order was delivered.
type Delivery struct {
	At      time.Time
	Carrier string
}

// StatusChanged is raised on every status transition and published once
// the unit of work that persisted it commits.
type StatusChanged struct {
	OrderID     kernel.UUID
	OrderNumber int
	UserID      kernel.UUID
	From        Status
	To          Status
	At          time.Time
}
