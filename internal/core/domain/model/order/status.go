package order

import (
	"fmt"

	"mealdelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Created ──> InProgress ──> Delivered ──> Closed
//	   │             │             │
//	   │             └─────────────┴──> Rejected
//	   ├──> Canceled ──> Rejected
//	   └──> Rejected
//
// Closed, Canceled and Rejected accept no further forward transitions; only
// Canceled may still be rejected.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status. Address can be changed only here.
	Created

	// InProgress means the kitchen started cooking.
	InProgress

	// Canceled means the customer withdrew the order before cooking began.
	Canceled

	// Rejected means the business refused the order.
	Rejected

	// Delivered means a carrier handed the order over.
	Delivered

	// Closed is the terminal status of a delivered and paid order.
	Closed
)

var (
	ErrCannotStartProgress = errs.NewInvalidStateError("Just 'created' orders can become in progress")
	ErrCannotDeliver       = errs.NewInvalidStateError("Only 'in progress' orders can become 'delivered'")
	ErrCloseNotDelivered   = errs.NewInvalidStateError("To close Order it should be delivered")
	ErrCloseNotPaid        = errs.NewInvalidStateError("To close Order it should be paid")
	ErrCannotCancel        = errs.NewInvalidStateError("Just 'created' orders can be canceled")
	ErrAlreadyCanceled     = errs.NewInvalidStateError("Order is already canceled")
	ErrRejectClosed        = errs.NewInvalidStateError("Order is closed, can't reject")
	ErrAlreadyRejected     = errs.NewInvalidStateError("Order is already rejected")
	ErrCannotPay           = errs.NewInvalidStateError("Canceled or Rejected orders can not be paid")
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Created:    "created",
		InProgress: "inProgress",
		Canceled:   "canceled",
		Rejected:   "rejected",
		Delivered:  "delivered",
		Closed:     "closed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "created",
		InProgress: "inProgress",
		Canceled:   "canceled",
		Rejected:   "rejected",
		Delivered:  "delivered",
		Closed:     "closed",
	}
}

// ParseStatus converts a status name such as "inProgress".
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the six lifecycle states.
// Values loaded from storage go through it before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name used in snapshots and events.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether no forward transition leaves s.
func (s Status) IsFinal() bool {
	return s == Closed || s == Canceled || s == Rejected
}

// StartProgress transitions Created to InProgress.
func (s Status) StartProgress() (Status, error) {
	if s != Created {
		return s, ErrCannotStartProgress
	}
	return InProgress, nil
}

// Deliver transitions InProgress to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != InProgress {
		return s, ErrCannotDeliver
	}
	return Delivered, nil
}

// Close transitions Delivered to Closed when the order is paid.
// The status check comes first, so an unpaid InProgress order reports that
// it is not delivered.
func (s Status) Close(paid bool) (Status, error) {
	if s != Delivered {
		return s, ErrCloseNotDelivered
	}
	if !paid {
		return s, ErrCloseNotPaid
	}
	return Closed, nil
}

// Cancel transitions Created to Canceled.
func (s Status) Cancel() (Status, error) {
	if s != Created {
		return s, ErrCannotCancel
	}
	return Canceled, nil
}

// Reject transitions any status except Closed and Rejected to Rejected.
func (s Status) Reject() (Status, error) {
	switch s {
	case Closed:
		return s, ErrRejectClosed
	case Rejected:
		return s, ErrAlreadyRejected
	default:
		return Rejected, nil
	}
}

// ValidatePay rejects payment of Canceled and Rejected orders.
func (s Status) ValidatePay() error {
	if s == Canceled || s == Rejected {
		return ErrCannotPay
	}
	return nil
}
