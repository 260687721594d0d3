package transaction

import (
	"errors"

	"mealdelivery/internal/pkg/errs"
)

// Type is the direction of a balance movement.
type Type int

const (
	// UnknownType is the zero value; constructing a transaction with it fails.
	UnknownType Type = iota
	// Income is money added to the balance manually.
	Income
	// Outcome is money charged from the balance to pay an order.
	Outcome
	// Refund returns the price of a paid order that was canceled or rejected.
	Refund
)

var (
	errTypeRequired   = errors.New("type required")
	errTypeNotAllowed = errors.New("only income/outcome/refund allowed")
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		Income:  "income",
		Outcome: "outcome",
		Refund:  "refund",
	}
}

// ParseType converts the persisted or transported name of a type.
func ParseType(s string) (Type, error) {
	if s == "" {
		return UnknownType, errs.NewValueIsRequiredErrorWithCause("type", errTypeRequired)
	}
	for t, str := range getTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("type", errTypeNotAllowed)
}

func (t Type) Validate() error {
	if t == UnknownType {
		return errs.NewValueIsRequiredErrorWithCause("type", errTypeRequired)
	}
	if _, ok := getTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("type", errTypeNotAllowed)
	}
	return nil
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
