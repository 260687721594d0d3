package user

import (
	"errors"
	"fmt"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/pkg/errs"
	"mealdelivery/internal/pkg/guard"
)

const (
	nameMinLength    = 1
	nameMaxLength    = 150
	addressMinLength = 1
	addressMaxLength = 150
)

var (
	// ErrUserIsNotConstructed is returned when a User was not built by NewUser or RestoreUser.
	ErrUserIsNotConstructed = errs.NewValueIsRequiredError(
		"user must be created via NewUser or RestoreUser constructors")

	// ErrInsufficientFunds is returned by ChargeBalance when the amount exceeds the balance.
	ErrInsufficientFunds = errs.NewInvalidStateError("Insufficient funds")
)

// User is the aggregate owning a balance and a credit ledger.
type User struct {
	id      kernel.UUID
	name    string
	address string
	balance kernel.Money
	credit  kernel.Money

	guard guard.ConstructorGuard
}

// NewUser registers a user with zero balance and zero credit.
func NewUser(id kernel.UUID, name string, address string) (*User, error) {
	u := &User{
		balance: kernel.ZeroMoney(),
		credit:  kernel.ZeroMoney(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setAddress(address),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a user from persisted state.
func RestoreUser(
	id kernel.UUID,
	name string,
	address string,
	balance kernel.Money,
	credit kernel.Money,
) (*User, error) {
	u := &User{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setAddress(address),
		u.setBalance(balance),
		u.setCredit(credit),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// IsEqual compares users by identity.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

// Address is the default delivery address for new orders.
func (u *User) Address() string {
	return u.address
}

func (u *User) Balance() kernel.Money {
	return u.balance
}

func (u *User) Credit() kernel.Money {
	return u.credit
}

// RechargeBalance adds amount to the balance.
func (u *User) RechargeBalance(amount kernel.Money) {
	u.balance = u.balance.Add(amount)
}

// ChargeBalance subtracts amount from the balance. There is no partial
// charge: when amount exceeds the balance ErrInsufficientFunds is returned
// and the balance is unchanged.
func (u *User) ChargeBalance(amount kernel.Money) error {
	if amount.GreaterThan(u.balance) {
		return ErrInsufficientFunds
	}

	u.balance = u.balance.Sub(amount)
	return nil
}

// TakeCredit records amount as absorbed by the business on the user's behalf.
func (u *User) TakeCredit(amount kernel.Money) {
	u.credit = u.credit.Add(amount)
}

// PayCredit settles credit, floored at zero. Any excess is discarded.
func (u *User) PayCredit(amount kernel.Money) {
	u.credit = u.credit.Sub(amount).Max(kernel.ZeroMoney())
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if err := kernel.ValidateText("name", name, nameMinLength, nameMaxLength); err != nil {
		return err
	}
	u.name = name
	return nil
}

func (u *User) setAddress(address string) error {
	if err := kernel.ValidateText("address", address, addressMinLength, addressMaxLength); err != nil {
		return err
	}
	u.address = address
	return nil
}

func (u *User) setBalance(balance kernel.Money) error {
	if balance.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("balance", fmt.Errorf("%s is negative", balance))
	}
	u.balance = balance
	return nil
}

func (u *User) setCredit(credit kernel.Money) error {
	if credit.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("credit", fmt.Errorf("%s is negative", credit))
	}
	u.credit = credit
	return nil
}
