// Package transaction records balance movements. Building a Transaction applies
// its effect to the user's balance at once: income and refund recharge it,
// outcome charges it. A charge the balance cannot cover fails the constructor,
// so a Transaction value always stands for a movement that happened.
package transaction

import (
	"errors"
	"fmt"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/user"
	"mealdelivery/internal/pkg/errs"
	"mealdelivery/internal/pkg/guard"
)

// MaxAmount caps a single movement.
const MaxAmount = 100000

var ErrTransactionIsNotConstructed = errs.NewValueIsRequiredError(
	"transaction must be created via NewTransaction or RestoreTransaction constructors")

// paidAtLayouts are tried in order by MarkPaidAtString.
var paidAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Transaction is an immutable balance movement. Only the paid-at date may be
// overridden after construction.
type Transaction struct {
	id        kernel.UUID
	txType    Type
	amount    kernel.Money
	userID    kernel.UUID
	createdAt time.Time
	paidAt    *time.Time

	guard guard.ConstructorGuard
}

// NewTransaction validates the movement and applies it to u.
//
// An outcome that u cannot afford returns user.ErrInsufficientFunds and no
// Transaction; u is left untouched in that case. A nil clock means the
// system clock.
func NewTransaction(txType Type, amount kernel.Money, u *user.User, clock kernel.Clock) (*Transaction, error) {
	if clock == nil {
		clock = kernel.SystemClock{}
	}

	tx := &Transaction{
		id:    kernel.NewUUID(),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tx.setType(txType),
		tx.setAmount(amount),
		u.Validate(),
	); err != nil {
		return nil, err
	}

	switch txType {
	case Income, Refund:
		u.RechargeBalance(amount)
	case Outcome:
		if err := u.ChargeBalance(amount); err != nil {
			return nil, err
		}
	}

	tx.userID = u.ID()
	tx.createdAt = clock.Now()
	return tx, nil
}

// RestoreTransaction rebuilds a persisted transaction without touching any balance.
func RestoreTransaction(
	id kernel.UUID,
	txType Type,
	amount kernel.Money,
	userID kernel.UUID,
	createdAt time.Time,
	paidAt *time.Time,
) (*Transaction, error) {
	tx := &Transaction{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		tx.setType(txType),
		tx.setAmount(amount),
	); err != nil {
		return nil, err
	}

	tx.id = id
	tx.userID = userID
	if paidAt != nil {
		tx.MarkPaidAt(*paidAt)
	}
	return tx, nil
}

func (t *Transaction) Validate() error {
	if t == nil {
		return ErrTransactionIsNotConstructed
	}
	return t.guard.Validate(ErrTransactionIsNotConstructed)
}

func (t *Transaction) ID() kernel.UUID {
	return t.id
}

func (t *Transaction) Type() Type {
	return t.txType
}

func (t *Transaction) Amount() kernel.Money {
	return t.amount
}

func (t *Transaction) UserID() kernel.UUID {
	return t.userID
}

func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

// PaidAt returns the payment date override, if one was set.
func (t *Transaction) PaidAt() (time.Time, bool) {
	if t.paidAt == nil {
		return time.Time{}, false
	}
	return *t.paidAt, true
}

// MarkPaidAt sets or replaces the payment date.
func (t *Transaction) MarkPaidAt(at time.Time) {
	t.paidAt = &at
}

// MarkPaidAtString parses at as RFC 3339, "2006-01-02 15:04:05" or a bare
// date and sets it as the payment date.
func (t *Transaction) MarkPaidAtString(at string) error {
	for _, layout := range paidAtLayouts {
		if parsed, err := time.Parse(layout, at); err == nil {
			t.MarkPaidAt(parsed)
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("paid at", fmt.Errorf("%q is not a date", at))
}

func (t *Transaction) setType(txType Type) error {
	if err := txType.Validate(); err != nil {
		return err
	}
	t.txType = txType
	return nil
}

func (t *Transaction) setAmount(amount kernel.Money) error {
	if err := kernel.ValidateAmount("amount", amount, kernel.NewMoney(MaxAmount)); err != nil {
		return err
	}
	t.amount = amount
	return nil
}
