package order

import (
	"errors"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/transaction"
	"mealdelivery/internal/core/domain/model/user"
)

const (
	errMessageAlreadyPaid = "Order is paid already"
	errMessageNoPrice     = "Order has no price"
)

// PayOutcomeKind tells how a payment attempt ended.
type PayOutcomeKind int

const (
	// OutcomePaid means the user was charged; the outcome carries the transaction.
	OutcomePaid PayOutcomeKind = iota + 1
	// OutcomeAlreadyPaid means the payment had already succeeded before.
	OutcomeAlreadyPaid
	// OutcomeNoPrice means the order price is zero and nothing can be charged.
	OutcomeNoPrice
	// OutcomeInsufficientFunds means the balance did not cover the price.
	OutcomeInsufficientFunds
	// OutcomeAlreadyClosed means the order is closed, which implies it is paid.
	OutcomeAlreadyClosed
)

func (k PayOutcomeKind) String() string {
	switch k {
	case OutcomePaid:
		return "paid"
	case OutcomeAlreadyPaid:
		return "alreadyPaid"
	case OutcomeNoPrice:
		return "noPrice"
	case OutcomeInsufficientFunds:
		return "insufficientFunds"
	case OutcomeAlreadyClosed:
		return "alreadyClosed"
	default:
		return "unknown"
	}
}

// PayOutcome is the result of a payment attempt. Transaction is set only
// for OutcomePaid.
type PayOutcome struct {
	Kind        PayOutcomeKind
	Transaction *transaction.Transaction
}

// IsPaid reports whether this attempt charged the user.
func (o PayOutcome) IsPaid() bool {
	return o.Kind == OutcomePaid
}

// Payment tracks whether an order is paid. Unpaid is the initial state and
// paid is terminal. A failed attempt leaves the state as is, records the
// reason and, the first time funds are short, moves the price onto the
// user's credit. A paid order is refunded at most once.
type Payment struct {
	startedAt time.Time
	paidAt    *time.Time
	paid      bool
	credited  bool
	refunded  bool
	lastError string
}

func NewPayment(startedAt time.Time) Payment {
	return Payment{startedAt: startedAt}
}

func RestorePayment(startedAt time.Time, paidAt *time.Time, paid, credited, refunded bool) Payment {
	p := Payment{
		startedAt: startedAt,
		paid:      paid,
		credited:  credited,
		refunded:  refunded,
	}
	if paidAt != nil {
		at := *paidAt
		p.paidAt = &at
	}
	return p
}

func (p *Payment) StartedAt() time.Time {
	return p.startedAt
}

func (p *Payment) PaidAt() (time.Time, bool) {
	if p.paidAt == nil {
		return time.Time{}, false
	}
	return *p.paidAt, true
}

func (p *Payment) IsPaid() bool {
	return p.paid
}

// IsCredited reports whether the price was already absorbed as user credit.
func (p *Payment) IsCredited() bool {
	return p.credited
}

// IsRefunded reports whether the paid price was already given back.
func (p *Payment) IsRefunded() bool {
	return p.refunded
}

// LastError is the reason of the most recent failed attempt. It is
// informational and not persisted.
func (p *Payment) LastError() string {
	return p.lastError
}

// Pay charges price from u through an outcome transaction.
//
// Insufficient funds are not an error: the attempt returns
// OutcomeInsufficientFunds and credits u with price unless this payment
// already did so. Any other failure building the transaction is returned.
func (p *Payment) Pay(price kernel.Money, u *user.User, clock kernel.Clock) (PayOutcome, error) {
	if p.paid {
		p.lastError = errMessageAlreadyPaid
		return PayOutcome{Kind: OutcomeAlreadyPaid}, nil
	}

	if price.IsZero() {
		p.lastError = errMessageNoPrice
		return PayOutcome{Kind: OutcomeNoPrice}, nil
	}

	tx, err := transaction.NewTransaction(transaction.Outcome, price, u, clock)
	if errors.Is(err, user.ErrInsufficientFunds) {
		p.lastError = err.Error()
		if !p.credited {
			u.TakeCredit(price)
			p.credited = true
		}
		return PayOutcome{Kind: OutcomeInsufficientFunds}, nil
	}
	if err != nil {
		return PayOutcome{}, err
	}

	now := clock.Now()
	p.paid = true
	p.paidAt = &now
	p.lastError = ""
	u.PayCredit(price)

	return PayOutcome{Kind: OutcomePaid, Transaction: tx}, nil
}

// refund gives price back to u once. It returns nil when the payment never
// succeeded or was refunded before.
func (p *Payment) refund(price kernel.Money, u *user.User, clock kernel.Clock) (*transaction.Transaction, error) {
	if !p.paid || p.refunded {
		return nil, nil
	}

	tx, err := transaction.NewTransaction(transaction.Refund, price, u, clock)
	if err != nil {
		return nil, err
	}

	p.refunded = true
	return tx, nil
}
