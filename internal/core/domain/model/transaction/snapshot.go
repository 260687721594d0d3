package transaction

import "time"

// Snapshot is the plain-data projection of a Transaction.
type Snapshot struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Amount    float64    `json:"amount"`
	User      string     `json:"user"`
	CreatedAt time.Time  `json:"createdAt"`
	PaidAt    *time.Time `json:"paidAt"`
}

func (t *Transaction) Snapshot() Snapshot {
	s := Snapshot{
		ID:        t.id.String(),
		Type:      t.txType.String(),
		Amount:    t.amount.Float64(),
		User:      t.userID.String(),
		CreatedAt: t.createdAt,
	}
	if at, ok := t.PaidAt(); ok {
		s.PaidAt = &at
	}
	return s
}
