package queries

import (
	"errors"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/pkg/guard"
)

var ErrGetUserAccountQueryIsNotConstructed = errors.New(
	"GetUserAccountQuery must be created via NewGetUserAccountQuery constructor",
)

// GetUserAccountQuery asks for a user's balance, credit and transaction log.
type GetUserAccountQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetUserAccountQuery(userID kernel.UUID) (GetUserAccountQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserAccountQuery{}, err
	}
	return GetUserAccountQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserAccountQuery) Validate() error {
	return q.guard.Validate(ErrGetUserAccountQueryIsNotConstructed)
}

func (q GetUserAccountQuery) UserID() kernel.UUID {
	return q.userID
}

// GetUserAccountQueryResponse is the account of one user.
type GetUserAccountQueryResponse struct {
	UserID       kernel.UUID
	Name         string
	Balance      kernel.Money
	Credit       kernel.Money
	Transactions []TransactionView
}

// TransactionView is one balance movement, newest first in the response.
type TransactionView struct {
	ID        kernel.UUID
	Type      string
	Amount    kernel.Money
	CreatedAt time.Time
	PaidAt    *time.Time
}
