package queries

import (
	"context"
	"errors"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/transaction"
	"mealdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetUserAccountQueryHandler reads the account straight from the users and
// transactions tables.
type GetUserAccountQueryHandler struct {
	db *gorm.DB
}

func NewGetUserAccountQueryHandler(db *gorm.DB) GetUserAccountQueryHandler {
	return GetUserAccountQueryHandler{db: db}
}

func (h GetUserAccountQueryHandler) Handle(
	ctx context.Context,
	query GetUserAccountQuery,
) (GetUserAccountQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUserAccountQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	userID := query.UserID()

	var account struct {
		Name    string
		Balance decimal.Decimal
		Credit  decimal.Decimal
	}
	err := db.Raw(`
		SELECT name, balance, credit
		FROM users
		WHERE id = ?
	`, userID.Bytes()).Take(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetUserAccountQueryResponse{}, errs.NewObjectNotFoundError("user", userID.String())
		}
		return GetUserAccountQueryResponse{}, err
	}

	resp := GetUserAccountQueryResponse{
		UserID:       userID,
		Name:         account.Name,
		Balance:      kernel.MoneyFromDecimal(account.Balance),
		Credit:       kernel.MoneyFromDecimal(account.Credit),
		Transactions: make([]TransactionView, 0),
	}

	rows, err := db.Raw(`
		SELECT
			id,
			type,
			amount,
			created_at,
			paid_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID.Bytes()).Rows()
	if err != nil {
		return GetUserAccountQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			txType    int
			amount    decimal.Decimal
			createdAt time.Time
			paidAt    *time.Time
		)
		if err = rows.Scan(&id, &txType, &amount, &createdAt, &paidAt); err != nil {
			return GetUserAccountQueryResponse{}, err
		}

		txID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetUserAccountQueryResponse{}, idErr
		}

		resp.Transactions = append(resp.Transactions, TransactionView{
			ID:        txID,
			Type:      transaction.Type(txType).String(),
			Amount:    kernel.MoneyFromDecimal(amount),
			CreatedAt: createdAt,
			PaidAt:    paidAt,
		})
	}

	if err = rows.Err(); err != nil {
		return GetUserAccountQueryResponse{}, err
	}

	return resp, nil
}
