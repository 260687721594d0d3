package queries_test

import (
	"testing"

	"mealdelivery/internal/core/application/usecases/queries"
	"mealdelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryConstructors(t *testing.T) {
	t.Run("should accept the parameterless pending orders query", func(t *testing.T) {
		require.NoError(t, queries.NewGetUncompletedOrdersQuery().Validate())
	})

	t.Run("should reject a zero value pending orders query", func(t *testing.T) {
		err := queries.GetUncompletedOrdersQuery{}.Validate()
		assert.ErrorIs(t, err, queries.ErrGetUncompletedOrdersQueryIsNotConstructed)
	})

	t.Run("should reject a zero value account query", func(t *testing.T) {
		err := queries.GetUserAccountQuery{}.Validate()
		assert.ErrorIs(t, err, queries.ErrGetUserAccountQueryIsNotConstructed)
	})

	t.Run("should require a user id for the account query", func(t *testing.T) {
		_, err := queries.NewGetUserAccountQuery(kernel.UUID{})
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should keep the order id", func(t *testing.T) {
		id := kernel.NewUUID()

		query, err := queries.NewGetOrderQuery(id)

		require.NoError(t, err)
		assert.True(t, query.OrderID().IsEqual(id))
	})
}
