package services_test

import (
	"testing"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/menu"
	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/core/domain/model/price"
	"mealdelivery/internal/core/domain/model/user"
	"mealdelivery/internal/core/domain/services"
	"mealdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderFactory_Create(t *testing.T) {
	soup, salad := kernel.NewUUID(), kernel.NewUUID()
	owner, err := user.NewUser(kernel.NewUUID(), "Jane", "Main St 1")
	require.NoError(t, err)

	week, err := menu.NewMenu(kernel.NewUUID(), "Week", today, today.AddDate(0, 0, 7), []kernel.UUID{soup, salad})
	require.NoError(t, err)

	prices := []*price.Price{
		rule(t, 12, today, pair{soup, kernel.Medium}),
		rule(t, 8, today, pair{salad, kernel.Small}),
		rule(t, 18, today, pair{soup, kernel.Medium}, pair{salad, kernel.Small}),
	}

	factory := services.NewOrderFactory(services.NewPriceResolver(), kernel.NewFixedClock(today))

	draft := func(items ...pair) services.OrderDraft {
		return services.OrderDraft{
			OrderID:      kernel.NewUUID(),
			Number:       1001,
			Owner:        owner,
			ShipmentDate: tomorrow,
			Items:        lineItems(t, items...),
			Menus:        []*menu.Menu{week},
			Prices:       prices,
		}
	}

	t.Run("should build a priced order with the owner's address", func(t *testing.T) {
		o, err := factory.Create(draft(pair{soup, kernel.Medium}, pair{salad, kernel.Small}))

		require.NoError(t, err)
		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, 1001, o.Number())
		assert.Equal(t, "Main St 1", o.Address())
		assert.Equal(t, "18.00", o.Price().String())
		assert.Equal(t, today, o.CreatedAt())
	})

	t.Run("should price the deduplicated items", func(t *testing.T) {
		o, err := factory.Create(draft(pair{soup, kernel.Medium}, pair{soup, kernel.Big}))

		require.NoError(t, err)
		require.Len(t, o.LineItems(), 1)
		assert.Equal(t, "12.00", o.Price().String())
	})

	t.Run("should keep an explicit address", func(t *testing.T) {
		d := draft(pair{soup, kernel.Medium})
		d.Address = "Office, floor 3"

		o, err := factory.Create(d)

		require.NoError(t, err)
		assert.Equal(t, "Office, floor 3", o.Address())
	})

	t.Run("should reject shipment today", func(t *testing.T) {
		d := draft(pair{soup, kernel.Medium})
		d.ShipmentDate = today.Add(6 * time.Hour)

		_, err := factory.Create(d)

		require.ErrorIs(t, err, services.ErrShipmentDateIsInvalid)
	})

	t.Run("should reject dishes no menu offers that day", func(t *testing.T) {
		other := kernel.NewUUID()

		_, err := factory.Create(draft(pair{other, kernel.Big}))

		require.ErrorIs(t, err, services.ErrDishIsNotCooked)
		assert.Contains(t, err.Error(), other.String())
	})

	t.Run("should reject shipment outside menu window", func(t *testing.T) {
		d := draft(pair{soup, kernel.Medium})
		d.ShipmentDate = today.AddDate(0, 0, 30)

		_, err := factory.Create(d)

		require.ErrorIs(t, err, services.ErrDishIsNotCooked)
	})

	t.Run("should require line items and owner", func(t *testing.T) {
		_, err := factory.Create(draft())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		d := draft(pair{soup, kernel.Medium})
		d.Owner = nil
		_, err = factory.Create(d)
		require.ErrorIs(t, err, user.ErrUserIsNotConstructed)
	})

	t.Run("should surface missing prices", func(t *testing.T) {
		_, err := factory.Create(draft(pair{salad, kernel.Big}))

		require.ErrorIs(t, err, services.ErrPriceNotFound)
	})
}
