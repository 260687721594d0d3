package commands_test

import (
	"errors"
	"testing"

	"mealdelivery/internal/core/application/usecases/commands"
	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/menu"
	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/core/domain/model/price"
	"mealdelivery/internal/core/domain/model/user"
	"mealdelivery/internal/core/domain/services"
	"mealdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type createOrderFixture struct {
	cmd     commands.CreateOrderCommand
	owner   *user.User
	dishID  kernel.UUID
	uow     *MockUoW
	factory *MockUoWFactory
	users   *MockUserRepository
	dishes  *MockDishRepository
	menus   *MockMenuRepository
	prices  *MockPriceRepository
	orders  *MockOrderRepository
	handler commands.CreateOrderCommandHandler
}

func newCreateOrderFixture(t *testing.T) *createOrderFixture {
	t.Helper()

	owner := newTestUser(0)
	dishID := kernel.NewUUID()
	tomorrow := testToday.AddDate(0, 0, 1)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), owner.ID(), "", tomorrow, []commands.DishItem{
		{DishID: dishID, Size: "big"},
		{DishID: dishID, Size: "small"},
	})
	require.NoError(t, err)

	dish, err := menu.NewDish(dishID, "Borscht")
	require.NoError(t, err)
	weekMenu, err := menu.NewMenu(kernel.NewUUID(), "Week", testToday, testToday.AddDate(0, 0, 7), []kernel.UUID{dishID})
	require.NoError(t, err)
	item, err := price.RestoreItem(kernel.NewUUID(), dishID, kernel.Big)
	require.NoError(t, err)
	bigSoup, err := price.RestorePrice(kernel.NewUUID(), kernel.NewMoney(12.5), testToday, []price.Item{item})
	require.NoError(t, err)

	f := &createOrderFixture{
		cmd:     cmd,
		owner:   owner,
		dishID:  dishID,
		uow:     new(MockUoW),
		factory: new(MockUoWFactory),
		users:   new(MockUserRepository),
		dishes:  new(MockDishRepository),
		menus:   new(MockMenuRepository),
		prices:  new(MockPriceRepository),
		orders:  new(MockOrderRepository),
	}

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("UserRepository").Return(f.users).Maybe()
	f.uow.On("DishRepository").Return(f.dishes).Maybe()
	f.uow.On("MenuRepository").Return(f.menus).Maybe()
	f.uow.On("PriceRepository").Return(f.prices).Maybe()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()

	f.users.On("Get", mock.Anything, owner.ID()).Return(owner, nil).Maybe()
	f.dishes.On("Get", mock.Anything, dishID).Return(dish, nil).Maybe()
	f.menus.On("GetValidOn", mock.Anything, tomorrow).Return([]*menu.Menu{weekMenu}, nil).Maybe()
	f.prices.On("GetValidOn", mock.Anything, tomorrow).Return([]*price.Price{bigSoup}, nil).Maybe()

	f.handler = commands.NewCreateOrderCommandHandler(fullUoWFactory{f.factory},
		services.NewOrderFactory(services.NewPriceResolver(), testClock()))
	return f
}

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should create a priced order with the next number", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		expectTx(ctx, f.uow, true)
		f.orders.On("NextNumber", ctx).Return(1005, nil).Once()
		f.orders.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.Number() == 1005 &&
				o.Price().IsEqual(kernel.NewMoney(12.5)) &&
				len(o.LineItems()) == 1 &&
				o.Address() == f.owner.Address() &&
				o.Status() == order.Created
		})).Return(nil).Once()

		number, err := f.handler.Handle(ctx, f.cmd)

		require.NoError(t, err)
		assert.Equal(t, 1005, number)
		f.dishes.AssertNumberOfCalls(t, "Get", 1)
		f.orders.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("should fail when a dish is unknown", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		f.dishes.ExpectedCalls = nil
		f.dishes.On("Get", ctx, f.dishID).Return(nil, errs.NewObjectNotFoundError("dish", f.dishID)).Once()
		expectTx(ctx, f.uow, false)

		_, err := f.handler.Handle(ctx, f.cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		f.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should fail when no menu cooks the dish", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		f.menus.ExpectedCalls = nil
		f.menus.On("GetValidOn", ctx, mock.Anything).Return([]*menu.Menu{}, nil).Once()
		f.orders.On("NextNumber", ctx).Return(1000, nil).Once()
		expectTx(ctx, f.uow, false)

		_, err := f.handler.Handle(ctx, f.cmd)

		require.ErrorIs(t, err, services.ErrDishIsNotCooked)
		f.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should fail when a line item has no price", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		f.prices.ExpectedCalls = nil
		f.prices.On("GetValidOn", ctx, mock.Anything).Return([]*price.Price{}, nil).Once()
		f.orders.On("NextNumber", ctx).Return(1000, nil).Once()
		expectTx(ctx, f.uow, false)

		_, err := f.handler.Handle(ctx, f.cmd)

		require.ErrorIs(t, err, services.ErrPriceNotFound)
	})

	t.Run("should not commit when add fails", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		expectTx(ctx, f.uow, false)
		f.orders.On("NextNumber", ctx).Return(1000, nil).Once()
		f.orders.On("Add", ctx, mock.Anything).Return(errors.New("duplicate number")).Once()

		_, err := f.handler.Handle(ctx, f.cmd)

		require.Error(t, err)
		f.uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should stop when begin fails", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		f.uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

		_, err := f.handler.Handle(ctx, f.cmd)

		require.Error(t, err)
		f.users.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("should reject a command that was not constructed", func(t *testing.T) {
		f := newCreateOrderFixture(t)

		_, err := f.handler.Handle(t.Context(), commands.CreateOrderCommand{})

		require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
