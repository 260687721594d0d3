package commands_test

import (
	"errors"
	"testing"

	"mealdelivery/internal/core/application/usecases/commands"
	"mealdelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type advanceFixture struct {
	uow      *MockUoW
	factory  *MockUoWFactory
	orders   *MockOrderRepository
	observer *MockObserver
	logs     *observer.ObservedLogs
	logger   *zap.Logger
}

func newAdvanceFixture(created, inProgress, delivered []*order.Order) *advanceFixture {
	core, logs := observer.New(zapcore.InfoLevel)
	f := &advanceFixture{
		uow:      new(MockUoW),
		factory:  new(MockUoWFactory),
		orders:   new(MockOrderRepository),
		observer: new(MockObserver),
		logs:     logs,
		logger:   zap.New(core),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("OrderRepository").Return(f.orders)
	f.orders.On("GetAllInStatus", mock.Anything, order.Created).Return(created, nil).Once()
	f.orders.On("GetAllInStatus", mock.Anything, order.InProgress).Return(inProgress, nil).Once()
	f.orders.On("GetAllPaidInStatus", mock.Anything, order.Delivered).Return(delivered, nil).Once()
	for _, batch := range [][]*order.Order{created, inProgress, delivered} {
		for _, o := range batch {
			f.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
		}
	}
	return f
}

func (f *advanceFixture) handler(carrier string) commands.AdvanceOrderStatusesCommandHandler {
	return commands.NewAdvanceOrderStatusesCommandHandler(orderUoWFactory{f.factory}, carrier, f.logger, f.observer)
}

func paidDeliveredOrder(t *testing.T) *order.Order {
	t.Helper()
	owner := newTestUser(50)
	o := newTestOrder(owner, 1002, 10)
	_, err := o.Pay(owner)
	require.NoError(t, err)
	require.NoError(t, o.StartProgress())
	require.NoError(t, o.Deliver("Bike courier"))
	return o
}

func TestAdvanceOrderStatusesCommandHandler_Handle(t *testing.T) {
	t.Run("should move every group one step forward", func(t *testing.T) {
		ctx := t.Context()
		created := newTestOrder(newTestUser(0), 1000, 10)
		inProgress := newTestOrder(newTestUser(0), 1001, 10)
		require.NoError(t, inProgress.StartProgress())
		delivered := paidDeliveredOrder(t)

		f := newAdvanceFixture([]*order.Order{created}, []*order.Order{inProgress}, []*order.Order{delivered})
		f.uow.On("Begin", ctx).Return(nil).Times(3)
		f.uow.On("Commit", ctx).Return(nil).Times(3)
		f.uow.On("Rollback", ctx).Return(nil).Times(3)
		f.orders.On("Update", ctx, mock.Anything).Return(nil).Times(3)
		f.observer.On("ObserveAdvance", 3, 0, 0, mock.Anything).Once()

		h := f.handler("")
		report, err := h.Handle(ctx, commands.NewAdvanceOrderStatusesCommand())

		require.NoError(t, err)
		assert.Equal(t, commands.AdvanceReport{Advanced: 3}, report)
		assert.Equal(t, order.InProgress, created.Status())
		assert.Equal(t, order.Delivered, inProgress.Status())
		assert.Equal(t, order.Closed, delivered.Status())
		delivery, ok := inProgress.Delivery()
		require.True(t, ok)
		assert.Equal(t, commands.DefaultCarrier, delivery.Carrier)
		f.observer.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("should log a failed order and carry on", func(t *testing.T) {
		ctx := t.Context()
		inProgress := newTestOrder(newTestUser(0), 1001, 10)
		require.NoError(t, inProgress.StartProgress())
		delivered := paidDeliveredOrder(t)

		f := newAdvanceFixture(nil, []*order.Order{inProgress}, []*order.Order{delivered})
		f.uow.On("Begin", ctx).Return(nil).Times(2)
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Times(2)
		f.orders.On("Update", ctx, delivered).Return(nil).Once()
		f.observer.On("ObserveAdvance", 1, 1, 0, mock.Anything).Once()

		h := f.handler("Bob")
		report, err := h.Handle(ctx, commands.NewAdvanceOrderStatusesCommand())

		require.NoError(t, err)
		assert.Equal(t, commands.AdvanceReport{Advanced: 1, Failed: 1}, report)
		assert.Equal(t, order.InProgress, inProgress.Status())
		assert.Equal(t, order.Closed, delivered.Status())

		warnings := f.logs.FilterLevelExact(zapcore.WarnLevel).All()
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].Message, "Can not change Order #1001 status: ")
		f.orders.AssertNotCalled(t, "Update", ctx, inProgress)
	})

	t.Run("should skip an order whose status changed meanwhile", func(t *testing.T) {
		ctx := t.Context()
		created := newTestOrder(newTestUser(0), 1000, 10)

		f := newAdvanceFixture([]*order.Order{created}, nil, nil)
		require.NoError(t, created.StartProgress())
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()
		f.observer.On("ObserveAdvance", 0, 0, 1, mock.Anything).Once()

		h := f.handler("")
		report, err := h.Handle(ctx, commands.NewAdvanceOrderStatusesCommand())

		require.NoError(t, err)
		assert.Equal(t, commands.AdvanceReport{Skipped: 1}, report)
		assert.Equal(t, order.InProgress, created.Status())
	})

	t.Run("should not start a canceled order waiting on its refund", func(t *testing.T) {
		ctx := t.Context()
		owner := newTestUser(50)
		canceled := newTestOrder(owner, 1000, 10)
		_, err := canceled.Pay(owner)
		require.NoError(t, err)
		refund, err := canceled.Cancel("changed mind", owner)
		require.NoError(t, err)
		require.NotNil(t, refund)

		f := newAdvanceFixture([]*order.Order{canceled}, nil, nil)
		f.observer.On("ObserveAdvance", 0, 0, 0, mock.Anything).Once()

		h := f.handler("")
		report, err := h.Handle(ctx, commands.NewAdvanceOrderStatusesCommand())

		require.NoError(t, err)
		assert.Equal(t, commands.AdvanceReport{}, report)
		assert.Equal(t, order.Created, canceled.Status())
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		f.orders.AssertNotCalled(t, "GetForUpdate", mock.Anything, canceled.ID())
	})

	t.Run("should count an order that can not be locked as failed", func(t *testing.T) {
		ctx := t.Context()
		created := newTestOrder(newTestUser(0), 1000, 10)

		f := newAdvanceFixture(nil, nil, nil)
		f.orders.ExpectedCalls = nil
		f.orders.On("GetAllInStatus", ctx, order.Created).Return([]*order.Order{created}, nil).Once()
		f.orders.On("GetAllInStatus", ctx, order.InProgress).Return([]*order.Order{}, nil).Once()
		f.orders.On("GetAllPaidInStatus", ctx, order.Delivered).Return([]*order.Order{}, nil).Once()
		f.orders.On("GetForUpdate", ctx, created.ID()).Return(nil, errors.New("lock timeout")).Once()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()
		f.observer.On("ObserveAdvance", 0, 1, 0, mock.Anything).Once()

		h := f.handler("")
		report, err := h.Handle(ctx, commands.NewAdvanceOrderStatusesCommand())

		require.NoError(t, err)
		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, "Can not change Order #1000 status: lock timeout",
			f.logs.FilterLevelExact(zapcore.WarnLevel).All()[0].Message)
	})

	t.Run("should fail when the batch can not be loaded", func(t *testing.T) {
		ctx := t.Context()
		f := newAdvanceFixture(nil, nil, nil)
		f.orders.ExpectedCalls = nil
		f.orders.On("GetAllInStatus", ctx, order.Created).Return(nil, errors.New("db down")).Once()

		h := f.handler("")
		_, err := h.Handle(ctx, commands.NewAdvanceOrderStatusesCommand())

		require.Error(t, err)
		f.observer.AssertNotCalled(t, "ObserveAdvance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject a command that was not constructed", func(t *testing.T) {
		f := newAdvanceFixture(nil, nil, nil)

		h := f.handler("")
		_, err := h.Handle(t.Context(), commands.AdvanceOrderStatusesCommand{})

		require.ErrorIs(t, err, commands.ErrAdvanceOrderStatusesCommandIsNotConstructed)
	})
}
