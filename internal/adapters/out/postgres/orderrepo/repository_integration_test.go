package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"mealdelivery/internal/adapters/out/postgres/orderrepo"
	"mealdelivery/internal/adapters/out/postgres/pgtest"
	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/core/domain/model/user"
	"mealdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

var today = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	clock      *kernel.FixedClock
	owner      *user.User
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	owner, err := user.NewUser(kernel.NewUUID(), "Ann", "Baker St 1")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.database.DB.Exec(
		"INSERT INTO users (id, name, address, balance, credit) VALUES (?, ?, ?, 0, 0)",
		owner.ID().String(), owner.Name(), owner.Address(),
	).Error)
	suite.owner = owner

	suite.clock = kernel.NewFixedClock(today)
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker, suite.clock)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(number int, sizes ...kernel.Size) *order.Order {
	items := make([]order.LineItem, 0, len(sizes))
	for _, size := range sizes {
		item, err := order.NewLineItem(kernel.NewUUID(), size)
		suite.Require().NoError(err)
		items = append(items, item)
	}

	o, err := order.NewOrder(kernel.NewUUID(), number, suite.owner.ID(), suite.owner.Address(),
		today.AddDate(0, 0, 1), items, kernel.NewMoney(25.5), suite.clock)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_And_Get() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.FirstNumber, kernel.Big, kernel.Small, kernel.Medium)

	err := suite.repository.Add(ctx, o)
	suite.Require().NoError(err)
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(got.ID().IsEqual(o.ID()))
	suite.Equal(order.FirstNumber, got.Number())
	suite.True(got.UserID().IsEqual(suite.owner.ID()))
	suite.Equal("Baker St 1", got.Address())
	suite.Equal(order.Created, got.Status())
	suite.True(got.Price().IsEqual(kernel.NewMoney(25.5)))
	suite.False(got.IsPaid())

	items := got.LineItems()
	suite.Require().Len(items, 3)
	suite.Equal(kernel.Big, items[0].Size())
	suite.Equal(kernel.Small, items[1].Size())
	suite.Equal(kernel.Medium, items[2].Size())
	suite.True(items[0].DishID().IsEqual(o.LineItems()[0].DishID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateNumber() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1001, kernel.Small)))

	err := suite.repository.Add(ctx, suite.newOrder(1001, kernel.Small))

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrInvalidState)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycle() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.FirstNumber, kernel.Medium)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.StartProgress())
	suite.clock.Advance(time.Hour)
	suite.Require().NoError(o.Deliver("Default carrier"))

	err := suite.repository.Update(ctx, o)
	suite.Require().NoError(err)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, got.Status())

	delivery, ok := got.Delivery()
	suite.Require().True(ok)
	suite.Equal("Default carrier", delivery.Carrier)
	suite.True(delivery.At.Equal(today.Add(time.Hour)))
	suite.Len(got.LineItems(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsRefund() {
	ctx := suite.T().Context()
	suite.owner.RechargeBalance(kernel.NewMoney(100))
	o := suite.newOrder(order.FirstNumber, kernel.Medium)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	outcome, err := o.Pay(suite.owner)
	suite.Require().NoError(err)
	suite.Require().True(outcome.IsPaid())
	refund, err := o.Cancel("changed mind", suite.owner)
	suite.Require().NoError(err)
	suite.Require().NotNil(refund)
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	payment := got.Payment()
	suite.True(payment.IsPaid())
	suite.True(payment.IsRefunded())

	_, err = got.Cancel("again", suite.owner)
	suite.ErrorIs(err, order.ErrAlreadyCanceled)
	again, err := got.Reject("out of stock", suite.owner)
	suite.Require().NoError(err)
	suite.Nil(again)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacesLineItems() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.FirstNumber, kernel.Medium, kernel.Big)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	item, err := order.NewLineItem(kernel.NewUUID(), kernel.Small)
	suite.Require().NoError(err)
	suite.Require().NoError(o.ReplaceLineItems([]order.LineItem{item}))

	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(got.LineItems(), 1)
	suite.Equal(kernel.Small, got.LineItems()[0].Size())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	o := suite.newOrder(order.FirstNumber, kernel.Medium)

	err := suite.repository.Update(suite.T().Context(), o)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.FirstNumber, kernel.Medium)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	tx := suite.database.DB.Begin()
	defer tx.Rollback()

	got, err := orderrepo.NewGormOrderRepository(tx, suite.tracker, suite.clock).GetForUpdate(ctx, o.ID())

	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(o.ID()))
	suite.Len(got.LineItems(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus() {
	ctx := suite.T().Context()
	second := suite.newOrder(1001, kernel.Small)
	first := suite.newOrder(1000, kernel.Small)
	started := suite.newOrder(1002, kernel.Small)
	suite.Require().NoError(started.StartProgress())

	for _, o := range []*order.Order{second, first, started} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	created, err := suite.repository.GetAllInStatus(ctx, order.Created)
	suite.Require().NoError(err)
	suite.Require().Len(created, 2)
	suite.Equal(1000, created[0].Number())
	suite.Equal(1001, created[1].Number())
	suite.Len(created[0].LineItems(), 1)

	inProgress, err := suite.repository.GetAllInStatus(ctx, order.InProgress)
	suite.Require().NoError(err)
	suite.Require().Len(inProgress, 1)
	suite.Equal(1002, inProgress[0].Number())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllPaidInStatus() {
	ctx := suite.T().Context()
	owner, err := user.RestoreUser(suite.owner.ID(), suite.owner.Name(), suite.owner.Address(),
		kernel.NewMoney(100), kernel.ZeroMoney())
	suite.Require().NoError(err)

	paid := suite.newOrder(1000, kernel.Small)
	unpaid := suite.newOrder(1001, kernel.Small)
	for _, o := range []*order.Order{paid, unpaid} {
		suite.Require().NoError(o.StartProgress())
		suite.Require().NoError(o.Deliver("Default carrier"))
	}
	outcome, err := paid.Pay(owner)
	suite.Require().NoError(err)
	suite.Require().True(outcome.IsPaid())

	suite.Require().NoError(suite.repository.Add(ctx, paid))
	suite.Require().NoError(suite.repository.Add(ctx, unpaid))

	got, err := suite.repository.GetAllPaidInStatus(ctx, order.Delivered)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.True(got[0].ID().IsEqual(paid.ID()))
	suite.True(got[0].IsPaid())

	payment := got[0].Payment()
	_, hasPaidAt := payment.PaidAt()
	suite.True(hasPaidAt)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestNextNumber() {
	ctx := suite.T().Context()

	number, err := suite.repository.NextNumber(ctx)
	suite.Require().NoError(err)
	suite.Equal(order.FirstNumber, number)

	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1041, kernel.Small)))

	number, err = suite.repository.NextNumber(ctx)
	suite.Require().NoError(err)
	suite.Equal(1042, number)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
