package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "mealdelivery/internal/adapters/out/postgres"
	"mealdelivery/internal/adapters/out/postgres/pgtest"
	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/core/domain/model/price"
	"mealdelivery/internal/core/domain/model/transaction"
	"mealdelivery/internal/core/domain/model/user"
	"mealdelivery/internal/core/ports"
	"mealdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, events ...order.StatusChanged) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type countingPriceRepository struct {
	ports.PriceRepository
	calls int
}

func (r *countingPriceRepository) GetValidOn(ctx context.Context, day time.Time) ([]*price.Price, error) {
	r.calls++
	return r.PriceRepository.GetValidOn(ctx, day)
}

var today = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	publisher *MockEventPublisher
	logs      *observer.ObservedLogs
	factory   *postgres_adapter.GormUnitOfWorkFactory
	clock     *kernel.FixedClock
	owner     *user.User
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

// SetupTest ensures clean database state before each test and stores the
// owner every order belongs to.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	core, logs := observer.New(zap.WarnLevel)
	suite.logs = logs
	suite.publisher = new(MockEventPublisher)
	suite.clock = kernel.NewFixedClock(today)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB, suite.publisher,
		zap.New(core), postgres_adapter.WithClock(suite.clock))

	owner, err := user.RestoreUser(kernel.NewUUID(), "Ann", "Baker St 1", kernel.NewMoney(100), kernel.ZeroMoney())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().UserRepository().Add(suite.T().Context(), owner))
	suite.owner = owner
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(number int) *order.Order {
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.Medium)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), number, suite.owner.ID(), suite.owner.Address(),
		today.AddDate(0, 0, 1), []order.LineItem{item}, kernel.NewMoney(30), suite.clock)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.PriceRepository())
	suite.NotNil(uow2.MenuRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Error(uow.Commit(ctx))
	suite.Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.FirstNumber)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	owner, err := uow.UserRepository().GetForUpdate(ctx, suite.owner.ID())
	suite.Require().NoError(err)

	outcome, err := locked.Pay(owner)
	suite.Require().NoError(err)
	suite.Require().Equal(order.OutcomePaid, outcome.Kind)

	suite.Require().NoError(uow.TransactionRepository().Add(ctx, outcome.Transaction))
	suite.Require().NoError(uow.UserRepository().Update(ctx, owner))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	stored, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsPaid())

	storedOwner, err := reader.UserRepository().Get(ctx, suite.owner.ID())
	suite.Require().NoError(err)
	suite.True(storedOwner.Balance().IsEqual(kernel.NewMoney(70)))

	txs, err := reader.TransactionRepository().GetAllByUser(ctx, suite.owner.ID())
	suite.Require().NoError(err)
	suite.Require().Len(txs, 1)
	suite.Equal(transaction.Outcome, txs[0].Type())

	suite.publisher.AssertNotCalled(suite.T(), "PublishStatusChanged", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.FirstNumber)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishesStatusChanges() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.FirstNumber)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	suite.publisher.On("PublishStatusChanged", mock.Anything, mock.MatchedBy(func(events []order.StatusChanged) bool {
		return len(events) == 1 &&
			events[0].OrderID.IsEqual(o.ID()) &&
			events[0].From == order.Created &&
			events[0].To == order.InProgress
	})).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.StartProgress())
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(uow.Commit(ctx))

	suite.publisher.AssertExpectations(suite.T())
	suite.Empty(locked.DomainEvents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DoesNotPublish() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.FirstNumber)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.StartProgress())
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.publisher.AssertNotCalled(suite.T(), "PublishStatusChanged", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishFailureIsLogged() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.FirstNumber)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))
	suite.publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.StartProgress())
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))

	err = uow.Commit(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, suite.logs.FilterMessage("Can not publish order status events").Len())

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, stored.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPriceRepositoryDecorator() {
	ctx := suite.T().Context()
	counting := &countingPriceRepository{}
	factory := postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB, nil, nil,
		postgres_adapter.WithPriceRepositoryDecorator(
			func(repo ports.PriceRepository, _ postgres_adapter.AfterCommitFunc) ports.PriceRepository {
				counting.PriceRepository = repo
				return counting
			}))

	_, err := factory.Create().PriceRepository().GetValidOn(ctx, today)

	suite.Require().NoError(err)
	suite.Equal(1, counting.calls)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAfterCommit_RunsOnceDataIsVisible() {
	ctx := suite.T().Context()
	newcomer, err := user.NewUser(kernel.NewUUID(), "Bob", "Elm St 2")
	suite.Require().NoError(err)

	uow := suite.factory.Create().(*postgres_adapter.GormUnitOfWork)
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, newcomer))

	var visibleErr error
	calls := 0
	uow.AfterCommit(ctx, func(ctx context.Context) {
		calls++
		_, visibleErr = suite.factory.Create().UserRepository().Get(ctx, newcomer.ID())
	})
	suite.Equal(0, calls)

	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(1, calls)
	suite.NoError(visibleErr)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAfterCommit_DroppedOnRollback() {
	ctx := suite.T().Context()
	calls := 0

	uow := suite.factory.Create().(*postgres_adapter.GormUnitOfWork)
	suite.Require().NoError(uow.Begin(ctx))
	uow.AfterCommit(ctx, func(context.Context) { calls++ })
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(0, calls)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAfterCommit_RunsAtOnceWithoutTransaction() {
	calls := 0
	uow := suite.factory.Create().(*postgres_adapter.GormUnitOfWork)

	uow.AfterCommit(suite.T().Context(), func(context.Context) { calls++ })

	suite.Equal(1, calls)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
