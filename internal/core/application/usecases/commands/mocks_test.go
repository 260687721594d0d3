package commands_test

import (
	"context"
	"time"

	"mealdelivery/internal/core/application/usecases/commands"
	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/menu"
	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/core/domain/model/price"
	"mealdelivery/internal/core/domain/model/transaction"
	"mealdelivery/internal/core/domain/model/user"
	"mealdelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllPaidInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) NextNumber(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Add(ctx context.Context, tx *transaction.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetAllByUser(
	ctx context.Context,
	userID kernel.UUID,
) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

type MockPriceRepository struct{ mock.Mock }

func (m *MockPriceRepository) Add(ctx context.Context, p *price.Price) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPriceRepository) GetValidOn(ctx context.Context, day time.Time) ([]*price.Price, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*price.Price), args.Error(1)
}

type MockDishRepository struct{ mock.Mock }

func (m *MockDishRepository) Get(ctx context.Context, id kernel.UUID) (*menu.Dish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Dish), args.Error(1)
}

type MockMenuRepository struct{ mock.Mock }

func (m *MockMenuRepository) GetValidOn(ctx context.Context, day time.Time) ([]*menu.Menu, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.Menu), args.Error(1)
}

// MockUoW satisfies every unit of work interface the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) TransactionRepository() ports.TransactionRepository {
	args := m.Called()
	return args.Get(0).(ports.TransactionRepository)
}

func (m *MockUoW) PriceRepository() ports.PriceRepository {
	args := m.Called()
	return args.Get(0).(ports.PriceRepository)
}

func (m *MockUoW) DishRepository() ports.DishRepository {
	args := m.Called()
	return args.Get(0).(ports.DishRepository)
}

func (m *MockUoW) MenuRepository() ports.MenuRepository {
	args := m.Called()
	return args.Get(0).(ports.MenuRepository)
}

// MockUoWFactory hands out the same MockUoW under every factory interface.
type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) next() *MockUoW {
	args := m.Called()
	return args.Get(0).(*MockUoW)
}

type (
	orderUoWFactory   struct{ *MockUoWFactory }
	paymentUoWFactory struct{ *MockUoWFactory }
	ledgerUoWFactory  struct{ *MockUoWFactory }
	priceUoWFactory   struct{ *MockUoWFactory }
	fullUoWFactory    struct{ *MockUoWFactory }
)

func (f orderUoWFactory) Create() commands.OrderUoW     { return f.next() }
func (f paymentUoWFactory) Create() commands.PaymentUoW { return f.next() }
func (f ledgerUoWFactory) Create() commands.LedgerUoW   { return f.next() }
func (f priceUoWFactory) Create() commands.PriceUoW     { return f.next() }
func (f fullUoWFactory) Create() commands.UoW           { return f.next() }

// expectTx registers a transaction that begins and ends with a rollback call
// from the deferred cleanup. commit controls whether Commit is expected.
func expectTx(ctx context.Context, uow *MockUoW, commit bool) {
	uow.On("Begin", ctx).Return(nil).Once()
	if commit {
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) ObservePayment(outcome string) {
	m.Called(outcome)
}

func (m *MockObserver) ObserveAdvance(advanced, failed, skipped int, elapsed time.Duration) {
	m.Called(advanced, failed, skipped, elapsed)
}

var testToday = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func testClock() *kernel.FixedClock {
	return kernel.NewFixedClock(testToday)
}

func newTestUser(balance float64) *user.User {
	u, err := user.RestoreUser(kernel.NewUUID(), "Ann", "Baker St 1", kernel.NewMoney(balance), kernel.ZeroMoney())
	if err != nil {
		panic(err)
	}
	return u
}

func newTestOrder(owner *user.User, number int, value float64) *order.Order {
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.Medium)
	if err != nil {
		panic(err)
	}

	o, err := order.NewOrder(kernel.NewUUID(), number, owner.ID(), owner.Address(),
		testToday.AddDate(0, 0, 1), []order.LineItem{item}, kernel.NewMoney(value), testClock())
	if err != nil {
		panic(err)
	}
	return o
}
