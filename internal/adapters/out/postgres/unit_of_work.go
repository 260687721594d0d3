// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work maintains a list of aggregates affected by a business
// transaction, coordinates writing out changes and, once the transaction is
// committed, hands the order status events they raised to the event publisher.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	u, err := uow.UserRepository().GetForUpdate(ctx, o.UserID())
//	// ... change the aggregates, save them through the same repositories
//
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin use the plain connection, which is how
// read-only callers load data without opening a transaction.
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - GetForUpdate row locks serialize operations on the same order or user
package postgres

import (
	"context"

	"mealdelivery/internal/adapters/out/postgres/catalogrepo"
	"mealdelivery/internal/adapters/out/postgres/orderrepo"
	"mealdelivery/internal/adapters/out/postgres/pricerepo"
	"mealdelivery/internal/adapters/out/postgres/transactionrepo"
	"mealdelivery/internal/adapters/out/postgres/userrepo"
	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/order"
	"mealdelivery/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that raise order status events.
type eventSource interface {
	DomainEvents() []order.StatusChanged
	ClearDomainEvents()
}

// Option customizes a GormUnitOfWorkFactory.
type Option func(*GormUnitOfWorkFactory)

// WithClock sets the clock restored orders stamp their lifecycle with.
func WithClock(clock kernel.Clock) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.clock = clock
	}
}

// AfterCommitFunc registers a hook that runs once the unit of work commits.
type AfterCommitFunc func(ctx context.Context, hook func(context.Context))

// PriceRepositoryDecorator wraps a price repository. afterCommit lets the
// wrapper defer side effects, such as cache invalidation, until the rows it
// wrote are visible to other connections.
type PriceRepositoryDecorator func(repo ports.PriceRepository, afterCommit AfterCommitFunc) ports.PriceRepository

// WithPriceRepositoryDecorator wraps every price repository the unit of work
// hands out, e.g. with a read-through cache.
func WithPriceRepositoryDecorator(decorate PriceRepositoryDecorator) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.decoratePrices = decorate
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db             *gorm.DB
	publisher      ports.EventPublisher
	logger         *zap.Logger
	clock          kernel.Clock
	decoratePrices PriceRepositoryDecorator
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// A nil publisher drops events; a nil logger discards log output.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.EventPublisher,
	logger *zap.Logger,
	opts ...Option,
) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With(zap.String("component", "unit-of-work")),
		clock:     kernel.SystemClock{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		factory:           f,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations.
type GormUnitOfWork struct {
	factory           *GormUnitOfWorkFactory
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
	commitHooks       []func(context.Context)
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.factory.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes all changes made within the current transaction, then
// publishes the status events of the tracked orders and runs the hooks
// registered with AfterCommit. A publishing failure is logged and does not
// fail the commit: the state change is already durable.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	hooks := uow.commitHooks
	uow.commitHooks = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishEvents(ctx)
	for _, hook := range hooks {
		hook(ctx)
	}
	return nil
}

// Rollback discards all changes made within the current transaction together
// with the tracked aggregates and the pending AfterCommit hooks.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	uow.commitHooks = nil
	return err
}

// AfterCommit runs hook once the current transaction commits. Without an
// open transaction every write is already committed, so hook runs at once.
func (uow *GormUnitOfWork) AfterCommit(ctx context.Context, hook func(context.Context)) {
	if uow.tx == nil {
		hook(ctx)
		return
	}
	uow.commitHooks = append(uow.commitHooks, hook)
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow, uow.factory.clock)
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) TransactionRepository() ports.TransactionRepository {
	return transactionrepo.NewGormTransactionRepository(uow.conn())
}

// PriceRepository returns the price repository, decorated when the factory
// was given a decorator.
func (uow *GormUnitOfWork) PriceRepository() ports.PriceRepository {
	var repo ports.PriceRepository = pricerepo.NewGormPriceRepository(uow.conn())
	if uow.factory.decoratePrices != nil {
		repo = uow.factory.decoratePrices(repo, uow.AfterCommit)
	}
	return repo
}

func (uow *GormUnitOfWork) DishRepository() ports.DishRepository {
	return catalogrepo.NewGormDishRepository(uow.conn())
}

func (uow *GormUnitOfWork) MenuRepository() ports.MenuRepository {
	return catalogrepo.NewGormMenuRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Repository implementations call it when aggregates are added or updated.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) && tracked.Aggregate == aggregate {
			return
		}
	}

	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.factory.db
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	var events []order.StatusChanged
	for _, t := range tracked {
		source, ok := t.Aggregate.(eventSource)
		if !ok {
			continue
		}
		events = append(events, source.DomainEvents()...)
		source.ClearDomainEvents()
	}

	if len(events) == 0 || uow.factory.publisher == nil {
		return
	}

	if err := uow.factory.publisher.PublishStatusChanged(ctx, events...); err != nil {
		uow.factory.logger.Warn("Can not publish order status events",
			zap.Int("events", len(events)),
			zap.Error(err),
		)
	}
}
