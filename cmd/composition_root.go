package cmd

import (
	"errors"

	httpadapter "mealdelivery/internal/adapters/in/http"
	eventbus "mealdelivery/internal/adapters/out/kafka"
	"mealdelivery/internal/adapters/out/postgres"
	pricecache "mealdelivery/internal/adapters/out/redis"
	"mealdelivery/internal/core/application/usecases/commands"
	"mealdelivery/internal/core/application/usecases/queries"
	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/services"
	"mealdelivery/internal/core/ports"
	"mealdelivery/internal/jobs"
	"mealdelivery/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	metrics    *metrics.Metrics
	clock      kernel.Clock
	uowFactory *postgres.GormUnitOfWorkFactory

	redisClient *redis.Client
	kafkaWriter eventbus.Writer
}

// NewCompositionRoot wires the adapters selected by the config. Redis and
// Kafka stay disabled when their addresses are empty.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:  config,
		gormDB:  gormDB,
		logger:  logger,
		metrics: metrics.New(),
		clock:   kernel.SystemClock{},
	}

	var publisher ports.EventPublisher
	if brokers := eventbus.ParseBrokers(config.KafkaBrokers); len(brokers) > 0 {
		writer, err := eventbus.NewWriter(brokers, config.KafkaOrderChangedTopic)
		if err != nil {
			return nil, err
		}
		c.kafkaWriter = writer
		publisher = eventbus.NewStatusChangedPublisher(writer, config.KafkaOrderChangedTopic, c.metrics)
		logger.Info("Publishing order status events", zap.Strings("brokers", brokers),
			zap.String("topic", config.KafkaOrderChangedTopic))
	}

	opts := []postgres.Option{postgres.WithClock(c.clock)}
	if config.RedisAddr != "" {
		c.redisClient = redis.NewClient(&redis.Options{
			Addr: config.RedisAddr,
		})
		opts = append(opts, postgres.WithPriceRepositoryDecorator(
			func(repo ports.PriceRepository, afterCommit postgres.AfterCommitFunc) ports.PriceRepository {
				return pricecache.NewCachedPriceRepository(repo, pricecache.AfterCommitFunc(afterCommit),
					c.redisClient, config.PriceCacheTTL, c.metrics, logger)
			}))
		logger.Info("Caching prices in Redis", zap.String("addr", config.RedisAddr))
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger, opts...)
	return c, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrderCommandHandler(f, services.NewOrderFactory(services.NewPriceResolver(), c.clock))
	return &h
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() *commands.PayOrderCommandHandler {
	h := commands.NewPayOrderCommandHandler(c.paymentUoWFactory(), c.metrics)
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(c.paymentUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() *commands.RejectOrderCommandHandler {
	h := commands.NewRejectOrderCommandHandler(c.paymentUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateChangeOrderAddressCommandHandler() *commands.ChangeOrderAddressCommandHandler {
	h := commands.NewChangeOrderAddressCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateAdvanceOrderStatusesCommandHandler() *commands.AdvanceOrderStatusesCommandHandler {
	h := commands.NewAdvanceOrderStatusesCommandHandler(c.orderUoWFactory(), c.config.DefaultCarrier, c.logger, c.metrics)
	return &h
}

func (c *CompositionRoot) CreateAddFundsCommandHandler() *commands.AddFundsCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewAddFundsCommandHandler(f, c.clock)
	return &h
}

func (c *CompositionRoot) CreateCreatePriceCommandHandler() *commands.CreatePriceCommandHandler {
	var f commands.PriceUoWFactory = FuncPriceUoWFactory(func() commands.PriceUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreatePriceCommandHandler(f, c.clock)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserAccountQueryHandler() queries.GetUserAccountQueryHandler {
	return queries.NewGetUserAccountQueryHandler(c.gormDB)
}

// CreateRouter builds the HTTP surface over every use case.
func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		PayOrder:             c.CreatePayOrderCommandHandler(),
		CancelOrder:          c.CreateCancelOrderCommandHandler(),
		RejectOrder:          c.CreateRejectOrderCommandHandler(),
		ChangeOrderAddress:   c.CreateChangeOrderAddressCommandHandler(),
		AdvanceOrderStatuses: c.CreateAdvanceOrderStatusesCommandHandler(),
		AddFunds:             c.CreateAddFundsCommandHandler(),
		CreatePrice:          c.CreateCreatePriceCommandHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		GetUncompletedOrders: c.CreateGetUncompletedOrdersQueryHandler(),
		GetUserAccount:       c.CreateGetUserAccountQueryHandler(),
	}, c.logger)

	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		Observer:       c.metrics,
		MetricsHandler: c.metrics.Handler(),
		Logger:         c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	job := jobs.NewOrderStatusJob(c.CreateAdvanceOrderStatusesCommandHandler(), c.config.OrderStatusCron, c.logger)
	return jobs.NewJobManager(job)
}

// Close releases the Kafka writer and the Redis client.
func (c *CompositionRoot) Close() error {
	var errList []error
	if c.kafkaWriter != nil {
		errList = append(errList, c.kafkaWriter.Close())
	}
	if c.redisClient != nil {
		errList = append(errList, c.redisClient.Close())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncPriceUoWFactory func() commands.PriceUoW

func (f FuncPriceUoWFactory) Create() commands.PriceUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
