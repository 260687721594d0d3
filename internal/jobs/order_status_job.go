package jobs

import (
	"context"
	"sync"

	"mealdelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultOrderStatusSchedule runs the batch every five minutes.
const DefaultOrderStatusSchedule = "0 */5 * * * *"

// AdvanceHandler runs one order status batch.
type AdvanceHandler interface {
	Handle(ctx context.Context, cmd commands.AdvanceOrderStatusesCommand) (commands.AdvanceReport, error)
}

// OrderStatusJob manages the scheduled order status batch.
// A run that is still going when the next tick fires makes that tick a no-op.
type OrderStatusJob struct {
	handler  AdvanceHandler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger

	running sync.Mutex
}

// NewOrderStatusJob creates the job. schedule uses the six-field cron syntax
// with seconds; an empty schedule means DefaultOrderStatusSchedule.
func NewOrderStatusJob(handler AdvanceHandler, schedule string, logger *zap.Logger) *OrderStatusJob {
	if schedule == "" {
		schedule = DefaultOrderStatusSchedule
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderStatusJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "order_status_job")),
	}
}

// Start registers the batch with the scheduler and starts it.
func (j *OrderStatusJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Order status job started", zap.String("schedule", j.schedule))
	return nil
}

// Run executes a single batch. It is what the scheduler calls on every tick.
func (j *OrderStatusJob) Run() {
	if !j.running.TryLock() {
		j.logger.Warn("Previous order status run is still in progress, skipping")
		return
	}
	defer j.running.Unlock()

	ctx := context.Background()
	report, err := j.handler.Handle(ctx, commands.NewAdvanceOrderStatusesCommand())
	if err != nil {
		j.logger.Error("Order status job failed", zap.Error(err))
		return
	}

	j.logger.Info("Order status job finished",
		zap.Int("advanced", report.Advanced),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
	)
}

// Stop stops the scheduler and waits for a running batch to finish.
func (j *OrderStatusJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Order status job stopped")
}
