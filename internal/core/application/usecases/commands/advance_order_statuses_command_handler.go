package commands

import (
	"context"
	"fmt"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/order"

	"go.uber.org/zap"
)

// DefaultCarrier is stamped on deliveries when no carrier is configured.
const DefaultCarrier = "Default carrier"

// AdvanceReport sums up one batch pass.
type AdvanceReport struct {
	Advanced int
	Failed   int
	// Skipped counts orders that changed status between loading the batch
	// and locking the row.
	Skipped int
}

// AdvanceOrderStatusesCommandHandler moves every eligible order one step
// forward. Each order is locked and saved in its own transaction, so a failing
// order is logged and counted but never stops the others.
type AdvanceOrderStatusesCommandHandler struct {
	uowFactory OrderUoWFactory
	carrier    string
	logger     *zap.Logger
	observer   AdvanceObserver
}

// NewAdvanceOrderStatusesCommandHandler creates the handler. An empty carrier
// falls back to DefaultCarrier; logger and observer may be nil.
func NewAdvanceOrderStatusesCommandHandler(
	uowFactory OrderUoWFactory,
	carrier string,
	logger *zap.Logger,
	observer AdvanceObserver,
) AdvanceOrderStatusesCommandHandler {
	if carrier == "" {
		carrier = DefaultCarrier
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = nopObserver{}
	}

	return AdvanceOrderStatusesCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		logger:     logger.With(zap.String("component", "advance-order-statuses")),
		observer:   observer,
	}
}

type advanceStep struct {
	from    order.Status
	advance func(o *order.Order) error
}

// Handle runs the batch. Only loading the batch can fail the whole call; the
// three groups are loaded before any order is touched so an order moves at
// most one step per pass.
func (h *AdvanceOrderStatusesCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceOrderStatusesCommand,
) (AdvanceReport, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceReport{}, err
	}

	started := time.Now()
	orderRepo := h.uowFactory.Create().OrderRepository()

	created, err := orderRepo.GetAllInStatus(ctx, order.Created)
	if err != nil {
		return AdvanceReport{}, err
	}

	inProgress, err := orderRepo.GetAllInStatus(ctx, order.InProgress)
	if err != nil {
		return AdvanceReport{}, err
	}

	delivered, err := orderRepo.GetAllPaidInStatus(ctx, order.Delivered)
	if err != nil {
		return AdvanceReport{}, err
	}

	batches := []struct {
		step   advanceStep
		orders []*order.Order
	}{
		{advanceStep{order.Created, (*order.Order).StartProgress}, awaitingProgress(created)},
		{advanceStep{order.InProgress, func(o *order.Order) error { return o.Deliver(h.carrier) }}, inProgress},
		{advanceStep{order.Delivered, (*order.Order).Close}, delivered},
	}

	var report AdvanceReport
	for _, batch := range batches {
		for _, o := range batch.orders {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}

			changed, advErr := h.advanceOne(ctx, o.ID(), batch.step)
			switch {
			case advErr != nil:
				report.Failed++
				h.logger.Warn(fmt.Sprintf("Can not change Order #%d status: %s", o.Number(), advErr))
			case changed:
				report.Advanced++
			default:
				report.Skipped++
			}
		}
	}

	h.logger.Info("order statuses advanced",
		zap.Int("advanced", report.Advanced),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped))
	h.observer.ObserveAdvance(report.Advanced, report.Failed, report.Skipped, time.Since(started))

	return report, nil
}

// advanceOne reloads the order under a row lock and applies step if the order
// is still where the batch found it.
func (h *AdvanceOrderStatusesCommandHandler) advanceOne(
	ctx context.Context,
	id kernel.UUID,
	step advanceStep,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}

	if o.Status() != step.from {
		return false, nil
	}

	if err = step.advance(o); err != nil {
		return false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// awaitingProgress drops canceled orders that stay Created only because
// their payment was refunded.
func awaitingProgress(created []*order.Order) []*order.Order {
	kept := created[:0]
	for _, o := range created {
		if _, canceled := o.Cancellation(); !canceled {
			kept = append(kept, o)
		}
	}
	return kept
}
