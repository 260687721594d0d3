package commands

import (
	"errors"

	"mealdelivery/internal/pkg/guard"
)

var ErrAdvanceOrderStatusesCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusesCommand must be created via NewAdvanceOrderStatusesCommand constructor",
)

// AdvanceOrderStatusesCommand triggers one pass of the order status batch:
// created orders start, orders in progress are delivered and paid delivered
// orders are closed.
//
// Example:
//
//	cmd := NewAdvanceOrderStatusesCommand()
//	report, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("batch failed: %w", err)
//	}
//	log.Printf("advanced %d, failed %d", report.Advanced, report.Failed)
type AdvanceOrderStatusesCommand struct {
	guard guard.ConstructorGuard
}

func NewAdvanceOrderStatusesCommand() AdvanceOrderStatusesCommand {
	return AdvanceOrderStatusesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *AdvanceOrderStatusesCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusesCommandIsNotConstructed)
}
