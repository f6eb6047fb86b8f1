package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// StartProductionCommandHandler moves an order onto the production floor.
// Allowed from design_complete, in_production (restart) and
// pending_fulfillment.
type StartProductionCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewStartProductionCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) StartProductionCommandHandler {
	return StartProductionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *StartProductionCommandHandler) Handle(ctx context.Context, cmd StartProductionCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.StartProduction(h.clock.Now())
	})
}
