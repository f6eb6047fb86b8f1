package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

type RequestRevisionCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewRequestRevisionCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) RequestRevisionCommandHandler {
	return RequestRevisionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *RequestRevisionCommandHandler) Handle(ctx context.Context, cmd RequestRevisionCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.RequestRevision(cmd.Notes(), h.clock.Now())
	})
}
