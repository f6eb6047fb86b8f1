package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

type AttachShippingLabelCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAttachShippingLabelCommandHandler(uowFactory OrderUoWFactory) AttachShippingLabelCommandHandler {
	return AttachShippingLabelCommandHandler{uowFactory: uowFactory}
}

// Handle stores the label; the status is left to SetOrderStatus.
func (h *AttachShippingLabelCommandHandler) Handle(ctx context.Context, cmd AttachShippingLabelCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.AttachLabel(cmd.TrackingNumber(), cmd.LabelURL())
	})
}
