package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAttachShippingLabelCommandIsNotConstructed = errors.New(
	"AttachShippingLabelCommand must be created via NewAttachShippingLabelCommand constructor",
)

// AttachShippingLabelCommand records the label produced by the external
// label renderer. The tracking number may be empty for carriers that assign
// it later.
type AttachShippingLabelCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	trackingNumber string
	labelURL       string

	guard guard.ConstructorGuard
}

func NewAttachShippingLabelCommand(orderID kernel.UUID, trackingNumber, labelURL string) (AttachShippingLabelCommand, error) {
	cmd := AttachShippingLabelCommand{
		trackingNumber: strings.TrimSpace(trackingNumber),
		guard:          guard.NewConstructorGuard(),
	}

	var labelErr error
	if strings.TrimSpace(labelURL) == "" {
		labelErr = errs.NewValueIsRequiredError("label_url")
	}
	cmd.labelURL = strings.TrimSpace(labelURL)

	if err := errors.Join(orderID.Validate(), labelErr); err != nil {
		return AttachShippingLabelCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

func (c AttachShippingLabelCommand) Validate() error {
	return c.guard.Validate(ErrAttachShippingLabelCommandIsNotConstructed)
}

func (c AttachShippingLabelCommand) OrderID() kernel.UUID   { return c.orderID }
func (c AttachShippingLabelCommand) TrackingNumber() string { return c.trackingNumber }
func (c AttachShippingLabelCommand) LabelURL() string       { return c.labelURL }
