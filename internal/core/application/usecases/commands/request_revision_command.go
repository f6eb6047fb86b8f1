package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRequestRevisionCommandIsNotConstructed = errors.New(
	"RequestRevisionCommand must be created via NewRequestRevisionCommand constructor",
)

// RequestRevisionCommand sends an order back to design with the operator's
// notes.
type RequestRevisionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	notes   string

	guard guard.ConstructorGuard
}

func NewRequestRevisionCommand(orderID kernel.UUID, notes string) (RequestRevisionCommand, error) {
	cmd := RequestRevisionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNotes(notes),
	); err != nil {
		return RequestRevisionCommand{}, err
	}

	return cmd, nil
}

func (c RequestRevisionCommand) Validate() error {
	return c.guard.Validate(ErrRequestRevisionCommandIsNotConstructed)
}

func (c RequestRevisionCommand) OrderID() kernel.UUID { return c.orderID }
func (c RequestRevisionCommand) Notes() string        { return c.notes }

func (c *RequestRevisionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RequestRevisionCommand) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return errs.NewValueIsRequiredError("revision_notes")
	}
	c.notes = notes
	return nil
}
