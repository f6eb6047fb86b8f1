package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartProductionCommandIsNotConstructed = errors.New(
	"StartProductionCommand must be created via NewStartProductionCommand constructor",
)

type StartProductionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartProductionCommand(orderID kernel.UUID) (StartProductionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return StartProductionCommand{}, err
	}

	return StartProductionCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c StartProductionCommand) Validate() error {
	return c.guard.Validate(ErrStartProductionCommandIsNotConstructed)
}

func (c StartProductionCommand) OrderID() kernel.UUID {
	return c.orderID
}
