package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ClearAllConfirmation must be sent verbatim to wipe every order.
const ClearAllConfirmation = "DELETE_ALL_ORDERS"

var ErrClearAllOrdersCommandIsNotConstructed = errors.New(
	"ClearAllOrdersCommand must be created via NewClearAllOrdersCommand constructor",
)

type ClearAllOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewClearAllOrdersCommand(confirm string) (ClearAllOrdersCommand, error) {
	if confirm != ClearAllConfirmation {
		return ClearAllOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"confirm",
			fmt.Errorf("must equal %s", ClearAllConfirmation),
		)
	}
	return ClearAllOrdersCommand{guard: guard.NewConstructorGuard()}, nil
}

func (c ClearAllOrdersCommand) Validate() error {
	return c.guard.Validate(ErrClearAllOrdersCommandIsNotConstructed)
}
