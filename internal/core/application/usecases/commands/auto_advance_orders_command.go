package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAutoAdvanceOrdersCommandIsNotConstructed = errors.New(
	"AutoAdvanceOrdersCommand must be created via NewAutoAdvanceOrdersCommand constructor",
)

// AutoAdvanceOrdersCommand triggers one pass over pending_enrichment orders.
type AutoAdvanceOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewAutoAdvanceOrdersCommand() AutoAdvanceOrdersCommand {
	return AutoAdvanceOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c AutoAdvanceOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAutoAdvanceOrdersCommandIsNotConstructed)
}

// AutoAdvanceResult counts the outcome of one pass. Skipped orders stay in
// pending_enrichment; failed orders hit an error while being saved.
type AutoAdvanceResult struct {
	Promoted int `json:"promoted"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}
