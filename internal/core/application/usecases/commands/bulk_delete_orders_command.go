package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrBulkDeleteOrdersCommandIsNotConstructed = errors.New(
	"BulkDeleteOrdersCommand must be created via NewBulkDeleteOrdersCommand constructor",
)

type BulkDeleteOrdersCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkDeleteOrdersCommand rejects an empty id list; duplicates are
// collapsed.
func NewBulkDeleteOrdersCommand(orderIDs []kernel.UUID) (BulkDeleteOrdersCommand, error) {
	if len(orderIDs) == 0 {
		return BulkDeleteOrdersCommand{}, errs.NewValueIsRequiredError("orderIds")
	}

	seen := make(map[kernel.UUID]struct{}, len(orderIDs))
	ids := make([]kernel.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return BulkDeleteOrdersCommand{}, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return BulkDeleteOrdersCommand{
		orderIDs: ids,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c BulkDeleteOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkDeleteOrdersCommandIsNotConstructed)
}

func (c BulkDeleteOrdersCommand) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.orderIDs))
	copy(out, c.orderIDs)
	return out
}

// DeleteResult is returned by both deletion commands.
type DeleteResult struct {
	Deleted      int64 `json:"deleted"`
	DeletedFiles int   `json:"deletedFiles"`
}
