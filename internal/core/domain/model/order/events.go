package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// StatusChangedEvent is recorded by the aggregate whenever its status
// changes and published after the surrounding unit of work commits.
type StatusChangedEvent struct {
	OrderID    kernel.UUID
	StoreID    kernel.UUID
	From       Status
	To         Status
	OccurredAt time.Time
}
