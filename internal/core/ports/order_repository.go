package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderFilter selects orders at the source. Empty fields do not filter.
type OrderFilter struct {
	Statuses              []order.Status
	IDs                   []kernel.UUID
	RequireTrackingNumber bool

	// OldestFirst sorts by order_date ascending; the default is descending.
	OldestFirst bool
}

// OrderRef is what a cascade delete needs from a stored order. It is read
// from raw columns, so orders whose payload no longer restores into an
// aggregate can still be removed.
type OrderRef struct {
	ID              kernel.UUID
	StoreID         kernel.UUID
	DesignFilePaths []string
}

type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists every field, including ones cleared to nil.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Find returns the matching orders sorted by order_date. No pagination
	// happens here; queues paginate after prioritizing. Rows that cannot be
	// restored are logged and left out.
	Find(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// FindRefs returns the deletion references of the given ids that exist.
	FindRefs(ctx context.Context, ids []kernel.UUID) ([]OrderRef, error)

	DeleteByIDs(ctx context.Context, ids []kernel.UUID) (int64, error)

	DeleteAll(ctx context.Context) (int64, error)
}
