package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderEventPublisher announces committed status changes.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, events []order.StatusChangedEvent) error
}
