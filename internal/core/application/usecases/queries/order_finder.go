// Package queries contains the read side: workstation queues and production
// document assembly. Queries never change order state.
package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// OrderFinder is the read-only slice of ports.OrderRepository the queries use.
type OrderFinder interface {
	Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error)
}
