package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultQueueLimit = 50
	MaxQueueLimit     = 500
)

var ErrListQueueQueryIsNotConstructed = errors.New(
	"ListQueueQuery must be created via NewListQueueQuery constructor",
)

// Queue names one workstation worklist.
type Queue int

const (
	UnknownQueue Queue = iota

	// DesignQueue lists ready_for_design and design_complete orders, revision
	// requests first.
	DesignQueue

	// ProductionQueue lists design_complete and pending_fulfillment orders.
	ProductionQueue

	// GeneralQueue lists every order, or one status, needs_review first.
	GeneralQueue

	// LoadedForShipmentQueue lists packed orders.
	LoadedForShipmentQueue

	// InTransitQueue lists in_transit orders that carry a tracking number.
	InTransitQueue
)

type queueDefinition struct {
	filter   ports.OrderFilter
	priority services.Priority
}

func queueDefinitions() map[Queue]queueDefinition {
	return map[Queue]queueDefinition{
		DesignQueue: {
			filter:   ports.OrderFilter{Statuses: []order.Status{order.ReadyForDesign, order.DesignComplete}},
			priority: services.RevisionFirst,
		},
		ProductionQueue: {
			filter:   ports.OrderFilter{Statuses: []order.Status{order.DesignComplete, order.PendingFulfillment}},
			priority: services.NoPriority,
		},
		GeneralQueue: {
			priority: services.NeedsReviewFirst,
		},
		LoadedForShipmentQueue: {
			filter:   ports.OrderFilter{Statuses: []order.Status{order.LoadedForShipment}},
			priority: services.NoPriority,
		},
		InTransitQueue: {
			filter:   ports.OrderFilter{Statuses: []order.Status{order.InTransit}, RequireTrackingNumber: true},
			priority: services.NoPriority,
		},
	}
}

type ListQueueQuery struct { //nolint:recvcheck //using for validation
	queue  Queue
	status order.Status
	search string
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListQueueQuery validates the paging window and, for the general queue,
// the optional status filter. A status on any other queue is rejected, as is
// an unknown status name.
//
// Example:
//
//	query, err := NewListQueueQuery(DesignQueue, "", "mug", DefaultQueueLimit, 0)
func NewListQueueQuery(queue Queue, status, search string, limit, offset int) (ListQueueQuery, error) {
	if _, ok := queueDefinitions()[queue]; !ok {
		return ListQueueQuery{}, errs.NewValueIsInvalidError("queue")
	}

	q := ListQueueQuery{
		queue:  queue,
		search: strings.TrimSpace(search),
		limit:  limit,
		offset: offset,
	}

	var err error
	if status = strings.TrimSpace(status); status != "" {
		if queue != GeneralQueue {
			err = errors.Join(err, errs.NewValueIsInvalidError("status"))
		} else if q.status, err = order.ParseStatus(status); err != nil {
			err = errs.NewValueIsInvalidErrorWithCause("status", err)
		}
	}
	if limit < 1 || limit > MaxQueueLimit {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxQueueLimit))
	}
	if offset < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded"))
	}
	if err != nil {
		return ListQueueQuery{}, err
	}

	q.guard = guard.NewConstructorGuard()
	return q, nil
}

func (q ListQueueQuery) Validate() error {
	return q.guard.Validate(ErrListQueueQueryIsNotConstructed)
}

func (q ListQueueQuery) Queue() Queue   { return q.queue }
func (q ListQueueQuery) Search() string { return q.search }
func (q ListQueueQuery) Limit() int     { return q.limit }
func (q ListQueueQuery) Offset() int    { return q.offset }

// Status is order.Unknown when the general queue is not filtered.
func (q ListQueueQuery) Status() order.Status { return q.status }

// ListQueueResponse is one page of a queue. Total counts the whole filtered
// queue, before offset and limit.
type ListQueueResponse struct {
	Orders []OrderView `json:"orders"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
