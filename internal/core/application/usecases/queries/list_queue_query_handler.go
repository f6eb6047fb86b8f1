package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const defaultLookupTimeout = 5 * time.Second

// ListQueueQueryHandler builds a workstation worklist.
//
// The status filter runs at the source; search, priority partition and
// paging run in memory, in that order, so the page boundaries never depend
// on what the database returned first. Only the page is enriched, with one
// template lookup for all of its SKUs.
type ListQueueQueryHandler struct {
	orders        OrderFinder
	templates     ports.ProductTemplateReader
	lookupTimeout time.Duration

	prioritizer services.QueuePrioritizer
	joiner      services.EnrichmentJoiner
}

func NewListQueueQueryHandler(
	orders OrderFinder,
	templates ports.ProductTemplateReader,
	lookupTimeout time.Duration,
) ListQueueQueryHandler {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	return ListQueueQueryHandler{
		orders:        orders,
		templates:     templates,
		lookupTimeout: lookupTimeout,
		prioritizer:   services.NewQueuePrioritizer(),
		joiner:        services.NewEnrichmentJoiner(),
	}
}

func (h ListQueueQueryHandler) Handle(ctx context.Context, query ListQueueQuery) (ListQueueResponse, error) {
	if err := query.Validate(); err != nil {
		return ListQueueResponse{}, err
	}

	def := queueDefinitions()[query.Queue()]
	filter := def.filter
	if query.Status() != order.Unknown {
		filter.Statuses = []order.Status{query.Status()}
	}

	orders, err := h.orders.Find(ctx, filter)
	if err != nil {
		return ListQueueResponse{}, err
	}

	page := h.prioritizer.Prioritize(orders, def.priority, query.Search(), services.Page{
		Offset: query.Offset(),
		Limit:  query.Limit(),
	})

	templates, err := h.lookupTemplates(ctx, h.joiner.DistinctSKUs(page.Orders))
	if err != nil {
		return ListQueueResponse{}, err
	}

	views := make([]OrderView, 0, len(page.Orders))
	for _, e := range h.joiner.Join(page.Orders, templates) {
		views = append(views, newEnrichedOrderView(e))
	}

	return ListQueueResponse{
		Orders: views,
		Total:  page.Total,
		Limit:  query.Limit(),
		Offset: query.Offset(),
	}, nil
}

func (h ListQueueQueryHandler) lookupTemplates(ctx context.Context, skus []string) (map[string]*product.Template, error) {
	if len(skus) == 0 {
		return map[string]*product.Template{}, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, h.lookupTimeout)
	defer cancel()

	found, err := h.templates.FindBySKUs(lookupCtx, skus)
	if err != nil {
		return nil, errs.NewUpstreamError("product template lookup", err)
	}
	return services.IndexBySKU(found), nil
}
