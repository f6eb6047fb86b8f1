package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const defaultLookupTimeout = 5 * time.Second

// AutoAdvanceOrdersCommandHandler promotes pending_enrichment orders whose
// products need no operator input to ready_for_design.
//
// All pending orders are read once and their SKUs resolved with a single
// template lookup. Each promotion then runs in its own transaction, so one
// failing order does not hold back the rest of the batch.
type AutoAdvanceOrdersCommandHandler struct {
	uowFactory    OrderUoWFactory
	templates     ports.ProductTemplateReader
	clock         kernel.Clock
	lookupTimeout time.Duration
	logger        *slog.Logger

	policy services.AutoAdvancePolicy
	joiner services.EnrichmentJoiner
}

func NewAutoAdvanceOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	templates ports.ProductTemplateReader,
	clock kernel.Clock,
	lookupTimeout time.Duration,
	logger *slog.Logger,
) AutoAdvanceOrdersCommandHandler {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	return AutoAdvanceOrdersCommandHandler{
		uowFactory:    uowFactory,
		templates:     templates,
		clock:         clock,
		lookupTimeout: lookupTimeout,
		logger:        logger.With("component", "auto_advance"),
		policy:        services.NewAutoAdvancePolicy(),
		joiner:        services.NewEnrichmentJoiner(),
	}
}

func (h *AutoAdvanceOrdersCommandHandler) Handle(ctx context.Context, cmd AutoAdvanceOrdersCommand) (AutoAdvanceResult, error) {
	var result AutoAdvanceResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	pending, err := h.uowFactory.Create().OrderRepository().Find(ctx, ports.OrderFilter{
		Statuses:    []order.Status{order.PendingEnrichment},
		OldestFirst: true,
	})
	if err != nil {
		return result, err
	}
	if len(pending) == 0 {
		return result, nil
	}

	templates, err := h.lookupTemplates(ctx, h.joiner.DistinctSKUs(pending))
	if err != nil {
		return result, err
	}

	for _, o := range pending {
		if reason := h.policy.Decide(o, templates); reason != services.SkipNone {
			result.Skipped++
			h.logger.DebugContext(ctx, "Order left pending", "order_number", o.OrderNumber(), "reason", string(reason))
			continue
		}

		promoted, err := h.promote(ctx, o.ID())
		switch {
		case err != nil:
			result.Failed++
			h.logger.ErrorContext(ctx, "Failed to promote order", "order_id", o.ID().String(), "error", err)
		case promoted:
			result.Promoted++
		default:
			result.Skipped++
		}
	}

	h.logger.InfoContext(ctx, "Auto-advance finished",
		"promoted", result.Promoted, "skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

func (h *AutoAdvanceOrdersCommandHandler) lookupTemplates(ctx context.Context, skus []string) (map[string]*product.Template, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, h.lookupTimeout)
	defer cancel()

	found, err := h.templates.FindBySKUs(lookupCtx, skus)
	if err != nil {
		return nil, errs.NewUpstreamError("product template lookup", err)
	}
	return services.IndexBySKU(found), nil
}

// promote reloads the order inside its own transaction; an order moved by an
// operator since the scan is left alone.
func (h *AutoAdvanceOrdersCommandHandler) promote(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if o.Status() != order.PendingEnrichment {
		return false, nil
	}

	if err = o.PromoteToDesign(h.clock.Now()); err != nil {
		return false, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
