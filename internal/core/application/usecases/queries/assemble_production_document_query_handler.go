package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const (
	defaultFetchConcurrency = 4
	defaultFetchTimeout     = 10 * time.Second
)

// AssembleProductionDocumentQueryHandler merges the design files of every
// eligible order line for one SKU into a single document.
//
// Files are fetched and parsed concurrently, at most concurrency at a time,
// each under its own timeout. Results land in slots indexed by scan position
// and are folded in that order, so the page order follows order_date and
// never completion order. A file that cannot be fetched or parsed is logged
// and left out.
type AssembleProductionDocumentQueryHandler struct {
	orders       OrderFinder
	blobs        ports.BlobStorage
	merger       ports.DocumentMerger
	clock        kernel.Clock
	concurrency  int
	fetchTimeout time.Duration
	logger       *slog.Logger
}

func NewAssembleProductionDocumentQueryHandler(
	orders OrderFinder,
	blobs ports.BlobStorage,
	merger ports.DocumentMerger,
	clock kernel.Clock,
	concurrency int,
	fetchTimeout time.Duration,
	logger *slog.Logger,
) AssembleProductionDocumentQueryHandler {
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return AssembleProductionDocumentQueryHandler{
		orders:       orders,
		blobs:        blobs,
		merger:       merger,
		clock:        clock,
		concurrency:  concurrency,
		fetchTimeout: fetchTimeout,
		logger:       logger.With("component", "document_assembler"),
	}
}

type sourceFile struct {
	orderID     kernel.UUID
	orderNumber string
	path        string
}

type fetchedFile struct {
	data  []byte
	pages int
	err   error
}

func (h AssembleProductionDocumentQueryHandler) Handle(
	ctx context.Context,
	query AssembleProductionDocumentQuery,
) (ProductionDocument, error) {
	if err := query.Validate(); err != nil {
		return ProductionDocument{}, err
	}

	orders, err := h.orders.Find(ctx, ports.OrderFilter{
		Statuses:    []order.Status{order.DesignComplete, order.PendingFulfillment},
		IDs:         query.OrderIDs(),
		OldestFirst: true,
	})
	if err != nil {
		return ProductionDocument{}, err
	}

	sources := h.locate(ctx, orders, query.SKU())
	fetched := h.fetch(ctx, sources)

	docs := make([][]byte, 0, len(fetched))
	pages := 0
	for i, f := range fetched {
		if f.err != nil {
			h.logger.WarnContext(ctx, "Skipping design file",
				"sku", query.SKU(),
				"order_id", sources[i].orderID.String(),
				"order_number", sources[i].orderNumber,
				"path", sources[i].path,
				"error", f.err)
			continue
		}
		if f.pages == 0 {
			continue
		}
		docs = append(docs, f.data)
		pages += f.pages
	}

	if pages == 0 {
		return ProductionDocument{}, errs.NewObjectNotFoundErrorWithCause("sku", query.SKU(), ErrNoDesignFiles)
	}

	merged, err := h.merger.Merge(docs)
	if err != nil {
		return ProductionDocument{}, err
	}

	h.logger.InfoContext(ctx, "Production document assembled",
		"sku", query.SKU(), "files", len(docs), "pages", pages)

	return ProductionDocument{
		Filename: fmt.Sprintf("%s_combined_%d.pdf", query.SKU(), h.clock.Now().UnixMilli()),
		Content:  merged,
		Files:    len(docs),
		Pages:    pages,
	}, nil
}

// locate walks orders in scan order and returns the design file of every
// line item whose SKU equals sku exactly.
func (h AssembleProductionDocumentQueryHandler) locate(ctx context.Context, orders []*order.Order, sku string) []sourceFile {
	sources := make([]sourceFile, 0)
	for _, o := range orders {
		for _, li := range o.Detail().LineItems {
			if li.SKU != sku {
				continue
			}
			file, ok := o.DesignFileFor(li.ID)
			if !ok || file.Path == "" {
				h.logger.DebugContext(ctx, "Line item has no design file",
					"order_number", o.OrderNumber(), "line_item_id", li.ID)
				continue
			}
			sources = append(sources, sourceFile{orderID: o.ID(), orderNumber: o.OrderNumber(), path: file.Path})
		}
	}
	return sources
}

func (h AssembleProductionDocumentQueryHandler) fetch(ctx context.Context, sources []sourceFile) []fetchedFile {
	results := make([]fetchedFile, len(sources))

	var g errgroup.Group
	g.SetLimit(h.concurrency)
	for i, src := range sources {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, h.fetchTimeout)
			defer cancel()

			data, err := h.blobs.Get(fetchCtx, src.path)
			if err != nil {
				results[i] = fetchedFile{err: err}
				return nil
			}

			pages, err := h.merger.PageCount(data)
			results[i] = fetchedFile{data: data, pages: pages, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
