package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

const defaultBlobTimeout = 10 * time.Second

// BulkDeleteOrdersCommandHandler deletes orders together with their design
// files and forces a re-import of the affected stores.
//
// The steps run as a saga: design files first (best effort), then the order
// rows, then the sync checkpoints of exactly the stores that lost orders. The
// last two share a transaction. Every step is safe to repeat.
//
// Targets are read as raw references, so an order whose stored payload no
// longer restores into an aggregate is still deleted.
type BulkDeleteOrdersCommandHandler struct {
	uowFactory  UoWFactory
	blobs       ports.BlobStorage
	blobTimeout time.Duration
	logger      *slog.Logger
}

// NewBulkDeleteOrdersCommandHandler bounds every blob removal by blobTimeout;
// zero selects the default.
func NewBulkDeleteOrdersCommandHandler(
	uowFactory UoWFactory,
	blobs ports.BlobStorage,
	blobTimeout time.Duration,
	logger *slog.Logger,
) BulkDeleteOrdersCommandHandler {
	if blobTimeout <= 0 {
		blobTimeout = defaultBlobTimeout
	}
	return BulkDeleteOrdersCommandHandler{
		uowFactory:  uowFactory,
		blobs:       blobs,
		blobTimeout: blobTimeout,
		logger:      logger.With("component", "cascade_delete"),
	}
}

func (h *BulkDeleteOrdersCommandHandler) Handle(ctx context.Context, cmd BulkDeleteOrdersCommand) (DeleteResult, error) {
	var result DeleteResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	refs, err := h.uowFactory.Create().OrderRepository().FindRefs(ctx, cmd.OrderIDs())
	if err != nil {
		return result, err
	}
	if len(refs) == 0 {
		return result, nil
	}

	result.DeletedFiles = h.removeDesignFiles(ctx, refs)

	ids := make([]kernel.UUID, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if result.Deleted, err = uow.OrderRepository().DeleteByIDs(ctx, ids); err != nil {
		return result, err
	}

	if _, err = uow.StoreRepository().ResetSyncCheckpoints(ctx, distinctStores(refs)); err != nil {
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	h.logger.InfoContext(ctx, "Orders deleted", "deleted", result.Deleted, "deleted_files", result.DeletedFiles)
	return result, nil
}

func (h *BulkDeleteOrdersCommandHandler) removeDesignFiles(ctx context.Context, refs []ports.OrderRef) int {
	removed := 0
	for _, ref := range refs {
		for _, path := range ref.DesignFilePaths {
			if err := removeBlob(ctx, h.blobs, path, h.blobTimeout); err != nil {
				h.logger.WarnContext(ctx, "Failed to remove design file",
					"order_id", ref.ID.String(), "path", path, "error", err)
				continue
			}
			removed++
		}
	}
	return removed
}

// removeBlob runs one removal under its own deadline so a stalled store
// cannot hold the whole deletion.
func removeBlob(ctx context.Context, blobs ports.BlobStorage, path string, timeout time.Duration) error {
	removeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return blobs.Remove(removeCtx, path)
}

func distinctStores(refs []ports.OrderRef) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(refs))
	stores := make([]kernel.UUID, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.StoreID]; ok {
			continue
		}
		seen[ref.StoreID] = struct{}{}
		stores = append(stores, ref.StoreID)
	}
	return stores
}
