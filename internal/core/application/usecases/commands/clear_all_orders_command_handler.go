package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ClearAllOrdersCommandHandler wipes every order, every design file below
// designPrefix and every store checkpoint, in that order.
//
// A failed listing aborts before any row is touched. Individual file removals
// are best effort.
type ClearAllOrdersCommandHandler struct {
	uowFactory   UoWFactory
	blobs        ports.BlobStorage
	designPrefix string
	blobTimeout  time.Duration
	logger       *slog.Logger
}

// NewClearAllOrdersCommandHandler bounds the listing and each removal by
// blobTimeout; zero selects the default.
func NewClearAllOrdersCommandHandler(
	uowFactory UoWFactory,
	blobs ports.BlobStorage,
	designPrefix string,
	blobTimeout time.Duration,
	logger *slog.Logger,
) ClearAllOrdersCommandHandler {
	if blobTimeout <= 0 {
		blobTimeout = defaultBlobTimeout
	}
	return ClearAllOrdersCommandHandler{
		uowFactory:   uowFactory,
		blobs:        blobs,
		designPrefix: designPrefix,
		blobTimeout:  blobTimeout,
		logger:       logger.With("component", "cascade_delete"),
	}
}

func (h *ClearAllOrdersCommandHandler) Handle(ctx context.Context, cmd ClearAllOrdersCommand) (DeleteResult, error) {
	var result DeleteResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	paths, err := h.listDesignFiles(ctx)
	if err != nil {
		return result, errs.NewUpstreamError("blob storage", err)
	}

	for _, p := range paths {
		if err = removeBlob(ctx, h.blobs, p, h.blobTimeout); err != nil {
			h.logger.WarnContext(ctx, "Failed to remove design file", "path", p, "error", err)
			continue
		}
		result.DeletedFiles++
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if result.Deleted, err = uow.OrderRepository().DeleteAll(ctx); err != nil {
		return result, err
	}

	if _, err = uow.StoreRepository().ResetAllSyncCheckpoints(ctx); err != nil {
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	h.logger.WarnContext(ctx, "All orders cleared", "deleted", result.Deleted, "deleted_files", result.DeletedFiles)
	return result, nil
}

func (h *ClearAllOrdersCommandHandler) listDesignFiles(ctx context.Context) ([]string, error) {
	listCtx, cancel := context.WithTimeout(ctx, h.blobTimeout)
	defer cancel()
	return h.blobs.List(listCtx, h.designPrefix)
}
