package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
)

type StoreRepository interface {
	Add(ctx context.Context, s *store.Store) error

	Get(ctx context.Context, id kernel.UUID) (*store.Store, error)

	// ResetSyncCheckpoints nulls last_sync_timestamp of exactly the given stores.
	ResetSyncCheckpoints(ctx context.Context, ids []kernel.UUID) (int64, error)

	ResetAllSyncCheckpoints(ctx context.Context) (int64, error)
}
