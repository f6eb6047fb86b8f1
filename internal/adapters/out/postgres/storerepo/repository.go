package storerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormStoreRepository struct {
	db *gorm.DB
}

func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

func (r *GormStoreRepository) Add(ctx context.Context, s *store.Store) error {
	dto := fromDomain(s)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	var dto StoreDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("store", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormStoreRepository) ResetSyncCheckpoints(ctx context.Context, ids []kernel.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	raw := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		raw[i] = id.Bytes()
	}

	result := r.db.WithContext(ctx).Model(&StoreDTO{}).
		Where("id IN ?", raw).
		Update("last_sync_timestamp", nil)
	return result.RowsAffected, result.Error
}

func (r *GormStoreRepository) ResetAllSyncCheckpoints(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&StoreDTO{}).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Update("last_sync_timestamp", nil)
	return result.RowsAffected, result.Error
}
