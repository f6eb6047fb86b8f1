package storerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"

	"github.com/google/uuid"
)

type StoreDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"not null"`
	Platform          string    `gorm:"not null"`
	LastSyncTimestamp *time.Time
}

func (StoreDTO) TableName() string {
	return "stores"
}

func fromDomain(s *store.Store) StoreDTO {
	return StoreDTO{
		ID:                s.ID().Bytes(),
		Name:              s.Name(),
		Platform:          s.Platform(),
		LastSyncTimestamp: s.LastSyncTimestamp(),
	}
}

func toDomain(dto StoreDTO) (*store.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return store.RestoreStore(id, dto.Name, dto.Platform, dto.LastSyncTimestamp)
}
