package orderrepo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	logger  *slog.Logger
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker, logger *slog.Logger) *GormOrderRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
		logger:  logger.With("component", "order_repository"),
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column. Select("*") is required so that fields the
// aggregate cleared (review reason, revision notes, timestamps) become NULL
// instead of being skipped as zero values.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	o, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewCorruptedRecordError("order", id.String(), err)
	}
	return o, nil
}

func (r *GormOrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	q := r.db.WithContext(ctx).Model(&OrderDTO{})

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		q = q.Where("status = ANY(?)", pq.Array(statuses))
	}

	if len(filter.IDs) > 0 {
		q = q.Where("id IN ?", toRaw(filter.IDs))
	}

	if filter.RequireTrackingNumber {
		q = q.Where("tracking_number IS NOT NULL AND tracking_number <> ''")
	}

	if filter.OldestFirst {
		q = q.Order("order_date ASC").Order("order_number ASC")
	} else {
		q = q.Order("order_date DESC").Order("order_number ASC")
	}

	var dtos []OrderDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	skipped := 0
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			skipped++
			r.logger.ErrorContext(ctx, "Skipping unreadable order",
				"order_id", dto.ID.String(), "order_number", dto.OrderNumber, "error", err)
			continue
		}
		orders = append(orders, o)
	}
	if skipped > 0 {
		r.logger.WarnContext(ctx, "Orders left out of result", "skipped", skipped, "returned", len(orders))
	}

	return orders, nil
}

// FindRefs reads only id, store_id and design_files. A design_files payload
// that does not decode costs the order its file paths, not its deletion.
func (r *GormOrderRepository) FindRefs(ctx context.Context, ids []kernel.UUID) ([]ports.OrderRef, error) {
	if len(ids) == 0 {
		return []ports.OrderRef{}, nil
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Select("id", "store_id", "design_files").
		Where("id IN ?", toRaw(ids)).
		Order("order_date ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	refs := make([]ports.OrderRef, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		storeID, storeErr := kernel.UUIDFromBytes(dto.StoreID[:])
		if err = errors.Join(idErr, storeErr); err != nil {
			r.logger.ErrorContext(ctx, "Skipping order with unusable identifiers", "order_id", dto.ID.String(), "error", err)
			continue
		}
		ref := ports.OrderRef{ID: id, StoreID: storeID}

		var files []designFileJSON
		if len(dto.DesignFiles) > 0 {
			if err = json.Unmarshal(dto.DesignFiles, &files); err != nil {
				r.logger.ErrorContext(ctx, "Unreadable design files, removing order without them",
					"order_id", dto.ID.String(), "error", err)
			}
		}
		for _, f := range files {
			if f.Path != "" {
				ref.DesignFilePaths = append(ref.DesignFilePaths, f.Path)
			}
		}

		refs = append(refs, ref)
	}

	return refs, nil
}

func (r *GormOrderRepository) DeleteByIDs(ctx context.Context, ids []kernel.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Where("id IN ?", toRaw(ids)).Delete(&OrderDTO{})
	return result.RowsAffected, result.Error
}

func (r *GormOrderRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&OrderDTO{})
	return result.RowsAffected, result.Error
}

func toRaw(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		raw[i] = id.Bytes()
	}
	return raw
}
