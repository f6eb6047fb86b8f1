package producttemplaterepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormProductTemplateRepository struct {
	db *gorm.DB
}

func NewGormProductTemplateRepository(db *gorm.DB) *GormProductTemplateRepository {
	return &GormProductTemplateRepository{db: db}
}

// Add inserts a template. Duplicate SKUs surface as errs.ErrConflict; this
// relies on the connection being opened with gorm.Config{TranslateError: true}.
func (r *GormProductTemplateRepository) Add(ctx context.Context, tpl *product.Template) error {
	dto := fromDomain(tpl)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("sku", tpl.SKU(), err)
		}
		return err
	}
	return nil
}

func (r *GormProductTemplateRepository) FindBySKUs(ctx context.Context, skus []string) ([]*product.Template, error) {
	if len(skus) == 0 {
		return []*product.Template{}, nil
	}

	var dtos []ProductTemplateDTO
	if err := r.db.WithContext(ctx).Where("sku IN ?", skus).Order("sku").Find(&dtos).Error; err != nil {
		return nil, err
	}

	templates := make([]*product.Template, 0, len(dtos))
	for _, dto := range dtos {
		tpl, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}
