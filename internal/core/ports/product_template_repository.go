package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/product"
)

// ProductTemplateReader resolves templates for a batch of SKUs in one call.
// Unknown SKUs are simply absent from the result.
type ProductTemplateReader interface {
	FindBySKUs(ctx context.Context, skus []string) ([]*product.Template, error)
}

type ProductTemplateRepository interface {
	ProductTemplateReader

	// Add fails with errs.ErrConflict when the SKU already exists.
	Add(ctx context.Context, tpl *product.Template) error
}
