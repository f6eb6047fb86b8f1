package postgres

import (
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/producttemplaterepo"
	"fulfillment/internal/adapters/out/postgres/storerepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the orders, product_templates and stores tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &producttemplaterepo.ProductTemplateDTO{}, &storerepo.StoreDTO{})
}
