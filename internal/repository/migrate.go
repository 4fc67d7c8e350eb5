package repository

import (
	"kasir-pos/internal/model"

	"gorm.io/gorm"
)

// Migrate creates/updates the products, sales and sales_items tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Product{}, &model.Sale{}, &model.SaleItem{})
}
