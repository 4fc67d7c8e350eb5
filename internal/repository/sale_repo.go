package repository

import (
	"context"
	"fmt"

	"kasir-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	RecordSale(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	FindItems(ctx context.Context, saleID uuid.UUID) ([]model.SaleItem, error)
}

type saleRepo struct {
	db          *gorm.DB
	productRepo ProductRepository
}

func NewSaleRepo(db *gorm.DB, productRepo ProductRepository) SaleRepository {
	return &saleRepo{db: db, productRepo: productRepo}
}

// RecordSale menyimpan header, semua item, dan mengurangi stok dalam satu
// transaksi database. Kalau satu langkah gagal, semuanya di-rollback.
func (r *saleRepo) RecordSale(ctx context.Context, sale *model.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Header transaksi
		if err := tx.Omit(clause.Associations).Create(sale).Error; err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}

		// 2. Detail & update stok
		for i := range sale.Items {
			item := &sale.Items[i]
			item.SaleID = sale.ID

			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("insert sale item %q: %w", item.ProductName, err)
			}

			if err := r.productRepo.DecrementStock(tx, item.ProductID, item.Qty); err != nil {
				return fmt.Errorf("decrement stock %q: %w", item.ProductName, err)
			}
		}

		return nil
	})
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sale, nil
}

func (r *saleRepo) FindItems(ctx context.Context, saleID uuid.UUID) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}
