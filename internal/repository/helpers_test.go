package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"kasir-pos/internal/config"
	"kasir-pos/internal/model"
	"kasir-pos/internal/repository"
	"kasir-pos/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.Database{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "kasir_test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedProduct(t *testing.T, repo repository.ProductRepository, sku, name string, price int64, stock int) model.Product {
	t.Helper()

	p := model.Product{SKU: sku, Name: name, Price: price, Stock: stock, Unit: "pcs"}
	require.NoError(t, repo.Create(context.Background(), &p))
	return p
}

var fixedDate = time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)
