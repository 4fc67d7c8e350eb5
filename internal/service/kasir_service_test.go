package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"kasir-pos/internal/config"
	"kasir-pos/internal/model"
	"kasir-pos/internal/receipt"
	"kasir-pos/internal/repository"
	"kasir-pos/internal/service"
	"kasir-pos/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type kasirFixture struct {
	db        *gorm.DB
	products  repository.ProductRepository
	sales     repository.SaleRepository
	publisher *recordingPublisher
	kasir     service.KasirService
}

func setupKasir(t *testing.T) *kasirFixture {
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

	pRepo := repository.NewProductRepo(db)
	sRepo := repository.NewSaleRepo(db, pRepo)
	publisher := &recordingPublisher{}

	kasir := service.NewKasirService(
		service.NewCatalogService(pRepo),
		service.NewSaleService(sRepo, fixedClock),
		service.NewReceiptService(sRepo, receipt.NopOpener{}, t.TempDir(), time.UTC),
		publisher,
	)

	return &kasirFixture{db: db, products: pRepo, sales: sRepo, publisher: publisher, kasir: kasir}
}

func (f *kasirFixture) seed(t *testing.T, sku, name string, price int64, stock int) model.Product {
	t.Helper()
	p := model.Product{SKU: sku, Name: name, Price: price, Stock: stock, Unit: "pcs"}
	require.NoError(t, f.products.Create(context.Background(), &p))
	return p
}

func (f *kasirFixture) stockOf(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (f *kasirFixture) countRows(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func TestKasir_CheckoutFlow(t *testing.T) {
	f := setupKasir(t)
	a := f.seed(t, "A-01", "Produk A", 1000, 5)
	b := f.seed(t, "B-01", "Produk B", 2500, 1)
	f.seed(t, "C-01", "Produk C", 3000, 0)

	// Produk C habis, tidak tampil
	products, err := f.kasir.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Produk A", products[0].Name)
	assert.Equal(t, "Produk B", products[1].Name)

	_, err = f.kasir.AddToCart(context.Background(), a.ID)
	require.NoError(t, err)
	_, err = f.kasir.AddToCart(context.Background(), b.ID)
	require.NoError(t, err)
	view, err := f.kasir.AddToCart(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4500), view.Total)
	require.Len(t, view.Items, 2)

	result, err := f.kasir.Checkout(context.Background(), "5000")
	require.NoError(t, err)

	assert.Equal(t, int64(500), result.Sale.Kembalian)
	assert.Equal(t, "Kembali : Rp 500", result.Lines[len(result.Lines)-1])
	assert.Contains(t, result.Lines, "Produk A x2 = Rp 2.000")

	// Keranjang kosong setelah checkout
	assert.Equal(t, int64(0), f.kasir.Cart().Total)
	assert.Empty(t, f.kasir.Cart().Items)

	// Stok berkurang, B habis dan hilang dari daftar
	assert.Equal(t, 3, f.stockOf(t, a.ID))
	assert.Equal(t, 0, f.stockOf(t, b.ID))
	require.Len(t, result.Products, 1)
	assert.Equal(t, a.ID, result.Products[0].ID)

	items, err := f.sales.FindItems(context.Background(), result.Sale.ID)
	require.NoError(t, err)
	var sum int64
	for _, item := range items {
		sum += item.Subtotal()
	}
	assert.Equal(t, result.Sale.Total, sum)

	require.Equal(t, 1, f.publisher.count())
	event := f.publisher.last()
	assert.Equal(t, "stock_update", event["type"])
	assert.Equal(t, "sale_recorded", event["action"])

	published := event["items"].([]map[string]interface{})
	require.Len(t, published, 2)
	assert.Equal(t, a.ID, published[0]["product_id"])
	assert.Equal(t, "Produk A", published[0]["product_name"])
	assert.Equal(t, 2, published[0]["qty"])
	assert.Equal(t, 3, published[0]["new_stock"])
	// B habis: stok tetap dikirim walau tidak ada di daftar produk
	assert.Equal(t, b.ID, published[1]["product_id"])
	assert.Equal(t, 0, published[1]["new_stock"])
}

func TestKasir_CheckoutKeepsSaleWhenReceiptFails(t *testing.T) {
	f := setupKasir(t)
	a := f.seed(t, "A-01", "Produk A", 1000, 5)

	kasir := service.NewKasirService(
		service.NewCatalogService(f.products),
		service.NewSaleService(f.sales, fixedClock),
		failingReceipts{err: errors.New("disk hiccup")},
		f.publisher,
	)

	_, err := kasir.AddToCart(context.Background(), a.ID)
	require.NoError(t, err)

	result, err := kasir.Checkout(context.Background(), "1000")

	require.NoError(t, err)
	require.NotNil(t, result.Sale)
	assert.NotEqual(t, uuid.Nil, result.Sale.ID)
	assert.Nil(t, result.Receipt)
	assert.Empty(t, result.Lines)
	require.Len(t, result.Products, 1)
	assert.Equal(t, 4, result.Products[0].Stock)

	assert.Equal(t, int64(1), f.countRows(t, &model.Sale{}))
	assert.Equal(t, 4, f.stockOf(t, a.ID))
	assert.Empty(t, kasir.Cart().Items)
	assert.Equal(t, 1, f.publisher.count())
}

func TestKasir_InsufficientPaymentLeavesEverything(t *testing.T) {
	f := setupKasir(t)
	a := f.seed(t, "A-01", "Produk A", 1000, 5)

	_, err := f.kasir.AddToCart(context.Background(), a.ID)
	require.NoError(t, err)

	_, err = f.kasir.Checkout(context.Background(), "999")

	assert.ErrorIs(t, err, service.ErrInsufficientPayment)
	assert.Equal(t, int64(1000), f.kasir.Cart().Total)
	assert.Equal(t, 5, f.stockOf(t, a.ID))
	assert.Zero(t, f.countRows(t, &model.Sale{}))
	assert.Zero(t, f.countRows(t, &model.SaleItem{}))
	assert.Zero(t, f.publisher.count())
}

func TestKasir_NonNumericPayment(t *testing.T) {
	f := setupKasir(t)
	a := f.seed(t, "A-01", "Produk A", 1000, 5)

	_, err := f.kasir.AddToCart(context.Background(), a.ID)
	require.NoError(t, err)

	_, err = f.kasir.Checkout(context.Background(), "abc")

	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Len(t, f.kasir.Cart().Items, 1)
	assert.Zero(t, f.countRows(t, &model.Sale{}))
}

func TestKasir_EmptyCheckout(t *testing.T) {
	f := setupKasir(t)

	_, err := f.kasir.Checkout(context.Background(), "1000")

	assert.ErrorIs(t, err, service.ErrEmptyCart)
	assert.Zero(t, f.countRows(t, &model.Sale{}))
}

func TestKasir_AddBeyondStock(t *testing.T) {
	f := setupKasir(t)
	a := f.seed(t, "A-01", "Produk A", 1000, 1)

	_, err := f.kasir.AddToCart(context.Background(), a.ID)
	require.NoError(t, err)

	view, err := f.kasir.AddToCart(context.Background(), a.ID)

	assert.ErrorIs(t, err, service.ErrInsufficientStock)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Qty)
}

func TestKasir_AddUnknownProduct(t *testing.T) {
	f := setupKasir(t)

	_, err := f.kasir.AddToCart(context.Background(), uuid.New())

	assert.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestKasir_PriceChangeKeepsQuotedPrice(t *testing.T) {
	f := setupKasir(t)
	a := f.seed(t, "A-01", "Produk A", 1000, 5)

	_, err := f.kasir.AddToCart(context.Background(), a.ID)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&model.Product{}).Where("id = ?", a.ID).Update("price", 1200).Error)

	view, err := f.kasir.AddToCart(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2200), view.Total)
	require.Len(t, view.Items, 2)

	result, err := f.kasir.Checkout(context.Background(), "2200")
	require.NoError(t, err)
	assert.Equal(t, int64(2200), result.Sale.Total)
	assert.Equal(t, int64(0), result.Sale.Kembalian)
	assert.Equal(t, 3, f.stockOf(t, a.ID))
}

func TestKasir_StockChangedBeforeCheckout(t *testing.T) {
	f := setupKasir(t)
	a := f.seed(t, "A-01", "Produk A", 1000, 2)

	_, err := f.kasir.AddToCart(context.Background(), a.ID)
	require.NoError(t, err)
	_, err = f.kasir.AddToCart(context.Background(), a.ID)
	require.NoError(t, err)

	// Terminal lain menjual satu unit
	require.NoError(t, f.db.Model(&model.Product{}).Where("id = ?", a.ID).Update("stock", 1).Error)

	_, err = f.kasir.Checkout(context.Background(), "5000")

	assert.ErrorIs(t, err, service.ErrInsufficientStock)
	assert.Equal(t, 1, f.stockOf(t, a.ID))
	assert.Zero(t, f.countRows(t, &model.Sale{}))
	assert.Zero(t, f.countRows(t, &model.SaleItem{}))
	assert.Equal(t, int64(2000), f.kasir.Cart().Total)
}

func TestKasir_ResetCart(t *testing.T) {
	f := setupKasir(t)
	a := f.seed(t, "A-01", "Produk A", 1000, 5)

	_, err := f.kasir.AddToCart(context.Background(), a.ID)
	require.NoError(t, err)

	f.kasir.ResetCart()

	assert.Empty(t, f.kasir.Cart().Items)
	assert.Equal(t, int64(0), f.kasir.Cart().Total)
}
