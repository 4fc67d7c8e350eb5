package service_test

import (
	"context"
	"sync"

	"kasir-pos/internal/model"
	"kasir-pos/internal/receipt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) FindAvailable(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	args := m.Called(ctx, sku)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *MockProductRepository) UpsertBySKU(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) error {
	return m.Called(tx, id, qty).Error(0)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) RecordSale(ctx context.Context, sale *model.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	args := m.Called(ctx, id)
	sale, _ := args.Get(0).(*model.Sale)
	return sale, args.Error(1)
}

func (m *MockSaleRepository) FindItems(ctx context.Context, saleID uuid.UUID) ([]model.SaleItem, error) {
	args := m.Called(ctx, saleID)
	items, _ := args.Get(0).([]model.SaleItem)
	return items, args.Error(1)
}

type MockOpener struct {
	mock.Mock
}

func (m *MockOpener) Open(path string) error {
	return m.Called(path).Error(0)
}

// recordingPublisher captures published payloads.
type recordingPublisher struct {
	mu       sync.Mutex
	payloads []interface{}
}

func (p *recordingPublisher) Publish(payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func (p *recordingPublisher) last() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.payloads) == 0 {
		return nil
	}
	payload, _ := p.payloads[len(p.payloads)-1].(map[string]interface{})
	return payload
}

// failingReceipts is a ReceiptService whose reads always fail.
type failingReceipts struct {
	err error
}

func (f failingReceipts) Render(context.Context, uuid.UUID) (*receipt.Receipt, error) {
	return nil, f.err
}

func (f failingReceipts) ExportPDF(context.Context, uuid.UUID, string, string) (string, error) {
	return "", f.err
}
