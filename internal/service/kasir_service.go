package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"kasir-pos/internal/cart"
	"kasir-pos/internal/metrics"
	"kasir-pos/internal/model"
	"kasir-pos/internal/receipt"
	"kasir-pos/pkg/rupiah"

	"github.com/google/uuid"
)

// EventPublisher pushes a JSON-able payload to connected displays.
type EventPublisher interface {
	Publish(payload interface{})
}

type CartView struct {
	Items []cart.Entry `json:"items"`
	Total int64        `json:"total"`
}

type CheckoutResult struct {
	Sale     *model.Sale      `json:"sale"`
	Receipt  *receipt.Receipt `json:"receipt"`
	Lines    []string         `json:"lines"`
	Products []model.Product  `json:"products"`
}

// KasirService is the cashier session: it owns the cart and dispatches
// screen actions to the catalog, sale and receipt services.
type KasirService interface {
	Products(ctx context.Context) ([]model.Product, error)
	AddToCart(ctx context.Context, productID uuid.UUID) (CartView, error)
	Cart() CartView
	ResetCart()
	Checkout(ctx context.Context, bayarRaw string) (*CheckoutResult, error)
}

type kasirService struct {
	catalog   CatalogService
	sales     SaleService
	receipts  ReceiptService
	publisher EventPublisher

	mu   sync.Mutex
	cart *cart.Cart
}

func NewKasirService(catalog CatalogService, sales SaleService, receipts ReceiptService, publisher EventPublisher) KasirService {
	return &kasirService{
		catalog:   catalog,
		sales:     sales,
		receipts:  receipts,
		publisher: publisher,
		cart:      cart.New(),
	}
}

func (s *kasirService) Products(ctx context.Context) ([]model.Product, error) {
	return s.catalog.ListAvailable(ctx)
}

// AddToCart adds one unit, pricing it from the catalog as it is right now.
func (s *kasirService) AddToCart(ctx context.Context, productID uuid.UUID) (CartView, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return CartView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.QtyOf(product.ID) >= product.Stock {
		return s.viewLocked(), fmt.Errorf("%w: %s tersisa %d", ErrInsufficientStock, product.Name, product.Stock)
	}
	if err := s.cart.Add(*product, 1); err != nil {
		return s.viewLocked(), err
	}
	return s.viewLocked(), nil
}

func (s *kasirService) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *kasirService) ResetCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// Checkout records the cart as a sale. Once the sale is committed the
// result always carries it; a failed receipt render or catalog reload is
// logged and leaves Receipt/Lines or Products empty.
func (s *kasirService) Checkout(ctx context.Context, bayarRaw string) (*CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. Simpan transaksi
	sale, err := s.sales.Checkout(ctx, s.cart, bayarRaw)
	if err != nil {
		metrics.CheckoutFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}
	metrics.ObserveSale(sale.Total)

	// 2. Reset transaksi
	s.cart.Clear()

	// 3. Broadcast stok terbaru ke display lain
	s.publishSale(ctx, sale)

	result := &CheckoutResult{Sale: sale}

	// 4. Struk dibaca ulang dari database
	r, err := s.receipts.Render(ctx, sale.ID)
	if err != nil {
		log.Printf("Transaksi %s tersimpan, tapi struk gagal dibuat: %v", sale.ID, err)
	} else {
		result.Receipt = r
		result.Lines = r.Lines()
	}

	// 5. Muat ulang produk
	products, err := s.catalog.ListAvailable(ctx)
	if err != nil {
		log.Printf("Transaksi %s tersimpan, tapi daftar produk gagal dimuat: %v", sale.ID, err)
	} else {
		result.Products = products
	}

	return result, nil
}

func (s *kasirService) viewLocked() CartView {
	return CartView{Items: s.cart.Entries(), Total: s.cart.Total()}
}

func (s *kasirService) publishSale(ctx context.Context, sale *model.Sale) {
	if s.publisher == nil {
		return
	}

	items := make([]map[string]interface{}, 0, len(sale.Items))
	for _, item := range sale.Items {
		entry := map[string]interface{}{
			"product_id":   item.ProductID,
			"product_name": item.ProductName,
			"qty":          item.Qty,
		}
		// Dibaca per ID: produk yang baru habis tidak ada di ListAvailable
		if product, err := s.catalog.GetProduct(ctx, item.ProductID); err == nil {
			entry["new_stock"] = product.Stock
		} else {
			log.Printf("Gagal membaca stok %s setelah transaksi %s: %v", item.ProductName, sale.ID, err)
		}
		items = append(items, entry)
	}

	s.publisher.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "sale_recorded",
		"sale": map[string]interface{}{
			"id":        sale.ID,
			"total":     sale.Total,
			"bayar":     sale.Bayar,
			"kembalian": sale.Kembalian,
		},
		"items":   items,
		"message": fmt.Sprintf("Transaksi %s tersimpan", rupiah.WithSymbol(sale.Total)),
	})
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInsufficientPayment):
		return "insufficient_payment"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "internal"
	}
}
