package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kasir-pos/internal/cart"
	"kasir-pos/internal/model"
	"kasir-pos/internal/repository"
	"kasir-pos/pkg/rupiah"
)

type SaleService interface {
	Checkout(ctx context.Context, c *cart.Cart, bayarRaw string) (*model.Sale, error)
}

type saleService struct {
	saleRepo repository.SaleRepository
	now      func() time.Time
}

func NewSaleService(sRepo repository.SaleRepository, now func() time.Time) SaleService {
	if now == nil {
		now = time.Now
	}
	return &saleService{saleRepo: sRepo, now: now}
}

// ParseBayar parses the tendered amount typed by the cashier.
func ParseBayar(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: masukkan uang bayar", ErrInvalidInput)
	}

	bayar, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: uang bayar harus berupa angka", ErrInvalidInput)
	}
	if bayar < 0 {
		return 0, fmt.Errorf("%w: uang bayar tidak boleh negatif", ErrInvalidInput)
	}
	return bayar, nil
}

// Checkout records the cart as one sale. Nothing is written unless the
// payment covers the cart total; the cart itself is never modified here.
func (s *saleService) Checkout(ctx context.Context, c *cart.Cart, bayarRaw string) (*model.Sale, error) {
	// 1. Validasi Input
	bayar, err := ParseBayar(bayarRaw)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	// 2. Cek uang bayar
	total := c.Total()
	if bayar < total {
		return nil, fmt.Errorf("%w: total %s, bayar %s", ErrInsufficientPayment, rupiah.WithSymbol(total), rupiah.WithSymbol(bayar))
	}

	// 3. Susun header + item dari snapshot keranjang
	entries := c.Entries()
	sale := &model.Sale{
		Total:     total,
		Bayar:     bayar,
		Kembalian: bayar - total,
		Date:      s.now(),
		Items:     make([]model.SaleItem, 0, len(entries)),
	}
	for _, e := range entries {
		sale.Items = append(sale.Items, model.SaleItem{
			ProductID:   e.ProductID,
			ProductName: e.Name,
			Price:       e.Price,
			Qty:         e.Qty,
		})
	}

	// 4. Simpan (atomic)
	if err := s.saleRepo.RecordSale(ctx, sale); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %v", ErrInsufficientStock, err)
		}
		return nil, fmt.Errorf("record sale: %w", err)
	}

	return sale, nil
}
