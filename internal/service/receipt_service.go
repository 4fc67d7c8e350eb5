package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kasir-pos/internal/metrics"
	"kasir-pos/internal/receipt"
	"kasir-pos/internal/repository"

	"github.com/google/uuid"
)

type ReceiptService interface {
	Render(ctx context.Context, saleID uuid.UUID) (*receipt.Receipt, error)
	ExportPDF(ctx context.Context, saleID uuid.UUID, dir, fileName string) (string, error)
}

type receiptService struct {
	saleRepo  repository.SaleRepository
	opener    receipt.DocumentOpener
	outputDir string
	loc       *time.Location
}

func NewReceiptService(sRepo repository.SaleRepository, opener receipt.DocumentOpener, outputDir string, loc *time.Location) ReceiptService {
	if opener == nil {
		opener = receipt.NopOpener{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &receiptService{
		saleRepo:  sRepo,
		opener:    opener,
		outputDir: outputDir,
		loc:       loc,
	}
}

func (s *receiptService) Render(ctx context.Context, saleID uuid.UUID) (*receipt.Receipt, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load sale: %w", err)
	}

	items, err := s.saleRepo.FindItems(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}

	sale.Date = sale.Date.In(s.loc)
	return receipt.New(*sale, items), nil
}

// ExportPDF writes the receipt to dir/fileName and then tries to open it.
// Empty dir falls back to OUTPUT_DIR, empty fileName to struk_<id>.pdf.
func (s *receiptService) ExportPDF(ctx context.Context, saleID uuid.UUID, dir, fileName string) (string, error) {
	r, err := s.Render(ctx, saleID)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(dir) == "" {
		dir = s.outputDir
	}
	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		fileName = r.DefaultFileName()
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		fileName += ".pdf"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		metrics.ReceiptExports.WithLabelValues("error").Inc()
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, fileName)
	if err := receipt.WritePDF(r, path); err != nil {
		metrics.ReceiptExports.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.ReceiptExports.WithLabelValues("ok").Inc()

	// Buka PDF otomatis; gagal dibuka tidak membatalkan export
	if err := s.opener.Open(path); err != nil {
		log.Printf("Gagal membuka PDF %s: %v", path, err)
	}

	return path, nil
}
