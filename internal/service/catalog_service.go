package service

import (
	"context"
	"errors"
	"fmt"

	"kasir-pos/internal/model"
	"kasir-pos/internal/repository"

	"github.com/google/uuid"
)

type CatalogService interface {
	ListAvailable(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(pRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: pRepo}
}

// ListAvailable returns products that can still be sold (stock > 0), by name.
func (s *catalogService) ListAvailable(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.FindAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available products: %w", err)
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}
