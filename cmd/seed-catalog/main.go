package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"kasir-pos/internal/config"
	"kasir-pos/internal/model"
	"kasir-pos/internal/repository"
	"kasir-pos/pkg/database"
	"kasir-pos/pkg/validator"

	"gopkg.in/yaml.v3"
)

// catalogFile is the layout of the seed file, e.g.
//
//	products:
//	  - sku: KS-01
//	    name: Kopi Susu
//	    unit: cup
//	    price: 15000
//	    stock: 12
type catalogFile struct {
	Products []model.Product `yaml:"products"`
}

func loadCatalog(path string) ([]model.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for i := range file.Products {
		if err := validator.Check(file.Products[i]); err != nil {
			return nil, fmt.Errorf("product #%d (%s): %w", i+1, file.Products[i].SKU, err)
		}
	}
	return file.Products, nil
}

// seedCatalog inserts or updates every product by SKU.
func seedCatalog(ctx context.Context, repo repository.ProductRepository, products []model.Product) error {
	for i := range products {
		p := products[i]
		p.CreatedBy = "seed"
		p.UpdatedBy = "seed"
		if err := repo.UpsertBySKU(ctx, &p); err != nil {
			return fmt.Errorf("upsert %s: %w", p.SKU, err)
		}
		log.Printf("✅ %s", p.Label())
	}
	return nil
}

func main() {
	file := flag.String("file", "catalog.yaml", "YAML file with the product catalog")
	flag.Parse()

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// 2. Baca katalog
	products, err := loadCatalog(*file)
	if err != nil {
		log.Fatalf("❌ Failed to read catalog: %v", err)
	}

	// 3. Setup Database
	db := database.ConnectDB(cfg.Database)
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("❌ Failed to migrate database: %v", err)
	}

	// 4. Upsert
	if err := seedCatalog(context.Background(), repository.NewProductRepo(db), products); err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Printf("Seeded %d products from %s", len(products), *file)
}
