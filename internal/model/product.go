package model

import (
	"fmt"

	"kasir-pos/pkg/rupiah"
)

type Product struct {
	BaseModel
	SKU   string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" yaml:"sku" validate:"required"`
	Name  string `gorm:"type:varchar(255);not null;index" json:"name" yaml:"name" validate:"required"`
	Stock int    `gorm:"default:0;not null" json:"stock" yaml:"stock" validate:"gte=0"`
	Unit  string `gorm:"type:varchar(20)" json:"unit" yaml:"unit"`
	Price int64  `gorm:"default:0;not null" json:"price" yaml:"price" validate:"gte=0"`
}

// Label is the text shown on the cashier's product button.
func (p *Product) Label() string {
	return fmt.Sprintf("%s | %s | Stok %d", p.Name, rupiah.WithSymbol(p.Price), p.Stock)
}
