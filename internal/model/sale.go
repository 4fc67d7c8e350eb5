package model

import (
	"time"

	"github.com/google/uuid"
)

// Sale is the persisted header of one completed checkout. Immutable once written.
type Sale struct {
	BaseModel
	Total     int64      `gorm:"not null" json:"total"`
	Bayar     int64      `gorm:"not null" json:"bayar"`     // uang yang diterima
	Kembalian int64      `gorm:"not null" json:"kembalian"` // bayar - total
	Date      time.Time  `gorm:"not null;index" json:"date"`
	Items     []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

func (Sale) TableName() string {
	return "sales"
}

// SaleItem menyimpan snapshot nama & harga produk saat transaksi,
// bukan relasi hidup ke tabel products.
type SaleItem struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Price       int64     `gorm:"not null" json:"price"`
	Qty         int       `gorm:"not null" json:"qty"`
}

func (SaleItem) TableName() string {
	return "sales_items"
}

// Subtotal is price * qty for the line.
func (i SaleItem) Subtotal() int64 {
	return i.Price * int64(i.Qty)
}
