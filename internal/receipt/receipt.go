package receipt

import (
	"fmt"

	"kasir-pos/internal/model"
	"kasir-pos/pkg/rupiah"
)

const (
	Title      = "STRUK TRANSAKSI"
	Separator  = "--------------------"
	DateLayout = "2006-01-02 15:04:05"
)

// Receipt is the read-back view of one sale: header plus line items in
// insertion order.
type Receipt struct {
	Sale  model.Sale       `json:"sale"`
	Items []model.SaleItem `json:"items"`
}

func New(sale model.Sale, items []model.SaleItem) *Receipt {
	sale.Items = nil
	return &Receipt{Sale: sale, Items: items}
}

// ItemLine formats "<name> x<qty> = Rp <amount>".
func ItemLine(item model.SaleItem) string {
	return fmt.Sprintf("%s x%d = %s", item.ProductName, item.Qty, rupiah.WithSymbol(item.Subtotal()))
}

// Lines renders the receipt exactly as shown on screen and printed.
func (r *Receipt) Lines() []string {
	lines := make([]string, 0, len(r.Items)+7)
	lines = append(lines, Title, r.Sale.Date.Format(DateLayout), Separator)
	for _, item := range r.Items {
		lines = append(lines, ItemLine(item))
	}
	lines = append(lines,
		Separator,
		"Total   : "+rupiah.WithSymbol(r.Sale.Total),
		"Bayar   : "+rupiah.WithSymbol(r.Sale.Bayar),
		"Kembali : "+rupiah.WithSymbol(r.Sale.Kembalian),
	)
	return lines
}

// DefaultFileName is the suggested export name, struk_<sale id>.pdf.
func (r *Receipt) DefaultFileName() string {
	return fmt.Sprintf("struk_%s.pdf", r.Sale.ID)
}
