// Package cart holds the in-memory basket of the active cashier session.
//
// A Cart is an ordered list of entries, each a snapshot of the product
// (id, name, price) taken when it was added plus a quantity. The total is
// always the sum of the prices seen at add time, so a later price change in
// the catalog never alters what the customer was quoted.
package cart

import (
	"errors"

	"kasir-pos/internal/model"

	"github.com/google/uuid"
)

var ErrInvalidQty = errors.New("quantity must be greater than zero")

type Entry struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Qty       int       `json:"qty"`
}

func (e Entry) Subtotal() int64 {
	return e.Price * int64(e.Qty)
}

// Cart is not safe for concurrent use; the owning session serializes access.
type Cart struct {
	entries []Entry
}

func New() *Cart {
	return &Cart{}
}

// Add puts qty units of p into the cart. Units of the same product at the
// same price merge into one entry; a different price starts a new entry.
func (c *Cart) Add(p model.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQty
	}

	for i := range c.entries {
		if c.entries[i].ProductID == p.ID && c.entries[i].Price == p.Price {
			c.entries[i].Qty += qty
			return nil
		}
	}

	c.entries = append(c.entries, Entry{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Qty:       qty,
	})
	return nil
}

// Entries returns a copy in first-add order.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Cart) Total() int64 {
	var total int64
	for _, e := range c.entries {
		total += e.Subtotal()
	}
	return total
}

// QtyOf sums the quantity of a product across all its entries.
func (c *Cart) QtyOf(productID uuid.UUID) int {
	qty := 0
	for _, e := range c.entries {
		if e.ProductID == productID {
			qty += e.Qty
		}
	}
	return qty
}

func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

func (c *Cart) Clear() {
	c.entries = nil
}
