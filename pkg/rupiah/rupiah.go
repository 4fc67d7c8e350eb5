// Package rupiah formats integer Rupiah amounts the way receipts print them.
package rupiah

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Format returns n with Indonesian digit grouping, e.g. 1250000 -> "1.250.000".
func Format(n int64) string {
	return printer.Sprintf("%d", n)
}

// WithSymbol prefixes the grouped amount with "Rp ".
func WithSymbol(n int64) string {
	return "Rp " + Format(n)
}
