package receipt

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// A6 portrait, in millimetres.
var pageSize = fpdf.SizeType{Wd: 105, Ht: 148}

// WritePDF renders r onto a small A6 page and writes it to path.
func WritePDF(r *Receipt, path string) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           pageSize,
	})
	pdf.SetTitle(Title, true)
	pdf.SetCreator("kasir-pos", true)
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	// core fonts are cp1252; translate product names that carry accents
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	lines := r.Lines()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, tr(lines[0]), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range lines[1:] {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write receipt pdf: %w", err)
	}
	return nil
}
