package server

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/altenburg/minierp/internal/domain/models"
)

// renderDeliveryNote produces the Lieferschein PDF: a title, one table row
// per product and the Altenburg footer.
func renderDeliveryNote(products []models.Product) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Lieferschein / Warenbestand", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colWidths := []float64{90, 45, 45}
	headers := []string{"Produktname", "Menge (Stk.)", "Preis (EUR)"}

	pdf.SetFont("Helvetica", "B", 11)
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, p := range products {
		pdf.CellFormat(colWidths[0], 8, p.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", p.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%.2f EUR", p.Price), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Vielen Dank fuer Ihre Arbeit. System generiert in Altenburg.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render delivery note: %w", err)
	}
	return buf.Bytes(), nil
}
