package worksheet

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/abhisek/wordmath/internal/grading"
)

// PDFConfig controls page layout.
type PDFConfig struct {
	PageSize   string
	MarginsMM  float64
	FontFamily string
}

// DefaultPDFConfig returns an A4 layout using the Helvetica core font.
func DefaultPDFConfig() PDFConfig {
	return PDFConfig{
		PageSize:   "A4",
		MarginsMM:  20,
		FontFamily: "Helvetica",
	}
}

// WritePDF renders ws to w: the problems first, then an answer key on a
// new page.
func WritePDF(w io.Writer, ws *Worksheet, cfg PDFConfig) error {
	pdf := fpdf.New("P", "mm", cfg.PageSize, "")
	pdf.SetMargins(cfg.MarginsMM, cfg.MarginsMM, cfg.MarginsMM)
	pdf.SetAutoPageBreak(true, cfg.MarginsMM)

	// Core fonts are cp1252; problem text is UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	title := ws.Title()
	pdf.SetTitle(title, true)
	pdf.SetCreator("wordmath", true)

	pdf.AddPage()
	pdf.SetFont(cfg.FontFamily, "B", 20)
	pdf.CellFormat(0, 15, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont(cfg.FontFamily, "", 11)
	pdf.CellFormat(0, 8, "Name: ____________________    Date: ____________", "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont(cfg.FontFamily, "", 13)
	for i, p := range ws.Problems {
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", i+1, p.Text)), "", "L", false)
		pdf.Ln(2)
		pdf.MultiCell(0, 7, "Answer: ______________", "", "L", false)
		pdf.Ln(6)
	}

	pdf.AddPage()
	pdf.SetFont(cfg.FontFamily, "B", 18)
	pdf.CellFormat(0, 15, tr(title+" - Answer Key"), "", 1, "C", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont(cfg.FontFamily, "", 13)
	for i, p := range ws.Problems {
		pdf.MultiCell(0, 8, fmt.Sprintf("%d. %s", i+1, grading.FormatNumber(p.Answer)), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render worksheet pdf: %w", err)
	}
	return nil
}
