package app

import (
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/certscrape/internal/extract"
)

// writeCertificatePDF renders the records as a simple A4 list: bold title,
// issuer and date lines, and a clickable credential link when it is absolute.
func writeCertificatePDF(records []extract.Record, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate en dashes, middle dots and friends.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Licenses & certifications", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("Licenses & certifications"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, r := range records {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 5, tr(r.Name.Value), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		if r.Organization.Value != "" {
			pdf.MultiCell(0, 5, tr(r.Organization.Value), "", "L", false)
		}
		if r.IssueDate.Value != "" {
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(0, 5, tr(r.IssueDate.Value), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
		if link := strings.TrimSpace(r.Link.Value); link != "" {
			if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
				pdf.SetTextColor(10, 102, 194)
				pdf.WriteLinkString(5, "Show credential", link)
				pdf.SetTextColor(0, 0, 0)
				pdf.Ln(5)
			} else {
				pdf.MultiCell(0, 5, tr(link), "", "L", false)
			}
		}
		pdf.Ln(4)
	}

	return pdf.OutputFileAndClose(outPath)
}
