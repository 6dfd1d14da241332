package sheetpdf

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// CombinedFileName is the archive name of the all-sheets document.
const CombinedFileName = "todas_as_folhas.pdf"

// Combine imports the first page of every sheet PDF, in order, into one document.
func Combine(pages []Page, portrait bool) (data []byte, err error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to combine")
	}

	// The importer panics on malformed input; surface it as an error
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("failed to import sheet PDF: %v", r)
		}
	}()

	orientation := "L"
	if portrait {
		orientation = "P"
	}
	w, h := PageSize(true)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	importer := gofpdi.NewImporter()

	for _, page := range pages {
		if len(page.Data) == 0 {
			return nil, fmt.Errorf("page %s is empty", page.Name)
		}
		pdf.AddPageFormat(orientation, fpdf.SizeType{Wd: w, Ht: h})
		pageW, pageH := pdf.GetPageSize()

		rs := io.ReadSeeker(bytes.NewReader(page.Data))
		tpl := importer.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
		importer.UseImportedTemplate(pdf, tpl, 0, 0, pageW, pageH)
	}

	pdf.SetTitle("Todas as folhas - Faixa", true)
	pdf.SetCreator(DefaultMetadata.Creator, true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate combined PDF: %w", err)
	}
	return buf.Bytes(), nil
}
