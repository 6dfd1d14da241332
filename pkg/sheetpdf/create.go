package sheetpdf

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/faixa/pkg/geometry"
)

// createSheetPDF builds a one-page PDF around a sheet raster.
// This function assumes inputs have been validated by the caller.
func createSheetPDF(sheet Sheet, imgW, imgH int, imageType string, config PageConfig) ([]byte, error) {
	pdf := newDocument(config.Portrait)
	pageW, pageH := pdf.GetPageSize()

	// Printable area inside the bleed on every side
	bleed := config.BleedMm * geometry.MMToPoints
	contentW := pageW - 2*bleed
	contentH := pageH - 2*bleed

	scale := min(contentW/float64(imgW), contentH/float64(imgH))
	drawW := float64(imgW) * scale
	drawH := float64(imgH) * scale

	// Anchored at the bleed offset from the bottom-left corner, so unused printable
	// space collects at the top and right edges.
	x := bleed
	y := pageH - bleed - drawH

	imageName := fmt.Sprintf("sheet%d", sheet.Index)
	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(sheet.Image))
	pdf.ImageOptions(imageName, x, y, drawW, drawH, false, opts, 0, "")

	drawCropMarks(pdf, bleed, config.CropMarks)

	if config.PageLabels {
		if err := drawLabelLayer(pdf, sheet.Cell, config.LayerName, config.LabelFont); err != nil {
			return nil, fmt.Errorf("failed to draw label for sheet %s: %w", sheet.ID(), err)
		}
	}

	setMetadata(pdf, sheet, config)

	// Generate final PDF
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// newDocument starts a point-based A4 document with one page in the given orientation.
func newDocument(portrait bool) *fpdf.Fpdf {
	orientation := "L"
	if portrait {
		orientation = "P"
	}
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	w, h := PageSize(true)
	pdf.AddPageFormat(orientation, fpdf.SizeType{Wd: w, Ht: h})
	return pdf
}

func setMetadata(pdf *fpdf.Fpdf, sheet Sheet, config PageConfig) {
	meta := config.Metadata
	keywords := append([]string{}, meta.Keywords...)
	keywords = append(keywords, fmt.Sprintf("folha %d", sheet.Index))
	if sheet.Marker != "" {
		keywords = append(keywords, sheet.Marker)
	}

	pdf.SetTitle(SheetTitle(sheet.Index), true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetKeywords(strings.Join(keywords, " "), true)
	pdf.SetCreator(meta.Creator, true)
	if meta.Producer != "" {
		pdf.SetProducer(meta.Producer, true)
	}
	pdf.SetCreationDate(config.now())
}

// SheetTitle is the document title of a sheet PDF.
func SheetTitle(index int) string {
	return fmt.Sprintf("Folha %d - Faixa", index)
}

// detectImage reads the pixel size and type (PNG, JPEG, ...) from encoded image data.
func detectImage(data []byte) (w, h int, imageType string, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", fmt.Errorf("failed to decode image config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, "", fmt.Errorf("image has no pixels (%dx%d)", cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, strings.ToUpper(format), nil
}
