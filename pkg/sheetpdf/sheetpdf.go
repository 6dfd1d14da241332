// Package sheetpdf turns sheet rasters into print-ready single-page A4 PDFs.
//
// Every page carries the sheet raster anchored at the bleed offset from the bottom-left
// corner, crop marks at the four bleed corners, document metadata naming the sheet and,
// optionally, an L{row}C{col} label box on its own optional-content layer so it can be
// hidden when printing.
//
// Key Features:
//
// - Serialize one sheet raster (PNG or JPEG bytes) into a one-page PDF
// - Build the assembly guide page with a numbered miniature of the grid
// - Combine all sheet PDFs into a single document
// - Inspect produced PDFs for their title and layers
//
// Main Functions:
//
// - SerializePage: sheet raster -> named PDF page
// - AssemblyGuide: grid description -> guia_de_montagem.pdf
// - Combine: sheet PDFs -> todas_as_folhas.pdf
// - Inspect: PDF bytes -> title and layer names
package sheetpdf

import (
	"errors"
	"fmt"
	"math"

	"github.com/gardar/faixa/pkg/geometry"
)

var (
	ErrInvalidBleed = errors.New("invalid bleed")
	ErrEmptyImage   = errors.New("sheet image is empty")
)

// Sheet is one encoded tile ready to be placed on a page.
type Sheet struct {
	Cell   geometry.Cell
	Index  int    // 1-based, row-major
	Image  []byte // PNG or JPEG
	Marker string // optional traceability code
}

// ID returns the L{row}C{col} identifier of the sheet.
func (s Sheet) ID() string { return s.Cell.ID() }

// Page is a serialized PDF document and the name it is stored under.
type Page struct {
	Name  string
	Data  []byte
	Cell  geometry.Cell
	Index int // 0 for pages that are not sheets
}

// PageName returns the archive file name for a sheet.
func PageName(naming Naming, c geometry.Cell, index int) string {
	if naming == NamingNumeric {
		return fmt.Sprintf("folha_%02d.pdf", index)
	}
	return fmt.Sprintf("folha_%s.pdf", c.ID())
}

// PageSize returns the A4 page size in points, axes swapped for landscape.
func PageSize(portrait bool) (w, h float64) {
	w = geometry.A4WidthMM * geometry.MMToPoints
	h = geometry.A4HeightMM * geometry.MMToPoints
	if !portrait {
		w, h = h, w
	}
	return w, h
}

// ValidateBleed rejects negative bleeds and bleeds that leave no printable area.
func ValidateBleed(bleedMm float64) error {
	if math.IsNaN(bleedMm) || math.IsInf(bleedMm, 0) || bleedMm < 0 {
		return fmt.Errorf("%w: %gmm", ErrInvalidBleed, bleedMm)
	}
	if 2*bleedMm >= geometry.A4WidthMM {
		return fmt.Errorf("%w: %gmm leaves no printable area", ErrInvalidBleed, bleedMm)
	}
	return nil
}

// SerializePage is a high-level function for wrapping one sheet raster into a PDF page.
// It performs validation before building the document. Errors name the sheet.
func SerializePage(sheet Sheet, config PageConfig) (Page, error) {
	if err := ValidateBleed(config.BleedMm); err != nil {
		return Page{}, err
	}
	if len(sheet.Image) == 0 {
		return Page{}, fmt.Errorf("sheet %s: %w", sheet.ID(), ErrEmptyImage)
	}
	if sheet.Index < 1 {
		return Page{}, fmt.Errorf("sheet %s: index must be at least 1, got %d", sheet.ID(), sheet.Index)
	}

	imgW, imgH, imageType, err := detectImage(sheet.Image)
	if err != nil {
		return Page{}, fmt.Errorf("sheet %s has invalid image: %w", sheet.ID(), err)
	}
	config.logger().Trace("serializing sheet", "sheet", sheet.ID(), "type", imageType, "width_px", imgW, "height_px", imgH)

	data, err := createSheetPDF(sheet, imgW, imgH, imageType, config)
	if err != nil {
		return Page{}, fmt.Errorf("error creating PDF for sheet %s: %w", sheet.ID(), err)
	}
	return Page{
		Name:  PageName(config.Naming, sheet.Cell, sheet.Index),
		Data:  data,
		Cell:  sheet.Cell,
		Index: sheet.Index,
	}, nil
}
