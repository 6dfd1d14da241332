package sheetpdf

import (
	"time"

	"github.com/hashicorp/go-hclog"
)

// Naming selects how sheet PDFs are named inside the archive.
type Naming string

const (
	NamingGrid    Naming = "grid"    // folha_L1C2.pdf
	NamingNumeric Naming = "numeric" // folha_02.pdf
)

// PageConfig holds user options for serializing sheet pages
type PageConfig struct {
	Portrait   bool    // Page orientation
	BleedMm    float64 // Bleed around the printable area on every side
	PageLabels bool    // Draw the L{row}C{col} label box in the top-right corner
	LayerName  string  // Name of the optional-content layer holding the label box
	Naming     Naming
	Metadata   Metadata
	LabelFont  FontConfig
	CropMarks  CropMarkConfig
	Now        func() time.Time // Creation date source (nil = time.Now)
	Logger     hclog.Logger     // nil = no logging
}

// Metadata are the document information strings written into every sheet.
type Metadata struct {
	Author   string
	Subject  string
	Creator  string
	Producer string
	Keywords []string // base keywords; "folha N" and any marker code are appended
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() PageConfig {
	return PageConfig{
		Portrait:   false,
		BleedMm:    3,
		PageLabels: true,
		LayerName:  "Rótulo da folha",
		Naming:     NamingGrid,
		Metadata:   DefaultMetadata,
		LabelFont:  DefaultLabelFont,
		CropMarks:  DefaultCropMarks,
	}
}

// DefaultMetadata identifies the tool to print shops.
var DefaultMetadata = Metadata{
	Author:   "Calculadora de Faixas",
	Subject:  "Parte de faixa para impressão",
	Creator:  "Calculadora de Faixas Web App",
	Producer: "faixa",
	Keywords: []string{"faixa", "impressão", "A4"},
}

// FontConfig contains font settings for text drawn with the PDF core fonts
type FontConfig struct {
	Name         string  // Font name (e.g., "Helvetica")
	Style        string  // Font style ("", "B", "I", "BI")
	Size         float64 // Font size in points
	AscentRatio  float64 // Ascender height relative to size
	DescentRatio float64 // Descender depth relative to size
}

// Height returns the full glyph box height at the configured size.
func (fc FontConfig) Height() float64 {
	return fc.Size * (fc.AscentRatio + fc.DescentRatio)
}

// DefaultLabelFont is Helvetica-Bold, which every PDF reader ships.
var DefaultLabelFont = FontConfig{
	Name:         "Helvetica",
	Style:        "B",
	Size:         12,
	AscentRatio:  0.718,
	DescentRatio: 0.207,
}

// CropMarkConfig controls the trim marks drawn at the bleed corners.
type CropMarkConfig struct {
	Length float64 // pt
	Width  float64 // pt
}

var DefaultCropMarks = CropMarkConfig{Length: 10, Width: 0.5}

func (c PageConfig) logger() hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}
	return c.Logger
}

func (c PageConfig) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
