// Package geometry converts banner, paper and margin dimensions into a grid of printable sheets.
//
// All functions in this package are pure: they take physical sizes in centimetres (margins in
// millimetres, as the user enters them) and return derived values without side effects.
//
// Key Types:
//
// - Banner: the target print size in cm
// - Paper: one sheet (A4) in a given orientation
// - Grid: the derived column/row counts and coverage efficiency
// - Cell: one grid position, with its 1-based index and L{row}C{col} identifier
// - PixelLayout: the sheet grid expressed in print pixels for a given DPI
//
// Main Functions:
//
// - ComputeGrid: banner + paper + margin -> Grid
// - BannerFromSheets: the inverse, sheet counts -> banner size
// - NewPixelLayout: paper + margin + DPI -> pixel stride and clamped source rectangles
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Physical constants.
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0

	A4LandscapeWidthCm  = 29.7
	A4LandscapeHeightCm = 21.0
	A4PortraitWidthCm   = 21.0
	A4PortraitHeightCm  = 29.7

	MMToCM     = 0.1
	MMToPoints = 2.83465 // 1mm in PDF points
	CMPerInch  = 2.54
)

var (
	ErrInvalidBanner      = errors.New("banner dimensions must be positive")
	ErrInvalidMargin      = errors.New("invalid sheet margin")
	ErrInvalidSheetCount  = errors.New("sheet counts must be at least 1")
	ErrInvalidDPI         = errors.New("dpi must be positive")
	ErrInvalidPixelLayout = errors.New("margin leaves no pixels per sheet")
)

// Banner is the physical size of the print, in cm.
type Banner struct {
	WidthCm  float64 `yaml:"width_cm" json:"width_cm"`
	HeightCm float64 `yaml:"height_cm" json:"height_cm"`
}

// Area returns the banner area in cm².
func (b Banner) Area() float64 { return b.WidthCm * b.HeightCm }

// Validate rejects zero, negative, NaN and infinite dimensions.
func (b Banner) Validate() error {
	if !positiveFinite(b.WidthCm) || !positiveFinite(b.HeightCm) {
		return fmt.Errorf("%w: got %gcm x %gcm", ErrInvalidBanner, b.WidthCm, b.HeightCm)
	}
	return nil
}

// Paper is a single sheet. Exactly one orientation is active at a time.
type Paper struct {
	WidthCm  float64
	HeightCm float64
	Portrait bool
}

// A4 returns an A4 sheet in the requested orientation.
func A4(portrait bool) Paper {
	if portrait {
		return Paper{WidthCm: A4PortraitWidthCm, HeightCm: A4PortraitHeightCm, Portrait: true}
	}
	return Paper{WidthCm: A4LandscapeWidthCm, HeightCm: A4LandscapeHeightCm}
}

// Area returns the sheet area in cm².
func (p Paper) Area() float64 { return p.WidthCm * p.HeightCm }

// OrientationName returns the Portuguese orientation name used on printed material.
func (p Paper) OrientationName() string {
	if p.Portrait {
		return "retrato"
	}
	return "paisagem"
}

// Description returns e.g. "29.7cm x 21cm (paisagem)".
func (p Paper) Description() string {
	return fmt.Sprintf("%scm x %scm (%s)", FormatCm(p.WidthCm), FormatCm(p.HeightCm), p.OrientationName())
}

// Grid is the sheet partition of a banner. It is always derived, never stored.
type Grid struct {
	Columns           int     `json:"columns"`
	Rows              int     `json:"rows"`
	Total             int     `json:"total"`
	EffectiveWidthCm  float64 `json:"effective_width_cm"`
	EffectiveHeightCm float64 `json:"effective_height_cm"`
	EfficiencyPercent int     `json:"efficiency_percent"`
}

// Distribution returns "C x R", the columns-by-rows summary shown to users.
func (g Grid) Distribution() string {
	return fmt.Sprintf("%d x %d", g.Columns, g.Rows)
}

// ValidateMargin checks that a margin in mm leaves a positive effective sheet size.
func ValidateMargin(paper Paper, marginMm float64) error {
	if math.IsNaN(marginMm) || math.IsInf(marginMm, 0) || marginMm < 0 {
		return fmt.Errorf("%w: %gmm", ErrInvalidMargin, marginMm)
	}
	marginCm := marginMm * MMToCM
	if paper.WidthCm-marginCm <= 0 || paper.HeightCm-marginCm <= 0 {
		return fmt.Errorf("%w: %gmm is not smaller than the %s sheet", ErrInvalidMargin, marginMm, paper.Description())
	}
	return nil
}

// ComputeGrid partitions the banner into sheets. Sheets overlap by marginMm, so each one
// advances by paper size minus margin. Counts use ceiling division: the grid always covers
// the banner, never less.
func ComputeGrid(banner Banner, paper Paper, marginMm float64) (Grid, error) {
	if err := banner.Validate(); err != nil {
		return Grid{}, err
	}
	if err := ValidateMargin(paper, marginMm); err != nil {
		return Grid{}, err
	}

	marginCm := marginMm * MMToCM
	effW := paper.WidthCm - marginCm
	effH := paper.HeightCm - marginCm

	cols := ceilDiv(banner.WidthCm, effW)
	rows := ceilDiv(banner.HeightCm, effH)
	total := cols * rows

	efficiency := banner.Area() / (float64(total) * paper.Area()) * 100

	return Grid{
		Columns:           cols,
		Rows:              rows,
		Total:             total,
		EffectiveWidthCm:  effW,
		EffectiveHeightCm: effH,
		EfficiencyPercent: int(math.Round(efficiency)),
	}, nil
}

// BannerFromSheets is the sheet-count mode: given how many sheets the user wants across and
// down, it returns the banner size they cover, rounded to one decimal.
func BannerFromSheets(columns, rows int, paper Paper, marginMm float64) (Banner, error) {
	if columns < 1 || rows < 1 {
		return Banner{}, fmt.Errorf("%w: got %dx%d", ErrInvalidSheetCount, columns, rows)
	}
	if err := ValidateMargin(paper, marginMm); err != nil {
		return Banner{}, err
	}
	marginCm := marginMm * MMToCM
	return Banner{
		WidthCm:  roundTo(float64(columns)*(paper.WidthCm-marginCm), 1),
		HeightCm: roundTo(float64(rows)*(paper.HeightCm-marginCm), 1),
	}, nil
}

// ceilDiv returns ceil(a/b) with a guard against float noise such as 100/(25.000000001).
func ceilDiv(a, b float64) int {
	q := a / b
	r := math.Round(q)
	if math.Abs(q-r) < 1e-9 {
		q = r
	}
	n := int(math.Ceil(q))
	if n < 1 {
		n = 1
	}
	return n
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
