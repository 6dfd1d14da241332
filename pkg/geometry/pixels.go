package geometry

import (
	"fmt"
	"image"
	"math"
	"strconv"
)

// PixelsPerCm converts a print resolution to pixels per centimetre.
func PixelsPerCm(dpi float64) float64 {
	return dpi / CMPerInch
}

// ToPixels converts a length in cm to whole print pixels, rounding up.
func ToPixels(cm, dpi float64) int {
	v := cm * PixelsPerCm(dpi)
	if r := math.Round(v); math.Abs(v-r) < 1e-6 {
		v = r
	}
	return int(math.Ceil(v))
}

// FormatCm renders a length the way it is shown to users: no trailing zeros ("21", "29.7").
func FormatCm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PixelLayout is the sheet grid expressed in print pixels.
type PixelLayout struct {
	DPI         float64
	PaperWidth  int // px
	PaperHeight int // px
	Margin      int // px of overlap between neighbouring sheets
}

// NewPixelLayout converts paper and margin sizes to pixels at the given DPI.
func NewPixelLayout(paper Paper, marginCm, dpi float64) (PixelLayout, error) {
	if !positiveFinite(dpi) {
		return PixelLayout{}, fmt.Errorf("%w: got %g", ErrInvalidDPI, dpi)
	}
	l := PixelLayout{
		DPI:         dpi,
		PaperWidth:  ToPixels(paper.WidthCm, dpi),
		PaperHeight: ToPixels(paper.HeightCm, dpi),
		Margin:      ToPixels(marginCm, dpi),
	}
	if l.StrideX() <= 0 || l.StrideY() <= 0 {
		return PixelLayout{}, fmt.Errorf("%w: %dpx margin on a %dx%dpx sheet",
			ErrInvalidPixelLayout, l.Margin, l.PaperWidth, l.PaperHeight)
	}
	return l, nil
}

// StrideX is the horizontal distance between the origins of neighbouring sheets.
func (l PixelLayout) StrideX() int { return l.PaperWidth - l.Margin }

// StrideY is the vertical distance between the origins of neighbouring sheets.
func (l PixelLayout) StrideY() int { return l.PaperHeight - l.Margin }

// PaperRect is the destination rectangle every tile is rendered into.
func (l PixelLayout) PaperRect() image.Rectangle {
	return image.Rect(0, 0, l.PaperWidth, l.PaperHeight)
}

// Origin returns the top-left pixel of the cell in the full banner raster.
func (l PixelLayout) Origin(c Cell) image.Point {
	return image.Pt(c.Col*l.StrideX(), c.Row*l.StrideY())
}

// SourceRect returns the region of a fullW x fullH banner raster that belongs to the cell.
// Edge sheets are clamped to the raster so they are never read out of bounds; the result
// may be empty when rounding pushes an origin past the raster edge.
func (l PixelLayout) SourceRect(c Cell, fullW, fullH int) image.Rectangle {
	o := l.Origin(c)
	w := min(l.PaperWidth, fullW-o.X)
	h := min(l.PaperHeight, fullH-o.Y)
	if w <= 0 || h <= 0 {
		return image.Rectangle{Min: o, Max: o}
	}
	return image.Rect(o.X, o.Y, o.X+w, o.Y+h)
}
