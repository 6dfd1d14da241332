package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gardar/faixa/pkg/geometry"
	"github.com/gardar/faixa/pkg/placement"
)

// PreviewFileName is the name the sheet-distribution image is saved under.
const PreviewFileName = "distribuicao-folhas.png"

const previewPadding = 30

var (
	previewBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	bannerFill        = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	bannerBorder      = color.RGBA{0x10, 0xa3, 0x7f, 0xff}
	sheetBorders      = [2]color.RGBA{
		{0x4d, 0xab, 0xf7, 0xff},
		{0x33, 0x9a, 0xf0, 0xff},
	}
)

// PreviewInput is everything the sheet-distribution preview shows.
type PreviewInput struct {
	Banner     geometry.Banner
	Paper      geometry.Paper
	MarginMm   float64
	Viewport   placement.Viewport
	Placed     *placement.Placed // nil when no image is loaded
	Source     image.Image
	ShowLabels bool
}

// RenderPreview draws the banner at viewport scale with the image clipped to it and every
// sheet outlined in alternating colours, optionally labelled L{row}C{col}.
func RenderPreview(in PreviewInput) (*image.RGBA, error) {
	grid, err := geometry.ComputeGrid(in.Banner, in.Paper, in.MarginMm)
	if err != nil {
		return nil, err
	}
	if err := in.Viewport.Validate(); err != nil {
		return nil, err
	}

	bw, bh := in.Viewport.BannerSize(in.Banner)
	wPx, hPx := int(math.Round(bw)), int(math.Round(bh))
	canvas := image.NewRGBA(image.Rect(0, 0, wPx+2*previewPadding, hPx+2*previewPadding))
	Fill(canvas, canvas.Bounds(), previewBackground)

	bannerRect := image.Rect(previewPadding, previewPadding, previewPadding+wPx, previewPadding+hPx)
	Fill(canvas, bannerRect, bannerFill)

	if in.Placed != nil && in.Source != nil {
		if err := in.Placed.Validate(); err != nil {
			return nil, err
		}
		clip := canvas.SubImage(bannerRect).(*image.RGBA)
		drawPlaced(clip, *in.Placed, in.Source, draw.ApproxBiLinear)
	}
	strokeRect(canvas, bannerRect, 2, bannerBorder)

	paperW := in.Viewport.ToPixels(in.Paper.WidthCm)
	paperH := in.Viewport.ToPixels(in.Paper.HeightCm)
	margin := in.Viewport.ToPixels(in.MarginMm * geometry.MMToCM)

	labelFace, err := BoldFace(12)
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}
	defer labelFace.Close()

	for _, c := range grid.Cells() {
		x := float64(c.Col) * (paperW - margin)
		y := float64(c.Row) * (paperH - margin)
		remW := math.Min(paperW, bw-x)
		remH := math.Min(paperH, bh-y)
		if remW <= 0 || remH <= 0 {
			continue
		}
		r := image.Rect(
			previewPadding+int(math.Round(x)), previewPadding+int(math.Round(y)),
			previewPadding+int(math.Round(x+remW)), previewPadding+int(math.Round(y+remH)),
		)
		col := sheetBorders[c.CheckerParity()]
		strokeRect(canvas, r, 1, col)
		if in.ShowLabels {
			DrawCentered(canvas, c.ID(), labelFace, (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2, col)
		}
	}
	return canvas, nil
}

// strokeRect draws the inside border of r with the given width.
func strokeRect(dst draw.Image, r image.Rectangle, width int, c color.Color) {
	if r.Empty() {
		return
	}
	width = min(width, r.Dx(), r.Dy())
	Fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	Fill(dst, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	Fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	Fill(dst, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}
