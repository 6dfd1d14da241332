package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gardar/faixa/pkg/geometry"
	"github.com/gardar/faixa/pkg/placement"
)

// Resampling filter names accepted by InterpolatorByName.
const (
	FilterNearest    = "nearest"
	FilterBilinear   = "bilinear"
	FilterCatmullRom = "catmullrom"
)

// InterpolatorByName maps a configured filter name to an interpolator.
func InterpolatorByName(name string) (draw.Interpolator, error) {
	switch strings.ToLower(name) {
	case FilterNearest:
		return draw.NearestNeighbor, nil
	case "", FilterBilinear:
		return draw.BiLinear, nil
	case FilterCatmullRom:
		return draw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("unknown resampling filter %q", name)
	}
}

// RenderOptions controls the full-banner composite.
type RenderOptions struct {
	DPI          float64
	Interpolator draw.Interpolator // nil means draw.BiLinear
	Logger       hclog.Logger
}

// BannerPixels returns the composite size of a banner at a print resolution.
func BannerPixels(banner geometry.Banner, dpi float64) (w, h int) {
	return geometry.ToPixels(banner.WidthCm, dpi), geometry.ToPixels(banner.HeightCm, dpi)
}

// RenderFullBanner renders the banner at print resolution: a white background with the
// placed image drawn over it, clipped to the banner. The placement is re-expressed from its
// viewport into print pixels, so the output never depends on the preview zoom.
func RenderFullBanner(ctx context.Context, banner geometry.Banner, p placement.Placed, vp placement.Viewport,
	src image.Image, opts RenderOptions) (*image.RGBA, error) {

	if err := banner.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	if !(opts.DPI > 0) {
		return nil, fmt.Errorf("%w: got %g", geometry.ErrInvalidDPI, opts.DPI)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	interp := opts.Interpolator
	if interp == nil {
		interp = draw.BiLinear
	}

	w, h := BannerPixels(banner, opts.DPI)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	printVP := placement.Viewport{PixelsPerCm: geometry.PixelsPerCm(opts.DPI)}
	printed := placement.Rescale(p, vp, printVP)
	log.Debug("rendering full banner", "width_px", w, "height_px", h, "scale", printed.Scale)

	drawPlaced(dst, printed, src, interp)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dst, nil
}

// drawPlaced draws src over dst with its centre at dst centre plus the placement offset.
// dst bounds act as the clip rectangle.
func drawPlaced(dst *image.RGBA, p placement.Placed, src image.Image, interp draw.Interpolator) {
	b := dst.Bounds()
	sb := src.Bounds()
	iw, ih := p.Size()

	x0 := float64(b.Min.X) + float64(b.Dx())/2 + p.OffsetX - iw/2
	y0 := float64(b.Min.Y) + float64(b.Dy())/2 + p.OffsetY - ih/2

	s2d := f64.Aff3{
		p.Scale, 0, x0 - p.Scale*float64(sb.Min.X),
		0, p.Scale, y0 - p.Scale*float64(sb.Min.Y),
	}
	interp.Transform(dst, s2d, src, sb, draw.Over, nil)
}

// Fill paints a rectangle of dst with a solid colour.
func Fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}
