// Package placement models a single raster image positioned over a banner.
//
// Positions and sizes are expressed in viewport pixels: the pixel-per-cm scale of whatever
// preview produced them. A Viewport carries that scale so the compositor can re-express a
// placement at print resolution without depending on the preview zoom.
package placement

import (
	"errors"
	"fmt"
	"math"

	"github.com/gardar/faixa/pkg/geometry"
)

// BasePixelsPerCm is the preview scale at 100% zoom.
const BasePixelsPerCm = 5.0

// Fraction of the banner the first placement of an image spans.
const defaultCoverage = 0.8

var (
	ErrInvalidImage    = errors.New("image dimensions must be positive")
	ErrInvalidScale    = errors.New("image scale must be positive")
	ErrInvalidViewport = errors.New("viewport scale must be positive")
)

// Viewport is the pixel-per-cm scale in which a placement is expressed.
type Viewport struct {
	PixelsPerCm float64
}

// ViewportForZoom returns the preview viewport for a zoom percentage (100 = 5 px/cm).
func ViewportForZoom(percent float64) (Viewport, error) {
	v := Viewport{PixelsPerCm: BasePixelsPerCm * percent / 100}
	if err := v.Validate(); err != nil {
		return Viewport{}, err
	}
	return v, nil
}

func (v Viewport) Validate() error {
	if !(v.PixelsPerCm > 0) || math.IsInf(v.PixelsPerCm, 0) {
		return fmt.Errorf("%w: got %g px/cm", ErrInvalidViewport, v.PixelsPerCm)
	}
	return nil
}

// ToPixels converts cm to viewport pixels.
func (v Viewport) ToPixels(cm float64) float64 { return cm * v.PixelsPerCm }

// ToCm converts viewport pixels to cm.
func (v Viewport) ToCm(px float64) float64 { return px / v.PixelsPerCm }

// BannerSize returns the banner size in viewport pixels.
func (v Viewport) BannerSize(b geometry.Banner) (w, h float64) {
	return v.ToPixels(b.WidthCm), v.ToPixels(b.HeightCm)
}

// Image is the intrinsic pixel size of a decoded source image.
type Image struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (i Image) Validate() error {
	if i.Width <= 0 || i.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidImage, i.Width, i.Height)
	}
	return nil
}

// AspectRatio returns width / height.
func (i Image) AspectRatio() float64 { return float64(i.Width) / float64(i.Height) }

// Placed is an image positioned over a banner. OffsetX/OffsetY run from the banner centre to
// the image centre; Scale maps source pixels to viewport pixels.
type Placed struct {
	Source  Image   `json:"source"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Scale   float64 `json:"scale"`
}

func (p Placed) Validate() error {
	if err := p.Source.Validate(); err != nil {
		return err
	}
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidScale, p.Scale)
	}
	return nil
}

// Size returns the displayed image size in viewport pixels.
func (p Placed) Size() (w, h float64) {
	return float64(p.Source.Width) * p.Scale, float64(p.Source.Height) * p.Scale
}

// Rect is an axis-aligned rectangle in viewport pixels, relative to the banner's top-left.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Rect returns the image rectangle relative to the banner's top-left corner.
func (p Placed) Rect(banner geometry.Banner, vp Viewport) Rect {
	bw, bh := vp.BannerSize(banner)
	w, h := p.Size()
	return Rect{
		X: bw/2 + p.OffsetX - w/2,
		Y: bh/2 + p.OffsetY - h/2,
		W: w,
		H: h,
	}
}

// Default is the placement used when an image is first loaded: centred, scaled so the
// binding axis spans 80% of the banner.
func Default(banner geometry.Banner, img Image, vp Viewport) (Placed, error) {
	if err := check(banner, img, vp); err != nil {
		return Placed{}, err
	}
	bw, bh := vp.BannerSize(banner)
	scale := math.Min(
		defaultCoverage*bw/float64(img.Width),
		defaultCoverage*bh/float64(img.Height),
	)
	return Placed{Source: img, Scale: scale}, nil
}

// AutoFit centres the image and scales it to the binding banner axis: an image relatively
// wider than the banner is fitted to the banner height, otherwise to its width.
func AutoFit(banner geometry.Banner, img Image, vp Viewport) (Placed, error) {
	if err := check(banner, img, vp); err != nil {
		return Placed{}, err
	}
	bw, bh := vp.BannerSize(banner)

	var scale float64
	if img.AspectRatio() > bw/bh {
		scale = bh / float64(img.Height)
	} else {
		scale = bw / float64(img.Width)
	}
	return Placed{Source: img, Scale: scale}, nil
}

// Rescale re-expresses a placement made in one viewport for another.
func Rescale(p Placed, from, to Viewport) Placed {
	ratio := to.PixelsPerCm / from.PixelsPerCm
	p.OffsetX *= ratio
	p.OffsetY *= ratio
	p.Scale *= ratio
	return p
}

func check(banner geometry.Banner, img Image, vp Viewport) error {
	if err := banner.Validate(); err != nil {
		return err
	}
	if err := img.Validate(); err != nil {
		return err
	}
	return vp.Validate()
}
