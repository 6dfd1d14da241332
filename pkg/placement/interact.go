package placement

import (
	"fmt"
	"math"

	"github.com/gardar/faixa/pkg/geometry"
)

// Handle is a resize handle at one corner of the placed image.
type Handle int

const (
	NoHandle Handle = iota
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

func (h Handle) String() string {
	switch h {
	case TopLeft:
		return "tl"
	case TopRight:
		return "tr"
	case BottomLeft:
		return "bl"
	case BottomRight:
		return "br"
	default:
		return "none"
	}
}

func (h Handle) left() bool { return h == TopLeft || h == BottomLeft }
func (h Handle) top() bool  { return h == TopLeft || h == TopRight }

// Drag moves the image by a pointer delta in viewport pixels.
func Drag(p Placed, dx, dy float64) Placed {
	p.OffsetX += dx
	p.OffsetY += dy
	return p
}

// Resize applies a pointer delta to a corner handle. The aspect ratio is preserved and
// whichever pointer axis moved further drives the size change. The corner opposite the
// handle stays fixed.
func Resize(p Placed, h Handle, dx, dy float64) (Placed, error) {
	if h == NoHandle {
		return p, nil
	}
	if err := p.Validate(); err != nil {
		return p, err
	}

	aspect := p.Source.AspectRatio()
	w, ht := p.Size()

	var nw, nh float64
	if math.Abs(dx) > math.Abs(dy) {
		if h.left() {
			nw = w - dx
		} else {
			nw = w + dx
		}
		nh = nw / aspect
	} else {
		if h.top() {
			nh = ht - dy
		} else {
			nh = ht + dy
		}
		nw = nh * aspect
	}
	if nw <= 0 || nh <= 0 {
		return p, fmt.Errorf("%w: resizing %s by (%g, %g) collapses the image", ErrInvalidScale, h, dx, dy)
	}

	dw, dh := nw-w, nh-ht
	if h.left() {
		p.OffsetX -= dw / 2
	} else {
		p.OffsetX += dw / 2
	}
	if h.top() {
		p.OffsetY -= dh / 2
	} else {
		p.OffsetY += dh / 2
	}
	p.Scale = nw / float64(p.Source.Width)
	return p, nil
}

// HandleAt returns the handle within radius of (x, y), given relative to the banner's
// top-left corner in viewport pixels.
func HandleAt(p Placed, banner geometry.Banner, vp Viewport, x, y, radius float64) Handle {
	r := p.Rect(banner, vp)
	corners := []struct {
		h    Handle
		x, y float64
	}{
		{TopLeft, r.X, r.Y},
		{TopRight, r.Right(), r.Y},
		{BottomLeft, r.X, r.Bottom()},
		{BottomRight, r.Right(), r.Bottom()},
	}
	for _, c := range corners {
		if math.Hypot(x-c.x, y-c.y) <= radius {
			return c.h
		}
	}
	return NoHandle
}

// Contains reports whether (x, y) lies on the image, i.e. starts a drag.
func Contains(p Placed, banner geometry.Banner, vp Viewport, x, y float64) bool {
	r := p.Rect(banner, vp)
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Scale slider bounds, as a percentage of BaseScale.
const (
	MinScalePercent = 10
	MaxScalePercent = 200
)

// BaseScale is the slider's 100% reference: the image spanning 80% of the banner width.
func BaseScale(banner geometry.Banner, img Image, vp Viewport) float64 {
	return defaultCoverage * vp.ToPixels(banner.WidthCm) / float64(img.Width)
}

// ScalePercent returns the slider position for a placement, unclamped.
func ScalePercent(p Placed, banner geometry.Banner, vp Viewport) int {
	return int(math.Round(p.Scale / BaseScale(banner, p.Source, vp) * 100))
}

// WithScalePercent sets the scale from a slider position clamped to [10, 200].
func WithScalePercent(p Placed, banner geometry.Banner, vp Viewport, percent int) Placed {
	percent = max(MinScalePercent, min(MaxScalePercent, percent))
	p.Scale = BaseScale(banner, p.Source, vp) * float64(percent) / 100
	return p
}
