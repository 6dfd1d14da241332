package placement

import (
	"errors"
	"math"
	"testing"

	"github.com/gardar/faixa/pkg/geometry"
)

func mustViewport(t *testing.T, zoom float64) Viewport {
	t.Helper()
	vp, err := ViewportForZoom(zoom)
	if err != nil {
		t.Fatalf("ViewportForZoom(%g): %v", zoom, err)
	}
	return vp
}

func TestAutoFit(t *testing.T) {
	vp := mustViewport(t, 100)

	tests := []struct {
		name      string
		banner    geometry.Banner
		img       Image
		wantScale float64
	}{
		{
			// 2:1 image into a 1:1 banner is wider than the banner: fit by height.
			name:      "wide image fits height",
			banner:    geometry.Banner{WidthCm: 100, HeightCm: 100},
			img:       Image{Width: 2000, Height: 1000},
			wantScale: 500.0 / 1000.0,
		},
		{
			name:      "tall image fits width",
			banner:    geometry.Banner{WidthCm: 100, HeightCm: 50},
			img:       Image{Width: 1000, Height: 1000},
			wantScale: 500.0 / 1000.0,
		},
		{
			name:      "equal ratio fits width",
			banner:    geometry.Banner{WidthCm: 200, HeightCm: 100},
			img:       Image{Width: 400, Height: 200},
			wantScale: 1000.0 / 400.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := AutoFit(tt.banner, tt.img, vp)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(p.Scale-tt.wantScale) > 1e-12 {
				t.Errorf("expected scale %v, got %v", tt.wantScale, p.Scale)
			}
			if p.OffsetX != 0 || p.OffsetY != 0 {
				t.Errorf("expected centred image, got offset (%v, %v)", p.OffsetX, p.OffsetY)
			}
			// Auto-fit always covers the banner.
			rep := CheckCoverage(tt.banner, p, vp)
			for _, is := range rep.Issues {
				if is.Kind == Uncovered {
					t.Errorf("unexpected uncovered edge %s", is.Edge)
				}
			}
		})
	}
}

func TestDefault_LeavesMargin(t *testing.T) {
	vp := mustViewport(t, 100)
	banner := geometry.Banner{WidthCm: 100, HeightCm: 50}
	p, err := Default(banner, Image{Width: 1000, Height: 1000}, vp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// min(0.8*500/1000, 0.8*250/1000)
	if math.Abs(p.Scale-0.2) > 1e-12 {
		t.Errorf("expected scale 0.2, got %v", p.Scale)
	}
	rep := CheckCoverage(banner, p, vp)
	if rep.FullyCovered {
		t.Error("default placement should leave visible margin")
	}
	for _, e := range []Edge{EdgeLeft, EdgeTop, EdgeRight, EdgeBottom} {
		if !rep.Has(Uncovered, e) {
			t.Errorf("expected uncovered %s edge", e)
		}
	}
	if rep.Has(Overflow, "") {
		t.Error("default placement should not overflow")
	}
}

func TestPlacementValidation(t *testing.T) {
	vp := mustViewport(t, 100)
	banner := geometry.Banner{WidthCm: 100, HeightCm: 50}

	if _, err := AutoFit(banner, Image{Width: 0, Height: 10}, vp); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("expected ErrInvalidImage, got %v", err)
	}
	if _, err := Default(geometry.Banner{WidthCm: -1, HeightCm: 5}, Image{Width: 10, Height: 10}, vp); !errors.Is(err, geometry.ErrInvalidBanner) {
		t.Errorf("expected ErrInvalidBanner, got %v", err)
	}
	if _, err := ViewportForZoom(0); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("expected ErrInvalidViewport, got %v", err)
	}
}

func TestCheckCoverage_LeftEdgeToggle(t *testing.T) {
	vp := mustViewport(t, 100)
	banner := geometry.Banner{WidthCm: 100, HeightCm: 50}
	// 600x300 viewport px over a 500x250 banner, overflowing 50/25 px on every side.
	p := Placed{Source: Image{Width: 1000, Height: 500}, Scale: 0.6}

	before := CheckCoverage(banner, p, vp)
	after := CheckCoverage(banner, Drag(p, 60, 0), vp)

	if before.Has(Uncovered, EdgeLeft) {
		t.Fatal("left edge should be covered before the move")
	}
	if !after.Has(Uncovered, EdgeLeft) {
		t.Fatal("left edge should be uncovered after the move")
	}

	for _, e := range []Edge{EdgeTop, EdgeRight, EdgeBottom} {
		if before.Has(Uncovered, e) != after.Has(Uncovered, e) {
			t.Errorf("edge %s toggled by a horizontal move", e)
		}
	}
	if before.Has(Overflow, "") != after.Has(Overflow, "") {
		t.Error("overflow toggled by a move that keeps the image spilling right")
	}

	for _, is := range after.Issues {
		if is.Kind == Uncovered && is.Edge == EdgeLeft && math.Abs(is.DistanceCm-2) > 1e-9 {
			t.Errorf("expected 2cm left gap, got %v", is.DistanceCm)
		}
	}
}

func TestCheckCoverage_OverflowSums(t *testing.T) {
	vp := mustViewport(t, 100)
	banner := geometry.Banner{WidthCm: 100, HeightCm: 50}
	p := Placed{Source: Image{Width: 1000, Height: 500}, Scale: 0.6, OffsetX: 20}

	rep := CheckCoverage(banner, p, vp)
	var overflow *Issue
	for i := range rep.Issues {
		if rep.Issues[i].Kind == Overflow {
			if overflow != nil {
				t.Fatal("expected a single overflow issue")
			}
			overflow = &rep.Issues[i]
		}
	}
	if overflow == nil {
		t.Fatal("expected an overflow issue")
	}
	// 30px left + 70px right = 100px = 20cm; 25px + 25px = 50px = 10cm.
	if math.Abs(overflow.OverflowWidthCm-20) > 1e-9 || math.Abs(overflow.OverflowHeightCm-10) > 1e-9 {
		t.Errorf("expected 20cm x 10cm overflow, got %vcm x %vcm", overflow.OverflowWidthCm, overflow.OverflowHeightCm)
	}
	if overflow.Message != "Parte da imagem está fora da área útil (20.0cm × 10.0cm)" {
		t.Errorf("unexpected message %q", overflow.Message)
	}
}

func TestCheckCoverage_ExactFitIsFullyCovered(t *testing.T) {
	vp := mustViewport(t, 100)
	banner := geometry.Banner{WidthCm: 100, HeightCm: 50}
	p := Placed{Source: Image{Width: 1000, Height: 500}, Scale: 0.5}

	rep := CheckCoverage(banner, p, vp)
	if !rep.FullyCovered {
		t.Errorf("expected full coverage, got %+v", rep.Issues)
	}
}

func TestRescale_KeepsPhysicalRect(t *testing.T) {
	banner := geometry.Banner{WidthCm: 120, HeightCm: 80}
	half := mustViewport(t, 50)
	double := mustViewport(t, 200)

	p := Placed{Source: Image{Width: 800, Height: 600}, OffsetX: -13, OffsetY: 7.5, Scale: 0.4}
	q := Rescale(p, half, double)

	a := p.Rect(banner, half)
	b := q.Rect(banner, double)
	for _, pair := range [][2]float64{
		{half.ToCm(a.X), double.ToCm(b.X)},
		{half.ToCm(a.Y), double.ToCm(b.Y)},
		{half.ToCm(a.W), double.ToCm(b.W)},
		{half.ToCm(a.H), double.ToCm(b.H)},
	} {
		if math.Abs(pair[0]-pair[1]) > 1e-9 {
			t.Errorf("expected %vcm, got %vcm", pair[0], pair[1])
		}
	}
}
