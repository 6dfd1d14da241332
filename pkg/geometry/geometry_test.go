package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestComputeGrid_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		banner     Banner
		portrait   bool
		marginMm   float64
		cols, rows int
		efficiency int
		effW, effH float64
	}{
		{
			name:   "100x50 landscape no margin",
			banner: Banner{100, 50}, marginMm: 0,
			cols: 4, rows: 3,
			// round(5000 / (12 * 29.7 * 21) * 100) = round(66.8)
			efficiency: 67,
			effW:       29.7, effH: 21,
		},
		{
			name:   "100x50 landscape 5mm margin",
			banner: Banner{100, 50}, marginMm: 5,
			cols: 4, rows: 3,
			efficiency: 67,
			effW:       29.2, effH: 20.5,
		},
		{
			name:   "exact multiple does not add a sheet",
			banner: Banner{59.4, 42}, marginMm: 0,
			cols: 2, rows: 2,
			efficiency: 100,
			effW:       29.7, effH: 21,
		},
		{
			name:   "portrait swaps axes",
			banner: Banner{100, 50}, portrait: true, marginMm: 0,
			cols: 5, rows: 2,
			efficiency: 80,
			effW:       21, effH: 29.7,
		},
		{
			name:   "banner smaller than a sheet",
			banner: Banner{10, 5}, marginMm: 0,
			cols: 1, rows: 1,
			efficiency: 8,
			effW:       29.7, effH: 21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ComputeGrid(tt.banner, A4(tt.portrait), tt.marginMm)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if g.Columns != tt.cols || g.Rows != tt.rows {
				t.Errorf("expected %dx%d, got %dx%d", tt.cols, tt.rows, g.Columns, g.Rows)
			}
			if g.Total != tt.cols*tt.rows {
				t.Errorf("expected total %d, got %d", tt.cols*tt.rows, g.Total)
			}
			if g.EfficiencyPercent != tt.efficiency {
				t.Errorf("expected efficiency %d%%, got %d%%", tt.efficiency, g.EfficiencyPercent)
			}
			if math.Abs(g.EffectiveWidthCm-tt.effW) > 1e-9 || math.Abs(g.EffectiveHeightCm-tt.effH) > 1e-9 {
				t.Errorf("expected effective sheet %.2fx%.2f, got %.2fx%.2f",
					tt.effW, tt.effH, g.EffectiveWidthCm, g.EffectiveHeightCm)
			}
		})
	}
}

func TestComputeGrid_AlwaysOverCovers(t *testing.T) {
	margins := []float64{0, 1, 5, 12.5, 50}
	for _, portrait := range []bool{false, true} {
		for w := 1.0; w <= 400; w += 13.7 {
			for h := 1.0; h <= 300; h += 17.3 {
				for _, m := range margins {
					g, err := ComputeGrid(Banner{w, h}, A4(portrait), m)
					if err != nil {
						t.Fatalf("%gx%g margin %g: %v", w, h, m, err)
					}
					if float64(g.Columns)*g.EffectiveWidthCm < w-1e-9 {
						t.Errorf("%gx%g margin %g: %d columns of %.2fcm do not cover the width",
							w, h, m, g.Columns, g.EffectiveWidthCm)
					}
					if float64(g.Rows)*g.EffectiveHeightCm < h-1e-9 {
						t.Errorf("%gx%g margin %g: %d rows of %.2fcm do not cover the height",
							w, h, m, g.Rows, g.EffectiveHeightCm)
					}
					if g.Total != g.Columns*g.Rows {
						t.Errorf("total %d != %d*%d", g.Total, g.Columns, g.Rows)
					}
				}
			}
		}
	}
}

func TestComputeGrid_Validation(t *testing.T) {
	tests := []struct {
		name     string
		banner   Banner
		marginMm float64
		want     error
	}{
		{"zero width", Banner{0, 50}, 0, ErrInvalidBanner},
		{"negative height", Banner{100, -1}, 0, ErrInvalidBanner},
		{"NaN width", Banner{math.NaN(), 50}, 0, ErrInvalidBanner},
		{"infinite height", Banner{100, math.Inf(1)}, 0, ErrInvalidBanner},
		{"negative margin", Banner{100, 50}, -1, ErrInvalidMargin},
		{"margin equals short side", Banner{100, 50}, 210, ErrInvalidMargin},
		{"margin larger than sheet", Banner{100, 50}, 400, ErrInvalidMargin},
		{"NaN margin", Banner{100, 50}, math.NaN(), ErrInvalidMargin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeGrid(tt.banner, A4(false), tt.marginMm)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBannerFromSheets(t *testing.T) {
	b, err := BannerFromSheets(4, 3, A4(false), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.WidthCm != 116.8 || b.HeightCm != 61.5 {
		t.Errorf("expected 116.8x61.5, got %gx%g", b.WidthCm, b.HeightCm)
	}

	// Round trip: the banner produced from a sheet count needs exactly that many sheets.
	g, err := ComputeGrid(b, A4(false), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Columns != 4 || g.Rows != 3 {
		t.Errorf("expected 4x3 sheets back, got %dx%d", g.Columns, g.Rows)
	}

	if _, err := BannerFromSheets(0, 3, A4(false), 0); !errors.Is(err, ErrInvalidSheetCount) {
		t.Errorf("expected ErrInvalidSheetCount, got %v", err)
	}
}

func TestPaperDescription(t *testing.T) {
	if got := A4(false).Description(); got != "29.7cm x 21cm (paisagem)" {
		t.Errorf("unexpected landscape description %q", got)
	}
	if got := A4(true).Description(); got != "21cm x 29.7cm (retrato)" {
		t.Errorf("unexpected portrait description %q", got)
	}
}
