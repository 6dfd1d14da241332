package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/gardar/faixa/pkg/bundle"
	"github.com/gardar/faixa/pkg/geometry"
	"github.com/gardar/faixa/pkg/placement"
	"github.com/gardar/faixa/pkg/raster"
	"github.com/gardar/faixa/pkg/sheetpdf"
	"github.com/gardar/faixa/pkg/tile"
)

func testSource(w, h int) *raster.Source {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	return &raster.Source{Image: img, Format: "png", Size: placement.Image{Width: w, Height: h}}
}

// testOptions exports a 100cm x 50cm banner at a tiny DPI: 4 x 3 landscape sheets.
func testOptions() Options {
	opts := DefaultOptions()
	opts.Banner = geometry.Banner{WidthCm: 100, HeightCm: 50}
	opts.DPI = 10
	opts.Now = func() time.Time { return time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC) }
	return opts
}

func TestRun(t *testing.T) {
	var percents []int
	var stages []Stage
	opts := testOptions()
	opts.Progress = func(p int, s Stage) {
		percents = append(percents, p)
		stages = append(stages, s)
	}

	res, err := NewSession(testSource(200, 100), opts).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.FileName != "faixa_100x50_2024-05-17.zip" {
		t.Errorf("unexpected file name %s", res.FileName)
	}
	if res.Grid.Total != 12 || res.Grid.Columns != 4 || res.Grid.Rows != 3 {
		t.Errorf("expected a 4x3 grid, got %+v", res.Grid)
	}
	if !res.Coverage.FullyCovered {
		t.Errorf("auto-fit of a 2:1 image on a 2:1 banner should cover it, got %v", res.Coverage.Issues)
	}
	if len(res.Pages) != 12 || res.Pages[0] != "folha_L1C1.pdf" || res.Pages[11] != "folha_L3C4.pdf" {
		t.Errorf("unexpected pages %v", res.Pages)
	}

	names, err := bundle.Entries(res.Data)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	// 12 sheets + guide at the root, the manifest, then 13 copies
	if len(names) != 27 {
		t.Errorf("expected 27 entries, got %d: %v", len(names), names)
	}
	if names[12] != sheetpdf.GuideFileName || names[13] != bundle.ManifestFileName {
		t.Errorf("unexpected entry order %v", names)
	}

	manifest, err := bundle.ReadEntry(res.Data, bundle.ManifestFileName)
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if !strings.Contains(string(manifest), "Total de folhas: 12") {
		t.Errorf("manifest missing sheet total:\n%s", manifest)
	}

	sheet, err := bundle.ReadEntry(res.Data, "arquivos_pdf/folha_L2C3.pdf")
	if err != nil {
		t.Fatalf("sheet: %v", err)
	}
	insp, err := sheetpdf.Inspect(sheet, sheetpdf.DefaultConfig().LayerName)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if insp.Title != "Folha 7 - Faixa" || !insp.HasLabels {
		t.Errorf("unexpected sheet inspection %+v", insp)
	}

	if percents[0] != 0 || percents[len(percents)-1] != 100 {
		t.Errorf("progress should run from 0 to 100, got %v", percents)
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Fatalf("progress went backwards at %d: %v", i, percents)
		}
	}
	for _, want := range []int{10, 90, 95, 97, 99} {
		found := false
		for _, p := range percents {
			if p == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected checkpoint %d in %v", want, percents)
		}
	}
	if stages[len(stages)-1] != StageDone {
		t.Errorf("expected final stage %s, got %s", StageDone, stages[len(stages)-1])
	}
}

func TestRun_OptionsShapeArchive(t *testing.T) {
	opts := testOptions()
	opts.Portrait = true
	opts.Naming = sheetpdf.NamingNumeric
	opts.Combined = true
	opts.Format = raster.FormatJPEG
	opts.Prefix = "evento"
	opts.Labeler = &tile.GridLabeler{}

	res, err := NewSession(testSource(200, 100), opts).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FileName != "evento_100x50_2024-05-17.zip" {
		t.Errorf("unexpected file name %s", res.FileName)
	}
	// portrait: ceil(100/21) x ceil(50/29.7)
	if res.Grid.Columns != 5 || res.Grid.Rows != 2 {
		t.Errorf("expected a 5x2 grid, got %+v", res.Grid)
	}
	if res.Pages[0] != "folha_01.pdf" || res.Pages[9] != "folha_10.pdf" {
		t.Errorf("unexpected numeric names %v", res.Pages)
	}
	if _, err := bundle.ReadEntry(res.Data, sheetpdf.CombinedFileName); err != nil {
		t.Errorf("combined PDF missing: %v", err)
	}
}

func TestRun_CoverageNotes(t *testing.T) {
	opts := testOptions()
	// 200x100 px at scale 1 on a 500x250 px banner leaves every edge uncovered
	opts.Placement = &placement.Placed{Scale: 1}

	res, err := NewSession(testSource(200, 100), opts).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Coverage.FullyCovered {
		t.Fatal("expected coverage issues")
	}
	if !res.Coverage.Has(placement.Uncovered, placement.EdgeLeft) {
		t.Errorf("expected the left edge to be uncovered, got %v", res.Coverage.Issues)
	}
	manifest, err := bundle.ReadEntry(res.Data, bundle.ManifestFileName)
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if !strings.Contains(string(manifest), "Área esquerda da faixa não coberta (30.0cm)") {
		t.Errorf("manifest should list coverage issues:\n%s", manifest)
	}
}

func TestRun_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		source *raster.Source
		mutate func(*Options)
		want   error
	}{
		{"no image", nil, func(*Options) {}, ErrNoImage},
		{"zero dpi", testSource(2, 2), func(o *Options) { o.DPI = 0 }, ErrInvalidDPI},
		{"negative banner", testSource(2, 2), func(o *Options) { o.Banner.WidthCm = -1 }, geometry.ErrInvalidBanner},
		{"huge margin", testSource(2, 2), func(o *Options) { o.MarginMm = 300 }, geometry.ErrInvalidMargin},
		{"negative bleed", testSource(2, 2), func(o *Options) { o.BleedMm = -2 }, sheetpdf.ErrInvalidBleed},
		{"zero scale", testSource(2, 2), func(o *Options) { o.Placement = &placement.Placed{} }, placement.ErrInvalidScale},
		{"unknown format", testSource(2, 2), func(o *Options) { o.Format = "gif" }, raster.ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.mutate(&opts)
			last := -1
			opts.Progress = func(p int, _ Stage) { last = p }

			res, err := NewSession(tt.source, opts).Run(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if res != nil {
				t.Error("expected no result on error")
			}
			if last == 100 {
				t.Error("progress must not complete on error")
			}
		})
	}
}

type failingLabeler struct{ at int }

func (failingLabeler) Name() string { return "failing" }

func (f failingLabeler) Label(t *tile.Tile) error {
	if t.Index == f.at {
		return errors.New("boom")
	}
	return nil
}

func TestRun_TileFailureAbortsSession(t *testing.T) {
	opts := testOptions()
	opts.Labeler = failingLabeler{at: 6}

	res, err := NewSession(testSource(200, 100), opts).Run(context.Background())
	if res != nil {
		t.Error("expected no result")
	}
	var tileErr *TileError
	if !errors.As(err, &tileErr) {
		t.Fatalf("expected a TileError, got %v", err)
	}
	if tileErr.Index != 6 || tileErr.ID != "L2C2" {
		t.Errorf("expected sheet 6 (L2C2), got %d (%s)", tileErr.Index, tileErr.ID)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should carry the cause, got %v", err)
	}
}

// blankingLabeler swaps the raster of one tile for an empty image the encoder rejects.
type blankingLabeler struct{ at int }

func (blankingLabeler) Name() string { return "blanking" }

func (b blankingLabeler) Label(t *tile.Tile) error {
	if t.Index == b.at {
		t.Image = image.NewRGBA(image.Rectangle{})
	}
	return nil
}

func TestRun_EncodeFailureNamesSheet(t *testing.T) {
	tests := []struct {
		name   string
		at     int
		format string
		id     string
	}{
		{"first sheet as png", 1, raster.FormatPNG, "L1C1"},
		{"later sheet as png", 5, raster.FormatPNG, "L2C1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.Format = tt.format
			opts.Labeler = blankingLabeler{at: tt.at}
			last := -1
			opts.Progress = func(p int, _ Stage) { last = p }

			res, err := NewSession(testSource(200, 100), opts).Run(context.Background())
			if res != nil {
				t.Error("expected no result")
			}
			var tileErr *TileError
			if !errors.As(err, &tileErr) {
				t.Fatalf("expected a TileError, got %v", err)
			}
			if tileErr.Index != tt.at || tileErr.ID != tt.id {
				t.Errorf("expected sheet %d (%s), got %d (%s)", tt.at, tt.id, tileErr.Index, tileErr.ID)
			}
			if !strings.Contains(err.Error(), "failed to encode") {
				t.Errorf("error should carry the encoder failure, got %v", err)
			}
			if last == 100 {
				t.Error("progress must not complete on error")
			}
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Run("before start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := NewSession(testSource(20, 10), testOptions()).Run(ctx)
		if !errors.Is(err, context.Canceled) || res != nil {
			t.Errorf("expected cancellation, got %v", err)
		}
	})

	t.Run("between tiles", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		opts := testOptions()
		opts.Progress = func(_ int, s Stage) {
			if s == StageTiles {
				cancel()
			}
		}
		res, err := NewSession(testSource(20, 10), opts).Run(ctx)
		if !errors.Is(err, context.Canceled) || res != nil {
			t.Errorf("expected cancellation, got %v", err)
		}
	})
}

func TestTilePercent(t *testing.T) {
	tests := []struct {
		done, total, want int
	}{
		{0, 12, 10},
		{6, 12, 50},
		{12, 12, 90},
		{1, 3, 36},
		{0, 0, 90},
	}
	for _, tt := range tests {
		if got := tilePercent(tt.done, tt.total); got != tt.want {
			t.Errorf("tilePercent(%d, %d): expected %d, got %d", tt.done, tt.total, tt.want, got)
		}
	}
}
