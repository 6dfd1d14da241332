// Package export runs the whole banner export: grid, print-resolution composite, one PDF
// per sheet, the assembly guide, the manifest and the final ZIP archive.
//
// A Session is the only owner of its buffers. Sheets are processed strictly one after the
// other in row-major order so progress is monotonic and deterministic. Any failure aborts
// the session and nothing is returned: there are no partial archives.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/draw"

	"github.com/gardar/faixa/pkg/bundle"
	"github.com/gardar/faixa/pkg/geometry"
	"github.com/gardar/faixa/pkg/placement"
	"github.com/gardar/faixa/pkg/raster"
	"github.com/gardar/faixa/pkg/sheetpdf"
	"github.com/gardar/faixa/pkg/tile"
)

// DefaultDPI is the print resolution used when none is configured.
const DefaultDPI = 300

// Options are the user inputs of one export.
type Options struct {
	Banner   geometry.Banner
	Portrait bool
	MarginMm float64
	BleedMm  float64
	DPI      float64

	// Placement is the image placement in Viewport coordinates. nil means AutoFit.
	Placement *placement.Placed
	Viewport  placement.Viewport // zero = 100% zoom

	Naming       sheetpdf.Naming
	Labeler      tile.Labeler // nil = tile.NoLabel
	PageLabels   bool         // label box layer on every sheet page
	Format       string       // tile encoding, raster.FormatPNG or raster.FormatJPEG
	JPEGQuality  int
	Interpolator draw.Interpolator

	Prefix   string // archive name prefix
	Combined bool   // add todas_as_folhas.pdf to the archive
	Tool     string // signature in informacoes.txt

	Now      func() time.Time
	Logger   hclog.Logger
	Progress ProgressFunc
}

// DefaultOptions returns the options of a plain export: landscape sheets, no margin,
// 3mm bleed, label boxes on and PNG tiles at DefaultDPI.
func DefaultOptions() Options {
	return Options{
		BleedMm:    sheetpdf.DefaultConfig().BleedMm,
		DPI:        DefaultDPI,
		Naming:     sheetpdf.NamingGrid,
		PageLabels: true,
		Format:     raster.FormatPNG,
		Prefix:     bundle.DefaultPrefix,
	}
}

// Result is the finished archive and what went into it.
type Result struct {
	FileName  string
	Data      []byte
	Grid      geometry.Grid
	Placement placement.Placed // in Options.Viewport coordinates
	Coverage  placement.Report
	Pages     []string // archive names of the sheet PDFs, row-major
}

// Session is one export of one image.
type Session struct {
	source *raster.Source
	opts   Options
	log    hclog.Logger
}

// NewSession prepares an export of source. Inputs are validated by Run.
func NewSession(source *raster.Source, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Viewport.PixelsPerCm == 0 {
		opts.Viewport = placement.Viewport{PixelsPerCm: placement.BasePixelsPerCm}
	}
	return &Session{source: source, opts: opts, log: opts.Logger.Named("export")}
}

// Validate reports input errors before any pipeline stage runs.
func (s *Session) Validate() error {
	if s.source == nil || s.source.Image == nil {
		return ErrNoImage
	}
	o := s.opts
	if math.IsNaN(o.DPI) || math.IsInf(o.DPI, 0) || o.DPI <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidDPI, o.DPI)
	}
	if err := o.Banner.Validate(); err != nil {
		return err
	}
	if err := geometry.ValidateMargin(geometry.A4(o.Portrait), o.MarginMm); err != nil {
		return err
	}
	if err := sheetpdf.ValidateBleed(o.BleedMm); err != nil {
		return err
	}
	if err := raster.ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := o.Viewport.Validate(); err != nil {
		return err
	}
	if err := s.source.Size.Validate(); err != nil {
		return err
	}
	if o.Placement != nil {
		p := *o.Placement
		p.Source = s.source.Size
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the export. On any error the result is nil.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	res, err := s.run(ctx)
	if err != nil {
		s.log.Error("export aborted", "error", err)
		return nil, err
	}
	return res, nil
}

func (s *Session) run(ctx context.Context) (*Result, error) {
	o := s.opts
	prog := newProgress(o.Progress)
	now := o.Now()

	prog.report(percentStart, StageRender)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paper := geometry.A4(o.Portrait)
	grid, err := geometry.ComputeGrid(o.Banner, paper, o.MarginMm)
	if err != nil {
		return nil, err
	}
	layout, err := geometry.NewPixelLayout(paper, o.MarginMm*geometry.MMToCM, o.DPI)
	if err != nil {
		return nil, err
	}
	s.log.Debug("computed grid", "columns", grid.Columns, "rows", grid.Rows, "total", grid.Total,
		"sheet_px", fmt.Sprintf("%dx%d", layout.PaperWidth, layout.PaperHeight))

	placed, err := s.placement()
	if err != nil {
		return nil, err
	}
	coverage := placement.CheckCoverage(o.Banner, placed, o.Viewport)
	for _, issue := range coverage.Issues {
		s.log.Warn("coverage issue", "kind", issue.Kind, "edge", issue.Edge, "message", issue.Message)
	}
	prog.report(percentGrid, StageRender)

	full, err := raster.RenderFullBanner(ctx, o.Banner, placed, o.Viewport, s.source.Image, raster.RenderOptions{
		DPI:          o.DPI,
		Interpolator: o.Interpolator,
		Logger:       s.log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render banner: %w", err)
	}
	prog.report(percentRendered, StageRender)

	pageCfg := s.pageConfig(now)
	pages, err := s.sheets(ctx, full, grid, layout, pageCfg, prog)
	if err != nil {
		return nil, err
	}

	guide, err := sheetpdf.AssemblyGuide(sheetpdf.GuideInfo{
		Banner: o.Banner,
		Paper:  paper,
		Grid:   grid,
		Date:   now,
	}, pageCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build assembly guide: %w", err)
	}
	s.log.Debug("built assembly guide")

	var extra []bundle.File
	if o.Combined {
		combined, err := sheetpdf.Combine(pages, o.Portrait)
		if err != nil {
			return nil, fmt.Errorf("failed to combine sheets: %w", err)
		}
		extra = append(extra, bundle.File{Name: sheetpdf.CombinedFileName, Data: combined})
	}
	prog.report(percentGuide, StageGuide)

	manifest, err := bundle.Manifest(bundle.ManifestInfo{
		Banner:    o.Banner,
		Portrait:  o.Portrait,
		Grid:      grid,
		MarginMm:  o.MarginMm,
		BleedMm:   o.BleedMm,
		Generated: now,
		Notes:     coverageNotes(coverage),
		Tool:      o.Tool,
	})
	if err != nil {
		return nil, err
	}

	files := make([]bundle.File, 0, len(pages)+1)
	names := make([]string, 0, len(pages))
	for _, p := range pages {
		files = append(files, bundle.File{Name: p.Name, Data: p.Data})
		names = append(names, p.Name)
	}
	files = append(files, bundle.File{Name: guide.Name, Data: guide.Data})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	archive, err := bundle.Assemble(files, manifest, bundle.Options{Modified: now, Extra: extra})
	if err != nil {
		return nil, fmt.Errorf("failed to build archive: %w", err)
	}
	s.log.Debug("built archive", "bytes", len(archive), "entries", 2*len(files)+1+len(extra))
	prog.report(percentArchive, StageArchive)

	name := bundle.FileName(o.Prefix, o.Banner, now)
	prog.report(percentNaming, StageNaming)

	prog.report(percentDone, StageDone)
	return &Result{
		FileName:  name,
		Data:      archive,
		Grid:      grid,
		Placement: placed,
		Coverage:  coverage,
		Pages:     names,
	}, nil
}

// sheets extracts, encodes and serializes every tile in row-major order.
func (s *Session) sheets(ctx context.Context, full *image.RGBA, grid geometry.Grid, layout geometry.PixelLayout,
	pageCfg sheetpdf.PageConfig, prog *progress) ([]sheetpdf.Page, error) {

	o := s.opts
	ex := tile.NewExtractor(full, layout, tile.Config{Labeler: o.Labeler, Logger: s.log})
	pages := make([]sheetpdf.Page, 0, grid.Total)

	err := ex.Each(ctx, grid, func(t *tile.Tile) error {
		data, err := raster.EncodeBytes(t.Image, o.Format, o.JPEGQuality)
		if err != nil {
			return &TileError{Index: t.Index, ID: t.ID, Err: err}
		}
		page, err := sheetpdf.SerializePage(sheetpdf.Sheet{
			Cell:   t.Cell,
			Index:  t.Index,
			Image:  data,
			Marker: t.Marker,
		}, pageCfg)
		if err != nil {
			return &TileError{Index: t.Index, ID: t.ID, Err: err}
		}
		pages = append(pages, page)
		s.log.Debug("exported sheet", "sheet", t.ID, "index", t.Index, "file", page.Name)
		prog.report(tilePercent(len(pages), grid.Total), StageTiles)
		return nil
	})
	if err == nil {
		return pages, nil
	}

	var tileErr *TileError
	if errors.As(err, &tileErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	// labeling failed on the tile after the last finished one
	index := len(pages) + 1
	c, cerr := geometry.CellFromIndex(index, grid.Columns)
	if cerr != nil {
		return nil, err
	}
	return nil, &TileError{Index: index, ID: c.ID(), Err: err}
}

func (s *Session) placement() (placement.Placed, error) {
	if s.opts.Placement != nil {
		p := *s.opts.Placement
		p.Source = s.source.Size
		return p, nil
	}
	return placement.AutoFit(s.opts.Banner, s.source.Size, s.opts.Viewport)
}

func (s *Session) pageConfig(now time.Time) sheetpdf.PageConfig {
	cfg := sheetpdf.DefaultConfig()
	cfg.Portrait = s.opts.Portrait
	cfg.BleedMm = s.opts.BleedMm
	cfg.PageLabels = s.opts.PageLabels
	if s.opts.Naming != "" {
		cfg.Naming = s.opts.Naming
	}
	if s.opts.Tool != "" {
		cfg.Metadata.Creator = s.opts.Tool
	}
	cfg.Now = func() time.Time { return now }
	cfg.Logger = s.log
	return cfg
}

func coverageNotes(r placement.Report) []string {
	notes := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		notes = append(notes, issue.Message)
	}
	return notes
}
