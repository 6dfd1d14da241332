// Package tile cuts the full-resolution banner composite into paper-sized sheet rasters.
//
// Every tile is exactly one sheet in pixels. The clamped source region is copied to the
// tile's top-left corner and the rest stays white, so partial edge sheets keep the paper
// size. Tiles are produced strictly in row-major order.
package tile

import (
	"context"
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/draw"

	"github.com/gardar/faixa/pkg/geometry"
	"github.com/gardar/faixa/pkg/raster"
)

// Tile is one sheet's raster.
type Tile struct {
	geometry.Cell
	Index  int             // 1-based, row-major
	ID     string          // L{row+1}C{col+1}
	Source image.Rectangle // region of the full raster, clamped; may be empty
	Image  *image.RGBA     // paper-sized, white padded
	Marker string          // traceability code set by ReservedLabeler
}

// Config holds the optional collaborators of an Extractor.
type Config struct {
	Labeler Labeler      // nil means NoLabel
	Logger  hclog.Logger // nil means no logging
}

// Extractor cuts tiles out of one full banner raster.
type Extractor struct {
	full    *image.RGBA
	layout  geometry.PixelLayout
	labeler Labeler
	logger  hclog.Logger
	buf     *image.RGBA
}

// NewExtractor prepares extraction from full using the sheet layout in pixels.
func NewExtractor(full *image.RGBA, layout geometry.PixelLayout, cfg Config) *Extractor {
	if cfg.Labeler == nil {
		cfg.Labeler = NoLabel{}
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	return &Extractor{
		full:    full,
		layout:  layout,
		labeler: cfg.Labeler,
		logger:  cfg.Logger,
	}
}

// Each visits every tile of the grid in row-major order. The tile image buffer is reused
// between calls: fn must not retain t.Image after it returns. A non-nil error from fn or
// from the labeler stops the walk.
func (e *Extractor) Each(ctx context.Context, grid geometry.Grid, fn func(t *Tile) error) error {
	if e.buf == nil {
		e.buf = image.NewRGBA(e.layout.PaperRect())
	}
	fb := e.full.Bounds()

	for _, c := range grid.Cells() {
		if err := ctx.Err(); err != nil {
			return err
		}
		t, err := e.extract(c, grid.Columns, fb.Dx(), fb.Dy())
		if err != nil {
			return err
		}
		if err := fn(t); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) extract(c geometry.Cell, columns, fullW, fullH int) (*Tile, error) {
	src := e.layout.SourceRect(c, fullW, fullH)

	raster.Fill(e.buf, e.buf.Bounds(), image.White)
	if !src.Empty() {
		dst := image.Rectangle{Max: src.Size()}
		draw.Draw(e.buf, dst, e.full, e.full.Bounds().Min.Add(src.Min), draw.Src)
	}

	t := &Tile{
		Cell:   c,
		Index:  c.Index(columns),
		ID:     c.ID(),
		Source: src,
		Image:  e.buf,
	}
	e.logger.Trace("extracted tile", "sheet", t.ID, "source", src.String())

	if err := e.labeler.Label(t); err != nil {
		return nil, fmt.Errorf("failed to label sheet %s: %w", t.ID, err)
	}
	return t, nil
}

// ExtractTiles returns every tile with its own copy of the raster.
func ExtractTiles(ctx context.Context, full *image.RGBA, grid geometry.Grid, layout geometry.PixelLayout, cfg Config) ([]Tile, error) {
	e := NewExtractor(full, layout, cfg)
	tiles := make([]Tile, 0, grid.Total)
	err := e.Each(ctx, grid, func(t *Tile) error {
		cp := *t
		cp.Image = image.NewRGBA(t.Image.Bounds())
		copy(cp.Image.Pix, t.Image.Pix)
		tiles = append(tiles, cp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tiles, nil
}
