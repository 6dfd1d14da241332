package tile

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/font"

	"github.com/gardar/faixa/pkg/raster"
)

// Labeler decorates a tile after extraction.
type Labeler interface {
	Name() string
	Label(t *Tile) error
}

// Labeler names accepted by LabelerByName.
const (
	LabelNone     = "none"
	LabelGrid     = "grid"
	LabelReserved = "reserved"
)

// LabelerByName returns the labeler configured under name.
func LabelerByName(name string) (Labeler, error) {
	switch strings.ToLower(name) {
	case "", LabelNone:
		return NoLabel{}, nil
	case LabelGrid:
		return &GridLabeler{}, nil
	case LabelReserved:
		return &ReservedLabeler{}, nil
	default:
		return nil, fmt.Errorf("unknown labeler %q", name)
	}
}

// NoLabel leaves tiles untouched.
type NoLabel struct{}

func (NoLabel) Name() string      { return LabelNone }
func (NoLabel) Label(*Tile) error { return nil }

var burnColor = color.NRGBA{R: 0, G: 0, B: 0, A: 128}

// GridLabeler burns the L{row}C{col} identifier into the raster near the bottom-right
// corner, in half-transparent black, so the printed sheet carries its own position.
// It is not safe for concurrent use.
type GridLabeler struct {
	face     font.Face
	faceSize int
}

func (*GridLabeler) Name() string { return LabelGrid }

func (g *GridLabeler) Label(t *Tile) error {
	b := t.Image.Bounds()
	w, h := b.Dx(), b.Dy()

	size := int(math.Round(float64(h) * 0.03))
	if g.face == nil || g.faceSize != size {
		face, err := raster.BoldFace(float64(size))
		if err != nil {
			return err
		}
		if g.face != nil {
			g.face.Close()
		}
		g.face, g.faceSize = face, size
	}

	cx := b.Min.X + int(math.Round(float64(w)-float64(w)*0.10))
	cy := b.Min.Y + int(math.Round(float64(h)-float64(h)*0.05))
	raster.DrawCentered(t.Image, t.ID, g.face, cx, cy, burnColor)
	return nil
}

// ReservedLabeler burns nothing into the raster, keeping the corner free for a future
// machine-readable code. It stamps a traceable marker instead, carried in page metadata.
type ReservedLabeler struct {
	Now func() time.Time
}

func (*ReservedLabeler) Name() string { return LabelReserved }

func (r *ReservedLabeler) Label(t *Tile) error {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	t.Marker = MarkerCode(t.Row, t.Col, now())
	return nil
}

// MarkerCode returns BAN-{row+1}-{col+1}-{unix millis in base 36}.
func MarkerCode(row, col int, at time.Time) string {
	return fmt.Sprintf("BAN-%d-%d-%s", row+1, col+1, strconv.FormatInt(at.UnixMilli(), 36))
}
