package placement

import (
	"fmt"

	"github.com/gardar/faixa/pkg/geometry"
)

// IssueKind classifies a coverage issue.
type IssueKind string

const (
	Uncovered IssueKind = "uncovered"
	Overflow  IssueKind = "overflow"
)

// Edge names a banner edge.
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeTop    Edge = "top"
	EdgeRight  Edge = "right"
	EdgeBottom Edge = "bottom"
)

// Issue is one coverage problem. Uncovered issues carry the Edge and the gap in cm;
// the single Overflow issue carries the summed spill-over per axis.
type Issue struct {
	Kind             IssueKind `json:"kind"`
	Edge             Edge      `json:"edge,omitempty"`
	DistanceCm       float64   `json:"distance_cm,omitempty"`
	OverflowWidthCm  float64   `json:"overflow_width_cm,omitempty"`
	OverflowHeightCm float64   `json:"overflow_height_cm,omitempty"`
	Message          string    `json:"message"`
}

// Waste is how far the image spills past each banner edge, in viewport pixels.
type Waste struct {
	Left, Top, Right, Bottom float64
}

// Report is the advisory coverage diagnosis of a placement. It never blocks an export:
// uncovered areas are printed as white background.
type Report struct {
	FullyCovered bool    `json:"fully_covered"`
	Issues       []Issue `json:"issues"`
	Bounds       Rect    `json:"-"`
	Waste        Waste   `json:"-"`
}

// Has reports whether the report contains an issue of the kind (and edge, for Uncovered).
func (r Report) Has(kind IssueKind, edge Edge) bool {
	for _, is := range r.Issues {
		if is.Kind == kind && (kind == Overflow || is.Edge == edge) {
			return true
		}
	}
	return false
}

// Sub-pixel noise below this is ignored when comparing edges.
const edgeEpsilon = 1e-9

// CheckCoverage reports every banner edge the image does not reach and, as one aggregated
// issue, any part of the image that lies outside the banner.
func CheckCoverage(banner geometry.Banner, p Placed, vp Viewport) Report {
	bw, bh := vp.BannerSize(banner)
	r := p.Rect(banner, vp)

	var issues []Issue
	uncovered := func(edge Edge, gapPx float64, label string) {
		if gapPx <= edgeEpsilon {
			return
		}
		cm := vp.ToCm(gapPx)
		issues = append(issues, Issue{
			Kind:       Uncovered,
			Edge:       edge,
			DistanceCm: cm,
			Message:    fmt.Sprintf("Área %s da faixa não coberta (%.1fcm)", label, cm),
		})
	}
	uncovered(EdgeLeft, r.X, "esquerda")
	uncovered(EdgeTop, r.Y, "superior")
	uncovered(EdgeRight, bw-r.Right(), "direita")
	uncovered(EdgeBottom, bh-r.Bottom(), "inferior")

	waste := Waste{
		Left:   clampPositive(-r.X),
		Top:    clampPositive(-r.Y),
		Right:  clampPositive(r.Right() - bw),
		Bottom: clampPositive(r.Bottom() - bh),
	}
	wastedW := waste.Left + waste.Right
	wastedH := waste.Top + waste.Bottom
	if wastedW > 0 || wastedH > 0 {
		wcm, hcm := vp.ToCm(wastedW), vp.ToCm(wastedH)
		issues = append(issues, Issue{
			Kind:             Overflow,
			OverflowWidthCm:  wcm,
			OverflowHeightCm: hcm,
			Message:          fmt.Sprintf("Parte da imagem está fora da área útil (%.1fcm × %.1fcm)", wcm, hcm),
		})
	}

	return Report{
		FullyCovered: len(issues) == 0,
		Issues:       issues,
		Bounds:       r,
		Waste:        waste,
	}
}

func clampPositive(v float64) float64 {
	if v <= edgeEpsilon {
		return 0
	}
	return v
}
