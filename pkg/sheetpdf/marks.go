package sheetpdf

import (
	"codeberg.org/go-pdf/fpdf"
)

// drawCropMarks draws two short black segments at each corner of the bleed box, running
// outward from the corner towards the page edge.
func drawCropMarks(pdf *fpdf.Fpdf, bleed float64, marks CropMarkConfig) {
	pageW, pageH := pdf.GetPageSize()
	l := marks.Length

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(marks.Width)

	corners := []struct {
		x, y   float64
		dx, dy float64 // outward direction
	}{
		{bleed, bleed, -1, -1},
		{pageW - bleed, bleed, 1, -1},
		{bleed, pageH - bleed, -1, 1},
		{pageW - bleed, pageH - bleed, 1, 1},
	}
	for _, c := range corners {
		pdf.Line(c.x+c.dx*l, c.y, c.x, c.y)
		pdf.Line(c.x, c.y+c.dy*l, c.x, c.y)
	}
}
