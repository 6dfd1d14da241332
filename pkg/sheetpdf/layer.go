package sheetpdf

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/faixa/pkg/geometry"
)

const (
	labelInset   = 10 // pt from the top and right page edges
	labelPadding = 4
	labelBorder  = 1.5
	labelFill    = 0.8 // white box opacity
	labelInk     = 0.9 // border and text opacity
)

// Checkerboard accent colours, indexed by (row+col)%2.
var labelColors = [2][3]int{
	{77, 171, 247},
	{51, 153, 240},
}

// drawLabelLayer draws the sheet identifier box in the top-right corner on its own
// optional-content layer.
func drawLabelLayer(pdf *fpdf.Fpdf, cell geometry.Cell, layerName string, fontConfig FontConfig) error {
	label, err := latin1(cell.ID())
	if err != nil {
		return err
	}

	layer := pdf.AddLayer(layerName, true)
	pdf.BeginLayer(layer)
	defer pdf.EndLayer()

	pdf.SetFont(fontConfig.Name, fontConfig.Style, fontConfig.Size)
	pageW, _ := pdf.GetPageSize()

	textW := pdf.GetStringWidth(label)
	textH := fontConfig.Height()
	boxW := textW + 2*labelPadding
	boxH := textH + 2*labelPadding
	boxX := pageW - boxW - labelInset
	boxY := float64(labelInset)

	rgb := labelColors[cell.CheckerParity()]

	pdf.SetAlpha(labelFill, "Normal")
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(boxX, boxY, boxW, boxH, "F")

	pdf.SetAlpha(labelInk, "Normal")
	pdf.SetDrawColor(rgb[0], rgb[1], rgb[2])
	pdf.SetLineWidth(labelBorder)
	pdf.Rect(boxX, boxY, boxW, boxH, "D")

	// Baseline sits on the bottom padding, descenders run into it.
	pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
	pdf.Text(boxX+labelPadding, boxY+boxH-labelPadding, label)

	pdf.SetAlpha(1, "Normal")

	if pdf.Err() {
		return fmt.Errorf("failed to draw label %s: %w", cell.ID(), pdf.Error())
	}
	return nil
}

// latin1 converts text to ISO-8859-1 for the PDF core fonts.
func latin1(s string) (string, error) {
	out, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return "", fmt.Errorf("text %q cannot be encoded as Latin-1: %w", s, err)
	}
	return out, nil
}
