package sheetpdf

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/faixa/pkg/geometry"
)

// GuideFileName is the archive name of the assembly guide.
const GuideFileName = "guia_de_montagem.pdf"

// GuideInfo describes the banner the guide explains.
type GuideInfo struct {
	Banner geometry.Banner
	Paper  geometry.Paper
	Grid   geometry.Grid
	Date   time.Time // zero = config.Now
}

var (
	accentColor = [3]int{16, 163, 127}
	mutedColor  = [3]int{128, 128, 128}
)

// Assembly steps printed on the guide.
var guideInstructions = []string{
	"1. Imprima todas as folhas PDF em papel A4.",
	"2. Corte as folhas seguindo as marcas de corte (linhas nos cantos).",
	"3. Disponha as folhas seguindo a numeração, da esquerda para a direita e de cima para baixo.",
	"4. Para melhor alinhamento, use as marcas de corte para posicionar as folhas.",
	"5. Fixe as folhas com fita adesiva, preferencialmente no verso.",
	"6. Para maior durabilidade, considere plastificar a faixa após a montagem.",
}

const (
	guideMargin      = 50.0
	guideMaxCell     = 30.0
	guideMinCell     = 4.0
	guideFooterSpace = 40.0

	// Below this side the sheet numbers no longer fit inside a cell.
	guideMinNumberedCell = 8.0
)

// AssemblyGuide builds the portrait instruction page: banner specs, the assembly steps
// and a miniature of the grid with every sheet numbered in row-major order.
func AssemblyGuide(info GuideInfo, config PageConfig) (Page, error) {
	if info.Grid.Columns < 1 || info.Grid.Rows < 1 {
		return Page{}, fmt.Errorf("%w: guide for a %dx%d grid", geometry.ErrInvalidSheetCount, info.Grid.Columns, info.Grid.Rows)
	}
	date := info.Date
	if date.IsZero() {
		date = config.now()
	}

	pdf := newDocument(true)
	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*guideMargin
	w := &guideWriter{pdf: pdf}

	y := guideMargin
	w.text(guideMargin, y, "B", 24, accentColor, "Guia de Montagem da Faixa")
	y += 40

	orientation := fmt.Sprintf("%s (%scm x %scm)", info.Paper.OrientationName(),
		geometry.FormatCm(info.Paper.WidthCm), geometry.FormatCm(info.Paper.HeightCm))
	specs := []string{
		fmt.Sprintf("Dimensões da Faixa: %scm x %scm",
			geometry.FormatCm(info.Banner.WidthCm), geometry.FormatCm(info.Banner.HeightCm)),
		fmt.Sprintf("Folhas A4: %d folhas em orientação %s", info.Grid.Total, orientation),
		fmt.Sprintf("Distribuição: %s (colunas x linhas)", info.Grid.Distribution()),
	}
	for _, line := range specs {
		w.text(guideMargin, y, "", 12, [3]int{}, line)
		y += 20
	}
	y += 20

	w.text(guideMargin, y, "B", 16, accentColor, "Instruções de Montagem")
	y += 30
	for _, line := range guideInstructions {
		w.text(guideMargin, y, "", 12, [3]int{}, line)
		y += 20
	}
	y += 20

	w.text(guideMargin, y, "B", 16, accentColor, "Diagrama de Montagem")
	y += 30

	availH := pageH - guideMargin - guideFooterSpace - y
	cell := GuideCellSize(info.Grid, contentW, availH)
	if cell <= 0 {
		return Page{}, errors.New("no room for the assembly diagram")
	}
	gridW := cell * float64(info.Grid.Columns)
	gridX := guideMargin + (contentW-gridW)/2
	w.grid(info.Grid, gridX, y, cell)
	y += cell*float64(info.Grid.Rows) + guideFooterSpace

	w.text(guideMargin, y, "", 10, mutedColor, "Guia gerado em: "+date.Format("02/01/2006"))

	if w.err != nil {
		return Page{}, fmt.Errorf("failed to write assembly guide: %w", w.err)
	}

	meta := config.Metadata
	pdf.SetTitle("Guia de Montagem da Faixa", true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)
	if meta.Producer != "" {
		pdf.SetProducer(meta.Producer, true)
	}
	pdf.SetCreationDate(date)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Page{}, fmt.Errorf("failed to generate assembly guide: %w", err)
	}
	config.logger().Debug("assembly guide written", "cell_pt", cell, "bytes", buf.Len())
	return Page{Name: GuideFileName, Data: buf.Bytes()}, nil
}

// GuideCellSize returns the side of one miniature sheet: at most 30pt, shrunk so the
// grid fits the available width and height. Sizes of 4pt and up are whole points;
// smaller grids get a fractional side so they never run off the page. Zero means
// there is no room at all.
func GuideCellSize(g geometry.Grid, availW, availH float64) float64 {
	if g.Columns < 1 || g.Rows < 1 || availW <= 0 || availH <= 0 {
		return 0
	}
	cell := math.Min(guideMaxCell, math.Min(availW/float64(g.Columns), availH/float64(g.Rows)))
	if cell >= guideMinCell {
		cell = math.Floor(cell)
	}
	return cell
}

// guideWriter keeps the first text encoding error so drawing code stays linear.
type guideWriter struct {
	pdf *fpdf.Fpdf
	err error
}

func (w *guideWriter) text(x, y float64, style string, size float64, rgb [3]int, s string) {
	if w.err != nil {
		return
	}
	encoded, err := latin1(s)
	if err != nil {
		w.err = err
		return
	}
	w.pdf.SetFont("Helvetica", style, size)
	w.pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
	w.pdf.Text(x, y, encoded)
}

func (w *guideWriter) grid(g geometry.Grid, x0, y0, cell float64) {
	pdf := w.pdf
	pdf.SetDrawColor(accentColor[0], accentColor[1], accentColor[2])
	pdf.SetLineWidth(math.Min(1, cell/8))

	numbered := cell >= guideMinNumberedCell
	fontSize := math.Min(10, cell*0.6)
	pdf.SetFont("Helvetica", "B", fontSize)
	pdf.SetTextColor(0, 0, 0)

	for _, c := range g.Cells() {
		x := x0 + float64(c.Col)*cell
		y := y0 + float64(c.Row)*cell
		pdf.Rect(x, y, cell, cell, "D")
		if !numbered {
			continue
		}

		num := strconv.Itoa(c.Index(g.Columns))
		tw := pdf.GetStringWidth(num)
		pdf.Text(x+(cell-tw)/2, y+(cell+fontSize*0.718)/2, num)
	}
}
