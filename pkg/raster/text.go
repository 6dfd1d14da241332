package raster

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error
)

// BoldFace returns the bundled bold face at a pixel size.
func BoldFace(sizePx float64) (font.Face, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	if boldErr != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", boldErr)
	}
	if sizePx < 1 {
		sizePx = 1
	}
	// At 72 DPI a point is a pixel.
	face, err := opentype.NewFace(boldFont, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// DrawCentered draws s centred horizontally and vertically on (cx, cy), blending c over dst.
func DrawCentered(dst draw.Image, s string, face font.Face, cx, cy int, c color.Color) {
	w := font.MeasureString(face, s).Ceil()
	m := face.Metrics()
	// Middle of the cap-height box sits on cy.
	baseline := cy + (m.Ascent.Ceil()-m.Descent.Ceil())/2

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(cx-w/2, baseline),
	}
	d.DrawString(s)
}
