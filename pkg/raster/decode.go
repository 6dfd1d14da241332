// Package raster decodes source images and renders banners into pixel buffers.
//
// RenderFullBanner produces the print-resolution composite every sheet is cut from.
// RenderPreview produces the small sheet-distribution image shown to users.
package raster

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	// Registered source formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gardar/faixa/pkg/placement"
)

var ErrDecode = errors.New("failed to decode image")

// Source is a decoded image together with its intrinsic size.
type Source struct {
	Image  image.Image
	Format string
	Size   placement.Image
}

// Decode reads an encoded image. Failures are returned, never swallowed.
func Decode(ctx context.Context, r io.Reader) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	src := &Source{
		Image:  img,
		Format: format,
		Size:   placement.Image{Width: b.Dx(), Height: b.Dy()},
	}
	if err := src.Size.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return src, nil
}

// DecodeConfig reads only the header of an encoded image.
func DecodeConfig(r io.Reader) (placement.Image, string, error) {
	cfg, format, err := image.DecodeConfig(bufio.NewReader(r))
	if err != nil {
		return placement.Image{}, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return placement.Image{Width: cfg.Width, Height: cfg.Height}, format, nil
}
