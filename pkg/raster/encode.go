package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
)

// Tile encodings.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// DefaultJPEGQuality is used when a JPEG encoding has no explicit quality.
const DefaultJPEGQuality = 92

// ErrUnsupportedFormat is returned for tile encodings other than PNG and JPEG.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ValidateFormat accepts the names Encode understands; empty means PNG.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case "", FormatPNG, FormatJPEG, "jpg":
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
}

var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Encode writes img as PNG or JPEG. quality only applies to JPEG.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	switch strings.ToLower(format) {
	case "", FormatPNG:
		if err := pngEncoder.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
	case FormatJPEG, "jpg":
		if quality <= 0 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("failed to encode jpeg: %w", err)
		}
	default:
		return ValidateFormat(format)
	}
	return nil
}

// EncodeBytes is Encode into a new buffer.
func EncodeBytes(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
