// Package config loads export settings from a YAML file and FAIXA_* environment variables.
//
// Precedence, lowest first: Default, the YAML file, the environment. Command-line flags are
// applied on top by the caller.
//
//	banner:
//	  width_cm: 300
//	  height_cm: 100
//	portrait: false
//	margin_mm: 0
//	bleed_mm: 3
//	dpi: 300
//	naming: grid        # grid | numeric
//	labeler: none       # none | grid | reserved
//	page_labels: true
//	format: png         # png | jpeg
//	jpeg_quality: 92
//	filter: bilinear    # nearest | bilinear | catmullrom
//	prefix: faixa
//	combined: false
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gardar/faixa/pkg/bundle"
	"github.com/gardar/faixa/pkg/export"
	"github.com/gardar/faixa/pkg/geometry"
	"github.com/gardar/faixa/pkg/raster"
	"github.com/gardar/faixa/pkg/sheetpdf"
	"github.com/gardar/faixa/pkg/tile"
)

// Config is the full set of export settings.
type Config struct {
	Banner      geometry.Banner `yaml:"banner"`
	Portrait    bool            `yaml:"portrait"`
	MarginMm    float64         `yaml:"margin_mm"`
	BleedMm     float64         `yaml:"bleed_mm"`
	DPI         float64         `yaml:"dpi"`
	Naming      string          `yaml:"naming"`
	Labeler     string          `yaml:"labeler"`
	PageLabels  bool            `yaml:"page_labels"`
	Format      string          `yaml:"format"`
	JPEGQuality int             `yaml:"jpeg_quality"`
	Filter      string          `yaml:"filter"`
	Prefix      string          `yaml:"prefix"`
	Combined    bool            `yaml:"combined"`
	Tool        string          `yaml:"tool"`
}

// Default returns the settings used when nothing is configured. The banner size has no
// default and must be set.
func Default() *Config {
	return &Config{
		BleedMm:     sheetpdf.DefaultConfig().BleedMm,
		DPI:         export.DefaultDPI,
		Naming:      string(sheetpdf.NamingGrid),
		Labeler:     tile.LabelNone,
		PageLabels:  true,
		Format:      raster.FormatPNG,
		JPEGQuality: raster.DefaultJPEGQuality,
		Filter:      raster.FilterBilinear,
		Prefix:      bundle.DefaultPrefix,
	}
}

// Load reads the YAML file at path over the defaults, then applies the environment.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from FAIXA_* environment variables.
func (c *Config) ApplyEnv() error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"FAIXA_WIDTH_CM", &c.Banner.WidthCm},
		{"FAIXA_HEIGHT_CM", &c.Banner.HeightCm},
		{"FAIXA_DPI", &c.DPI},
		{"FAIXA_BLEED_MM", &c.BleedMm},
		{"FAIXA_MARGIN_MM", &c.MarginMm},
	}
	for _, f := range floats {
		s := os.Getenv(f.key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", f.key, s, err)
		}
		*f.dst = v
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"FAIXA_PORTRAIT", &c.Portrait},
		{"FAIXA_PAGE_LABELS", &c.PageLabels},
		{"FAIXA_COMBINED", &c.Combined},
	}
	for _, b := range bools {
		s := os.Getenv(b.key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", b.key, s, err)
		}
		*b.dst = v
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"FAIXA_NAMING", &c.Naming},
		{"FAIXA_LABELER", &c.Labeler},
		{"FAIXA_FORMAT", &c.Format},
		{"FAIXA_FILTER", &c.Filter},
		{"FAIXA_PREFIX", &c.Prefix},
		{"FAIXA_TOOL", &c.Tool},
	}
	for _, s := range strs {
		if v := os.Getenv(s.key); v != "" {
			*s.dst = v
		}
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Banner.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := geometry.ValidateMargin(geometry.A4(c.Portrait), c.MarginMm); err != nil {
		errs = append(errs, err)
	}
	if err := sheetpdf.ValidateBleed(c.BleedMm); err != nil {
		errs = append(errs, err)
	}
	if !(c.DPI > 0) {
		errs = append(errs, fmt.Errorf("%w: got %g", export.ErrInvalidDPI, c.DPI))
	}
	switch sheetpdf.Naming(c.Naming) {
	case sheetpdf.NamingGrid, sheetpdf.NamingNumeric:
	default:
		errs = append(errs, fmt.Errorf("unknown naming %q", c.Naming))
	}
	if _, err := tile.LabelerByName(c.Labeler); err != nil {
		errs = append(errs, err)
	}
	if c.Format == "" {
		errs = append(errs, fmt.Errorf("%w %q", raster.ErrUnsupportedFormat, c.Format))
	} else if err := raster.ValidateFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.JPEGQuality < 0 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg quality must be within 0..100, got %d", c.JPEGQuality))
	}
	if _, err := raster.InterpolatorByName(c.Filter); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ExportOptions converts the settings into export options. Call Validate first.
func (c *Config) ExportOptions() (export.Options, error) {
	labeler, err := tile.LabelerByName(c.Labeler)
	if err != nil {
		return export.Options{}, err
	}
	interp, err := raster.InterpolatorByName(c.Filter)
	if err != nil {
		return export.Options{}, err
	}

	opts := export.DefaultOptions()
	opts.Banner = c.Banner
	opts.Portrait = c.Portrait
	opts.MarginMm = c.MarginMm
	opts.BleedMm = c.BleedMm
	opts.DPI = c.DPI
	opts.Naming = sheetpdf.Naming(c.Naming)
	opts.Labeler = labeler
	opts.PageLabels = c.PageLabels
	opts.Format = strings.ToLower(c.Format)
	opts.JPEGQuality = c.JPEGQuality
	opts.Interpolator = interp
	opts.Prefix = c.Prefix
	opts.Combined = c.Combined
	opts.Tool = c.Tool
	return opts, nil
}
