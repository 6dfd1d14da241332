package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gardar/faixa/pkg/config"
	"github.com/gardar/faixa/pkg/geometry"
	"github.com/gardar/faixa/pkg/placement"
	"github.com/gardar/faixa/pkg/raster"
)

// mustGetBool gets a bool flag value or panics if the flag doesn't exist.
// This is appropriate for flags defined in init() - errors indicate programming bugs.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetInt gets an int flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetString gets a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetFloat64 gets a float64 flag value or panics if the flag doesn't exist.
func mustGetFloat64(cmd *cobra.Command, name string) float64 {
	val, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// addBannerFlags registers the flags every command needs to build a grid.
func addBannerFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("width", 0, "Banner width in cm")
	cmd.Flags().Float64("height", 0, "Banner height in cm")
	cmd.Flags().Bool("portrait", false, "Use portrait sheets (default landscape)")
	cmd.Flags().Float64("margin", 0, "Overlap between neighbouring sheets in mm")
}

// addExportFlags registers the flags that only matter when producing files.
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("bleed", 3, "Bleed around the printable area in mm")
	cmd.Flags().Float64("dpi", 300, "Print resolution")
	cmd.Flags().String("naming", "grid", "Sheet file naming: grid (folha_L1C2.pdf) or numeric (folha_02.pdf)")
	cmd.Flags().String("labeler", "none", "Raster label: none, grid or reserved")
	cmd.Flags().Bool("page-labels", true, "Add the L{row}C{col} label box layer to every sheet")
	cmd.Flags().String("format", "png", "Sheet image encoding: png or jpeg")
	cmd.Flags().Int("jpeg-quality", raster.DefaultJPEGQuality, "JPEG quality (1-100)")
	cmd.Flags().String("filter", "bilinear", "Resampling filter: nearest, bilinear or catmullrom")
	cmd.Flags().String("prefix", "faixa", "Archive name prefix")
	cmd.Flags().Bool("combined", false, "Also add todas_as_folhas.pdf with every sheet")
}

// addPlacementFlags registers the flags that position the image over the banner.
func addPlacementFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("auto-fit", true, "Scale the image to fill the banner (otherwise 80% of the banner)")
	cmd.Flags().Int("scale-percent", 0, "Scale slider position, 10-200% of 80% banner width (0 = unset)")
	cmd.Flags().Float64("offset-x", 0, "Horizontal image offset from the banner centre in cm")
	cmd.Flags().Float64("offset-y", 0, "Vertical image offset from the banner centre in cm")
	cmd.Flags().Float64("zoom", 100, "Preview zoom in percent (100 = 5 px/cm)")
}

// loadSettings merges the config file, the environment and any flags the user set.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("width") {
		cfg.Banner.WidthCm = mustGetFloat64(cmd, "width")
	}
	if f.Changed("height") {
		cfg.Banner.HeightCm = mustGetFloat64(cmd, "height")
	}
	if f.Changed("portrait") {
		cfg.Portrait = mustGetBool(cmd, "portrait")
	}
	if f.Changed("margin") {
		cfg.MarginMm = mustGetFloat64(cmd, "margin")
	}
	if f.Lookup("bleed") == nil {
		return cfg, nil
	}
	if f.Changed("bleed") {
		cfg.BleedMm = mustGetFloat64(cmd, "bleed")
	}
	if f.Changed("dpi") {
		cfg.DPI = mustGetFloat64(cmd, "dpi")
	}
	if f.Changed("naming") {
		cfg.Naming = mustGetString(cmd, "naming")
	}
	if f.Changed("labeler") {
		cfg.Labeler = mustGetString(cmd, "labeler")
	}
	if f.Changed("page-labels") {
		cfg.PageLabels = mustGetBool(cmd, "page-labels")
	}
	if f.Changed("format") {
		cfg.Format = mustGetString(cmd, "format")
	}
	if f.Changed("jpeg-quality") {
		cfg.JPEGQuality = mustGetInt(cmd, "jpeg-quality")
	}
	if f.Changed("filter") {
		cfg.Filter = mustGetString(cmd, "filter")
	}
	if f.Changed("prefix") {
		cfg.Prefix = mustGetString(cmd, "prefix")
	}
	if f.Changed("combined") {
		cfg.Combined = mustGetBool(cmd, "combined")
	}
	return cfg, nil
}

// loadImage decodes the image file at path.
func loadImage(ctx context.Context, path string) (*raster.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, err := raster.Decode(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// placementFromFlags builds the image placement the flags describe, in the zoom viewport.
func placementFromFlags(cmd *cobra.Command, banner geometry.Banner, img placement.Image) (placement.Placed, placement.Viewport, error) {
	vp, err := placement.ViewportForZoom(mustGetFloat64(cmd, "zoom"))
	if err != nil {
		return placement.Placed{}, placement.Viewport{}, err
	}

	var p placement.Placed
	if mustGetBool(cmd, "auto-fit") {
		p, err = placement.AutoFit(banner, img, vp)
	} else {
		p, err = placement.Default(banner, img, vp)
	}
	if err != nil {
		return placement.Placed{}, placement.Viewport{}, err
	}

	if pct := mustGetInt(cmd, "scale-percent"); pct != 0 {
		p = placement.WithScalePercent(p, banner, vp, pct)
	}
	p = placement.Drag(p, vp.ToPixels(mustGetFloat64(cmd, "offset-x")), vp.ToPixels(mustGetFloat64(cmd, "offset-y")))
	return p, vp, nil
}
