package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gardar/faixa/pkg/geometry"
	"github.com/gardar/faixa/pkg/placement"
	"github.com/gardar/faixa/pkg/raster"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [IMAGE]",
	Short: "Write a PNG preview of the sheet distribution",
	Long: `Draws the banner at preview scale with every sheet outlined and labelled. When an
image is given it is drawn at its placement, clipped to the banner.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLayout,
}

func init() {
	addBannerFlags(layoutCmd)
	addPlacementFlags(layoutCmd)
	layoutCmd.Flags().StringP("output", "o", raster.PreviewFileName, "Preview PNG path")
	layoutCmd.Flags().Bool("labels", true, "Write L{row}C{col} on every sheet")
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	vp, err := placement.ViewportForZoom(mustGetFloat64(cmd, "zoom"))
	if err != nil {
		return err
	}

	in := raster.PreviewInput{
		Banner:     cfg.Banner,
		Paper:      geometry.A4(cfg.Portrait),
		MarginMm:   cfg.MarginMm,
		Viewport:   vp,
		ShowLabels: mustGetBool(cmd, "labels"),
	}
	if len(args) == 1 {
		if err := cfg.Banner.Validate(); err != nil {
			return err
		}
		src, err := loadImage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		p, _, err := placementFromFlags(cmd, cfg.Banner, src.Size)
		if err != nil {
			return err
		}
		in.Placed = &p
		in.Source = src.Image
	}

	img, err := raster.RenderPreview(in)
	if err != nil {
		return err
	}

	out := mustGetString(cmd, "output")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	if err := raster.Encode(f, img, raster.FormatPNG, 0); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write preview file: %w", err)
	}
	fmt.Printf("Preview: %s\n", out)
	return nil
}
