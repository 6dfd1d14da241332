package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gardar/faixa/pkg/placement"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage IMAGE",
	Short: "Check whether a placed image covers the whole banner",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoverage,
}

func init() {
	addBannerFlags(coverageCmd)
	addPlacementFlags(coverageCmd)
	rootCmd.AddCommand(coverageCmd)
}

func runCoverage(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Banner.Validate(); err != nil {
		return err
	}
	src, err := loadImage(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	p, vp, err := placementFromFlags(cmd, cfg.Banner, src.Size)
	if err != nil {
		return err
	}

	report := placement.CheckCoverage(cfg.Banner, p, vp)
	w, h := p.Size()
	fmt.Printf("Image:    %dx%d px, shown at %.1fcm x %.1fcm\n", src.Size.Width, src.Size.Height, vp.ToCm(w), vp.ToCm(h))
	fmt.Printf("Offset:   %.1fcm, %.1fcm from the banner centre\n", vp.ToCm(p.OffsetX), vp.ToCm(p.OffsetY))
	fmt.Printf("Scale:    %d%%\n", placement.ScalePercent(p, cfg.Banner, vp))
	if report.FullyCovered {
		fmt.Println("Coverage: complete")
		return nil
	}
	fmt.Println("Coverage: incomplete")
	for _, issue := range report.Issues {
		fmt.Printf("  - %s\n", issue.Message)
	}
	return nil
}
