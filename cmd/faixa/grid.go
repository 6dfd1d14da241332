package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gardar/faixa/pkg/geometry"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Show how many sheets a banner needs",
	Long: `Prints the sheet grid for a banner size. With --sheets CxR the computation runs the
other way and prints the banner size that C columns by R rows of sheets cover.`,
	Args: cobra.NoArgs,
	RunE: runGrid,
}

func init() {
	addBannerFlags(gridCmd)
	gridCmd.Flags().String("sheets", "", "Sheet counts as CxR, e.g. 4x3")
	rootCmd.AddCommand(gridCmd)
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	paper := geometry.A4(cfg.Portrait)

	banner := cfg.Banner
	if s := mustGetString(cmd, "sheets"); s != "" {
		cols, rows, err := parseSheets(s)
		if err != nil {
			return err
		}
		banner, err = geometry.BannerFromSheets(cols, rows, paper, cfg.MarginMm)
		if err != nil {
			return err
		}
	}

	grid, err := geometry.ComputeGrid(banner, paper, cfg.MarginMm)
	if err != nil {
		return err
	}

	fmt.Printf("Banner:       %scm x %scm\n", geometry.FormatCm(banner.WidthCm), geometry.FormatCm(banner.HeightCm))
	fmt.Printf("Paper:        A4 %s\n", paper.Description())
	fmt.Printf("Sheets:       %d\n", grid.Total)
	fmt.Printf("Distribution: %s (columns x rows)\n", grid.Distribution())
	fmt.Printf("Effective:    %.1fcm x %.1fcm per sheet\n", grid.EffectiveWidthCm, grid.EffectiveHeightCm)
	fmt.Printf("Efficiency:   %d%%\n", grid.EfficiencyPercent)
	return nil
}

// parseSheets reads "CxR".
func parseSheets(s string) (cols, rows int, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --sheets %q, expected CxR", s)
	}
	cols, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column count in %q: %w", s, err)
	}
	rows, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row count in %q: %w", s, err)
	}
	return cols, rows, nil
}
