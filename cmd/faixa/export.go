package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/gardar/faixa/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export IMAGE",
	Short: "Export every sheet as a PDF inside a ZIP archive",
	Long: `Renders the placed image at print resolution, cuts it into A4 sheets and writes
<prefix>_<width>x<height>_<date>.zip with one PDF per sheet, the assembly guide and
informacoes.txt.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	addBannerFlags(exportCmd)
	addExportFlags(exportCmd)
	addPlacementFlags(exportCmd)
	exportCmd.Flags().StringP("output-dir", "o", ".", "Directory the archive is written to")
	exportCmd.Flags().Bool("no-progress", false, "Do not draw the progress bar")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log, err := newLogger("export", "image", args[0])
	if err != nil {
		return err
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	opts, err := cfg.ExportOptions()
	if err != nil {
		return err
	}

	src, err := loadImage(ctx, args[0])
	if err != nil {
		return err
	}
	placed, vp, err := placementFromFlags(cmd, cfg.Banner, src.Size)
	if err != nil {
		return err
	}
	opts.Placement = &placed
	opts.Viewport = vp
	opts.Logger = log

	if !mustGetBool(cmd, "no-progress") {
		bar := progressbar.NewOptions(100,
			progressbar.OptionSetDescription("Exportando"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionFullWidth(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Close()
		opts.Progress = func(percent int, stage export.Stage) {
			bar.Describe(stageDescriptions[stage])
			_ = bar.Set(percent)
		}
	}

	res, err := export.NewSession(src, opts).Run(ctx)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	outDir := mustGetString(cmd, "output-dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := filepath.Join(outDir, res.FileName)
	if err := os.WriteFile(outPath, res.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	fmt.Printf("Archive: %s\n", outPath)
	fmt.Printf("Sheets:  %d (%s columns x rows)\n", res.Grid.Total, res.Grid.Distribution())
	for _, issue := range res.Coverage.Issues {
		fmt.Printf("Warning: %s\n", issue.Message)
	}
	return nil
}

var stageDescriptions = map[export.Stage]string{
	export.StageRender:  "Renderizando",
	export.StageTiles:   "Gerando folhas",
	export.StageGuide:   "Guia de montagem",
	export.StageArchive: "Compactando",
	export.StageNaming:  "Finalizando",
	export.StageDone:    "Concluído",
}
