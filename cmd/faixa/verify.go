package main

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gardar/faixa/pkg/bundle"
	"github.com/gardar/faixa/pkg/sheetpdf"
)

var verifyCmd = &cobra.Command{
	Use:   "verify ZIP",
	Short: "Inspect an exported archive",
	Long: `Checks that an archive holds the manifest, the assembly guide and a copy of every
PDF under arquivos_pdf/, and prints the title and label layer of each sheet.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("layer", sheetpdf.DefaultConfig().LayerName, "Name of the label layer to look for")
	verifyCmd.Flags().String("dump", "", "Print the raw structure of this archive entry")
	verifyCmd.Flags().Int("dump-bytes", 2048, "Bytes printed by --dump")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	names, err := bundle.Entries(data)
	if err != nil {
		return err
	}

	if entry := mustGetString(cmd, "dump"); entry != "" {
		content, err := bundle.ReadEntry(data, entry)
		if err != nil {
			return err
		}
		sheetpdf.DumpStructure(os.Stdout, content, mustGetInt(cmd, "dump-bytes"))
		return nil
	}

	layer := mustGetString(cmd, "layer")
	var problems []string
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, required := range []string{bundle.ManifestFileName, sheetpdf.GuideFileName} {
		if !have[required] {
			problems = append(problems, "missing "+required)
		}
	}

	sheets := 0
	for _, name := range names {
		if strings.Contains(name, "/") || !strings.HasPrefix(name, "folha_") {
			continue
		}
		sheets++
		content, err := bundle.ReadEntry(data, name)
		if err != nil {
			return err
		}
		insp, err := sheetpdf.Inspect(content, layer)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		labels := "no label layer"
		if insp.HasLabels {
			labels = "label layer"
		}
		fmt.Printf("%-22s %-20s %s\n", name, insp.Title, labels)

		copyName := path.Join(bundle.DefaultFolder, name)
		copyData, err := bundle.ReadEntry(data, copyName)
		if err != nil {
			problems = append(problems, "missing "+copyName)
		} else if !bytes.Equal(copyData, content) {
			problems = append(problems, copyName+" differs from "+name)
		}
	}

	fmt.Printf("\n%d sheets, %d entries\n", sheets, len(names))
	if sheets == 0 {
		problems = append(problems, "no sheet PDFs")
	}
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Printf("Problem: %s\n", p)
		}
		return fmt.Errorf("archive has %d problem(s)", len(problems))
	}
	fmt.Println("OK")
	return nil
}
