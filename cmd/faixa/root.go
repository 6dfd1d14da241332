package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gardar/faixa/pkg/logging"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "faixa",
	Short: "Split a banner image into printable A4 sheets",
	Long: `faixa computes how many A4 sheets a banner needs, places an image over the banner
and exports every sheet as a crop-marked, labelled PDF, bundled with an assembly
guide into a single ZIP archive.`,
	SilenceUsage: true,
}

func Execute() {
	// Ctrl-C cancels a running export between sheets
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); defaults to FAIXA_LOG_LEVEL or warn")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// newLogger builds the logger for one subcommand from --log-level and the environment.
func newLogger(command string, fields ...interface{}) (hclog.Logger, error) {
	opts, err := logging.OptionsFromEnv(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	opts.Output = os.Stderr
	return logging.ForCommand(logging.New("faixa", opts), command, fields...), nil
}
