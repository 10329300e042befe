// Command portfolio shows a project catalog as a rotating 3D carousel, with a
// terminal fallback and catalog tooling.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
	cfg    appConfig
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Architecture portfolio carousel",
	Long: `portfolio renders a collection of architecture projects as a ring or a
sphere of cards that rotates, highlights on hover and opens a project on
click.

Run without a catalog to browse the built-in sample projects.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = loadConfig(configPath, nil)
		if err != nil {
			return err
		}
		return applyFlags(cmd, &cfg)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().String("catalog", "", "project catalog (YAML or JSON); empty uses the sample projects")

	rootCmd.AddCommand(runCmd, tuiCmd, validateCmd, layoutCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
