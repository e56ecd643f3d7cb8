// Package cli implements the corpuslint command line.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpuslint/internal/logger"
)

// version is set by the binary at startup.
var version = "dev"

// Global flags.
var (
	verbose   bool
	rulesPath string
	dataDir   string
)

// ErrFatalFindings is returned by --fail-on-fatal when a report has Fatal findings.
var ErrFatalFindings = errors.New("report has fatal findings")

var rootCmd = &cobra.Command{
	Use:   "corpuslint",
	Short: "Validate position-ordered decomposition corpora",
	Long: `corpuslint checks a decomposition corpus before it is used downstream.

It verifies that every item is tiled exactly by its units, that each text
is realised consistently, that adjacent units are not fused pairs in
disguise, that structural rules hold, and that generated phrases only use
material introduced at or before their owning position.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "rule file (default ~/.corpuslint/rules.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "report history directory (default ~/.corpuslint/data)")
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}
