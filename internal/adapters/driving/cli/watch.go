package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpuslint/internal/logger"
	"github.com/custodia-labs/corpuslint/internal/watch"
)

// watch flags.
var (
	watchPhrases  string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <corpus>",
	Short: "Re-validate whenever the corpus, phrases or rules change",
	Long: `Validate a corpus, then keep watching the corpus file, the phrase
file and the rule file. Every change triggers a new run; a change to the
rule file reloads the rules first.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchPhrases, "phrases", "", "generated phrase file to gate")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before re-validating")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	corpusPath := args[0]

	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}

	run := func() {
		report, err := a.validateFiles(cmd, corpusPath, watchPhrases)
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			return
		}
		newPrinter(cmd.OutOrStdout()).Report(report)
	}
	run()

	rulesFile, err := filepath.Abs(a.ruleStore.Path())
	if err != nil {
		return fmt.Errorf("resolving rule file: %w", err)
	}

	w, err := watch.New(
		[]string{corpusPath, watchPhrases, rulesFile},
		func(_ context.Context, changed []string) {
			for _, p := range changed {
				if p != rulesFile {
					continue
				}
				reloaded, err := newApp(appOptions{})
				if err != nil {
					cmd.PrintErrf("Error: %v\n", err)
					return
				}
				a = reloaded
				logger.Info("Rules reloaded from %s", p)
			}
			cmd.Println()
			run()
		},
		watch.WithDebounce(watchDebounce),
	)
	if err != nil {
		return fmt.Errorf("starting watch: %w", err)
	}

	cmd.PrintErrf("Watching %d files, press Ctrl+C to stop\n", len(w.Files()))
	return w.Run(cmd.Context())
}
