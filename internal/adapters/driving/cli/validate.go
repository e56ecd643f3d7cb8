package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui"
	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// validate flags.
var (
	validatePhrases     string
	validateJSON        bool
	validateSave        bool
	validateFailOnFatal bool
	validateWorkers     int
	validateBrowse      bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <corpus>",
	Short: "Validate a corpus and print the report",
	Long: `Validate a corpus file (JSON or YAML) and print its report.

With --phrases, generated phrases are also checked against the corpus so
that no phrase uses material introduced after its owning unit.

Examples:
  corpuslint validate corpus.json
  corpuslint validate corpus.yaml --phrases phrases.yaml --save
  corpuslint validate corpus.json --json --fail-on-fatal`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validatePhrases, "phrases", "", "generated phrase file to gate")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print the report as JSON")
	validateCmd.Flags().BoolVar(&validateSave, "save", false, "save the report to the history")
	validateCmd.Flags().BoolVar(&validateFailOnFatal, "fail-on-fatal", false, "exit non-zero when the report has fatal findings")
	validateCmd.Flags().IntVarP(&validateWorkers, "workers", "w", 0, "shards and gate workers (0 = from rules)")
	validateCmd.Flags().BoolVar(&validateBrowse, "browse", false, "open the report in the findings browser")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts := appOptions{workers: validateWorkers}
	switch {
	case validateSave:
		opts.history = historySQLite
	case validateBrowse:
		opts.history = historyMemory
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.validateFiles(cmd, args[0], validatePhrases)
	if err != nil {
		return err
	}

	if validateBrowse {
		browser, err := tui.NewApp(&tui.Ports{Reports: a.reports})
		if err != nil {
			return err
		}
		if err := browser.WithContext(cmd.Context()).WithReport(report).Run(); err != nil {
			return err
		}
	} else if err := printReport(cmd, report, validateJSON); err != nil {
		return err
	}

	if validateFailOnFatal && report.HasFatal() {
		return ErrFatalFindings
	}
	return nil
}

// validateFiles loads the corpus and the optional phrase file and runs
// every validator.
func (a *app) validateFiles(cmd *cobra.Command, corpusPath, phrasesPath string) (*domain.Report, error) {
	ctx := cmd.Context()

	corpus, err := a.loader.LoadCorpus(ctx, corpusPath)
	if err != nil {
		return nil, err
	}

	var phrases domain.PhraseSet
	if phrasesPath != "" {
		phrases, err = a.loader.LoadPhrases(ctx, phrasesPath)
		if err != nil {
			return nil, err
		}
	}

	report, err := a.validation.Validate(ctx, corpus, phrases)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", corpusPath, err)
	}
	return report, nil
}

func printReport(cmd *cobra.Command, report *domain.Report, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	newPrinter(cmd.OutOrStdout()).Report(report)
	return nil
}
