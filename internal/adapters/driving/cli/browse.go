package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [report-id]",
	Short: "Browse a saved report in the terminal UI",
	Long: `Open a saved report in the interactive findings browser.
Without an ID the most recent report is shown.

Controls:
  ↑/k, ↓/j - Move between findings
  Enter    - Show finding details
  f        - Cycle severity filter
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in browser: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	a, err := openReports()
	if err != nil {
		return err
	}
	defer a.Close()

	browser, err := tui.NewApp(&tui.Ports{Reports: a.reports})
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	browser.WithContext(cmd.Context())
	if len(args) == 1 && args[0] != latestReport {
		browser.WithReportID(args[0])
	}

	return browser.Run()
}
