package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// latestReport selects the most recent report.
const latestReport = "latest"

// reports flags.
var (
	reportsLimit int
	reportsJSON  bool
)

var reportsCmd = &cobra.Command{
	Use:     "reports",
	Aliases: []string{"report"},
	Short:   "Manage saved reports",
	Long:    `List, show and delete reports saved with 'corpuslint validate --save'.`,
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runReportsList,
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id|latest>",
	Short: "Print a saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsShow,
}

var reportsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsDelete,
}

func init() {
	reportsListCmd.Flags().IntVarP(&reportsLimit, "limit", "n", 20, "maximum number of reports (0 = all)")
	reportsShowCmd.Flags().BoolVar(&reportsJSON, "json", false, "print the report as JSON")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsDeleteCmd)
	rootCmd.AddCommand(reportsCmd)
}

func runReportsList(cmd *cobra.Command, _ []string) error {
	a, err := openReports()
	if err != nil {
		return err
	}
	defer a.Close()

	summaries, err := a.reports.List(cmd.Context(), reportsLimit)
	if err != nil {
		return fmt.Errorf("listing reports: %w", err)
	}

	newPrinter(cmd.OutOrStdout()).History(summaries)
	return nil
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	a, err := openReports()
	if err != nil {
		return err
	}
	defer a.Close()

	var report *domain.Report
	if args[0] == latestReport {
		report, err = a.reports.Latest(cmd.Context())
	} else {
		report, err = a.reports.Get(cmd.Context(), args[0])
	}
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("report %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("getting report: %w", err)
	}

	return printReport(cmd, report, reportsJSON)
}

func runReportsDelete(cmd *cobra.Command, args []string) error {
	a, err := openReports()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.reports.Delete(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("report %s not found", args[0])
		}
		return fmt.Errorf("deleting report: %w", err)
	}

	cmd.Printf("Deleted report %s\n", args[0])
	return nil
}
