package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpuslint/internal/adapters/driven/config/file"
)

var rulesForce bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the rule file",
	Long: `Manage the TOML rule file that configures the validators.

The rule file is read from --rules, or ~/.corpuslint/rules.toml by default.
A missing file means the built-in defaults.`,
}

var rulesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default rule file",
	Args:  cobra.NoArgs,
	RunE:  runRulesInit,
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective rules",
	Args:  cobra.NoArgs,
	RunE:  runRulesShow,
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check a rule file for errors",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRulesCheck,
}

func init() {
	rulesInitCmd.Flags().BoolVarP(&rulesForce, "force", "f", false, "overwrite an existing rule file")

	rulesCmd.AddCommand(rulesInitCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesInit(cmd *cobra.Command, _ []string) error {
	store, err := file.NewRuleStore(rulesPath)
	if err != nil {
		return err
	}
	if err := store.WriteTemplate(rulesForce); err != nil {
		return fmt.Errorf("writing rule file: %w", err)
	}

	cmd.Printf("Wrote %s\n", store.Path())
	return nil
}

func runRulesShow(cmd *cobra.Command, _ []string) error {
	store, err := file.NewRuleStore(rulesPath)
	if err != nil {
		return err
	}
	rules, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading %s: %w", store.Path(), err)
	}

	data, err := store.Encode(rules)
	if err != nil {
		return err
	}

	cmd.Printf("# %s\n", store.Path())
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	path := rulesPath
	if len(args) == 1 {
		path = args[0]
	}

	store, err := file.NewRuleStore(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(store.Path()); err != nil {
		return fmt.Errorf("checking rule file: %w", err)
	}
	if _, err := store.Load(); err != nil {
		return fmt.Errorf("%s: %w", store.Path(), err)
	}

	cmd.Printf("%s is valid\n", store.Path())
	return nil
}
