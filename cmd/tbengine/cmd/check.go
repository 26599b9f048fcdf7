package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/cmd/tbengine/config"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/engine"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/parsers"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/reporter"
	enginerrors "github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/errors"
)

// Flags for the check command
var (
	accountsFile  string
	entriesFile   string
	rulesFile     string
	mappingsFile  string
	outputFormat  string
	outputFile    string
	minConfidence float64
	applyApproved bool
	noAutoMap     bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Classify, adjust and validate a trial balance",
	Long: `Check runs the full processing pipeline over a trial balance period:
accounts are classified into IFRS line items, journal entries are replayed
as double-entry adjustments, and the adjusted statement structure is run
through the accounting invariant battery.

This command requires a trial balance accounts file (JSON or CSV format).
Journal entries, custom classification rules and explicit mappings are
optional.

Examples:
  # Classify and validate a trial balance with the built-in rules
  tbengine check --accounts accounts.json

  # Fold in posted journal entries and write a JSON report
  tbengine check --accounts accounts.json --entries entries.json \
    --output-format json --output-file report.json

  # Custom rules and explicit mappings, stricter auto-map cutoff
  tbengine check --accounts tb.csv --rules rules.json \
    --mappings mappings.json --min-confidence 0.9

  # Include approved but not yet posted entries in the replay
  tbengine check --accounts accounts.json --entries entries.json --apply-approved`,

	PreRunE: validateCheckFlags,
	RunE:    runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Required flags
	checkCmd.Flags().StringVarP(&accountsFile, "accounts", "a", "", "path to trial balance accounts file, JSON or CSV (required)")

	// Input flags
	checkCmd.Flags().StringVarP(&entriesFile, "entries", "e", "", "path to journal entries JSON file")
	checkCmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "path to classification rules JSON file (default: built-in rules)")
	checkCmd.Flags().StringVarP(&mappingsFile, "mappings", "m", "", "path to explicit mappings JSON file")

	// Output flags
	checkCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv")
	checkCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")

	// Pipeline flags
	checkCmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "auto-map confidence threshold override (0.0-1.0)")
	checkCmd.Flags().BoolVar(&applyApproved, "apply-approved", false, "replay approved entries in addition to posted ones")
	checkCmd.Flags().BoolVar(&noAutoMap, "no-automap", false, "disable automatic classification, use explicit mappings only")

	checkCmd.MarkFlagRequired("accounts")

	// Bind flags to viper
	viper.BindPFlag("accounts", checkCmd.Flags().Lookup("accounts"))
	viper.BindPFlag("entries", checkCmd.Flags().Lookup("entries"))
	viper.BindPFlag("rules", checkCmd.Flags().Lookup("rules"))
	viper.BindPFlag("mappings", checkCmd.Flags().Lookup("mappings"))
	viper.BindPFlag("output-format", checkCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", checkCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("min-confidence", checkCmd.Flags().Lookup("min-confidence"))
	viper.BindPFlag("apply-approved", checkCmd.Flags().Lookup("apply-approved"))
	viper.BindPFlag("no-automap", checkCmd.Flags().Lookup("no-automap"))
}

func validateCheckFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	accountsFile = viper.GetString("accounts")
	entriesFile = viper.GetString("entries")
	rulesFile = viper.GetString("rules")
	mappingsFile = viper.GetString("mappings")
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")
	minConfidence = viper.GetFloat64("min-confidence")
	applyApproved = viper.GetBool("apply-approved")
	noAutoMap = viper.GetBool("no-automap")

	if accountsFile == "" {
		return fmt.Errorf("accounts file is required")
	}

	if err := validateFileExists(accountsFile, "accounts file"); err != nil {
		return err
	}

	for _, optional := range []struct {
		path, description string
	}{
		{entriesFile, "entries file"},
		{rulesFile, "rules file"},
		{mappingsFile, "mappings file"},
	} {
		if optional.path == "" {
			continue
		}
		if err := validateFileExists(optional.path, optional.description); err != nil {
			return err
		}
	}

	validFormats := map[string]bool{"console": true, "json": true, "csv": true}
	if !validFormats[outputFormat] {
		return fmt.Errorf("invalid output format '%s'. Valid formats: console, json, csv", outputFormat)
	}

	if minConfidence < 0.0 || minConfidence > 1.0 {
		return fmt.Errorf("min confidence must be between 0.0 and 1.0")
	}

	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting trial balance check...\n")
		fmt.Fprintf(os.Stderr, "Accounts file: %s\n", accountsFile)
		if entriesFile != "" {
			fmt.Fprintf(os.Stderr, "Entries file: %s\n", entriesFile)
		}
		fmt.Fprintf(os.Stderr, "Output format: %s\n", outputFormat)
	}

	// Load inputs
	accounts, err := loadAccounts(accountsFile)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	var entries []*models.JournalEntry
	if entriesFile != "" {
		entries, err = parsers.LoadEntries(entriesFile)
		if err != nil {
			return fmt.Errorf("failed to load entries: %w", err)
		}
	}

	var rules models.RuleSet
	if rulesFile != "" {
		rules, err = parsers.LoadRules(rulesFile)
		if err != nil {
			return fmt.Errorf("failed to load rules: %w", err)
		}
	}

	var mappings map[string]models.LineItemRef
	if mappingsFile != "" {
		mappings, err = parsers.LoadMappings(mappingsFile)
		if err != nil {
			return fmt.Errorf("failed to load mappings: %w", err)
		}
	}

	// Create the processing service
	engineConfig := config.CreateEngineConfig(minConfidence, applyApproved, noAutoMap)
	service, err := engine.NewService(engineConfig)
	if err != nil {
		return fmt.Errorf("failed to create processing service: %w", err)
	}

	request := &engine.Request{
		Period: &models.PeriodData{
			Accounts: accounts,
			Entries:  entries,
		},
		Rules:    rules,
		Mappings: mappings,
	}

	result, err := service.Process(ctx, request)
	if err != nil {
		return fmt.Errorf("trial balance check failed: %w", err)
	}

	// Generate report
	reportConfig := config.CreateReportConfig(outputFormat)
	reportGenerator, err := reporter.NewSafeReportGenerator(reportConfig, nil)
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	if outputFile != "" {
		err = reportGenerator.GenerateReportToFile(result, outputFile)
	} else {
		err = reportGenerator.GenerateReportSafely(result, os.Stdout)
	}
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "\nCheck completed.\n")
		fmt.Fprintf(os.Stderr, "Processed %d accounts and %d journal entries.\n",
			len(accounts), len(entries))
		fmt.Fprintf(os.Stderr, "Mapped %d accounts, %d failed checks, %d warnings.\n",
			len(result.Mappings), len(result.FailedChecks()), len(result.Warnings()))
		fmt.Fprintf(os.Stderr, "Processing time: %v\n", result.Duration)
	}

	// A failing invariant battery is a non-zero exit even though the report
	// rendered successfully.
	if failed := result.FailedChecks(); len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, f := range failed {
			names = append(names, f.Check)
		}
		return enginerrors.New(enginerrors.CategoryValidation, enginerrors.CodeChecksFailed,
			fmt.Sprintf("%d validation check(s) failed: %s", len(failed), strings.Join(names, ", "))).
			WithContext("failed_checks", names).
			WithSuggestion("review the failing checks in the report output")
	}

	return nil
}

// loadAccounts dispatches on file extension: .csv imports the CSV export
// shape, anything else is treated as JSON.
func loadAccounts(path string) ([]*models.Account, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return parsers.LoadAccountsCSV(path, parsers.DefaultCSVConfig())
	}
	return parsers.LoadAccounts(path)
}
