// Package reporter renders pipeline results for human and machine consumers.
//
// Supported output formats:
//   - Console: human-readable sections for terminal display
//   - JSON: structured data for programmatic consumption
//   - CSV: per-account line detail for spreadsheet applications
//
// Example usage:
//
//	generator, err := reporter.NewReportGenerator(nil)
//	err = generator.GenerateReport(result, os.Stdout)
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/engine"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
)

// OutputFormat represents the supported report output formats.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// IsValid checks if the output format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// ReportConfig holds configuration options for report generation.
type ReportConfig struct {
	Format OutputFormat `json:"format"`

	// Detail level options
	IncludeValidations bool `json:"include_validations"`
	IncludeUnmapped    bool `json:"include_unmapped"`
	IncludeAdjustments bool `json:"include_adjustments"`
	IncludeQuality     bool `json:"include_quality"`

	// CSV options
	CSVDelimiter rune `json:"csv_delimiter"`
	CSVHeaders   bool `json:"csv_headers"`

	// Console options
	SortByAmount bool `json:"sort_by_amount"`
}

// DefaultReportConfig returns a default report configuration.
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:             FormatConsole,
		IncludeValidations: true,
		IncludeUnmapped:    true,
		IncludeAdjustments: true,
		IncludeQuality:     true,
		CSVDelimiter:       ',',
		CSVHeaders:         true,
		SortByAmount:       false,
	}
}

// Validate validates the report configuration.
func (c *ReportConfig) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	return nil
}

// ReportGenerator renders pipeline results in the configured format.
type ReportGenerator struct {
	config *ReportConfig
}

// NewReportGenerator creates a new report generator with the specified
// configuration.
func NewReportGenerator(config *ReportConfig) (*ReportGenerator, error) {
	if config == nil {
		config = DefaultReportConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report configuration: %w", err)
	}

	return &ReportGenerator{config: config}, nil
}

// GenerateReport renders a pipeline result to the provided writer.
func (rg *ReportGenerator) GenerateReport(result *engine.Result, writer io.Writer) error {
	if result == nil {
		return fmt.Errorf("pipeline result cannot be nil")
	}

	switch rg.config.Format {
	case FormatConsole:
		return rg.generateConsoleReport(result, writer)
	case FormatJSON:
		return rg.generateJSONReport(result, writer)
	case FormatCSV:
		return rg.generateCSVReport(result, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", rg.config.Format)
	}
}

// generateConsoleReport renders a human-readable console report.
func (rg *ReportGenerator) generateConsoleReport(result *engine.Result, writer io.Writer) error {
	fmt.Fprintf(writer, "TRIAL BALANCE REPORT\n")
	fmt.Fprintf(writer, "Generated: %s\n", result.ProcessedAt.Format(time.RFC3339))
	fmt.Fprintf(writer, "Processing Duration: %v\n\n", result.Duration)

	fmt.Fprintf(writer, "=== STATEMENT SECTIONS ===\n")
	rg.printSectionTotals(result, writer)
	fmt.Fprintf(writer, "\n")

	fmt.Fprintf(writer, "=== FINANCIAL SUMMARY ===\n")
	rg.printFinancialSummary(result, writer)
	fmt.Fprintf(writer, "\n")

	if rg.config.IncludeQuality && result.Quality != nil {
		fmt.Fprintf(writer, "=== MAPPING QUALITY ===\n")
		rg.printMappingQuality(result, writer)
		fmt.Fprintf(writer, "\n")
	}

	if rg.config.IncludeAdjustments && result.Adjusted != nil && result.Adjusted.Summary != nil {
		fmt.Fprintf(writer, "=== JOURNAL ADJUSTMENTS ===\n")
		rg.printAdjustmentSummary(result.Adjusted.Summary, writer)
		fmt.Fprintf(writer, "\n")
	}

	if rg.config.IncludeUnmapped && result.Mapped != nil && len(result.Mapped.Unmapped) > 0 {
		fmt.Fprintf(writer, "=== UNMAPPED ACCOUNTS ===\n")
		rg.printUnmappedAccounts(result.Mapped.Unmapped, writer)
		fmt.Fprintf(writer, "\n")
	}

	if rg.config.IncludeValidations && len(result.Validations) > 0 {
		fmt.Fprintf(writer, "=== VALIDATION RESULTS ===\n")
		rg.printValidations(result.Validations, writer)
	}

	return nil
}

// generateJSONReport renders a structured JSON report.
func (rg *ReportGenerator) generateJSONReport(result *engine.Result, writer io.Writer) error {
	filtered := rg.filterResultForOutput(result)

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(filtered)
}

// generateCSVReport renders one row per mapped account plus rows for unmapped
// accounts.
func (rg *ReportGenerator) generateCSVReport(result *engine.Result, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	csvWriter.Comma = rg.config.CSVDelimiter
	defer csvWriter.Flush()

	if rg.config.CSVHeaders {
		headers := []string{
			"Section",
			"Line_Item",
			"Account_ID",
			"Account_Name",
			"Debit",
			"Credit",
			"Balance",
			"Status",
		}
		if err := csvWriter.Write(headers); err != nil {
			return fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}

	if result.Mapped != nil {
		for _, section := range models.AllSections() {
			for _, label := range result.Mapped.LineItemLabels(section) {
				for _, acc := range result.Mapped.Sections[section][label] {
					record := []string{
						string(section),
						label,
						acc.AccountID,
						acc.AccountName,
						acc.Debit.StringFixed(2),
						acc.Credit.StringFixed(2),
						acc.Balance().StringFixed(2),
						"Mapped",
					}
					if err := csvWriter.Write(record); err != nil {
						return fmt.Errorf("failed to write account record: %w", err)
					}
				}
			}
		}

		if rg.config.IncludeUnmapped {
			for _, acc := range result.Mapped.Unmapped {
				record := []string{
					"",
					"",
					acc.AccountID,
					acc.AccountName,
					acc.Debit.StringFixed(2),
					acc.Credit.StringFixed(2),
					acc.Balance().StringFixed(2),
					"Unmapped",
				}
				if err := csvWriter.Write(record); err != nil {
					return fmt.Errorf("failed to write unmapped record: %w", err)
				}
			}
		}
	}

	return nil
}

// Helper methods for console output formatting

func (rg *ReportGenerator) printSectionTotals(result *engine.Result, writer io.Writer) {
	if result.Mapped == nil {
		fmt.Fprintf(writer, "No mapped trial balance available\n")
		return
	}

	for _, section := range models.AllSections() {
		total := result.SectionTotals[section]
		fmt.Fprintf(writer, "%s: %s\n", sectionLabel(section), total.StringFixed(2))

		for _, label := range result.Mapped.LineItemLabels(section) {
			lineTotal := result.Mapped.LineItemTotal(section, label)
			count := len(result.Mapped.Sections[section][label])
			fmt.Fprintf(writer, "  %-40s %15s  (%d accounts)\n", label, lineTotal.StringFixed(2), count)
		}
	}
}

func (rg *ReportGenerator) printFinancialSummary(result *engine.Result, writer io.Writer) {
	fmt.Fprintf(writer, "Net Profit:      %s\n", result.NetProfit.StringFixed(2))
	fmt.Fprintf(writer, "Closing Equity:  %s\n", result.ClosingEquity.StringFixed(2))

	if result.Mapped != nil {
		fmt.Fprintf(writer, "Mapped Accounts: %d\n", result.Mapped.MappedCount())
		fmt.Fprintf(writer, "Unmapped:        %d\n", len(result.Mapped.Unmapped))
	}
}

func (rg *ReportGenerator) printMappingQuality(result *engine.Result, writer io.Writer) {
	fmt.Fprintf(writer, "Quality Score: %.2f\n", result.Quality.Score)

	if len(result.Quality.Issues) > 0 {
		fmt.Fprintf(writer, "Issues (%d):\n", len(result.Quality.Issues))
		for _, issue := range result.Quality.Issues {
			fmt.Fprintf(writer, "  - %s\n", issue)
		}
	}

	if len(result.Quality.Suggestions) > 0 {
		fmt.Fprintf(writer, "Suggestions (%d):\n", len(result.Quality.Suggestions))
		for _, suggestion := range result.Quality.Suggestions {
			fmt.Fprintf(writer, "  - %s\n", suggestion)
		}
	}
}

func (rg *ReportGenerator) printAdjustmentSummary(summary *models.AdjustmentSummary, writer io.Writer) {
	fmt.Fprintf(writer, "Applied Entries:  %d\n", summary.TotalEntries)
	fmt.Fprintf(writer, "Total Adjustment: %s\n", summary.TotalAdjustment.StringFixed(2))
	if !summary.LastAdjustment.IsZero() {
		fmt.Fprintf(writer, "Last Adjustment:  %s\n", summary.LastAdjustment.Format("2006-01-02"))
	}

	if len(summary.NetImpactByAccount) > 0 {
		ids := make([]string, 0, len(summary.NetImpactByAccount))
		for id := range summary.NetImpactByAccount {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Fprintf(writer, "Net Impact by Account:\n")
		for _, id := range ids {
			fmt.Fprintf(writer, "  %-20s %15s\n", id, summary.NetImpactByAccount[id].StringFixed(2))
		}
	}
}

func (rg *ReportGenerator) printUnmappedAccounts(accounts []*models.Account, writer io.Writer) {
	unmapped := make([]*models.Account, len(accounts))
	copy(unmapped, accounts)

	if rg.config.SortByAmount {
		sort.Slice(unmapped, func(i, j int) bool {
			return unmapped[i].Balance().Abs().GreaterThan(unmapped[j].Balance().Abs())
		})
	}

	fmt.Fprintf(writer, "Total Unmapped Accounts: %d\n\n", len(unmapped))

	for i, acc := range unmapped {
		fmt.Fprintf(writer, "  %d. ID: %s, Name: %s, Balance: %s\n",
			i+1,
			acc.AccountID,
			acc.AccountName,
			acc.Balance().StringFixed(2))

		// Limit output for very long lists
		if i >= 9 && len(unmapped) > 10 {
			fmt.Fprintf(writer, "  ... and %d more\n", len(unmapped)-10)
			break
		}
	}
}

func (rg *ReportGenerator) printValidations(validations []models.ValidationResult, writer io.Writer) {
	// Group by status, failures first.
	statusGroups := make(map[models.ValidationStatus][]models.ValidationResult)
	for _, v := range validations {
		statusGroups[v.Status] = append(statusGroups[v.Status], v)
	}

	statuses := []models.ValidationStatus{
		models.ValidationFail,
		models.ValidationWarning,
		models.ValidationPass,
	}

	for _, status := range statuses {
		results := statusGroups[status]
		if len(results) == 0 {
			continue
		}

		fmt.Fprintf(writer, "%s (%d):\n", strings.ToUpper(string(status)), len(results))
		for _, v := range results {
			fmt.Fprintf(writer, "  - %s: %s\n", v.Check, v.Message)
		}
		fmt.Fprintf(writer, "\n")
	}
}

// Helper methods

func sectionLabel(section models.StatementSection) string {
	words := strings.Split(string(section), "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func (rg *ReportGenerator) filterResultForOutput(result *engine.Result) map[string]interface{} {
	sectionTotals := make(map[string]string, len(result.SectionTotals))
	for section, total := range result.SectionTotals {
		sectionTotals[string(section)] = total.StringFixed(2)
	}

	output := map[string]interface{}{
		"processed_at":   result.ProcessedAt,
		"section_totals": sectionTotals,
		"net_profit":     result.NetProfit.StringFixed(2),
		"closing_equity": result.ClosingEquity.StringFixed(2),
		"mappings":       result.Mappings,
	}

	if rg.config.IncludeValidations && result.Validations != nil {
		output["validations"] = result.Validations
	}

	if rg.config.IncludeQuality && result.Quality != nil {
		output["quality"] = result.Quality
	}

	if rg.config.IncludeAdjustments && result.Adjusted != nil && result.Adjusted.Summary != nil {
		output["adjustment_summary"] = result.Adjusted.Summary
	}

	if rg.config.IncludeUnmapped && result.Mapped != nil && len(result.Mapped.Unmapped) > 0 {
		unmapped := make([]string, 0, len(result.Mapped.Unmapped))
		for _, acc := range result.Mapped.Unmapped {
			unmapped = append(unmapped, acc.AccountID)
		}
		output["unmapped_accounts"] = unmapped
	}

	return output
}

// UpdateConfiguration updates the report generator configuration.
func (rg *ReportGenerator) UpdateConfiguration(config *ReportConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid report configuration: %w", err)
	}

	rg.config = config
	return nil
}

// GetConfiguration returns the current configuration.
func (rg *ReportGenerator) GetConfiguration() *ReportConfig {
	return rg.config
}
