package reporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/engine"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/errors"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/logger"
)

// SafeReportGenerator wraps ReportGenerator with logging and output fallbacks.
type SafeReportGenerator struct {
	*ReportGenerator
	logger logger.Logger
}

// NewSafeReportGenerator creates a new safe report generator.
func NewSafeReportGenerator(config *ReportConfig, log logger.Logger) (*SafeReportGenerator, error) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	generator, err := NewReportGenerator(config)
	if err != nil {
		return nil, errors.ConfigurationError("report_config", err).
			WithSuggestion("Check the report configuration values")
	}

	return &SafeReportGenerator{
		ReportGenerator: generator,
		logger:          log.WithComponent("reporter"),
	}, nil
}

// GenerateReportSafely renders a report with structured error reporting. On a
// console rendering failure it falls back to a minimal plain summary so the
// caller still gets usable output.
func (srg *SafeReportGenerator) GenerateReportSafely(result *engine.Result, writer io.Writer) error {
	srg.logger.WithFields(logger.Fields{
		"format": srg.config.Format,
		"output": getWriterDescription(writer),
	}).Info("Starting report generation")

	if result == nil {
		err := errors.InputError(errors.CodeMissingInput, "result",
			fmt.Errorf("pipeline result is nil"))
		srg.logger.WithError(err).Error("Report generation failed")
		return err
	}
	if writer == nil {
		err := errors.InputError(errors.CodeMissingInput, "writer",
			fmt.Errorf("output writer is nil"))
		srg.logger.WithError(err).Error("Report generation failed")
		return err
	}

	if err := srg.GenerateReport(result, writer); err != nil {
		srg.logger.WithError(err).Error("Report generation failed")

		if srg.config.Format == FormatConsole {
			srg.logger.Warn("Falling back to minimal summary output")
			if fallbackErr := srg.writeMinimalSummary(result, writer); fallbackErr == nil {
				return nil
			}
		}

		return errors.Wrap(err, errors.CategoryInternal, errors.CodeUnexpectedError,
			"report generation failed")
	}

	srg.logger.Info("Report generation completed")
	return nil
}

// GenerateReportToFile renders a report to a file path, creating parent
// directories as needed.
func (srg *SafeReportGenerator) GenerateReportToFile(result *engine.Result, path string) error {
	if path == "" {
		return errors.InputError(errors.CodeMissingInput, "path",
			fmt.Errorf("output path is empty"))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, errors.CategoryInput, errors.CodeInvalidFormat,
				fmt.Sprintf("cannot create output directory %s", dir))
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInput, errors.CodeInvalidFormat,
			fmt.Sprintf("cannot create output file %s", path))
	}
	defer file.Close()

	return srg.GenerateReportSafely(result, file)
}

// writeMinimalSummary emits the bare figures when full rendering fails.
func (srg *SafeReportGenerator) writeMinimalSummary(result *engine.Result, writer io.Writer) error {
	_, err := fmt.Fprintf(writer, "Net Profit: %s\nClosing Equity: %s\nFailed Checks: %d\nWarnings: %d\n",
		result.NetProfit.StringFixed(2),
		result.ClosingEquity.StringFixed(2),
		len(result.FailedChecks()),
		len(result.Warnings()))
	return err
}

func getWriterDescription(writer io.Writer) string {
	switch w := writer.(type) {
	case *os.File:
		return w.Name()
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", writer)
	}
}
