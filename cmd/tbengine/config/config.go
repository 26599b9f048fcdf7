// Package config builds component configurations from CLI inputs.
package config

import (
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/classifier"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/engine"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/reporter"
)

// CreateEngineConfig creates a pipeline configuration with CLI overrides
// applied on top of the defaults.
func CreateEngineConfig(minConfidence float64, applyApproved, noAutoMap bool) *engine.Config {
	config := engine.DefaultConfig()

	if minConfidence > 0 {
		classifierConfig := classifier.DefaultClassifierConfig()
		classifierConfig.AutoMapThreshold = minConfidence
		config.ClassifierConfig = classifierConfig
	}

	if applyApproved {
		config.ApplicableStatuses = ledger.PostedAndApproved()
	}

	if noAutoMap {
		config.AutoMap = false
	}

	return config
}

// CreateReportConfig creates a report configuration for the specified output
// format.
func CreateReportConfig(format string) *reporter.ReportConfig {
	config := reporter.DefaultReportConfig()

	switch format {
	case "console":
		config.Format = reporter.FormatConsole
		config.IncludeValidations = true
		config.IncludeUnmapped = true
		config.IncludeAdjustments = true
		config.IncludeQuality = true
	case "json":
		config.Format = reporter.FormatJSON
		config.IncludeValidations = true
		config.IncludeUnmapped = true
		config.IncludeAdjustments = true
		config.IncludeQuality = true
	case "csv":
		config.Format = reporter.FormatCSV
		config.CSVHeaders = true
		config.CSVDelimiter = ','
		config.IncludeUnmapped = true
		// CSV is per-account line detail
		config.IncludeValidations = false
		config.IncludeAdjustments = false
		config.IncludeQuality = false
	}

	return config
}
