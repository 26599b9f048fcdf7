// Package engine wires classification, ledger replay, aggregation and the
// validation battery into a single processing pipeline. Callers construct a
// Service once and run it against trial balance periods.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/aggregator"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/classifier"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/validator"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/logger"
)

// Service orchestrates the complete trial balance processing pipeline.
type Service struct {
	classifier *classifier.ClassificationEngine
	replay     *ledger.ReplayEngine
	config     *Config
	log        logger.Logger
}

// Config holds configuration options for the processing pipeline.
type Config struct {
	// Classification options
	ClassifierConfig *classifier.ClassifierConfig

	// Ledger options. ApplicableStatuses controls which journal entry
	// statuses participate in adjustment replay.
	ApplicableStatuses ledger.StatusSet

	// Pipeline options
	AutoMap         bool
	UseDefaultRules bool
	RunValidation   bool
	IncludeQuality  bool
}

// DefaultConfig returns a default configuration for the processing pipeline.
func DefaultConfig() *Config {
	return &Config{
		ClassifierConfig:   classifier.DefaultClassifierConfig(),
		ApplicableStatuses: ledger.PostedOnly(),
		AutoMap:            true,
		UseDefaultRules:    true,
		RunValidation:      true,
		IncludeQuality:     true,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ClassifierConfig != nil {
		if err := c.ClassifierConfig.Validate(); err != nil {
			return fmt.Errorf("invalid classifier configuration: %w", err)
		}
	}

	if len(c.ApplicableStatuses) == 0 {
		return fmt.Errorf("at least one applicable entry status is required")
	}

	return nil
}

// Request describes one pipeline run over a trial balance period.
type Request struct {
	// Period carries the raw accounts and journal entries to process.
	Period *models.PeriodData

	// Rules are the classification rules to apply. When nil and the
	// service is configured with UseDefaultRules, the built-in IFRS rule
	// set is used.
	Rules models.RuleSet

	// Mappings are explicit account-to-line-item assignments. They take
	// precedence over automatic classification.
	Mappings map[string]models.LineItemRef
}

// Validate validates the request.
func (r *Request) Validate() error {
	if r.Period == nil {
		return fmt.Errorf("period data is required")
	}

	if err := r.Period.Validate(); err != nil {
		return fmt.Errorf("invalid period data: %w", err)
	}

	if r.Rules != nil {
		if err := r.Rules.Validate(); err != nil {
			return fmt.Errorf("invalid rule set: %w", err)
		}
	}

	return nil
}

// Result contains the complete output of one pipeline run.
type Result struct {
	// Classification output
	Matches  map[string][]*models.AccountMatch `json:"matches,omitempty"`
	Mappings map[string]models.LineItemRef     `json:"mappings"`
	Quality  *classifier.MappingQuality        `json:"quality,omitempty"`

	// Ledger output
	Adjusted *models.AdjustedTrialBalance `json:"adjusted,omitempty"`

	// Aggregation output
	Mapped        *models.MappedTrialBalance                  `json:"-"`
	SectionTotals map[models.StatementSection]decimal.Decimal `json:"section_totals"`
	NetProfit     decimal.Decimal                             `json:"net_profit"`
	ClosingEquity decimal.Decimal                             `json:"closing_equity"`

	// Validation output
	Validations []models.ValidationResult `json:"validations,omitempty"`

	// Metadata
	ProcessedAt time.Time     `json:"processed_at"`
	Duration    time.Duration `json:"duration"`
}

// FailedChecks returns the validation results that failed outright.
func (r *Result) FailedChecks() []models.ValidationResult {
	var failed []models.ValidationResult
	for _, v := range r.Validations {
		if v.Status == models.ValidationFail {
			failed = append(failed, v)
		}
	}
	return failed
}

// Warnings returns the validation results that passed with warnings.
func (r *Result) Warnings() []models.ValidationResult {
	var warnings []models.ValidationResult
	for _, v := range r.Validations {
		if v.Status == models.ValidationWarning {
			warnings = append(warnings, v)
		}
	}
	return warnings
}

// NewService creates a new processing service.
func NewService(config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Service{
		classifier: classifier.NewClassificationEngine(config.ClassifierConfig),
		replay:     ledger.NewReplayEngine(config.ApplicableStatuses),
		config:     config,
		log:        logger.WithComponent("engine"),
	}, nil
}

// Process runs the full pipeline: classify accounts, resolve mappings, apply
// journal adjustments, aggregate statement sections and run the validation
// battery. Explicit mappings from the request always win over automatic
// classification.
func (s *Service) Process(ctx context.Context, request *Request) (*Result, error) {
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	startTime := time.Now()
	result := &Result{
		ProcessedAt: startTime,
	}

	rules := request.Rules
	if rules == nil && s.config.UseDefaultRules {
		rules = classifier.DefaultRules()
	}

	// Step 1: Classify accounts against the rule set.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.Matches = s.classifyAccounts(request.Period.Accounts, rules)

	// Step 2: Resolve final mappings.
	result.Mappings = s.resolveMappings(request, rules)
	s.log.WithFields(logger.Fields{
		"accounts": len(request.Period.Accounts),
		"mapped":   len(result.Mappings),
	}).Info("Account mappings resolved")

	if s.config.IncludeQuality {
		result.Quality = s.classifier.ValidateMappingQuality(request.Period.Accounts, result.Mappings, rules)
	}

	// Step 3: Apply journal entry adjustments.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	adjusted, err := s.replay.ApplyAdjustments(request.Period.Accounts, request.Period.Entries)
	if err != nil {
		return nil, fmt.Errorf("failed to apply adjustments: %w", err)
	}
	result.Adjusted = adjusted

	// Step 4: Aggregate adjusted balances into statement sections.
	adjustedAccounts := adjustedAccountList(adjusted)
	result.Mapped = aggregator.Aggregate(adjustedAccounts, result.Mappings)
	result.SectionTotals = aggregator.SectionTotals(result.Mapped)
	result.NetProfit = aggregator.NetProfit(result.Mapped)
	result.ClosingEquity = aggregator.ClosingEquity(result.Mapped)

	// Step 5: Run the validation battery. Statement checks inspect the
	// adjusted, mapped state; the raw-data checks (balance sum, duplicates,
	// code hierarchy) inspect the unmodified import, so the raw period is
	// what the battery receives.
	if s.config.RunValidation {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Validations = validator.RunAll(&validator.Input{
			Mapped: result.Mapped,
			Period: request.Period,
		})
	}

	result.Duration = time.Since(startTime)
	s.log.WithFields(logger.Fields{
		"duration": result.Duration.String(),
		"failed":   len(result.FailedChecks()),
		"warnings": len(result.Warnings()),
	}).Info("Pipeline run completed")

	return result, nil
}

// classifyAccounts runs classification for every account and keeps only
// accounts with at least one candidate match.
func (s *Service) classifyAccounts(accounts []*models.Account, rules models.RuleSet) map[string][]*models.AccountMatch {
	matches := make(map[string][]*models.AccountMatch)
	if len(rules) == 0 {
		return matches
	}

	for _, account := range accounts {
		candidates := s.classifier.Classify(account, rules)
		if len(candidates) > 0 {
			matches[account.AccountID] = candidates
		}
	}

	return matches
}

// resolveMappings merges automatic high-confidence mappings with explicit
// request mappings. Explicit mappings take precedence.
func (s *Service) resolveMappings(request *Request, rules models.RuleSet) map[string]models.LineItemRef {
	mappings := make(map[string]models.LineItemRef)

	if s.config.AutoMap && len(rules) > 0 {
		for id, target := range s.classifier.AutoMapHighConfidence(request.Period.Accounts, rules) {
			mappings[id] = target
		}
	}

	for id, target := range request.Mappings {
		mappings[id] = target
	}

	return mappings
}

// adjustedAccountList flattens an adjusted trial balance back into an account
// slice, preserving base account order and appending adjustment-only
// accounts.
func adjustedAccountList(adjusted *models.AdjustedTrialBalance) []*models.Account {
	accounts := make([]*models.Account, 0, len(adjusted.AdjustedBalances))
	for _, base := range adjusted.BaseAccounts {
		if adj := adjusted.AdjustedBalance(base.AccountID); adj != nil {
			accounts = append(accounts, adj)
		}
	}
	for _, id := range adjusted.AdjustmentOnly {
		if adj := adjusted.AdjustedBalance(id); adj != nil {
			accounts = append(accounts, adj)
		}
	}
	return accounts
}
