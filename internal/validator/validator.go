// Package validator runs the fixed battery of accounting-invariant checks
// over an aggregated trial balance: the balance-sheet equation, debit/credit
// sign rules, cross-statement reconciliation and data-quality anomaly
// detection.
//
// Every check is a pure function of its input and returns exactly one
// ValidationResult. Checks never panic or error for ordinary data conditions:
// a missing section or an empty account list yields a pass or warning with an
// explanatory message, reflecting a partially classified trial balance
// mid-workflow.
package validator

import (
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/logger"
)

// Check identifiers, stable across releases so callers can key off them.
const (
	CheckSfpBalance           = "sfp-balance"
	CheckPlBalance            = "pl-balance"
	CheckDebitCreditRules     = "debit-credit-rules"
	CheckRequiredStatements   = "required-statements"
	CheckIfrsClassification   = "ifrs-classification"
	CheckUnmappedAccounts     = "unmapped-accounts"
	CheckTrialBalanceSum      = "trial-balance-sum"
	CheckDuplicateCodes       = "duplicate-account-codes"
	CheckCodeHierarchy        = "account-code-hierarchy"
	CheckLargeMovements       = "large-account-movements"
	CheckProfitReconciliation = "profit-reconciliation"
	CheckEquityReconciliation = "total-equity-reconciliation"
)

// Input bundles everything the battery inspects: the aggregated statement
// structure and the raw period data it was derived from. Checks read, never
// mutate.
type Input struct {
	Mapped *models.MappedTrialBalance
	Period *models.PeriodData
}

// CheckFunc is one validation check.
type CheckFunc func(in *Input) models.ValidationResult

// namedCheck pairs a stable identifier with its implementation.
type namedCheck struct {
	name string
	fn   CheckFunc
}

// battery is the fixed, ordered check list. Order is part of the output
// contract: identical inputs produce an identically ordered result list.
var battery = []namedCheck{
	{CheckTrialBalanceSum, validateTrialBalanceSum},
	{CheckDuplicateCodes, validateDuplicateCodes},
	{CheckCodeHierarchy, validateCodeHierarchy},
	{CheckRequiredStatements, validateRequiredStatements},
	{CheckSfpBalance, validateSfpBalance},
	{CheckPlBalance, validatePlBalance},
	{CheckDebitCreditRules, validateDebitCreditRules},
	{CheckIfrsClassification, validateIfrsClassification},
	{CheckUnmappedAccounts, validateUnmappedAccounts},
	{CheckLargeMovements, validateLargeMovements},
	{CheckProfitReconciliation, validateProfitReconciliation},
	{CheckEquityReconciliation, validateEquityReconciliation},
}

// RunAll executes the full battery in stable order.
func RunAll(in *Input) []models.ValidationResult {
	log := logger.GetGlobalLogger().WithComponent("validator")

	if in == nil {
		in = &Input{}
	}

	results := make([]models.ValidationResult, 0, len(battery))
	failures := 0
	for _, check := range battery {
		result := check.fn(in)
		if result.Status == models.ValidationFail {
			failures++
		}
		results = append(results, result)
	}

	log.WithFields(logger.Fields{
		"checks":   len(results),
		"failures": failures,
	}).Debug("Validation battery completed")

	return results
}

// Run executes a single named check, or returns false when unknown.
func Run(name string, in *Input) (models.ValidationResult, bool) {
	for _, check := range battery {
		if check.name == name {
			return check.fn(in), true
		}
	}
	return models.ValidationResult{}, false
}

// CheckNames returns the battery's check identifiers in execution order.
func CheckNames() []string {
	names := make([]string, len(battery))
	for i, check := range battery {
		names[i] = check.name
	}
	return names
}
