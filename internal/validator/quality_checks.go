package validator

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
)

// validateTrialBalanceSum checks that the unmodified raw trial balance sums
// to zero across all accounts within tolerance.
func validateTrialBalanceSum(in *Input) models.ValidationResult {
	if in.Period == nil || len(in.Period.Accounts) == 0 {
		return models.Pass(CheckTrialBalanceSum, "no raw accounts imported; trial balance sum skipped")
	}

	total := decimal.Zero
	for _, acc := range in.Period.Accounts {
		total = total.Add(acc.Balance())
	}

	if total.Abs().GreaterThan(models.BalanceTolerance) {
		return models.Fail(CheckTrialBalanceSum,
			fmt.Sprintf("raw trial balance does not sum to zero: difference %s", total.StringFixed(2))).
			WithDetail("difference", total.StringFixed(2)).
			WithDetail("accounts", len(in.Period.Accounts))
	}

	return models.Pass(CheckTrialBalanceSum, "raw trial balance sums to zero").
		WithDetail("accounts", len(in.Period.Accounts))
}

// validateDuplicateCodes checks that no accountId appears more than once in
// the raw import.
func validateDuplicateCodes(in *Input) models.ValidationResult {
	if in.Period == nil || len(in.Period.Accounts) == 0 {
		return models.Pass(CheckDuplicateCodes, "no raw accounts imported; duplicate check skipped")
	}

	seen := make(map[string]int)
	for _, acc := range in.Period.Accounts {
		seen[acc.AccountID]++
	}

	var duplicates []string
	for id, count := range seen {
		if count > 1 {
			duplicates = append(duplicates, fmt.Sprintf("%s (%d occurrences)", id, count))
		}
	}
	sort.Strings(duplicates)

	if len(duplicates) > 0 {
		return models.Fail(CheckDuplicateCodes,
			fmt.Sprintf("%d duplicate account code(s) in raw import", len(duplicates))).
			WithDetail("duplicates", duplicates)
	}

	return models.Pass(CheckDuplicateCodes, "all account codes are unique")
}

// validateCodeHierarchy checks that every account code longer than two
// characters has some proper prefix present as another account's code, the
// parent-code existence convention of hierarchical charts of accounts.
// Violations are reported as a warning list, not a hard failure.
func validateCodeHierarchy(in *Input) models.ValidationResult {
	if in.Period == nil || len(in.Period.Accounts) == 0 {
		return models.Pass(CheckCodeHierarchy, "no raw accounts imported; hierarchy check skipped")
	}

	codes := make(map[string]bool, len(in.Period.Accounts))
	for _, acc := range in.Period.Accounts {
		codes[acc.AccountID] = true
	}

	var orphans []string
	for _, acc := range in.Period.Accounts {
		code := acc.AccountID
		if len(code) <= 2 {
			continue
		}

		hasParent := false
		for i := len(code) - 1; i >= 1; i-- {
			if codes[code[:i]] {
				hasParent = true
				break
			}
		}

		if !hasParent {
			orphans = append(orphans, code)
		}
	}

	if len(orphans) > 0 {
		return models.Warn(CheckCodeHierarchy,
			fmt.Sprintf("%d account code(s) have no parent code in the chart", len(orphans))).
			WithDetail("orphans", orphans)
	}

	return models.Pass(CheckCodeHierarchy, "account code hierarchy is consistent")
}

// validateUnmappedAccounts checks that every raw account appears in the
// classified structure. Gaps are reported with the specific account IDs as a
// warning: unmapped accounts do not block statement generation but must be
// surfaced.
func validateUnmappedAccounts(in *Input) models.ValidationResult {
	if in.Period == nil || len(in.Period.Accounts) == 0 {
		return models.Pass(CheckUnmappedAccounts, "no raw accounts imported; mapping coverage skipped")
	}

	if in.Mapped == nil {
		return models.Warn(CheckUnmappedAccounts, "no mapped trial balance; all accounts are unmapped").
			WithDetail("unmapped_count", len(in.Period.Accounts))
	}

	var missing []string
	for _, acc := range in.Period.Accounts {
		if _, ok := in.Mapped.AssignmentOf(acc.AccountID); !ok {
			missing = append(missing, acc.AccountID)
		}
	}

	if len(missing) > 0 {
		return models.Warn(CheckUnmappedAccounts,
			fmt.Sprintf("%d account(s) are not mapped to any line item", len(missing))).
			WithDetail("unmapped", missing)
	}

	return models.Pass(CheckUnmappedAccounts, "every raw account is mapped to a line item")
}

// outlierStdDevFactor is the k in mean + k*stddev used by the large-movement
// outlier detector.
const outlierStdDevFactor = 3.0

// minOutlierSample is the minimum number of non-zero balances required before
// outlier detection is meaningful.
const minOutlierSample = 10

// validateLargeMovements flags accounts whose absolute balance exceeds
// mean + 3*stddev across all non-zero balances. The check is skipped
// entirely for small samples or near-zero variance, where the statistic says
// nothing.
func validateLargeMovements(in *Input) models.ValidationResult {
	if in.Period == nil || len(in.Period.Accounts) == 0 {
		return models.Pass(CheckLargeMovements, "no raw accounts imported; outlier detection skipped")
	}

	type sample struct {
		account *models.Account
		value   float64
	}

	var samples []sample
	for _, acc := range in.Period.Accounts {
		balance := acc.Balance()
		if balance.IsZero() {
			continue
		}
		value, _ := balance.Abs().Float64()
		samples = append(samples, sample{account: acc, value: value})
	}

	if len(samples) < minOutlierSample {
		return models.Pass(CheckLargeMovements,
			fmt.Sprintf("only %d non-zero balance(s); outlier detection skipped", len(samples)))
	}

	mean := 0.0
	for _, s := range samples {
		mean += s.value
	}
	mean /= float64(len(samples))

	variance := 0.0
	for _, s := range samples {
		diff := s.value - mean
		variance += diff * diff
	}
	variance /= float64(len(samples))

	if variance < 1e-9 {
		return models.Pass(CheckLargeMovements, "balances show no variance; outlier detection skipped")
	}

	threshold := mean + outlierStdDevFactor*math.Sqrt(variance)

	var outliers []string
	for _, s := range samples {
		if s.value > threshold {
			outliers = append(outliers, fmt.Sprintf("%s (%s): %.2f",
				s.account.AccountID, s.account.AccountName, s.value))
		}
	}

	if len(outliers) > 0 {
		return models.Warn(CheckLargeMovements,
			fmt.Sprintf("%d account balance(s) exceed %.2f (mean + %.0f sigma)",
				len(outliers), threshold, outlierStdDevFactor)).
			WithDetail("outliers", outliers).
			WithDetail("threshold", fmt.Sprintf("%.2f", threshold))
	}

	return models.Pass(CheckLargeMovements, "no anomalously large account balances detected")
}
