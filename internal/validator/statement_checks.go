package validator

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
)

// validateRequiredStatements checks that all five statement buckets are
// present (non-nil) in the mapped structure.
func validateRequiredStatements(in *Input) models.ValidationResult {
	if in.Mapped == nil {
		return models.Warn(CheckRequiredStatements, "no mapped trial balance available; statements not yet generated")
	}

	var missing []string
	for _, section := range models.AllSections() {
		if in.Mapped.Sections[section] == nil {
			missing = append(missing, section.String())
		}
	}

	if len(missing) > 0 {
		return models.Fail(CheckRequiredStatements,
			fmt.Sprintf("missing statement sections: %v", missing)).
			WithDetail("missing", missing)
	}

	return models.Pass(CheckRequiredStatements, "all five statement sections are present")
}

// validateSfpBalance checks the balance-sheet equation. Under the engine's
// debit-positive convention assets are positive and liabilities plus equity
// negative, so the signed totals must sum to zero within tolerance.
func validateSfpBalance(in *Input) models.ValidationResult {
	if in.Mapped == nil || in.Mapped.MappedCount() == 0 {
		return models.Pass(CheckSfpBalance, "no mapped accounts; balance check skipped")
	}

	assets := in.Mapped.SectionTotal(models.SectionAssets)
	liabilities := in.Mapped.SectionTotal(models.SectionLiabilities)
	equity := in.Mapped.SectionTotal(models.SectionEquity)
	difference := assets.Add(liabilities).Add(equity)

	result := models.Pass(CheckSfpBalance, "statement of financial position balances").
		WithDetail("total_assets", assets.StringFixed(2)).
		WithDetail("total_liabilities", liabilities.StringFixed(2)).
		WithDetail("total_equity", equity.StringFixed(2)).
		WithDetail("difference", difference.StringFixed(2))

	if difference.Abs().GreaterThan(models.BalanceTolerance) {
		return models.Fail(CheckSfpBalance,
			fmt.Sprintf("statement of financial position does not balance: assets %s, liabilities %s, equity %s, difference %s",
				assets.StringFixed(2), liabilities.StringFixed(2), equity.StringFixed(2), difference.StringFixed(2))).
			WithDetail("total_assets", assets.StringFixed(2)).
			WithDetail("total_liabilities", liabilities.StringFixed(2)).
			WithDetail("total_equity", equity.StringFixed(2)).
			WithDetail("difference", difference.StringFixed(2))
	}

	return result
}

// validatePlBalance checks internal consistency of the P&L aggregation: the
// section totals derived from line items must agree with the totals derived
// directly from the accounts. It does not require profit to be zero; the net
// result rides along in details.
func validatePlBalance(in *Input) models.ValidationResult {
	if in.Mapped == nil {
		return models.Pass(CheckPlBalance, "no mapped trial balance; profit and loss check skipped")
	}

	revenue := in.Mapped.SectionTotal(models.SectionRevenue)
	expenses := in.Mapped.SectionTotal(models.SectionExpenses)

	// Re-derive each P&L section from its line items independently.
	revenueFromLines := sectionTotalFromLineItems(in.Mapped, models.SectionRevenue)
	expensesFromLines := sectionTotalFromLineItems(in.Mapped, models.SectionExpenses)

	netResult := revenue.Add(expenses).Neg()
	revenueGap := revenue.Sub(revenueFromLines).Abs()
	expensesGap := expenses.Sub(expensesFromLines).Abs()

	if revenueGap.GreaterThan(models.BalanceTolerance) || expensesGap.GreaterThan(models.BalanceTolerance) {
		return models.Fail(CheckPlBalance,
			"profit and loss aggregation is internally inconsistent between line-item and account totals").
			WithDetail("revenue_gap", revenueGap.StringFixed(2)).
			WithDetail("expenses_gap", expensesGap.StringFixed(2))
	}

	return models.Pass(CheckPlBalance, "profit and loss aggregation is internally consistent").
		WithDetail("total_revenue", revenue.StringFixed(2)).
		WithDetail("total_expenses", expenses.StringFixed(2)).
		WithDetail("net_result", netResult.StringFixed(2))
}

func sectionTotalFromLineItems(mapped *models.MappedTrialBalance, section models.StatementSection) decimal.Decimal {
	total := decimal.Zero
	for _, label := range mapped.LineItemLabels(section) {
		total = total.Add(mapped.LineItemTotal(section, label))
	}
	return total
}

// validateDebitCreditRules checks the natural-balance sign rule: accounts in
// debit-natured sections (assets, expenses) must carry a balance >= 0, and
// accounts in credit-natured sections a balance <= 0. Violations are listed
// individually; contra accounts legitimately trip this rule, so it fails only
// beyond tolerance.
func validateDebitCreditRules(in *Input) models.ValidationResult {
	if in.Mapped == nil || in.Mapped.MappedCount() == 0 {
		return models.Pass(CheckDebitCreditRules, "no mapped accounts; sign rules skipped")
	}

	var violations []string
	for _, section := range models.AllSections() {
		for _, acc := range in.Mapped.SectionAccounts(section) {
			balance := acc.Balance()
			if section.IsDebitNatured() && balance.LessThan(models.BalanceTolerance.Neg()) {
				violations = append(violations, fmt.Sprintf(
					"%s (%s) in %s has credit balance %s", acc.AccountID, acc.AccountName, section, balance.StringFixed(2)))
			}
			if !section.IsDebitNatured() && balance.GreaterThan(models.BalanceTolerance) {
				violations = append(violations, fmt.Sprintf(
					"%s (%s) in %s has debit balance %s", acc.AccountID, acc.AccountName, section, balance.StringFixed(2)))
			}
		}
	}

	if len(violations) > 0 {
		return models.Fail(CheckDebitCreditRules,
			fmt.Sprintf("%d account(s) violate natural debit/credit sign rules", len(violations))).
			WithDetail("violations", violations)
	}

	return models.Pass(CheckDebitCreditRules, "all accounts respect natural debit/credit sign rules")
}

var (
	currentLabelPattern    = regexp.MustCompile(`(?i)cash|receivable|inventor|prepay|payable|accrual|current|tax`)
	nonCurrentLabelPattern = regexp.MustCompile(`(?i)non[_ -]?current|property|plant|equipment|intangible|goodwill|borrowing|loan|long[_ -]?term`)
)

// validateIfrsClassification checks that assets and liabilities each contain
// at least one line item recognizable as current and one as non-current,
// using a label heuristic.
func validateIfrsClassification(in *Input) models.ValidationResult {
	if in.Mapped == nil {
		return models.Warn(CheckIfrsClassification, "no mapped trial balance; classification structure not checked")
	}

	var gaps []string
	for _, section := range []models.StatementSection{models.SectionAssets, models.SectionLiabilities} {
		labels := in.Mapped.LineItemLabels(section)
		if len(labels) == 0 {
			gaps = append(gaps, fmt.Sprintf("%s has no line items", section))
			continue
		}

		hasCurrent, hasNonCurrent := false, false
		for _, label := range labels {
			// Non-current wins when both patterns hit the same label.
			if nonCurrentLabelPattern.MatchString(label) {
				hasNonCurrent = true
			} else if currentLabelPattern.MatchString(label) {
				hasCurrent = true
			}
		}

		if !hasCurrent {
			gaps = append(gaps, fmt.Sprintf("%s has no current line item", section))
		}
		if !hasNonCurrent {
			gaps = append(gaps, fmt.Sprintf("%s has no non-current line item", section))
		}
	}

	if len(gaps) > 0 {
		return models.Warn(CheckIfrsClassification,
			fmt.Sprintf("classification structure is incomplete: %v", gaps)).
			WithDetail("gaps", gaps)
	}

	return models.Pass(CheckIfrsClassification,
		"assets and liabilities each present current and non-current line items")
}

// validateProfitReconciliation cross-checks the profit figure computed from
// the P&L sections against the profit implied by the balance-sheet residual.
// For a fully mapped, balanced trial balance the two derivations must agree.
func validateProfitReconciliation(in *Input) models.ValidationResult {
	if in.Mapped == nil || in.Mapped.MappedCount() == 0 {
		return models.Pass(CheckProfitReconciliation, "no mapped accounts; profit reconciliation skipped")
	}

	revenue := in.Mapped.SectionTotal(models.SectionRevenue)
	expenses := in.Mapped.SectionTotal(models.SectionExpenses)
	profitFromPL := revenue.Add(expenses).Neg()

	// Independently: the amount by which the balance sheet is out of balance
	// before closing is exactly the unposted profit for the period.
	assets := in.Mapped.SectionTotal(models.SectionAssets)
	liabilities := in.Mapped.SectionTotal(models.SectionLiabilities)
	equity := in.Mapped.SectionTotal(models.SectionEquity)
	profitFromSfp := assets.Add(liabilities).Add(equity)

	difference := profitFromPL.Sub(profitFromSfp)
	if difference.Abs().GreaterThan(models.BalanceTolerance) {
		return models.Fail(CheckProfitReconciliation,
			fmt.Sprintf("profit per P&L (%s) does not reconcile to profit implied by the balance sheet (%s)",
				profitFromPL.StringFixed(2), profitFromSfp.StringFixed(2))).
			WithDetail("profit_per_pl", profitFromPL.StringFixed(2)).
			WithDetail("profit_per_sfp", profitFromSfp.StringFixed(2)).
			WithDetail("difference", difference.StringFixed(2))
	}

	return models.Pass(CheckProfitReconciliation, "profit figures reconcile across statements").
		WithDetail("profit", profitFromPL.StringFixed(2))
}

// validateEquityReconciliation cross-checks closing equity computed by the
// statement of changes in equity (opening equity plus profit) against the
// closing equity the balance sheet requires (assets less liabilities).
func validateEquityReconciliation(in *Input) models.ValidationResult {
	if in.Mapped == nil || in.Mapped.MappedCount() == 0 {
		return models.Pass(CheckEquityReconciliation, "no mapped accounts; equity reconciliation skipped")
	}

	assets := in.Mapped.SectionTotal(models.SectionAssets)
	liabilities := in.Mapped.SectionTotal(models.SectionLiabilities)
	equity := in.Mapped.SectionTotal(models.SectionEquity)
	revenue := in.Mapped.SectionTotal(models.SectionRevenue)
	expenses := in.Mapped.SectionTotal(models.SectionExpenses)

	openingEquity := equity.Neg()
	netProfit := revenue.Add(expenses).Neg()
	closingPerSoce := openingEquity.Add(netProfit)
	closingPerSfp := assets.Add(liabilities)

	difference := closingPerSoce.Sub(closingPerSfp)
	if difference.Abs().GreaterThan(models.BalanceTolerance) {
		return models.Fail(CheckEquityReconciliation,
			fmt.Sprintf("closing equity per statement of changes in equity (%s) does not reconcile to balance sheet (%s)",
				closingPerSoce.StringFixed(2), closingPerSfp.StringFixed(2))).
			WithDetail("closing_equity_per_soce", closingPerSoce.StringFixed(2)).
			WithDetail("closing_equity_per_sfp", closingPerSfp.StringFixed(2)).
			WithDetail("difference", difference.StringFixed(2))
	}

	return models.Pass(CheckEquityReconciliation, "closing equity reconciles across statements").
		WithDetail("closing_equity", closingPerSoce.StringFixed(2))
}
