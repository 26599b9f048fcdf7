// Package aggregator groups classified, adjusted accounts into the five
// canonical statement sections and computes section and line-item totals.
//
// Sign convention: every total is the signed sum of (debit - credit) over its
// accounts. Assets and expenses are naturally positive, liabilities, equity
// and revenue naturally negative, so the balance-sheet equation reads
// totalAssets + totalLiabilities + totalEquity = 0 and the income statement
// totalRevenue + totalExpenses = -(net profit). Reporting layers negate
// credit-natured totals for display; the engine never does.
package aggregator

import (
	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/logger"
)

// Aggregate buckets accounts into a MappedTrialBalance according to their
// assignments. Accounts without an assignment are tracked in Unmapped for
// reporting, not silently dropped. Account order within a line item follows
// input order, so identical inputs always produce identical output.
func Aggregate(accounts []*models.Account, mappings map[string]models.LineItemRef) *models.MappedTrialBalance {
	mapped := models.NewMappedTrialBalance()
	log := logger.GetGlobalLogger().WithComponent("aggregator")

	for _, account := range accounts {
		ref, ok := mappings[account.AccountID]
		if !ok {
			mapped.Unmapped = append(mapped.Unmapped, account)
			continue
		}

		if err := mapped.Assign(account, ref); err != nil {
			// A duplicate accountId in the input cannot occupy two slots; the
			// duplicate is surfaced as unmapped and the validator battery
			// reports it.
			log.WithError(err).WithField("account_id", account.AccountID).
				Warn("Account could not be assigned")
			mapped.Unmapped = append(mapped.Unmapped, account)
		}
	}

	log.WithFields(logger.Fields{
		"mapped":   mapped.MappedCount(),
		"unmapped": len(mapped.Unmapped),
	}).Debug("Aggregation completed")

	return mapped
}

// SectionTotals returns the signed total of each of the five sections.
func SectionTotals(mapped *models.MappedTrialBalance) map[models.StatementSection]decimal.Decimal {
	totals := make(map[models.StatementSection]decimal.Decimal, 5)
	for _, section := range models.AllSections() {
		totals[section] = mapped.SectionTotal(section)
	}
	return totals
}

// NetProfit returns the period profit implied by the P&L sections. Under the
// debit-positive convention revenue is negative and expenses positive, so
// profit is -(revenue + expenses); a positive result is a profit.
func NetProfit(mapped *models.MappedTrialBalance) decimal.Decimal {
	return mapped.SectionTotal(models.SectionRevenue).
		Add(mapped.SectionTotal(models.SectionExpenses)).
		Neg()
}

// ClosingEquity returns the closing equity implied by the statement of
// changes in equity: opening equity (the mapped equity section, negated to a
// positive magnitude) plus net profit for the period.
func ClosingEquity(mapped *models.MappedTrialBalance) decimal.Decimal {
	openingEquity := mapped.SectionTotal(models.SectionEquity).Neg()
	return openingEquity.Add(NetProfit(mapped))
}
