package classifier

import (
	"strconv"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
)

// Canonical line-item identifiers used by the default rule table and the
// code-range heuristics. Custom rules may target any label; these are the
// ones the built-in chart conventions know about.
const (
	LineCashAndEquivalents = "cash_and_cash_equivalents"
	LineTradeReceivables   = "trade_receivables"
	LineInventories        = "inventories"
	LinePrepayments        = "prepayments"
	LinePPE                = "property_plant_equipment"
	LineIntangibles        = "intangible_assets"
	LineTradePayables      = "trade_payables"
	LineAccruals           = "accruals"
	LineBorrowings         = "borrowings"
	LineCurrentTax         = "current_tax_liabilities"
	LineShareCapital       = "share_capital"
	LineRetainedEarnings   = "retained_earnings"
	LineRevenue            = "revenue"
	LineCostOfSales        = "cost_of_sales"
	LineEmployeeBenefits   = "employee_benefits_expense"
	LineDepreciation       = "depreciation_and_amortisation"
	LineOperatingExpenses  = "operating_expenses"
	LineFinanceCosts       = "finance_costs"
)

// codeRange suggests a line item for numeric account codes in [Low, High].
// The ranges follow the conventional four-digit chart-of-accounts layout:
// 1xxx assets, 2xxx liabilities, 3xxx equity, 4xxx revenue, 5xxx+ expenses.
type codeRange struct {
	Low, High int
	Target    models.LineItemRef
}

var codeHeuristics = []codeRange{
	{1000, 1099, models.LineItemRef{Section: models.SectionAssets, LineItem: LineCashAndEquivalents}},
	{1100, 1199, models.LineItemRef{Section: models.SectionAssets, LineItem: LineTradeReceivables}},
	{1200, 1299, models.LineItemRef{Section: models.SectionAssets, LineItem: LineInventories}},
	{1300, 1399, models.LineItemRef{Section: models.SectionAssets, LineItem: LinePrepayments}},
	{1500, 1899, models.LineItemRef{Section: models.SectionAssets, LineItem: LinePPE}},
	{1900, 1999, models.LineItemRef{Section: models.SectionAssets, LineItem: LineIntangibles}},
	{2000, 2399, models.LineItemRef{Section: models.SectionLiabilities, LineItem: LineTradePayables}},
	{2400, 2599, models.LineItemRef{Section: models.SectionLiabilities, LineItem: LineAccruals}},
	{2600, 2899, models.LineItemRef{Section: models.SectionLiabilities, LineItem: LineBorrowings}},
	{2900, 2999, models.LineItemRef{Section: models.SectionLiabilities, LineItem: LineCurrentTax}},
	{3000, 3499, models.LineItemRef{Section: models.SectionEquity, LineItem: LineShareCapital}},
	{3500, 3999, models.LineItemRef{Section: models.SectionEquity, LineItem: LineRetainedEarnings}},
	{4000, 4999, models.LineItemRef{Section: models.SectionRevenue, LineItem: LineRevenue}},
	{5000, 5999, models.LineItemRef{Section: models.SectionExpenses, LineItem: LineCostOfSales}},
	{6000, 6199, models.LineItemRef{Section: models.SectionExpenses, LineItem: LineEmployeeBenefits}},
	{6200, 6299, models.LineItemRef{Section: models.SectionExpenses, LineItem: LineDepreciation}},
	{6300, 7999, models.LineItemRef{Section: models.SectionExpenses, LineItem: LineOperatingExpenses}},
	{8000, 8999, models.LineItemRef{Section: models.SectionExpenses, LineItem: LineFinanceCosts}},
}

// suggestByCode returns the line item the numeric code range heuristics
// suggest for an account code, if it parses as an integer inside a known
// range.
func suggestByCode(code string) (models.LineItemRef, bool) {
	if code == "" {
		return models.LineItemRef{}, false
	}

	n, err := strconv.Atoi(code)
	if err != nil {
		return models.LineItemRef{}, false
	}

	for _, r := range codeHeuristics {
		if n >= r.Low && n <= r.High {
			return r.Target, true
		}
	}
	return models.LineItemRef{}, false
}

// DefaultRules returns the built-in classification rule table. The table is
// versioned configuration, not a mutable singleton: every call returns a
// fresh slice so callers can extend it with custom rules without affecting
// other invocations. Priorities stay at or below 10 so the priority/10
// multiplier dampens rather than inflates confidence.
func DefaultRules() models.RuleSet {
	assets := func(item string) models.LineItemRef {
		return models.LineItemRef{Section: models.SectionAssets, LineItem: item}
	}
	liabilities := func(item string) models.LineItemRef {
		return models.LineItemRef{Section: models.SectionLiabilities, LineItem: item}
	}
	equity := func(item string) models.LineItemRef {
		return models.LineItemRef{Section: models.SectionEquity, LineItem: item}
	}
	expenses := func(item string) models.LineItemRef {
		return models.LineItemRef{Section: models.SectionExpenses, LineItem: item}
	}

	return models.RuleSet{
		{
			ID:          "default-cash",
			Pattern:     models.MustRegexPattern(`cash|bank|petty`),
			Target:      assets(LineCashAndEquivalents),
			Priority:    10,
			Description: "Cash on hand and demand deposits with banks",
		},
		{
			ID:          "default-receivables",
			Pattern:     models.MustRegexPattern(`receivable|debtors?`),
			Target:      assets(LineTradeReceivables),
			Priority:    9,
			Description: "Trade receivables and amounts due from customers",
		},
		{
			ID:          "default-inventories",
			Pattern:     models.MustRegexPattern(`inventor|stock on hand|finished goods|raw materials`),
			Target:      assets(LineInventories),
			Priority:    9,
			Description: "Inventories of goods held for sale or production",
		},
		{
			ID:          "default-prepayments",
			Pattern:     models.MustRegexPattern(`prepaid|prepayment`),
			Target:      assets(LinePrepayments),
			Priority:    8,
			Description: "Prepaid expenses and advance payments",
		},
		{
			ID:          "default-ppe",
			Pattern:     models.MustRegexPattern(`property|plant|equipment|machinery|vehicle|furniture|building|land`),
			Target:      assets(LinePPE),
			Priority:    8,
			Description: "Property plant and equipment held for use",
		},
		{
			ID:          "default-intangibles",
			Pattern:     models.MustRegexPattern(`goodwill|intangible|patent|trademark|software`),
			Target:      assets(LineIntangibles),
			Priority:    8,
			Description: "Goodwill and other intangible assets",
		},
		{
			ID:          "default-payables",
			Pattern:     models.MustRegexPattern(`payable|creditors?`),
			Target:      liabilities(LineTradePayables),
			Priority:    9,
			Description: "Trade payables and amounts owed to suppliers",
		},
		{
			ID:          "default-accruals",
			Pattern:     models.MustRegexPattern(`accrual|accrued`),
			Target:      liabilities(LineAccruals),
			Priority:    8,
			Description: "Accrued liabilities for goods and services received",
		},
		{
			ID:          "default-borrowings",
			Pattern:     models.MustRegexPattern(`loan|borrowing|overdraft|debenture|mortgage`),
			Target:      liabilities(LineBorrowings),
			Priority:    8,
			Description: "Loans borrowings and bank overdrafts",
		},
		{
			ID:          "default-tax-payable",
			Pattern:     models.MustRegexPattern(`vat|income tax|paye|withholding`),
			Target:      liabilities(LineCurrentTax),
			Priority:    7,
			Description: "Current tax liabilities payable to revenue authorities",
		},
		{
			ID:          "default-share-capital",
			Pattern:     models.MustRegexPattern(`share capital|ordinary shares|common stock|share premium`),
			Target:      equity(LineShareCapital),
			Priority:    9,
			Description: "Issued share capital and share premium",
		},
		{
			ID:          "default-retained-earnings",
			Pattern:     models.MustRegexPattern(`retained earnings|accumulated (profit|loss|surplus)`),
			Target:      equity(LineRetainedEarnings),
			Priority:    9,
			Description: "Retained earnings and accumulated profits",
		},
		{
			ID:          "default-revenue",
			Pattern:     models.MustRegexPattern(`revenue|sales|turnover|fees earned`),
			Target:      models.LineItemRef{Section: models.SectionRevenue, LineItem: LineRevenue},
			Priority:    7,
			Description: "Revenue from sales of goods and services",
		},
		{
			ID:          "default-cost-of-sales",
			Pattern:     models.MustRegexPattern(`cost of (sales|goods)|cogs|direct costs`),
			Target:      expenses(LineCostOfSales),
			Priority:    9,
			Description: "Direct cost of goods and services sold",
		},
		{
			ID:          "default-employee-benefits",
			Pattern:     models.MustRegexPattern(`salar|wages|payroll|staff costs|pension`),
			Target:      expenses(LineEmployeeBenefits),
			Priority:    8,
			Description: "Salaries wages and employee benefit expenses",
		},
		{
			ID:          "default-depreciation",
			Pattern:     models.MustRegexPattern(`depreciation|amorti[sz]ation|impairment`),
			Target:      expenses(LineDepreciation),
			Priority:    8,
			Description: "Depreciation amortisation and impairment charges",
		},
		{
			ID:          "default-finance-costs",
			Pattern:     models.MustRegexPattern(`interest (paid|expense)|finance cost|bank charges`),
			Target:      expenses(LineFinanceCosts),
			Priority:    8,
			Description: "Interest and other finance costs",
		},
		{
			ID:          "default-rent",
			Pattern:     models.LiteralPattern("rent expense"),
			Target:      expenses(LineOperatingExpenses),
			Priority:    7,
			Description: "Rent and occupancy operating expenses",
		},
		{
			ID:          "default-insurance",
			Pattern:     models.LiteralPattern("insurance expense"),
			Target:      expenses(LineOperatingExpenses),
			Priority:    7,
			Description: "Insurance premium operating expenses",
		},
		{
			ID:          "default-utilities",
			Pattern:     models.LiteralPattern("utilities expense"),
			Target:      expenses(LineOperatingExpenses),
			Priority:    7,
			Description: "Electricity water and other utility operating expenses",
		},
		{
			ID:          "default-operating-expenses",
			Pattern:     models.MustRegexPattern(`expense|repairs|maintenance|advertising|travel|telephone|stationery`),
			Target:      expenses(LineOperatingExpenses),
			Priority:    5,
			Description: "General and administrative operating expenses",
		},
	}
}
