package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MappedTrialBalance is the canonical bucketed shape: each of the five
// statement sections maps a line-item label to the ordered set of accounts
// assigned to it. Every account appears in at most one (section, lineItem)
// slot; accounts absent from all slots are tracked in Unmapped rather than
// silently dropped.
type MappedTrialBalance struct {
	Sections map[StatementSection]map[string][]*Account `json:"sections"`
	Unmapped []*Account                                 `json:"unmapped,omitempty"`
}

// NewMappedTrialBalance creates an empty mapped trial balance with all five
// section buckets present.
func NewMappedTrialBalance() *MappedTrialBalance {
	sections := make(map[StatementSection]map[string][]*Account, 5)
	for _, s := range AllSections() {
		sections[s] = make(map[string][]*Account)
	}
	return &MappedTrialBalance{Sections: sections}
}

// Assign places an account into a (section, lineItem) slot. Returns an error
// if the account is already assigned elsewhere, preserving the at-most-one
// slot invariant.
func (m *MappedTrialBalance) Assign(acc *Account, ref LineItemRef) error {
	if !ref.Section.IsValid() {
		return fmt.Errorf("invalid statement section %q", ref.Section)
	}

	if existing, ok := m.locate(acc.AccountID); ok {
		return fmt.Errorf("account %s already assigned to %s/%s",
			acc.AccountID, existing.Section, existing.LineItem)
	}

	bucket := m.Sections[ref.Section]
	if bucket == nil {
		bucket = make(map[string][]*Account)
		m.Sections[ref.Section] = bucket
	}
	bucket[ref.LineItem] = append(bucket[ref.LineItem], acc)
	return nil
}

// locate finds the slot an account currently occupies.
func (m *MappedTrialBalance) locate(accountID string) (LineItemRef, bool) {
	for section, lineItems := range m.Sections {
		for lineItem, accounts := range lineItems {
			for _, acc := range accounts {
				if acc.AccountID == accountID {
					return LineItemRef{Section: section, LineItem: lineItem}, true
				}
			}
		}
	}
	return LineItemRef{}, false
}

// AssignmentOf returns the slot an account is mapped to, if any.
func (m *MappedTrialBalance) AssignmentOf(accountID string) (LineItemRef, bool) {
	return m.locate(accountID)
}

// SectionAccounts returns all accounts mapped anywhere in a section.
func (m *MappedTrialBalance) SectionAccounts(section StatementSection) []*Account {
	lineItems := m.Sections[section]
	if lineItems == nil {
		return nil
	}

	// Deterministic order: line items sorted, account order preserved within.
	labels := make([]string, 0, len(lineItems))
	for label := range lineItems {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var accounts []*Account
	for _, label := range labels {
		accounts = append(accounts, lineItems[label]...)
	}
	return accounts
}

// SectionTotal returns the signed sum of (debit - credit) over every account
// in the section. Debit-natured sections (assets, expenses) are naturally
// positive; credit-natured sections naturally negative.
func (m *MappedTrialBalance) SectionTotal(section StatementSection) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range m.SectionAccounts(section) {
		total = total.Add(acc.Balance())
	}
	return total
}

// LineItemTotal returns the signed balance of one line item.
func (m *MappedTrialBalance) LineItemTotal(section StatementSection, lineItem string) decimal.Decimal {
	total := decimal.Zero
	if lineItems := m.Sections[section]; lineItems != nil {
		for _, acc := range lineItems[lineItem] {
			total = total.Add(acc.Balance())
		}
	}
	return total
}

// LineItemLabels returns the sorted line-item labels present in a section.
func (m *MappedTrialBalance) LineItemLabels(section StatementSection) []string {
	lineItems := m.Sections[section]
	labels := make([]string, 0, len(lineItems))
	for label := range lineItems {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// MappedCount returns the number of accounts assigned to any slot.
func (m *MappedTrialBalance) MappedCount() int {
	count := 0
	for _, lineItems := range m.Sections {
		for _, accounts := range lineItems {
			count += len(accounts)
		}
	}
	return count
}

// AdjustmentSummary aggregates the effect of all applied journal entries.
type AdjustmentSummary struct {
	TotalEntries int `json:"totalEntries"`
	// TotalAdjustment is the sum of absolute per-account net impacts, a
	// magnitude measure of how much the ledger moved.
	TotalAdjustment decimal.Decimal `json:"totalAdjustment"`
	LastAdjustment  time.Time       `json:"lastAdjustment,omitempty"`
	// NetImpactByAccount maps accountId to net debit - credit impact across
	// all applied entries. Sums to zero because each entry balances.
	NetImpactByAccount map[string]decimal.Decimal `json:"netImpactByAccount"`
}

// NetImpactTotal returns the sum of all per-account net impacts. For any set
// of individually balanced entries this is zero within tolerance.
func (s *AdjustmentSummary) NetImpactTotal() decimal.Decimal {
	total := decimal.Zero
	for _, impact := range s.NetImpactByAccount {
		total = total.Add(impact)
	}
	return total
}

// AdjustedTrialBalance is the base trial balance with the applied ledger of
// journal entries folded in.
type AdjustedTrialBalance struct {
	// BaseAccounts is the immutable imported trial balance.
	BaseAccounts []*Account `json:"baseAccounts"`
	// AppliedEntries is the full ledger of entries folded into the balances.
	AppliedEntries []*JournalEntry `json:"appliedEntries"`
	// AdjustedBalances holds one account per referenced accountId with
	// adjustment deltas folded in; untouched accounts pass through unchanged.
	AdjustedBalances []*Account `json:"adjustedBalances"`
	// AdjustmentOnly lists accountIds that were materialized purely from
	// adjustments because no base account carried that ID.
	AdjustmentOnly []string           `json:"adjustmentOnly,omitempty"`
	Summary        *AdjustmentSummary `json:"adjustmentSummary"`
}

// AdjustedBalance returns the adjusted account with the given ID, or nil.
func (a *AdjustedTrialBalance) AdjustedBalance(accountID string) *Account {
	for _, acc := range a.AdjustedBalances {
		if acc.AccountID == accountID {
			return acc
		}
	}
	return nil
}

// ValidationStatus is the outcome class of one validation check.
type ValidationStatus string

const (
	ValidationPass    ValidationStatus = "pass"
	ValidationFail    ValidationStatus = "fail"
	ValidationWarning ValidationStatus = "warning"
)

// ValidationResult is the structured outcome of one invariant check.
// Validators never throw for ordinary data conditions: absence of required
// data yields a pass or warning with an explanatory message.
type ValidationResult struct {
	Check   string           `json:"check"`
	Status  ValidationStatus `json:"status"`
	IsValid bool             `json:"isValid"`
	Message string           `json:"message"`
	Details map[string]any   `json:"details,omitempty"`
}

// Pass builds a passing result.
func Pass(check, message string) ValidationResult {
	return ValidationResult{Check: check, Status: ValidationPass, IsValid: true, Message: message}
}

// Fail builds a failing result.
func Fail(check, message string) ValidationResult {
	return ValidationResult{Check: check, Status: ValidationFail, IsValid: false, Message: message}
}

// Warn builds a warning result. Warnings surface data-quality findings that
// do not block statement generation.
func Warn(check, message string) ValidationResult {
	return ValidationResult{Check: check, Status: ValidationWarning, IsValid: true, Message: message}
}

// WithDetail attaches a diagnostic key/value and returns the result.
func (r ValidationResult) WithDetail(key string, value any) ValidationResult {
	if r.Details == nil {
		r.Details = make(map[string]any)
	}
	r.Details[key] = value
	return r
}

// String returns a string representation of the result.
func (r ValidationResult) String() string {
	return fmt.Sprintf("[%s] %s: %s", r.Status, r.Check, r.Message)
}
