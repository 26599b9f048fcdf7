// Package models defines the core domain types of the trial-balance engine:
// ledger accounts, classification rules, journal entries, mapped and adjusted
// trial balances, and validation results.
//
// All monetary amounts use decimal.Decimal. Comparisons against zero and
// between totals use BalanceTolerance, the engine-wide absolute tolerance of
// 0.01 currency units.
package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the absolute tolerance, in currency units, used for
// every balance comparison in the engine (entry balancing, statement
// equations, reconciliation checks).
var BalanceTolerance = decimal.NewFromFloat(0.01)

// WithinTolerance reports whether two amounts differ by no more than
// BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceTolerance)
}

// StatementSection identifies one of the five canonical statement buckets.
type StatementSection string

const (
	SectionAssets      StatementSection = "assets"
	SectionLiabilities StatementSection = "liabilities"
	SectionEquity      StatementSection = "equity"
	SectionRevenue     StatementSection = "revenue"
	SectionExpenses    StatementSection = "expenses"
)

// AllSections returns the five statement sections in canonical order.
func AllSections() []StatementSection {
	return []StatementSection{
		SectionAssets,
		SectionLiabilities,
		SectionEquity,
		SectionRevenue,
		SectionExpenses,
	}
}

// IsValid checks if the section is one of the five canonical buckets.
func (s StatementSection) IsValid() bool {
	switch s {
	case SectionAssets, SectionLiabilities, SectionEquity, SectionRevenue, SectionExpenses:
		return true
	default:
		return false
	}
}

// IsDebitNatured reports whether accounts in this section conventionally carry
// a debit balance. Under the engine's debit-positive sign convention these
// sections produce positive totals; the others produce negative totals.
func (s StatementSection) IsDebitNatured() bool {
	return s == SectionAssets || s == SectionExpenses
}

// String returns the string representation of the section.
func (s StatementSection) String() string {
	return string(s)
}

// LineItemRef identifies a target slot in the mapped trial balance.
type LineItemRef struct {
	Section  StatementSection `json:"section"`
	LineItem string           `json:"lineItem"`
}

// Account is a single imported ledger line. Debit and credit are non-negative;
// one of the two is normally zero but the engine never assumes it. An account
// is immutable once imported - adjustments are layered on via journal entries.
type Account struct {
	AccountID   string          `json:"accountId"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// NewAccount creates a new Account instance.
func NewAccount(id, name string, debit, credit decimal.Decimal) *Account {
	return &Account{
		AccountID:   id,
		AccountName: name,
		Debit:       debit,
		Credit:      credit,
	}
}

// Balance returns debit - credit, the signed balance under the engine's
// debit-positive convention.
func (a *Account) Balance() decimal.Decimal {
	return a.Debit.Sub(a.Credit)
}

// Validate performs basic validation on the Account.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.AccountID) == "" {
		return fmt.Errorf("account ID cannot be empty")
	}

	if strings.TrimSpace(a.AccountName) == "" {
		return fmt.Errorf("account %s: name cannot be empty", a.AccountID)
	}

	if a.Debit.IsNegative() {
		return fmt.Errorf("account %s: debit cannot be negative, got %s", a.AccountID, a.Debit)
	}

	if a.Credit.IsNegative() {
		return fmt.Errorf("account %s: credit cannot be negative, got %s", a.AccountID, a.Credit)
	}

	return nil
}

// String returns a string representation of the Account.
func (a *Account) String() string {
	return fmt.Sprintf("Account{ID: %s, Name: %s, Debit: %s, Credit: %s}",
		a.AccountID, a.AccountName, a.Debit.String(), a.Credit.String())
}

// Clone returns a copy of the account. Used by the replay engine so adjusted
// balances never alias the immutable base set.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

// MarshalJSON implements custom JSON marshaling so amounts render as plain
// decimal strings.
func (a *Account) MarshalJSON() ([]byte, error) {
	type Alias Account
	return json.Marshal(&struct {
		Debit  string `json:"debit"`
		Credit string `json:"credit"`
		*Alias
	}{
		Debit:  a.Debit.String(),
		Credit: a.Credit.String(),
		Alias:  (*Alias)(a),
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for Account.
func (a *Account) UnmarshalJSON(data []byte) error {
	type Alias Account
	aux := &struct {
		Debit  json.Number `json:"debit"`
		Credit json.Number `json:"credit"`
		*Alias
	}{
		Alias: (*Alias)(a),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	a.Debit, err = parseAmount(aux.Debit)
	if err != nil {
		return fmt.Errorf("invalid debit amount: %w", err)
	}

	a.Credit, err = parseAmount(aux.Credit)
	if err != nil {
		return fmt.Errorf("invalid credit amount: %w", err)
	}

	return nil
}

func parseAmount(n json.Number) (decimal.Decimal, error) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// PeriodData bundles the raw imported data for one reporting period: the
// immutable trial balance and the journal-entry ledger recorded against it.
type PeriodData struct {
	Accounts []*Account      `json:"accounts"`
	Entries  []*JournalEntry `json:"entries,omitempty"`
}

// AccountByID returns the account with the given ID, or nil when absent.
func (p *PeriodData) AccountByID(id string) *Account {
	for _, acc := range p.Accounts {
		if acc.AccountID == id {
			return acc
		}
	}
	return nil
}

// Validate checks every account in the period.
func (p *PeriodData) Validate() error {
	for _, acc := range p.Accounts {
		if err := acc.Validate(); err != nil {
			return err
		}
	}
	return nil
}
