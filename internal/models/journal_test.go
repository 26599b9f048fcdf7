package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testEntry(t *testing.T, lines ...*JournalEntryLine) *JournalEntry {
	t.Helper()
	return NewJournalEntry(1, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		"Accrue March rent", EntryAccrual, lines)
}

func line(accountID string, debit, credit int64) *JournalEntryLine {
	return &JournalEntryLine{
		AccountID: accountID,
		Debit:     decimal.NewFromInt(debit),
		Credit:    decimal.NewFromInt(credit),
	}
}

func TestNewJournalEntry(t *testing.T) {
	entry := testEntry(t, line("6100", 100, 0), line("2200", 0, 100))

	if entry.ID == "" {
		t.Error("expected a minted entry ID")
	}
	if entry.EntryNumber != "JE-0001" {
		t.Errorf("entry number = %s, want JE-0001", entry.EntryNumber)
	}
	if entry.Status != StatusDraft {
		t.Errorf("new entry status = %s, want draft", entry.Status)
	}
}

func TestJournalEntryTotalsAndBalance(t *testing.T) {
	entry := testEntry(t, line("6100", 100, 0), line("2200", 0, 100))

	debit, credit := entry.Totals()
	if debit.String() != "100" || credit.String() != "100" {
		t.Errorf("Totals() = %s/%s, want 100/100", debit, credit)
	}
	if !entry.IsBalanced() {
		t.Error("100/100 entry should be balanced")
	}

	unbalanced := testEntry(t, line("6100", 150, 0), line("2200", 0, 100))
	if unbalanced.IsBalanced() {
		t.Error("150/100 entry should not be balanced")
	}

	// A penny difference sits exactly on the tolerance boundary.
	within := testEntry(t,
		&JournalEntryLine{AccountID: "6100", Debit: decimal.NewFromFloat(100.01)},
		&JournalEntryLine{AccountID: "2200", Credit: decimal.NewFromFloat(100.00)},
	)
	if !within.IsBalanced() {
		t.Error("0.01 difference should be within tolerance")
	}
}

func TestJournalEntryValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*JournalEntry)
		expectError bool
	}{
		{
			name:   "valid entry",
			mutate: func(e *JournalEntry) {},
		},
		{
			name:        "missing ID",
			mutate:      func(e *JournalEntry) { e.ID = "" },
			expectError: true,
		},
		{
			name:        "invalid status",
			mutate:      func(e *JournalEntry) { e.Status = "published" },
			expectError: true,
		},
		{
			name:        "invalid type",
			mutate:      func(e *JournalEntry) { e.EntryType = "misc" },
			expectError: true,
		},
		{
			name:        "no lines",
			mutate:      func(e *JournalEntry) { e.Lines = nil },
			expectError: true,
		},
		{
			name: "line without account",
			mutate: func(e *JournalEntry) {
				e.Lines = append(e.Lines, line("", 10, 0))
			},
			expectError: true,
		},
		{
			name: "negative line amount",
			mutate: func(e *JournalEntry) {
				e.Lines[0].Debit = decimal.NewFromInt(-5)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := testEntry(t, line("6100", 100, 0), line("2200", 0, 100))
			tt.mutate(entry)

			err := entry.Validate()
			if tt.expectError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestJournalEntryClone(t *testing.T) {
	entry := testEntry(t, line("6100", 100, 0), line("2200", 0, 100))
	clone := entry.Clone()

	clone.Status = StatusPosted
	clone.Lines[0].Debit = decimal.NewFromInt(999)

	if entry.Status != StatusDraft {
		t.Error("clone mutation changed the original status")
	}
	if entry.Lines[0].Debit.String() != "100" {
		t.Error("clone mutation changed an original line")
	}
}

func TestMappedTrialBalanceAssign(t *testing.T) {
	mapped := NewMappedTrialBalance()
	cash := NewAccount("1000", "Petty Cash", decimal.NewFromInt(100), decimal.Zero)

	ref := LineItemRef{Section: SectionAssets, LineItem: "cash_and_cash_equivalents"}
	if err := mapped.Assign(cash, ref); err != nil {
		t.Fatalf("first assignment failed: %v", err)
	}

	// Same account again, anywhere, must be rejected.
	if err := mapped.Assign(cash, LineItemRef{Section: SectionExpenses, LineItem: "operating_expenses"}); err == nil {
		t.Error("duplicate assignment should fail")
	}

	got, ok := mapped.AssignmentOf("1000")
	if !ok || got != ref {
		t.Errorf("AssignmentOf = %v/%v, want %v", got, ok, ref)
	}

	if err := mapped.Assign(cash, LineItemRef{Section: "income", LineItem: "x"}); err == nil {
		t.Error("invalid section should fail")
	}

	if mapped.MappedCount() != 1 {
		t.Errorf("MappedCount = %d, want 1", mapped.MappedCount())
	}
}

func TestMappedTrialBalanceTotals(t *testing.T) {
	mapped := NewMappedTrialBalance()

	accounts := []struct {
		acc *Account
		ref LineItemRef
	}{
		{NewAccount("1000", "Cash", decimal.NewFromInt(500), decimal.Zero),
			LineItemRef{SectionAssets, "cash_and_cash_equivalents"}},
		{NewAccount("1100", "Receivables", decimal.NewFromInt(300), decimal.Zero),
			LineItemRef{SectionAssets, "trade_receivables"}},
		{NewAccount("2100", "Payables", decimal.Zero, decimal.NewFromInt(800)),
			LineItemRef{SectionLiabilities, "trade_payables"}},
	}
	for _, a := range accounts {
		if err := mapped.Assign(a.acc, a.ref); err != nil {
			t.Fatalf("assign %s: %v", a.acc.AccountID, err)
		}
	}

	if got := mapped.SectionTotal(SectionAssets).String(); got != "800" {
		t.Errorf("assets total = %s, want 800", got)
	}
	if got := mapped.SectionTotal(SectionLiabilities).String(); got != "-800" {
		t.Errorf("liabilities total = %s, want -800", got)
	}
	if got := mapped.LineItemTotal(SectionAssets, "cash_and_cash_equivalents").String(); got != "500" {
		t.Errorf("cash line total = %s, want 500", got)
	}

	labels := mapped.LineItemLabels(SectionAssets)
	if len(labels) != 2 || labels[0] != "cash_and_cash_equivalents" {
		t.Errorf("labels = %v, want sorted pair starting with cash", labels)
	}
}

func TestValidationResultConstructors(t *testing.T) {
	pass := Pass("sfp-balance", "ok")
	if pass.Status != ValidationPass || !pass.IsValid {
		t.Error("Pass should be valid")
	}

	fail := Fail("sfp-balance", "off by 10").WithDetail("difference", "10.00")
	if fail.Status != ValidationFail || fail.IsValid {
		t.Error("Fail should be invalid")
	}
	if fail.Details["difference"] != "10.00" {
		t.Error("WithDetail should attach the value")
	}

	warn := Warn("unmapped-accounts", "2 unmapped")
	if warn.Status != ValidationWarning || !warn.IsValid {
		t.Error("Warn should be valid but flagged")
	}
}
