package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccountBalance(t *testing.T) {
	tests := []struct {
		name   string
		debit  string
		credit string
		want   string
	}{
		{"debit balance", "100.50", "0", "100.5"},
		{"credit balance", "0", "250", "-250"},
		{"both sides", "300", "100", "200"},
		{"zero", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewAccount("1000", "Test", mustDecimal(t, tt.debit), mustDecimal(t, tt.credit))
			if got := acc.Balance().String(); got != tt.want {
				t.Errorf("Balance() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAccountValidate(t *testing.T) {
	tests := []struct {
		name        string
		account     *Account
		expectError bool
	}{
		{
			name:    "valid account",
			account: NewAccount("1000", "Petty Cash", decimal.NewFromInt(100), decimal.Zero),
		},
		{
			name:        "empty ID",
			account:     NewAccount("", "Petty Cash", decimal.Zero, decimal.Zero),
			expectError: true,
		},
		{
			name:        "empty name",
			account:     NewAccount("1000", "  ", decimal.Zero, decimal.Zero),
			expectError: true,
		},
		{
			name:        "negative debit",
			account:     NewAccount("1000", "Petty Cash", decimal.NewFromInt(-1), decimal.Zero),
			expectError: true,
		},
		{
			name:        "negative credit",
			account:     NewAccount("1000", "Petty Cash", decimal.Zero, decimal.NewFromInt(-1)),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.expectError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccountJSONAmounts(t *testing.T) {
	// Amounts arrive as JSON strings or numbers; both must decode.
	inputs := []string{
		`{"accountId":"1000","accountName":"Petty Cash","debit":"150.25","credit":"0"}`,
		`{"accountId":"1000","accountName":"Petty Cash","debit":150.25,"credit":0}`,
	}

	for _, input := range inputs {
		var acc Account
		if err := json.Unmarshal([]byte(input), &acc); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if acc.Debit.String() != "150.25" {
			t.Errorf("debit = %s, want 150.25", acc.Debit)
		}
	}

	// Marshal renders amounts as strings.
	acc := NewAccount("1000", "Petty Cash", mustDecimal(t, "150.25"), decimal.Zero)
	data, err := json.Marshal(acc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw failed: %v", err)
	}
	if raw["debit"] != "150.25" {
		t.Errorf("marshaled debit = %v, want string \"150.25\"", raw["debit"])
	}
}

func TestWithinTolerance(t *testing.T) {
	a := decimal.NewFromFloat(100.00)

	if !WithinTolerance(a, decimal.NewFromFloat(100.01)) {
		t.Error("0.01 difference should be within tolerance")
	}
	if WithinTolerance(a, decimal.NewFromFloat(100.02)) {
		t.Error("0.02 difference should exceed tolerance")
	}
}

func TestStatementSections(t *testing.T) {
	if len(AllSections()) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(AllSections()))
	}

	for _, s := range AllSections() {
		if !s.IsValid() {
			t.Errorf("section %s should be valid", s)
		}
	}

	if StatementSection("income").IsValid() {
		t.Error("unknown section should be invalid")
	}

	if !SectionAssets.IsDebitNatured() || !SectionExpenses.IsDebitNatured() {
		t.Error("assets and expenses are debit natured")
	}
	if SectionLiabilities.IsDebitNatured() || SectionEquity.IsDebitNatured() || SectionRevenue.IsDebitNatured() {
		t.Error("liabilities, equity and revenue are credit natured")
	}
}

func TestPeriodDataAccountByID(t *testing.T) {
	period := &PeriodData{
		Accounts: []*Account{
			NewAccount("1000", "Cash", decimal.NewFromInt(100), decimal.Zero),
			NewAccount("2100", "Payables", decimal.Zero, decimal.NewFromInt(100)),
		},
	}

	if acc := period.AccountByID("2100"); acc == nil || acc.AccountName != "Payables" {
		t.Error("expected to find account 2100")
	}
	if acc := period.AccountByID("9999"); acc != nil {
		t.Error("expected nil for unknown account")
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}
