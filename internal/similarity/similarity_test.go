package similarity

import (
	"reflect"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "identical strings",
			a:    "petty cash",
			b:    "petty cash",
			want: 1.0,
		},
		{
			name: "identical after case folding",
			a:    "Petty Cash",
			b:    "PETTY CASH",
			want: 1.0,
		},
		{
			name: "identical after trimming",
			a:    "  rent expense  ",
			b:    "rent expense",
			want: 1.0,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 1.0,
		},
		{
			name: "one empty",
			a:    "cash",
			b:    "",
			want: 0.0,
		},
		{
			name: "completely different",
			a:    "abcd",
			b:    "wxyz",
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScoreCloseStrings(t *testing.T) {
	// One substitution in a ten-rune string: 1 - 1/10.
	got := Score("petty cash", "petty cosh")
	want := 0.9
	if got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Score close strings = %v, want %v", got, want)
	}

	// Similar names should score clearly above dissimilar ones.
	if Score("trade receivables", "trade payables") <= Score("trade receivables", "share capital") {
		t.Error("expected related names to outscore unrelated names")
	}
}

func TestScoreSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"inventory", "inventories"},
		{"accrued expenses", "accruals"},
		{"bank", "petty cash"},
	}

	for _, p := range pairs {
		if Score(p[0], p[1]) != Score(p[1], p[0]) {
			t.Errorf("Score(%q, %q) is not symmetric", p[0], p[1])
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "strips leading code",
			input: "1000 Petty Cash",
			want:  []string{"petty", "cash"},
		},
		{
			name:  "strips trailing code",
			input: "Bank Charges 6200",
			want:  []string{"bank", "charges"},
		},
		{
			name:  "drops stop words and short tokens",
			input: "Provision for Bad Debts",
			want:  []string{"provision", "bad", "debts"},
		},
		{
			name:  "punctuation becomes separators",
			input: "Property, Plant & Equipment",
			want:  []string{"property", "plant", "equipment"},
		},
		{
			name:  "ordered dedupe",
			input: "Cash and Cash Equivalents",
			want:  []string{"cash", "equivalents"},
		},
		{
			name:  "only a code",
			input: "4000",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKeywords(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLeadingCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1000 Petty Cash", "1000"},
		{"Petty Cash", ""},
		{"  2100 Trade Payables", "2100"},
		{"", ""},
		{"42", "42"},
	}

	for _, tt := range tests {
		if got := LeadingCode(tt.input); got != tt.want {
			t.Errorf("LeadingCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"cash", "cosh", 1},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
