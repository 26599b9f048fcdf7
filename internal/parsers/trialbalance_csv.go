package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/errors"
)

// CSVConfig holds configuration for trial balance CSV imports.
type CSVConfig struct {
	HasHeader        bool
	Delimiter        rune
	TrimLeadingSpace bool
	SkipEmptyRows    bool
}

// DefaultCSVConfig returns a configuration matching the common export shape:
// header row, comma-delimited, columns accountId, accountName, debit, credit
// and an optional trailing description.
func DefaultCSVConfig() *CSVConfig {
	return &CSVConfig{
		HasHeader:        true,
		Delimiter:        ',',
		TrimLeadingSpace: true,
		SkipEmptyRows:    true,
	}
}

// Validate validates the CSV configuration.
func (c *CSVConfig) Validate() error {
	if c.Delimiter == 0 {
		return fmt.Errorf("delimiter cannot be empty")
	}
	return nil
}

// LoadAccountsCSV reads trial balance accounts from a CSV file.
func LoadAccountsCSV(path string, config *CSVConfig) ([]*models.Account, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.InputError(errors.CodeMissingInput, "accounts",
			fmt.Errorf("cannot open %s: %w", path, err))
	}
	defer file.Close()

	accounts, err := ParseAccountsCSV(file, config)
	if err != nil {
		return nil, errors.InputError(errors.CodeInvalidFormat, "accounts",
			fmt.Errorf("cannot parse %s: %w", path, err))
	}
	return accounts, nil
}

// ParseAccountsCSV reads trial balance accounts from a CSV stream.
func ParseAccountsCSV(r io.Reader, config *CSVConfig) ([]*models.Account, error) {
	if config == nil {
		config = DefaultCSVConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.Comma = config.Delimiter
	reader.TrimLeadingSpace = config.TrimLeadingSpace
	reader.FieldsPerRecord = -1

	var accounts []*models.Account
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read error at line %d: %w", line+1, err)
		}
		line++

		if config.HasHeader && line == 1 {
			continue
		}
		if config.SkipEmptyRows && isEmptyRow(record) {
			continue
		}

		account, err := parseAccountRecord(record, line)
		if err != nil {
			return nil, err
		}

		if err := account.Validate(); err != nil {
			return nil, fmt.Errorf("invalid account at line %d: %w", line, err)
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func parseAccountRecord(record []string, line int) (*models.Account, error) {
	if len(record) < 4 {
		return nil, fmt.Errorf("line %d: expected at least 4 columns (accountId, accountName, debit, credit), got %d",
			line, len(record))
	}

	debit, err := parseCSVAmount(record[2])
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid debit amount %q: %w", line, record[2], err)
	}

	credit, err := parseCSVAmount(record[3])
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid credit amount %q: %w", line, record[3], err)
	}

	// Exports that use parenthesized negatives put a credit in the debit
	// column (and vice versa); fold the sign into the opposite column.
	if debit.IsNegative() {
		credit = credit.Add(debit.Neg())
		debit = decimal.Zero
	}
	if credit.IsNegative() {
		debit = debit.Add(credit.Neg())
		credit = decimal.Zero
	}

	account := &models.Account{
		AccountID:   strings.TrimSpace(record[0]),
		AccountName: strings.TrimSpace(record[1]),
		Debit:       debit,
		Credit:      credit,
	}
	if len(record) > 4 {
		account.Description = strings.TrimSpace(record[4])
	}

	return account, nil
}

// parseCSVAmount accepts the amount variations found in real exports: blank
// cells, thousands separators and parenthesized negatives.
func parseCSVAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

func isEmptyRow(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
