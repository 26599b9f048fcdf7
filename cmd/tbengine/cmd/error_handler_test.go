package cmd

import (
	"fmt"
	"os"
	"strings"
	"testing"

	enginerrors "github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/errors"
)

func TestHandleErrorExitCodes(t *testing.T) {
	handler := NewCLIErrorHandler()

	tests := []struct {
		name     string
		err      error
		exitCode int
	}{
		{
			name:     "nil error",
			err:      nil,
			exitCode: 0,
		},
		{
			name:     "input error",
			err:      enginerrors.New(enginerrors.CategoryInput, enginerrors.CodeMissingInput, "accounts file missing"),
			exitCode: 2,
		},
		{
			name: "validation error",
			err: enginerrors.New(enginerrors.CategoryValidation, enginerrors.CodeChecksFailed,
				"2 validation check(s) failed: sfp-balance, profit-reconciliation"),
			exitCode: 3,
		},
		{
			name:     "configuration error",
			err:      enginerrors.New(enginerrors.CategoryConfiguration, enginerrors.CodeInvalidConfig, "bad threshold"),
			exitCode: 4,
		},
		{
			name:     "ledger error",
			err:      enginerrors.UnbalancedEntryError("id-1", "JE-0001", "150.00", "100.00"),
			exitCode: 5,
		},
		{
			name:     "wrapped engine error keeps its exit code",
			err:      fmt.Errorf("trial balance check failed: %w", enginerrors.New(enginerrors.CategoryValidation, enginerrors.CodeChecksFailed, "1 validation check(s) failed: sfp-balance")),
			exitCode: 3,
		},
		{
			name:     "generic error",
			err:      fmt.Errorf("something broke"),
			exitCode: 1,
		},
		{
			name:     "file not found",
			err:      fmt.Errorf("open accounts.json: no such file or directory"),
			exitCode: 2,
		},
		{
			name:     "permission denied",
			err:      fmt.Errorf("open accounts.json: permission denied"),
			exitCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := handler.HandleError(tt.err)
			if code != tt.exitCode {
				t.Errorf("expected exit code %d, got %d", tt.exitCode, code)
			}
		})
	}
}

func TestHandleOSErrors(t *testing.T) {
	handler := NewCLIErrorHandler()

	_, err := os.Open("/non/existent/path/accounts.json")
	if err == nil {
		t.Fatal("expected open to fail")
	}

	if code := handler.HandleError(err); code != 2 {
		t.Errorf("expected exit code 2 for missing file, got %d", code)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	if got := FormatValidationErrors(nil); got != "" {
		t.Errorf("expected empty string for no errors, got %q", got)
	}

	single := FormatValidationErrors([]error{fmt.Errorf("bad entry")})
	if single != "Validation error: bad entry" {
		t.Errorf("unexpected single-error format: %q", single)
	}

	var many []error
	for i := 0; i < 12; i++ {
		many = append(many, fmt.Errorf("error %d", i))
	}
	formatted := FormatValidationErrors(many)
	if !strings.Contains(formatted, "Found 12 validation errors:") {
		t.Errorf("missing header in %q", formatted)
	}
	if !strings.Contains(formatted, "... and 2 more errors") {
		t.Errorf("expected truncation marker in %q", formatted)
	}
}
