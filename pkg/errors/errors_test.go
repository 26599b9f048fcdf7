package errors

import (
	"errors"
	"testing"
)

func TestEngineError(t *testing.T) {
	tests := []struct {
		name       string
		category   ErrorCategory
		code       ErrorCode
		message    string
		cause      error
		expectCode int
	}{
		{
			name:       "input error",
			category:   CategoryInput,
			code:       CodeInvalidAccount,
			message:    "invalid account",
			cause:      errors.New("empty account ID"),
			expectCode: 2,
		},
		{
			name:       "classification error",
			category:   CategoryClassification,
			code:       CodeInvalidRule,
			message:    "invalid rule",
			cause:      nil,
			expectCode: 3,
		},
		{
			name:       "configuration error",
			category:   CategoryConfiguration,
			code:       CodeInvalidConfig,
			message:    "invalid config",
			cause:      errors.New("missing field"),
			expectCode: 4,
		},
		{
			name:       "ledger error",
			category:   CategoryLedger,
			code:       CodeUnbalancedEntry,
			message:    "entry does not balance",
			cause:      nil,
			expectCode: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err *EngineError
			if tt.cause != nil {
				err = Wrap(tt.cause, tt.category, tt.code, tt.message)
			} else {
				err = New(tt.category, tt.code, tt.message)
			}

			if err.Category != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, err.Category)
			}
			if err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, err.Code)
			}
			if err.Message != tt.message {
				t.Errorf("expected message %s, got %s", tt.message, err.Message)
			}

			if err.GetExitCode() != tt.expectCode {
				t.Errorf("expected exit code %d, got %d", tt.expectCode, err.GetExitCode())
			}

			if err.Error() != tt.message {
				t.Errorf("expected error string %s, got %s", tt.message, err.Error())
			}

			if tt.cause != nil && err.Unwrap() != tt.cause {
				t.Errorf("expected to unwrap to %v, got %v", tt.cause, err.Unwrap())
			}
		})
	}
}

func TestEngineErrorWithContext(t *testing.T) {
	err := New(CategoryLedger, CodeInvalidStatus, "test error").
		WithContext("entry_id", "je-1").
		WithContext("attempt", 2).
		WithSuggestion("check the workflow order")

	if err.Context["entry_id"] != "je-1" {
		t.Errorf("expected entry_id context 'je-1', got %v", err.Context["entry_id"])
	}
	if err.Context["attempt"] != 2 {
		t.Errorf("expected attempt context 2, got %v", err.Context["attempt"])
	}

	if err.Suggestion != "check the workflow order" {
		t.Errorf("expected suggestion 'check the workflow order', got %s", err.Suggestion)
	}

	expected := "test error (suggestion: check the workflow order)"
	if err.Error() != expected {
		t.Errorf("expected error string '%s', got '%s'", expected, err.Error())
	}
}

func TestSpecificErrorConstructors(t *testing.T) {
	t.Run("UnbalancedEntryError", func(t *testing.T) {
		err := UnbalancedEntryError("je-1", "JE-0001", "150.00", "100.00")

		if err.Category != CategoryLedger {
			t.Errorf("expected ledger category, got %s", err.Category)
		}
		if err.Code != CodeUnbalancedEntry {
			t.Errorf("expected unbalanced code, got %s", err.Code)
		}
		if err.Context["entry_number"] != "JE-0001" {
			t.Errorf("expected entry_number context, got %v", err.Context["entry_number"])
		}
		if err.Context["debit_total"] != "150.00" {
			t.Errorf("expected debit_total context, got %v", err.Context["debit_total"])
		}
		if err.Suggestion == "" {
			t.Error("expected suggestion to be set")
		}
	})

	t.Run("StatusTransitionError", func(t *testing.T) {
		err := StatusTransitionError("je-1", "draft", "posted")

		if err.Category != CategoryLedger {
			t.Errorf("expected ledger category, got %s", err.Category)
		}
		if err.Context["from_status"] != "draft" {
			t.Errorf("expected from_status context, got %v", err.Context["from_status"])
		}
		if err.Context["to_status"] != "posted" {
			t.Errorf("expected to_status context, got %v", err.Context["to_status"])
		}
	})

	t.Run("RuleError", func(t *testing.T) {
		cause := errors.New("bad pattern")
		err := RuleError("custom-1", cause)

		if err.Category != CategoryClassification {
			t.Errorf("expected classification category, got %s", err.Category)
		}
		if err.Context["rule_id"] != "custom-1" {
			t.Errorf("expected rule_id context, got %v", err.Context["rule_id"])
		}
		if err.Cause != cause {
			t.Errorf("expected cause to be %v, got %v", cause, err.Cause)
		}
	})

	t.Run("InputError", func(t *testing.T) {
		err := InputError(CodeMissingInput, "accounts", errors.New("no path"))

		if err.Category != CategoryInput {
			t.Errorf("expected input category, got %s", err.Category)
		}
		if err.Context["field"] != "accounts" {
			t.Errorf("expected field context, got %v", err.Context["field"])
		}
	})
}

func TestErrorSummary(t *testing.T) {
	errs := []*EngineError{
		New(CategoryLedger, CodeUnbalancedEntry, "error 1"),
		New(CategoryLedger, CodeUnbalancedEntry, "error 2"),
		New(CategoryLedger, CodeInvalidEntry, "error 3"),
		New(CategoryInput, CodeInvalidAccount, "error 4"),
	}

	summary := NewErrorSummary(errs)

	if summary.Total != 4 {
		t.Errorf("expected total 4, got %d", summary.Total)
	}
	if summary.ByCategory[CategoryLedger] != 3 {
		t.Errorf("expected 3 ledger errors, got %d", summary.ByCategory[CategoryLedger])
	}
	if summary.ByCode[CodeUnbalancedEntry] != 2 {
		t.Errorf("expected 2 unbalanced errors, got %d", summary.ByCode[CodeUnbalancedEntry])
	}

	if !summary.HasCode(CodeUnbalancedEntry) {
		t.Error("expected to have unbalanced code")
	}
	if summary.HasCode(CodeInvalidConfig) {
		t.Error("expected not to have config code")
	}

	if summary.Error() == "" {
		t.Error("expected non-empty error string")
	}

	// Ledger errors dominate the exit code.
	if summary.GetExitCode() != 5 {
		t.Errorf("expected exit code 5, got %d", summary.GetExitCode())
	}
}

func TestEmptyErrorSummary(t *testing.T) {
	summary := NewErrorSummary([]*EngineError{})

	if summary.Total != 0 {
		t.Errorf("expected total 0, got %d", summary.Total)
	}
	if summary.Error() != "no errors" {
		t.Errorf("expected 'no errors', got '%s'", summary.Error())
	}
	if summary.GetExitCode() != 0 {
		t.Errorf("expected exit code 0, got %d", summary.GetExitCode())
	}
}

func TestSingleErrorSummary(t *testing.T) {
	err := New(CategoryInput, CodeMissingInput, "single error")
	summary := NewErrorSummary([]*EngineError{err})

	if summary.Total != 1 {
		t.Errorf("expected total 1, got %d", summary.Total)
	}
	if summary.Error() != "single error" {
		t.Errorf("expected 'single error', got '%s'", summary.Error())
	}
}

func TestAsEngineError(t *testing.T) {
	engineErr := New(CategoryInput, CodeMissingInput, "test")
	genericErr := errors.New("generic error")

	if extracted, ok := AsEngineError(engineErr); !ok || extracted != engineErr {
		t.Error("expected AsEngineError to extract EngineError")
	}

	if _, ok := AsEngineError(genericErr); ok {
		t.Error("expected AsEngineError to return false for generic error")
	}

	if _, ok := AsEngineError(nil); ok {
		t.Error("expected AsEngineError to return false for nil")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, CategoryInternal, CodeUnexpectedError, "wrapped") != nil {
		t.Error("expected Wrap to return nil for nil input")
	}
}
