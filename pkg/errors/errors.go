// Package errors defines the structured error types of the trial-balance
// engine. Errors carry a category, a stable code, contextual key/values and a
// remediation suggestion, so callers and the CLI can react and report without
// string matching.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of engine errors.
type ErrorCategory string

const (
	CategoryClassification ErrorCategory = "classification"
	CategoryLedger         ErrorCategory = "ledger"
	CategoryValidation     ErrorCategory = "validation"
	CategoryConfiguration  ErrorCategory = "configuration"
	CategoryInput          ErrorCategory = "input"
	CategoryInternal       ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories.
type ErrorCode string

const (
	// Ledger errors
	CodeUnbalancedEntry ErrorCode = "unbalanced_entry"
	CodeInvalidEntry    ErrorCode = "invalid_entry"
	CodeInvalidStatus   ErrorCode = "invalid_status_transition"

	// Classification errors
	CodeInvalidRule ErrorCode = "invalid_rule"

	// Validation errors
	CodeChecksFailed ErrorCode = "checks_failed"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeMissingConfig ErrorCode = "missing_config"

	// Input errors
	CodeInvalidAccount ErrorCode = "invalid_account"
	CodeMissingInput   ErrorCode = "missing_input"
	CodeInvalidFormat  ErrorCode = "invalid_format"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// Context provides additional information about the error.
type Context map[string]interface{}

// EngineError is the base error type for all engine errors.
type EngineError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns an appropriate process exit code for the error.
func (e *EngineError) GetExitCode() int {
	switch e.Category {
	case CategoryInput:
		return 2
	case CategoryClassification, CategoryValidation:
		return 3
	case CategoryConfiguration:
		return 4
	case CategoryLedger, CategoryInternal:
		return 5
	default:
		return 1
	}
}

// WithContext adds context information to the error.
func (e *EngineError) WithContext(key string, value interface{}) *EngineError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error.
func (e *EngineError) WithSuggestion(suggestion string) *EngineError {
	e.Suggestion = suggestion
	return e
}

// stackTracer interface for extracting stack traces.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// New creates a new EngineError.
func New(category ErrorCategory, code ErrorCode, message string) *EngineError {
	return &EngineError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with EngineError context.
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *EngineError {
	if err == nil {
		return nil
	}

	return &EngineError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// UnbalancedEntryError reports a journal entry that violates the double-entry
// invariant. The debit and credit totals ride along in context so callers can
// report the exact imbalance.
func UnbalancedEntryError(entryID, entryNumber, debitTotal, creditTotal string) *EngineError {
	return New(CategoryLedger, CodeUnbalancedEntry,
		fmt.Sprintf("journal entry %s does not balance: debits %s, credits %s",
			entryNumber, debitTotal, creditTotal)).
		WithSuggestion("correct the entry lines so total debits equal total credits before posting").
		WithContext("entry_id", entryID).
		WithContext("entry_number", entryNumber).
		WithContext("debit_total", debitTotal).
		WithContext("credit_total", creditTotal)
}

// InvalidEntryError reports a structurally invalid journal entry.
func InvalidEntryError(entryID string, err error) *EngineError {
	return Wrap(err, CategoryLedger, CodeInvalidEntry,
		fmt.Sprintf("journal entry %s is structurally invalid", entryID)).
		WithSuggestion("check the entry's status, type and lines").
		WithContext("entry_id", entryID)
}

// StatusTransitionError reports an illegal workflow transition.
func StatusTransitionError(entryID, from, to string) *EngineError {
	return New(CategoryLedger, CodeInvalidStatus,
		fmt.Sprintf("journal entry %s cannot move from %s to %s", entryID, from, to)).
		WithSuggestion("follow the draft, pending_review, pending_approval, approved, posted workflow").
		WithContext("entry_id", entryID).
		WithContext("from_status", from).
		WithContext("to_status", to)
}

// RuleError reports an invalid classification rule.
func RuleError(ruleID string, err error) *EngineError {
	return Wrap(err, CategoryClassification, CodeInvalidRule,
		fmt.Sprintf("classification rule %s is invalid", ruleID)).
		WithSuggestion("check the rule's pattern, target and priority").
		WithContext("rule_id", ruleID)
}

// ConfigurationError reports an invalid configuration value.
func ConfigurationError(setting string, err error) *EngineError {
	return Wrap(err, CategoryConfiguration, CodeInvalidConfig,
		fmt.Sprintf("invalid configuration for %s", setting)).
		WithSuggestion("check the configuration value and its documented range").
		WithContext("setting", setting)
}

// InputError reports invalid input data at the engine boundary.
func InputError(code ErrorCode, field string, err error) *EngineError {
	return Wrap(err, CategoryInput, code,
		fmt.Sprintf("invalid input in %s", field)).
		WithContext("field", field)
}

// ErrorSummary aggregates multiple engine errors, typically one per rejected
// journal entry.
type ErrorSummary struct {
	Total      int                   `json:"total"`
	ByCategory map[ErrorCategory]int `json:"by_category"`
	ByCode     map[ErrorCode]int     `json:"by_code"`
	Errors     []*EngineError        `json:"errors"`
}

// NewErrorSummary creates a new error summary.
func NewErrorSummary(errs []*EngineError) *ErrorSummary {
	summary := &ErrorSummary{
		Total:      len(errs),
		ByCategory: make(map[ErrorCategory]int),
		ByCode:     make(map[ErrorCode]int),
		Errors:     errs,
	}

	for _, err := range errs {
		summary.ByCategory[err.Category]++
		summary.ByCode[err.Code]++
	}

	return summary
}

// Error returns a formatted error message for the summary.
func (es *ErrorSummary) Error() string {
	if es.Total == 0 {
		return "no errors"
	}

	if es.Total == 1 {
		return es.Errors[0].Error()
	}

	var categories []string
	for category, count := range es.ByCategory {
		categories = append(categories, fmt.Sprintf("%s: %d", category, count))
	}

	return fmt.Sprintf("%d errors occurred (%s)", es.Total, strings.Join(categories, ", "))
}

// HasCode checks if the summary contains errors with the given code.
func (es *ErrorSummary) HasCode(code ErrorCode) bool {
	return es.ByCode[code] > 0
}

// GetExitCode returns the highest priority exit code from all errors.
func (es *ErrorSummary) GetExitCode() int {
	if es.Total == 0 {
		return 0
	}

	maxCode := 1
	for _, err := range es.Errors {
		if code := err.GetExitCode(); code > maxCode {
			maxCode = code
		}
	}

	return maxCode
}

// AsEngineError extracts an EngineError from an error chain.
func AsEngineError(err error) (*EngineError, bool) {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr, true
	}
	return nil, false
}
