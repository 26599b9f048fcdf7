package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus represents the lifecycle state of a journal entry. The workflow
// is linear (draft through posted) with no backward transitions; an approved
// or posted entry can only be undone by an explicit reversal entry.
type EntryStatus string

const (
	StatusDraft           EntryStatus = "draft"
	StatusPendingReview   EntryStatus = "pending_review"
	StatusPendingApproval EntryStatus = "pending_approval"
	StatusApproved        EntryStatus = "approved"
	StatusPosted          EntryStatus = "posted"
	StatusRejected        EntryStatus = "rejected"
	StatusReversed        EntryStatus = "reversed"
)

// IsValid checks if the entry status is a known lifecycle state.
func (s EntryStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingReview, StatusPendingApproval,
		StatusApproved, StatusPosted, StatusRejected, StatusReversed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s EntryStatus) String() string {
	return string(s)
}

// EntryType categorizes the accounting purpose of a journal entry.
type EntryType string

const (
	EntryAdjustment       EntryType = "adjustment"
	EntryReclassification EntryType = "reclassification"
	EntryAccrual          EntryType = "accrual"
	EntryPrepayment       EntryType = "prepayment"
	EntryDepreciation     EntryType = "depreciation"
	EntryProvision        EntryType = "provision"
	EntryReversal         EntryType = "reversal"
	EntryYearEnd          EntryType = "year_end"
	EntryOther            EntryType = "other"
)

// IsValid checks if the entry type is known.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryAdjustment, EntryReclassification, EntryAccrual, EntryPrepayment,
		EntryDepreciation, EntryProvision, EntryReversal, EntryYearEnd, EntryOther:
		return true
	default:
		return false
	}
}

// JournalEntryLine is one side of a double-entry adjustment. Exactly one of
// debit/credit should be non-zero per line; the UI enforces this but the
// engine sums both sides independently and never assumes it.
type JournalEntryLine struct {
	AccountID   string          `json:"accountId"`
	AccountName string          `json:"accountName"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Validate performs basic validation on the line.
func (l *JournalEntryLine) Validate() error {
	if strings.TrimSpace(l.AccountID) == "" {
		return fmt.Errorf("entry line account ID cannot be empty")
	}

	if l.Debit.IsNegative() {
		return fmt.Errorf("entry line for account %s: debit cannot be negative", l.AccountID)
	}

	if l.Credit.IsNegative() {
		return fmt.Errorf("entry line for account %s: credit cannot be negative", l.AccountID)
	}

	return nil
}

// MarshalJSON renders amounts as plain decimal strings.
func (l *JournalEntryLine) MarshalJSON() ([]byte, error) {
	type Alias JournalEntryLine
	return json.Marshal(&struct {
		Debit  string `json:"debit"`
		Credit string `json:"credit"`
		*Alias
	}{
		Debit:  l.Debit.String(),
		Credit: l.Credit.String(),
		Alias:  (*Alias)(l),
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for JournalEntryLine.
func (l *JournalEntryLine) UnmarshalJSON(data []byte) error {
	type Alias JournalEntryLine
	aux := &struct {
		Debit  json.Number `json:"debit"`
		Credit json.Number `json:"credit"`
		*Alias
	}{
		Alias: (*Alias)(l),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	l.Debit, err = parseAmount(aux.Debit)
	if err != nil {
		return fmt.Errorf("invalid line debit: %w", err)
	}

	l.Credit, err = parseAmount(aux.Credit)
	if err != nil {
		return fmt.Errorf("invalid line credit: %w", err)
	}

	return nil
}

// JournalEntry is one balanced adjusting transaction recorded against a
// period's trial balance. Once posted it is immutably included in every
// subsequent adjusted-balance computation for the period.
type JournalEntry struct {
	ID          string              `json:"id"`
	EntryNumber string              `json:"entryNumber"`
	EntryDate   time.Time           `json:"entryDate"`
	Description string              `json:"description"`
	Status      EntryStatus         `json:"status"`
	EntryType   EntryType           `json:"entryType"`
	Lines       []*JournalEntryLine `json:"lines"`
	// ReversesEntryID links a reversal entry back to the entry it reverses.
	ReversesEntryID string `json:"reversesEntryId,omitempty"`
}

// NewJournalEntry creates a draft entry with a minted UUID and the given
// sequential entry number.
func NewJournalEntry(number int, date time.Time, description string, entryType EntryType, lines []*JournalEntryLine) *JournalEntry {
	return &JournalEntry{
		ID:          uuid.NewString(),
		EntryNumber: fmt.Sprintf("JE-%04d", number),
		EntryDate:   date,
		Description: description,
		Status:      StatusDraft,
		EntryType:   entryType,
		Lines:       lines,
	}
}

// Totals returns the independent sums of all line debits and all line credits.
func (e *JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, line := range e.Lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

// IsBalanced reports whether total debits equal total credits within
// BalanceTolerance - the double-entry invariant.
func (e *JournalEntry) IsBalanced() bool {
	debit, credit := e.Totals()
	return WithinTolerance(debit, credit)
}

// Validate performs structural validation on the entry. Balance is checked
// separately by the replay engine because an unbalanced draft is legal.
func (e *JournalEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("entry ID cannot be empty")
	}

	if !e.Status.IsValid() {
		return fmt.Errorf("entry %s: invalid status %q", e.ID, e.Status)
	}

	if !e.EntryType.IsValid() {
		return fmt.Errorf("entry %s: invalid entry type %q", e.ID, e.EntryType)
	}

	if len(e.Lines) == 0 {
		return fmt.Errorf("entry %s: must have at least one line", e.ID)
	}

	for _, line := range e.Lines {
		if err := line.Validate(); err != nil {
			return fmt.Errorf("entry %s: %w", e.ID, err)
		}
	}

	return nil
}

// Clone returns a deep copy of the entry. Workflow transitions operate on
// copies so callers never observe in-place mutation.
func (e *JournalEntry) Clone() *JournalEntry {
	if e == nil {
		return nil
	}

	clone := *e
	clone.Lines = make([]*JournalEntryLine, len(e.Lines))
	for i, line := range e.Lines {
		lineCopy := *line
		clone.Lines[i] = &lineCopy
	}
	return &clone
}

// String returns a string representation of the entry.
func (e *JournalEntry) String() string {
	debit, credit := e.Totals()
	return fmt.Sprintf("JournalEntry{%s %s, Status: %s, Lines: %d, Dr: %s, Cr: %s}",
		e.EntryNumber, e.EntryDate.Format("2006-01-02"), e.Status, len(e.Lines),
		debit.StringFixed(2), credit.StringFixed(2))
}
