// Package ledger implements the journal-entry workflow and the replay engine
// that folds balanced adjustment entries onto an immutable base trial balance.
//
// The workflow is a linear state machine: draft -> pending_review ->
// pending_approval -> approved -> posted. Review stages may reject; a posted
// entry can only be undone by an explicit reversal entry. Transitions never
// mutate the input entry - they return a new copy - so replay over the same
// ledger is always reproducible.
package ledger

import (
	"fmt"
	"time"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
	enginerrors "github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/errors"
)

// allowedTransitions encodes the workflow edges. Absent states are terminal.
var allowedTransitions = map[models.EntryStatus][]models.EntryStatus{
	models.StatusDraft:           {models.StatusPendingReview},
	models.StatusPendingReview:   {models.StatusPendingApproval, models.StatusRejected},
	models.StatusPendingApproval: {models.StatusApproved, models.StatusRejected},
	models.StatusApproved:        {models.StatusPosted},
	models.StatusPosted:          {models.StatusReversed},
}

// CanTransition reports whether the workflow permits moving an entry from one
// status to another.
func CanTransition(from, to models.EntryStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from the given one.
func NextStatuses(from models.EntryStatus) []models.EntryStatus {
	next := allowedTransitions[from]
	out := make([]models.EntryStatus, len(next))
	copy(out, next)
	return out
}

// Transition returns a copy of the entry moved to the target status. Posting
// an entry that does not satisfy the double-entry invariant is refused: the
// ledger only ever replays balanced entries.
func Transition(entry *models.JournalEntry, to models.EntryStatus) (*models.JournalEntry, error) {
	if entry == nil {
		return nil, enginerrors.New(enginerrors.CategoryLedger, enginerrors.CodeInvalidEntry,
			"cannot transition a nil journal entry")
	}

	if !CanTransition(entry.Status, to) {
		return nil, enginerrors.StatusTransitionError(entry.ID, entry.Status.String(), to.String())
	}

	if to == models.StatusPosted && !entry.IsBalanced() {
		debit, credit := entry.Totals()
		return nil, enginerrors.UnbalancedEntryError(
			entry.ID, entry.EntryNumber, debit.StringFixed(2), credit.StringFixed(2))
	}

	moved := entry.Clone()
	moved.Status = to
	return moved, nil
}

// Reverse builds the reversal of a posted entry: a new entry with every
// line's debit and credit swapped, referencing the original. It returns the
// reversal together with a copy of the original marked reversed. The reversal
// starts in draft and walks the normal workflow before it takes effect.
func Reverse(entry *models.JournalEntry, number int, date time.Time) (reversal, reversed *models.JournalEntry, err error) {
	if entry == nil {
		return nil, nil, enginerrors.New(enginerrors.CategoryLedger, enginerrors.CodeInvalidEntry,
			"cannot reverse a nil journal entry")
	}

	if entry.Status != models.StatusPosted {
		return nil, nil, enginerrors.StatusTransitionError(
			entry.ID, entry.Status.String(), models.StatusReversed.String())
	}

	lines := make([]*models.JournalEntryLine, len(entry.Lines))
	for i, line := range entry.Lines {
		lines[i] = &models.JournalEntryLine{
			AccountID:   line.AccountID,
			AccountName: line.AccountName,
			Description: line.Description,
			Debit:       line.Credit,
			Credit:      line.Debit,
		}
	}

	reversal = models.NewJournalEntry(number, date,
		fmt.Sprintf("Reversal of %s: %s", entry.EntryNumber, entry.Description),
		models.EntryReversal, lines)
	reversal.ReversesEntryID = entry.ID

	reversed, err = Transition(entry, models.StatusReversed)
	if err != nil {
		return nil, nil, err
	}

	return reversal, reversed, nil
}
