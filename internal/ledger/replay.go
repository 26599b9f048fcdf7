package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
	enginerrors "github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/errors"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/logger"
)

// StatusSet is the set of entry statuses a replay folds in. Entries outside
// the set are excluded by construction, never filtered after the fact.
type StatusSet map[models.EntryStatus]bool

// PostedOnly returns the default applicable set: posted entries only.
func PostedOnly() StatusSet {
	return StatusSet{models.StatusPosted: true}
}

// PostedAndApproved returns the applicable set including approved entries,
// used when previewing statements before final posting.
func PostedAndApproved() StatusSet {
	return StatusSet{models.StatusPosted: true, models.StatusApproved: true}
}

// Contains reports whether a status is in the set.
func (s StatusSet) Contains(status models.EntryStatus) bool {
	return s[status]
}

// ReplayEngine applies an ordered ledger of journal entries onto an immutable
// base trial balance. Replay is all-or-nothing per request: if any applicable
// entry is structurally invalid or unbalanced, nothing is applied and every
// offending entry is reported.
type ReplayEngine struct {
	Applicable StatusSet
	log        logger.Logger
}

// NewReplayEngine creates a replay engine folding in entries whose status is
// in the applicable set. A nil set defaults to posted entries only.
func NewReplayEngine(applicable StatusSet) *ReplayEngine {
	if applicable == nil {
		applicable = PostedOnly()
	}

	return &ReplayEngine{
		Applicable: applicable,
		log:        logger.GetGlobalLogger().WithComponent("ledger"),
	}
}

// ValidateEntries checks every applicable entry against the structural rules
// and the double-entry invariant, returning one discrete error per offending
// entry. Callers use this to decide whether to reject a request outright or
// strip the offending entries and retry.
func (re *ReplayEngine) ValidateEntries(entries []*models.JournalEntry) []*enginerrors.EngineError {
	var errs []*enginerrors.EngineError

	for _, entry := range entries {
		if !re.Applicable.Contains(entry.Status) {
			continue
		}

		if err := entry.Validate(); err != nil {
			errs = append(errs, enginerrors.InvalidEntryError(entry.ID, err))
			continue
		}

		if !entry.IsBalanced() {
			debit, credit := entry.Totals()
			errs = append(errs, enginerrors.UnbalancedEntryError(
				entry.ID, entry.EntryNumber, debit.StringFixed(2), credit.StringFixed(2)))
		}
	}

	return errs
}

// ApplyAdjustments folds every applicable entry onto the base account set and
// returns the adjusted trial balance. For each referenced account the
// adjusted balance is originalDebit + sum(line debits), originalCredit +
// sum(line credits); untouched accounts pass through unchanged. Entries
// referencing accounts absent from the base set materialize new accounts
// starting from zero.
//
// The contract forbids partial application: an unbalanced or invalid
// applicable entry fails the whole request with an ErrorSummary covering
// every offender.
func (re *ReplayEngine) ApplyAdjustments(base []*models.Account, entries []*models.JournalEntry) (*models.AdjustedTrialBalance, error) {
	if errs := re.ValidateEntries(entries); len(errs) > 0 {
		re.log.WithField("rejected_entries", len(errs)).Warn("Replay rejected: entries violate the double-entry invariant")
		return nil, enginerrors.NewErrorSummary(errs)
	}

	type delta struct {
		debit  decimal.Decimal
		credit decimal.Decimal
		name   string
	}

	deltas := make(map[string]*delta)
	var touchOrder []string
	var applied []*models.JournalEntry
	var lastAdjustment time.Time

	for _, entry := range entries {
		if !re.Applicable.Contains(entry.Status) {
			continue
		}

		applied = append(applied, entry)
		if entry.EntryDate.After(lastAdjustment) {
			lastAdjustment = entry.EntryDate
		}

		for _, line := range entry.Lines {
			d, ok := deltas[line.AccountID]
			if !ok {
				d = &delta{debit: decimal.Zero, credit: decimal.Zero, name: line.AccountName}
				deltas[line.AccountID] = d
				touchOrder = append(touchOrder, line.AccountID)
			}
			d.debit = d.debit.Add(line.Debit)
			d.credit = d.credit.Add(line.Credit)
		}
	}

	adjusted := make([]*models.Account, 0, len(base)+len(deltas))
	known := make(map[string]bool, len(base))

	for _, acc := range base {
		clone := acc.Clone()
		// Duplicate base IDs are a data-quality finding for the validation
		// battery; the delta folds into the first occurrence only so adjusted
		// balances stay reconcilable with the net-impact map.
		if d, ok := deltas[acc.AccountID]; ok && !known[acc.AccountID] {
			clone.Debit = clone.Debit.Add(d.debit)
			clone.Credit = clone.Credit.Add(d.credit)
		}
		known[acc.AccountID] = true
		adjusted = append(adjusted, clone)
	}

	// Accounts referenced only by adjustments start from zero.
	var adjustmentOnly []string
	for _, id := range touchOrder {
		if known[id] {
			continue
		}
		d := deltas[id]
		adjusted = append(adjusted, &models.Account{
			AccountID:   id,
			AccountName: d.name,
			Debit:       d.debit,
			Credit:      d.credit,
		})
		adjustmentOnly = append(adjustmentOnly, id)
	}

	summary := &models.AdjustmentSummary{
		TotalEntries:       len(applied),
		TotalAdjustment:    decimal.Zero,
		LastAdjustment:     lastAdjustment,
		NetImpactByAccount: make(map[string]decimal.Decimal, len(deltas)),
	}
	for id, d := range deltas {
		net := d.debit.Sub(d.credit)
		summary.NetImpactByAccount[id] = net
		summary.TotalAdjustment = summary.TotalAdjustment.Add(net.Abs())
	}

	re.log.WithFields(logger.Fields{
		"base_accounts":   len(base),
		"applied_entries": len(applied),
		"touched":         len(deltas),
		"materialized":    len(adjustmentOnly),
	}).Debug("Replay applied adjustments")

	return &models.AdjustedTrialBalance{
		BaseAccounts:     base,
		AppliedEntries:   applied,
		AdjustedBalances: adjusted,
		AdjustmentOnly:   adjustmentOnly,
		Summary:          summary,
	}, nil
}
