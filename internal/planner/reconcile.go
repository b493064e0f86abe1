package planner

import (
	"errors"
	"time"

	"github.com/theirongolddev/finplan/internal/model"
)

var (
	// ErrConfirmationsRequired is returned by Validate when either
	// attestation is missing. Callers are expected to gate the action
	// (disable the control) rather than surface this as a runtime
	// failure.
	ErrConfirmationsRequired = errors.New("planner: both expense and income confirmations are required")

	// ErrMonthNotLocked is returned by Update on a month that was never
	// validated.
	ErrMonthNotLocked = errors.New("planner: month is not locked")
)

// Validate locks the month: it freezes the actual totals from the
// recurring ledger as it stands right now plus the unplanned amounts,
// and stamps ValidatedAt. Both confirmations are preconditions.
//
// Re-validating an already locked month recomputes the same frozen
// totals but keeps the original timestamp, so the call is idempotent
// when nothing changed in between.
func Validate(v *model.MonthlyValidation, items []model.RecurringItem, now time.Time) error {
	if !v.ConfirmedExpenses || !v.ConfirmedIncome {
		return ErrConfirmationsRequired
	}

	freezeTotals(v, items)
	if v.ValidatedAt == nil {
		t := now
		v.ValidatedAt = &t
	}
	return nil
}

// Update amends a locked month: it recomputes the frozen totals from
// the current ledger and unplanned fields while preserving the original
// ValidatedAt. Amending is not re-validating, so the lock timestamp
// still records when the month was first reconciled.
func Update(v *model.MonthlyValidation, items []model.RecurringItem, now time.Time) error {
	if v.ValidatedAt == nil {
		return ErrMonthNotLocked
	}

	freezeTotals(v, items)
	_ = now // reserved for a future "refresh timestamp" mode
	return nil
}

// freezeTotals is the only writer of the actual_total fields, which is
// what makes a locked record a snapshot of ledger state at last
// (re)validation rather than a live view.
func freezeTotals(v *model.MonthlyValidation, items []model.RecurringItem) {
	v.ActualTotalIncome = ActiveTotal(items, model.KindIncome).Add(v.UnplannedIncome)
	v.ActualTotalExpenses = ActiveTotal(items, model.KindExpense).Add(v.UnplannedExpenses)
}
