package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidationState is the reconciliation state of a month.
type ValidationState string

const (
	// StateOpen means the record is freely editable.
	StateOpen ValidationState = "open"
	// StateLocked means the actual totals are a frozen snapshot.
	StateLocked ValidationState = "locked"
)

// MonthlyValidation is the per-calendar-month reconciliation record,
// keyed by the first day of its month.
type MonthlyValidation struct {
	Month time.Time

	// User attestation that the recurring amounts actually occurred.
	ConfirmedExpenses bool
	ConfirmedIncome   bool

	// One-off amounts outside the recurring ledger.
	UnplannedExpenses decimal.Decimal
	UnplannedIncome   decimal.Decimal

	// Frozen snapshots, written only by planner.Validate and
	// planner.Update: recurring total at validation time + unplanned.
	ActualTotalIncome   decimal.Decimal
	ActualTotalExpenses decimal.Decimal

	// Nil while open; set on first successful validation and preserved
	// across later amendments.
	ValidatedAt *time.Time
}

// State reports whether the record is open or locked.
func (v MonthlyValidation) State() ValidationState {
	if v.ValidatedAt != nil {
		return StateLocked
	}
	return StateOpen
}

// ActualBalance is the reconciled net outcome of a locked month.
func (v MonthlyValidation) ActualBalance() decimal.Decimal {
	return v.ActualTotalIncome.Sub(v.ActualTotalExpenses)
}

// NormalizeMonth truncates t to 00:00 on the first day of its month.
func NormalizeMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
