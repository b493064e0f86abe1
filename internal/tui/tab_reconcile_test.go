package tui

import (
	"testing"
	"time"

	"github.com/theirongolddev/finplan/internal/model"
)

func TestFindValidationMatchesByMonth(t *testing.T) {
	stamp := time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC)
	validations := []model.MonthlyValidation{
		{Month: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{
			Month:           time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			ConfirmedIncome: true,
			ValidatedAt:     &stamp,
		},
	}

	got := findValidation(validations, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local))
	if !got.ConfirmedIncome {
		t.Fatal("expected the stored March record, got a fresh one")
	}
	if got.State() != model.StateLocked {
		t.Fatalf("State() = %q, want %q", got.State(), model.StateLocked)
	}
}

func TestFindValidationMissingMonthIsOpen(t *testing.T) {
	month := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	got := findValidation(nil, month)

	if got.State() != model.StateOpen {
		t.Fatalf("State() = %q, want %q", got.State(), model.StateOpen)
	}
	if !got.Month.Equal(month) {
		t.Fatalf("Month = %v, want %v", got.Month, month)
	}
}

func TestRefreshReconcileStateKeepsViewedMonth(t *testing.T) {
	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	prev := reconcileState{month: feb, cursor: 2}

	stamp := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)
	validations := []model.MonthlyValidation{
		{Month: feb, ConfirmedExpenses: true, ConfirmedIncome: true, ValidatedAt: &stamp},
	}

	got := refreshReconcileState(prev, validations)
	if !got.month.Equal(feb) {
		t.Fatalf("month = %v, want %v", got.month, feb)
	}
	if got.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", got.cursor)
	}
	if got.record.State() != model.StateLocked {
		t.Fatal("expected the refreshed record to be locked")
	}
}
