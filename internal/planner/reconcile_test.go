package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/finplan/internal/model"
)

func testLedger(t *testing.T) []model.RecurringItem {
	t.Helper()
	return []model.RecurringItem{
		item(t, "salary", "2500", model.KindIncome, model.CategorySalary, true),
		item(t, "rent", "900", model.KindExpense, model.CategoryHousing, true),
		item(t, "groceries", "350", model.KindExpense, model.CategoryFood, true),
	}
}

func TestValidateRequiresBothConfirmations(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name              string
		confirmedExpenses bool
		confirmedIncome   bool
	}{
		{"neither", false, false},
		{"expenses only", true, false},
		{"income only", false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := model.MonthlyValidation{
				Month:             model.NormalizeMonth(now),
				ConfirmedExpenses: tc.confirmedExpenses,
				ConfirmedIncome:   tc.confirmedIncome,
			}
			err := Validate(&v, testLedger(t), now)
			if !errors.Is(err, ErrConfirmationsRequired) {
				t.Fatalf("err = %v, want ErrConfirmationsRequired", err)
			}
			if v.ValidatedAt != nil {
				t.Fatal("failed validation must not lock the month")
			}
			if !v.ActualTotalIncome.IsZero() || !v.ActualTotalExpenses.IsZero() {
				t.Fatal("failed validation must not write actual totals")
			}
		})
	}
}

func TestValidateFreezesLedgerSnapshot(t *testing.T) {
	now := time.Date(2025, time.March, 31, 22, 0, 0, 0, time.UTC)
	items := testLedger(t)

	v := model.MonthlyValidation{
		Month:             model.NormalizeMonth(now),
		ConfirmedExpenses: true,
		ConfirmedIncome:   true,
		UnplannedExpenses: mustDec(t, "120"),
		UnplannedIncome:   mustDec(t, "75"),
	}
	if err := Validate(&v, items, now); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if v.State() != model.StateLocked {
		t.Fatalf("state = %s, want locked", v.State())
	}
	if !v.ActualTotalIncome.Equal(mustDec(t, "2575")) {
		t.Fatalf("ActualTotalIncome = %s, want 2575", v.ActualTotalIncome)
	}
	if !v.ActualTotalExpenses.Equal(mustDec(t, "1370")) {
		t.Fatalf("ActualTotalExpenses = %s, want 1370", v.ActualTotalExpenses)
	}

	// Mutating the ledger afterwards must not touch the frozen totals.
	items[0].Amount = mustDec(t, "9000")
	items = append(items, item(t, "surprise", "500", model.KindExpense, model.CategoryOther, true))

	if !v.ActualTotalIncome.Equal(mustDec(t, "2575")) || !v.ActualTotalExpenses.Equal(mustDec(t, "1370")) {
		t.Fatal("locked totals changed after ledger mutation")
	}

	// An explicit Update re-freezes from the current ledger.
	if err := Update(&v, items, now.Add(48*time.Hour)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !v.ActualTotalIncome.Equal(mustDec(t, "9075")) {
		t.Fatalf("ActualTotalIncome after update = %s, want 9075", v.ActualTotalIncome)
	}
	if !v.ActualTotalExpenses.Equal(mustDec(t, "1870")) {
		t.Fatalf("ActualTotalExpenses after update = %s, want 1870", v.ActualTotalExpenses)
	}
}

func TestValidateIdempotent(t *testing.T) {
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	items := testLedger(t)

	v := model.MonthlyValidation{
		Month:             model.NormalizeMonth(now),
		ConfirmedExpenses: true,
		ConfirmedIncome:   true,
	}
	if err := Validate(&v, items, now); err != nil {
		t.Fatalf("first Validate: %v", err)
	}
	firstIncome := v.ActualTotalIncome
	firstExpenses := v.ActualTotalExpenses
	firstStamp := *v.ValidatedAt

	if err := Validate(&v, items, now.Add(time.Hour)); err != nil {
		t.Fatalf("second Validate: %v", err)
	}
	if !v.ActualTotalIncome.Equal(firstIncome) || !v.ActualTotalExpenses.Equal(firstExpenses) {
		t.Fatal("repeated validation changed the frozen totals")
	}
	if !v.ValidatedAt.Equal(firstStamp) {
		t.Fatalf("ValidatedAt = %v, want original %v preserved", v.ValidatedAt, firstStamp)
	}
}

func TestUpdatePreservesValidatedAt(t *testing.T) {
	now := time.Date(2025, time.April, 30, 18, 0, 0, 0, time.UTC)
	items := testLedger(t)

	v := model.MonthlyValidation{
		Month:             model.NormalizeMonth(now),
		ConfirmedExpenses: true,
		ConfirmedIncome:   true,
	}
	if err := Validate(&v, items, now); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	stamp := *v.ValidatedAt

	v.UnplannedExpenses = mustDec(t, "60")
	if err := Update(&v, items, now.AddDate(0, 0, 3)); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if !v.ValidatedAt.Equal(stamp) {
		t.Fatalf("ValidatedAt = %v, want original %v (amend, not re-validate)", v.ValidatedAt, stamp)
	}
	if !v.ActualTotalExpenses.Equal(mustDec(t, "1310")) {
		t.Fatalf("ActualTotalExpenses = %s, want 1310", v.ActualTotalExpenses)
	}
}

func TestUpdateRequiresLockedMonth(t *testing.T) {
	v := model.MonthlyValidation{Month: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)}
	err := Update(&v, testLedger(t), time.Now())
	if !errors.Is(err, ErrMonthNotLocked) {
		t.Fatalf("err = %v, want ErrMonthNotLocked", err)
	}
}
