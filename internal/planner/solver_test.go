package planner

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromMonthsExactDivision(t *testing.T) {
	plan, err := FromMonths(mustDec(t, "2400"), 12)
	if err != nil {
		t.Fatalf("FromMonths: %v", err)
	}
	if !plan.MonthlyAmount.Equal(mustDec(t, "200")) {
		t.Fatalf("MonthlyAmount = %s, want 200", plan.MonthlyAmount)
	}

	// monthly * months recovers the amount exactly: no rounding here.
	product := plan.MonthlyAmount.Mul(decimal.NewFromInt(12))
	if !product.Equal(mustDec(t, "2400")) {
		t.Fatalf("monthly * months = %s, want 2400", product)
	}
}

func TestFromMonthsZeroAmount(t *testing.T) {
	for _, months := range []int{1, 7, 60} {
		plan, err := FromMonths(decimal.Zero, months)
		if err != nil {
			t.Fatalf("FromMonths(0, %d): %v", months, err)
		}
		if !plan.MonthlyAmount.IsZero() {
			t.Fatalf("FromMonths(0, %d).MonthlyAmount = %s, want 0", months, plan.MonthlyAmount)
		}
	}
}

func TestFromMonthsRejectsInvalidDuration(t *testing.T) {
	if _, err := FromMonths(mustDec(t, "100"), 0); !errors.Is(err, ErrInvalidMonths) {
		t.Fatalf("err = %v, want ErrInvalidMonths", err)
	}
}

func TestFromAmountCeils(t *testing.T) {
	plan, err := FromAmount(mustDec(t, "1000"), mustDec(t, "150"))
	if err != nil {
		t.Fatalf("FromAmount: %v", err)
	}
	if plan.Months != 7 {
		t.Fatalf("Months = %d, want 7 (1000/150 = 6.67, rounded up)", plan.Months)
	}
}

func TestFromAmountClamps(t *testing.T) {
	plan, err := FromAmount(mustDec(t, "100"), mustDec(t, "100000"))
	if err != nil {
		t.Fatalf("FromAmount: %v", err)
	}
	if plan.Months != MinMonths {
		t.Fatalf("Months = %d, want clamped to %d", plan.Months, MinMonths)
	}

	plan, err = FromAmount(mustDec(t, "100000"), mustDec(t, "1"))
	if err != nil {
		t.Fatalf("FromAmount: %v", err)
	}
	if plan.Months != MaxMonths {
		t.Fatalf("Months = %d, want clamped to %d", plan.Months, MaxMonths)
	}
}

func TestFromAmountRejectsNonPositiveMonthly(t *testing.T) {
	for _, monthly := range []string{"0", "-5"} {
		if _, err := FromAmount(mustDec(t, "1000"), mustDec(t, monthly)); !errors.Is(err, ErrNonPositiveMonthly) {
			t.Fatalf("FromAmount(1000, %s) err = %v, want ErrNonPositiveMonthly", monthly, err)
		}
	}
}

func TestAmountToFinance(t *testing.T) {
	got := AmountToFinance(mustDec(t, "2400"), mustDec(t, "400"))
	if !got.Equal(mustDec(t, "2000")) {
		t.Fatalf("AmountToFinance = %s, want 2000", got)
	}

	got = AmountToFinance(mustDec(t, "100"), mustDec(t, "500"))
	if !got.IsZero() {
		t.Fatalf("AmountToFinance = %s, want 0 when reserved exceeds remaining", got)
	}
}

func TestCompareDeadline(t *testing.T) {
	// 2400 over 12 months against a 10-month deadline: 2 months over.
	deadline := 10
	status := CompareDeadline(12, &deadline)
	if status.OnTrack {
		t.Fatal("expected off track with a 10-month deadline")
	}
	if status.OverrunMonths != 2 {
		t.Fatalf("OverrunMonths = %d, want 2", status.OverrunMonths)
	}

	deadline = 12
	status = CompareDeadline(12, &deadline)
	if !status.OnTrack || status.OverrunMonths != 0 {
		t.Fatalf("status = %+v, want on track with zero overrun", status)
	}

	status = CompareDeadline(60, nil)
	if !status.OnTrack || status.OverrunMonths != 0 {
		t.Fatalf("status = %+v, want on track without a deadline", status)
	}
}

func TestFinancingEndToEnd(t *testing.T) {
	// Scenario: 2400 remaining, no reserve, want to finish in 12 months.
	amount := AmountToFinance(mustDec(t, "2400"), decimal.Zero)
	plan, err := FromMonths(amount, 12)
	if err != nil {
		t.Fatalf("FromMonths: %v", err)
	}
	if !plan.MonthlyAmount.Equal(mustDec(t, "200")) {
		t.Fatalf("MonthlyAmount = %s, want 200", plan.MonthlyAmount)
	}

	deadline := 10
	status := CompareDeadline(plan.Months, &deadline)
	if status.OnTrack || status.OverrunMonths != 2 {
		t.Fatalf("status = %+v, want off track by 2 months", status)
	}
}
