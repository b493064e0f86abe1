package planner

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Financing duration bounds in months.
const (
	MinMonths = 1
	MaxMonths = 60
)

var (
	// ErrInvalidMonths is returned when a duration below MinMonths is
	// requested.
	ErrInvalidMonths = errors.New("planner: months must be at least 1")

	// ErrNonPositiveMonthly is returned when a zero or negative monthly
	// payment is supplied to FromAmount.
	ErrNonPositiveMonthly = errors.New("planner: monthly amount must be positive")
)

// FinancingPlan is a mutually consistent (duration, payment) pair for a
// fixed amount to finance.
type FinancingPlan struct {
	Months        int
	MonthlyAmount decimal.Decimal
}

// AmountToFinance is the remaining amount minus any lump sum the user
// has already set aside, floored at zero.
func AmountToFinance(remaining, reserved decimal.Decimal) decimal.Decimal {
	amount := remaining.Sub(reserved)
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// FromMonths derives the monthly payment for a requested duration.
// A zero amount yields a zero payment for any valid duration.
func FromMonths(amount decimal.Decimal, months int) (FinancingPlan, error) {
	if months < MinMonths {
		return FinancingPlan{}, ErrInvalidMonths
	}
	plan := FinancingPlan{Months: months}
	if amount.IsPositive() {
		plan.MonthlyAmount = amount.Div(decimal.NewFromInt(int64(months)))
	} else {
		plan.MonthlyAmount = decimal.Zero
	}
	return plan, nil
}

// FromAmount derives the duration for a proposed monthly payment:
// ceil(amount / monthly), clamped to [MinMonths, MaxMonths]. The ceil
// is deliberate — the plan finishes on or before the implied duration,
// never after — which makes the months<->amount round trip lossy.
func FromAmount(amount, monthly decimal.Decimal) (FinancingPlan, error) {
	if !monthly.IsPositive() {
		return FinancingPlan{}, ErrNonPositiveMonthly
	}

	months := MinMonths
	if amount.IsPositive() {
		m := int(amount.Div(monthly).Ceil().IntPart())
		switch {
		case m < MinMonths:
			months = MinMonths
		case m > MaxMonths:
			months = MaxMonths
		default:
			months = m
		}
	}

	return FinancingPlan{Months: months, MonthlyAmount: monthly}, nil
}

// DeadlineStatus compares a plan duration against an optional deadline.
type DeadlineStatus struct {
	OnTrack       bool
	OverrunMonths int
}

// CompareDeadline reports whether months fits within deadlineMonths.
// A nil deadline always counts as on track.
func CompareDeadline(months int, deadlineMonths *int) DeadlineStatus {
	if deadlineMonths == nil {
		return DeadlineStatus{OnTrack: true}
	}
	overrun := months - *deadlineMonths
	if overrun < 0 {
		overrun = 0
	}
	return DeadlineStatus{OnTrack: months <= *deadlineMonths, OverrunMonths: overrun}
}
