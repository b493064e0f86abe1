package planner

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/model"
)

// TargetResolution is the outcome of deciding how much money still
// needs to be raised. Remaining is always in [0, Total].
type TargetResolution struct {
	Total      decimal.Decimal
	Financed   decimal.Decimal
	Remaining  decimal.Decimal
	CustomMode bool
}

// ResolveTarget computes the remaining amount to raise from the current
// settings and the goal totals supplied by the goals collaborator.
// Custom targets track their own allocation, so goal completion and the
// already-funded amount count only in goal-derived mode. Pure function,
// recomputed on every call.
func ResolveTarget(settings model.FinanceSettings, goals model.GoalTotals) TargetResolution {
	res := TargetResolution{CustomMode: settings.CustomMode()}

	if res.CustomMode {
		res.Total = settings.FundingTarget
		res.Financed = decimal.Zero
	} else {
		res.Total = goals.TotalCost
		res.Financed = goals.CompletedCost.Add(settings.AlreadyFunded)
		if res.Financed.GreaterThan(res.Total) {
			res.Financed = res.Total
		}
	}

	res.Remaining = res.Total.Sub(res.Financed)
	if res.Remaining.IsNegative() {
		res.Remaining = decimal.Zero
	}
	return res
}
