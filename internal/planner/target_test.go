package planner

import (
	"testing"

	"github.com/theirongolddev/finplan/internal/model"
)

func TestResolveTargetCustomModeIgnoresAlreadyFunded(t *testing.T) {
	settings := model.FinanceSettings{
		FundingTarget: mustDec(t, "5000"),
		AlreadyFunded: mustDec(t, "1200"),
	}
	goals := model.GoalTotals{
		TotalCost:     mustDec(t, "9999"),
		CompletedCost: mustDec(t, "3000"),
	}

	res := ResolveTarget(settings, goals)
	if !res.CustomMode {
		t.Fatal("expected custom mode with a positive funding target")
	}
	if !res.Total.Equal(mustDec(t, "5000")) {
		t.Fatalf("Total = %s, want 5000", res.Total)
	}
	if !res.Financed.IsZero() {
		t.Fatalf("Financed = %s, want 0 in custom mode", res.Financed)
	}
	if !res.Remaining.Equal(mustDec(t, "5000")) {
		t.Fatalf("Remaining = %s, want 5000", res.Remaining)
	}
}

func TestResolveTargetGoalMode(t *testing.T) {
	settings := model.FinanceSettings{AlreadyFunded: mustDec(t, "500")}
	goals := model.GoalTotals{
		TotalCost:     mustDec(t, "4000"),
		CompletedCost: mustDec(t, "1500"),
	}

	res := ResolveTarget(settings, goals)
	if res.CustomMode {
		t.Fatal("unexpected custom mode with zero funding target")
	}
	if !res.Financed.Equal(mustDec(t, "2000")) {
		t.Fatalf("Financed = %s, want 2000", res.Financed)
	}
	if !res.Remaining.Equal(mustDec(t, "2000")) {
		t.Fatalf("Remaining = %s, want 2000", res.Remaining)
	}
}

func TestResolveTargetFinancedClampedToTotal(t *testing.T) {
	settings := model.FinanceSettings{AlreadyFunded: mustDec(t, "3000")}
	goals := model.GoalTotals{
		TotalCost:     mustDec(t, "2500"),
		CompletedCost: mustDec(t, "2500"),
	}

	res := ResolveTarget(settings, goals)
	if !res.Financed.Equal(res.Total) {
		t.Fatalf("Financed = %s, want clamped to total %s", res.Financed, res.Total)
	}
	if !res.Remaining.IsZero() {
		t.Fatalf("Remaining = %s, want 0", res.Remaining)
	}
}

func TestResolveTargetRemainingBounds(t *testing.T) {
	cases := []struct {
		name          string
		target        string
		alreadyFunded string
		totalGoals    string
		completed     string
	}{
		{"all zero", "0", "0", "0", "0"},
		{"overfunded goals", "0", "1000", "500", "500"},
		{"partial", "0", "100", "1000", "250"},
		{"custom", "750", "9000", "10", "10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ResolveTarget(
				model.FinanceSettings{
					FundingTarget: mustDec(t, tc.target),
					AlreadyFunded: mustDec(t, tc.alreadyFunded),
				},
				model.GoalTotals{
					TotalCost:     mustDec(t, tc.totalGoals),
					CompletedCost: mustDec(t, tc.completed),
				},
			)
			if res.Remaining.IsNegative() {
				t.Fatalf("Remaining = %s, want >= 0", res.Remaining)
			}
			if res.Remaining.GreaterThan(res.Total) {
				t.Fatalf("Remaining = %s exceeds Total = %s", res.Remaining, res.Total)
			}
		})
	}
}

func TestSumGoals(t *testing.T) {
	goals := []model.Goal{
		{Name: "bike", Cost: mustDec(t, "800"), Completed: true},
		{Name: "laptop", Cost: mustDec(t, "1500")},
	}

	totals := model.SumGoals(goals)
	if !totals.TotalCost.Equal(mustDec(t, "2300")) {
		t.Fatalf("TotalCost = %s, want 2300", totals.TotalCost)
	}
	if !totals.CompletedCost.Equal(mustDec(t, "800")) {
		t.Fatalf("CompletedCost = %s, want 800", totals.CompletedCost)
	}
}
