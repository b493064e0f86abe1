package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal is a savings goal with a one-off cost. Goals feed the target
// resolution only through their aggregated costs (GoalTotals); the
// planner never inspects individual goals.
type Goal struct {
	ID        uuid.UUID
	Name      string
	Cost      decimal.Decimal
	Completed bool
	CreatedAt time.Time
}

// GoalTotals is the aggregate the goals collaborator supplies to target
// resolution.
type GoalTotals struct {
	TotalCost     decimal.Decimal
	CompletedCost decimal.Decimal
}

// SumGoals reduces a goal list to the totals the planner consumes.
func SumGoals(goals []Goal) GoalTotals {
	var t GoalTotals
	for _, g := range goals {
		t.TotalCost = t.TotalCost.Add(g.Cost)
		if g.Completed {
			t.CompletedCost = t.CompletedCost.Add(g.Cost)
		}
	}
	return t
}
