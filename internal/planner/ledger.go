// Package planner implements the financial planning calculations: the
// recurring ledger aggregator, the financing solver, the monthly
// reconciliation workflow, and the balance projection. Everything here
// is pure; persistence and rendering live elsewhere, and every entry
// point that needs the current time takes it as a parameter.
package planner

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/model"
)

// ActiveTotal sums the amounts of active items matching kind. Inactive
// items are excluded from every total but kept around for history.
// An empty slice yields zero.
func ActiveTotal(items []model.RecurringItem, kind model.ItemKind) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if !it.IsActive || it.Kind != kind {
			continue
		}
		total = total.Add(it.Amount)
	}
	return total
}

// MonthlyNetBalance is active income minus active expenses. This single
// scalar feeds both the financing solver and the projection.
func MonthlyNetBalance(items []model.RecurringItem) decimal.Decimal {
	return ActiveTotal(items, model.KindIncome).Sub(ActiveTotal(items, model.KindExpense))
}

// CategoryTotal pairs a category with its summed active amount.
type CategoryTotal struct {
	Category model.Category
	Total    decimal.Decimal
}

// TotalsByCategory sums active amounts of the given kind per category,
// restricted to the categories listed. Items whose category is not in
// the list are folded into model.CategoryOther. Output preserves the
// insertion order of categories; display sorting is the caller's job.
func TotalsByCategory(items []model.RecurringItem, kind model.ItemKind, categories []model.Category) []CategoryTotal {
	idx := make(map[model.Category]int, len(categories))
	totals := make([]CategoryTotal, len(categories))
	for i, c := range categories {
		idx[c] = i
		totals[i] = CategoryTotal{Category: c, Total: decimal.Zero}
	}

	fallback, hasFallback := idx[model.CategoryOther]

	for _, it := range items {
		if !it.IsActive || it.Kind != kind {
			continue
		}
		i, ok := idx[it.Category]
		if !ok {
			if !hasFallback {
				continue
			}
			i = fallback
		}
		totals[i].Total = totals[i].Total.Add(it.Amount)
	}

	return totals
}
