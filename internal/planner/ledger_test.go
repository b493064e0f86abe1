package planner

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/model"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func item(t *testing.T, name, amount string, kind model.ItemKind, category model.Category, active bool) model.RecurringItem {
	t.Helper()
	return model.RecurringItem{
		Name:     name,
		Amount:   mustDec(t, amount),
		Kind:     kind,
		Category: category,
		IsActive: active,
	}
}

func TestActiveTotalEmpty(t *testing.T) {
	total := ActiveTotal(nil, model.KindExpense)
	if !total.IsZero() {
		t.Fatalf("ActiveTotal(nil) = %s, want 0", total)
	}
}

func TestActiveTotalIgnoresInactive(t *testing.T) {
	items := []model.RecurringItem{
		item(t, "rent", "900", model.KindExpense, model.CategoryHousing, true),
		item(t, "gym", "40", model.KindExpense, model.CategoryLeisure, false),
		item(t, "groceries", "350.50", model.KindExpense, model.CategoryFood, true),
	}

	withInactive := ActiveTotal(items, model.KindExpense)
	withoutInactive := ActiveTotal(items[:1], model.KindExpense).Add(ActiveTotal(items[2:], model.KindExpense))

	want := mustDec(t, "1250.50")
	if !withInactive.Equal(want) {
		t.Fatalf("ActiveTotal = %s, want %s", withInactive, want)
	}
	if !withInactive.Equal(withoutInactive) {
		t.Fatalf("removing an inactive item changed the total: %s vs %s", withInactive, withoutInactive)
	}
}

func TestActiveTotalFiltersKind(t *testing.T) {
	items := []model.RecurringItem{
		item(t, "salary", "2500", model.KindIncome, model.CategorySalary, true),
		item(t, "rent", "900", model.KindExpense, model.CategoryHousing, true),
	}

	income := ActiveTotal(items, model.KindIncome)
	if !income.Equal(mustDec(t, "2500")) {
		t.Fatalf("income total = %s, want 2500", income)
	}
	expenses := ActiveTotal(items, model.KindExpense)
	if !expenses.Equal(mustDec(t, "900")) {
		t.Fatalf("expense total = %s, want 900", expenses)
	}
}

func TestMonthlyNetBalance(t *testing.T) {
	items := []model.RecurringItem{
		item(t, "salary", "1000", model.KindIncome, model.CategorySalary, true),
		item(t, "rent", "1800", model.KindExpense, model.CategoryHousing, true),
		item(t, "food", "200", model.KindExpense, model.CategoryFood, true),
	}

	net := MonthlyNetBalance(items)
	if !net.Equal(mustDec(t, "-1000")) {
		t.Fatalf("MonthlyNetBalance = %s, want -1000", net)
	}
}

func TestTotalsByCategoryOrderAndFallback(t *testing.T) {
	items := []model.RecurringItem{
		item(t, "rent", "900", model.KindExpense, model.CategoryHousing, true),
		item(t, "mystery", "50", model.KindExpense, model.Category("crypto"), true),
		item(t, "wine club", "30", model.KindExpense, model.CategoryLeisure, false),
		item(t, "bus pass", "60", model.KindExpense, model.CategoryTransport, true),
	}

	categories := []model.Category{model.CategoryHousing, model.CategoryOther, model.CategoryTransport}
	totals := TotalsByCategory(items, model.KindExpense, categories)

	if len(totals) != 3 {
		t.Fatalf("len(totals) = %d, want 3", len(totals))
	}
	for i, c := range categories {
		if totals[i].Category != c {
			t.Fatalf("totals[%d].Category = %s, want %s (insertion order)", i, totals[i].Category, c)
		}
	}
	if !totals[0].Total.Equal(mustDec(t, "900")) {
		t.Fatalf("housing total = %s, want 900", totals[0].Total)
	}
	if !totals[1].Total.Equal(mustDec(t, "50")) {
		t.Fatalf("fallback total = %s, want 50 (unknown category folded in)", totals[1].Total)
	}
	if !totals[2].Total.Equal(mustDec(t, "60")) {
		t.Fatalf("transport total = %s, want 60", totals[2].Total)
	}
}

func TestTotalsByCategoryWithoutFallbackDropsUnknown(t *testing.T) {
	items := []model.RecurringItem{
		item(t, "mystery", "50", model.KindExpense, model.Category("crypto"), true),
	}

	totals := TotalsByCategory(items, model.KindExpense, []model.Category{model.CategoryHousing})
	if !totals[0].Total.IsZero() {
		t.Fatalf("housing total = %s, want 0 when no fallback category is listed", totals[0].Total)
	}
}
