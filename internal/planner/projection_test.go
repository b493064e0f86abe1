package planner

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/model"
)

func lockedValidation(t *testing.T, month time.Time, income, expenses string) model.MonthlyValidation {
	t.Helper()
	at := month.AddDate(0, 1, -1)
	return model.MonthlyValidation{
		Month:               month,
		ConfirmedExpenses:   true,
		ConfirmedIncome:     true,
		ActualTotalIncome:   mustDec(t, income),
		ActualTotalExpenses: mustDec(t, expenses),
		ValidatedAt:         &at,
	}
}

func TestProjectWindowAndAnchor(t *testing.T) {
	now := time.Date(2025, time.August, 17, 14, 30, 0, 0, time.UTC)
	points := Project(nil, nil, now)

	if len(points) != ProjectionMonths+1 {
		t.Fatalf("len(points) = %d, want %d", len(points), ProjectionMonths+1)
	}
	first := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	if !points[0].Month.Equal(first) {
		t.Fatalf("points[0].Month = %v, want %v", points[0].Month, first)
	}
	last := first.AddDate(0, ProjectionMonths, 0)
	if !points[len(points)-1].Month.Equal(last) {
		t.Fatalf("last month = %v, want %v", points[len(points)-1].Month, last)
	}
}

func TestProjectCumulativeStraightLine(t *testing.T) {
	items := []model.RecurringItem{
		item(t, "salary", "1000", model.KindIncome, model.CategorySalary, true),
		item(t, "rent", "1800", model.KindExpense, model.CategoryHousing, true),
		item(t, "food", "200", model.KindExpense, model.CategoryFood, true),
	}
	now := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)

	points := Project(items, nil, now)
	if !points[2].Projected.Equal(mustDec(t, "-3000")) {
		t.Fatalf("projected[2] = %s, want -3000", points[2].Projected)
	}
	if !points[0].Projected.Equal(mustDec(t, "-1000")) {
		t.Fatalf("projected[0] = %s, want -1000", points[0].Projected)
	}
}

func TestProjectGapLaw(t *testing.T) {
	now := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)

	// An open (never validated) record must not produce an actual.
	open := model.MonthlyValidation{
		Month:               model.NormalizeMonth(now),
		ActualTotalIncome:   mustDec(t, "100"),
		ActualTotalExpenses: mustDec(t, "40"),
	}

	points := Project(nil, []model.MonthlyValidation{open}, now)
	for i, p := range points {
		if p.Actual != nil {
			t.Fatalf("points[%d].Actual = %s, want nil for unreconciled month", i, *p.Actual)
		}
	}
}

func TestProjectSubstitutesLockedActuals(t *testing.T) {
	now := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	march := model.NormalizeMonth(now)
	may := march.AddDate(0, 2, 0)

	validations := []model.MonthlyValidation{
		lockedValidation(t, march, "2600", "1400"),
		lockedValidation(t, may, "2500", "2900"),
	}

	points := Project(nil, validations, now)
	if points[0].Actual == nil || !points[0].Actual.Equal(mustDec(t, "1200")) {
		t.Fatalf("march actual = %v, want 1200", points[0].Actual)
	}
	if points[1].Actual != nil {
		t.Fatal("april should be a gap")
	}
	if points[2].Actual == nil || !points[2].Actual.Equal(mustDec(t, "-400")) {
		t.Fatalf("may actual = %v, want -400", points[2].Actual)
	}
}

func TestClassifyTrendNoActuals(t *testing.T) {
	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	points := Project(nil, nil, now)

	report := ClassifyTrend(points, mustDec(t, "1000"), mustDec(t, "50"))
	if report.HasActuals {
		t.Fatal("HasActuals = true without any reconciled month")
	}
	if report.Direction != model.TrendNeutral {
		t.Fatalf("Direction = %s, want neutral", report.Direction)
	}
}

func TestClassifyTrendAgainstLatestActual(t *testing.T) {
	now := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	items := []model.RecurringItem{
		item(t, "salary", "1000", model.KindIncome, model.CategorySalary, true),
		item(t, "rent", "500", model.KindExpense, model.CategoryHousing, true),
	}
	net := MonthlyNetBalance(items) // 500/month; projected[0] = 500

	cases := []struct {
		name   string
		income string
		want   model.TrendDirection
	}{
		{"ahead of projection", "1200", model.TrendPositive},
		{"behind projection", "800", model.TrendNegative},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			validations := []model.MonthlyValidation{
				lockedValidation(t, model.NormalizeMonth(now), tc.income, "500"),
			}
			points := Project(items, validations, now)
			report := ClassifyTrend(points, mustDec(t, "2000"), net)
			if report.Direction != tc.want {
				t.Fatalf("Direction = %s, want %s", report.Direction, tc.want)
			}
			if !report.HasActuals {
				t.Fatal("HasActuals = false with a locked month present")
			}
		})
	}
}

func TestClassifyTrendTieEstimatesStabilization(t *testing.T) {
	now := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	items := []model.RecurringItem{
		item(t, "salary", "1000", model.KindIncome, model.CategorySalary, true),
		item(t, "rent", "500", model.KindExpense, model.CategoryHousing, true),
	}
	validations := []model.MonthlyValidation{
		// Actual exactly matches projected[0] = 500.
		lockedValidation(t, model.NormalizeMonth(now), "1000", "500"),
	}

	points := Project(items, validations, now)
	report := ClassifyTrend(points, mustDec(t, "1250"), MonthlyNetBalance(items))
	if report.Direction != model.TrendNeutral {
		t.Fatalf("Direction = %s, want neutral on exact match", report.Direction)
	}
	if report.MonthsToStabilize != 3 {
		t.Fatalf("MonthsToStabilize = %d, want 3 (ceil(1250/500))", report.MonthsToStabilize)
	}

	report = ClassifyTrend(points, mustDec(t, "1250"), decimal.Zero)
	if report.MonthsToStabilize != 0 {
		t.Fatalf("MonthsToStabilize = %d, want 0 with zero net balance", report.MonthsToStabilize)
	}
}
