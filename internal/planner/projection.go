package planner

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/model"
)

// ProjectionMonths is the forward window length; the series includes
// the current month plus this many more.
const ProjectionMonths = 12

// monthKeyLayout identifies a calendar month independent of time zone.
const monthKeyLayout = "2006-01"

// Project builds the forward balance series anchored at the first day
// of now's month. Each point carries the cumulative straight-line
// projection of the current net balance, and the reconciled outcome of
// that month when a locked validation exists. Months without one get a
// nil Actual — a gap in the chart, never a zero.
func Project(items []model.RecurringItem, validations []model.MonthlyValidation, now time.Time) []model.ProjectionPoint {
	net := MonthlyNetBalance(items)
	anchor := model.NormalizeMonth(now)

	// Keyed by formatted month so records stored in UTC still match a
	// local-time anchor.
	locked := make(map[string]decimal.Decimal, len(validations))
	for _, v := range validations {
		if v.State() != model.StateLocked {
			continue
		}
		locked[v.Month.Format(monthKeyLayout)] = v.ActualBalance()
	}

	points := make([]model.ProjectionPoint, 0, ProjectionMonths+1)
	for i := 0; i <= ProjectionMonths; i++ {
		month := anchor.AddDate(0, i, 0)
		p := model.ProjectionPoint{
			Month:     month,
			Projected: net.Mul(decimal.NewFromInt(int64(i + 1))),
		}
		if actual, ok := locked[month.Format(monthKeyLayout)]; ok {
			a := actual
			p.Actual = &a
		}
		points = append(points, p)
	}
	return points
}

// ClassifyTrend compares the most recent reconciled point against its
// projection. Ties fall through to a neutral months-to-stabilize
// estimate, ceil(|remaining / net|), which is only meaningful when the
// net balance is nonzero. Stateless; recomputed fully on every call.
func ClassifyTrend(points []model.ProjectionPoint, remaining, net decimal.Decimal) model.TrendReport {
	var latest *model.ProjectionPoint
	for i := range points {
		if points[i].Actual != nil {
			latest = &points[i]
		}
	}

	if latest == nil {
		return model.TrendReport{Direction: model.TrendNeutral}
	}

	report := model.TrendReport{HasActuals: true}
	switch latest.Actual.Cmp(latest.Projected) {
	case 1:
		report.Direction = model.TrendPositive
	case -1:
		report.Direction = model.TrendNegative
	default:
		report.Direction = model.TrendNeutral
		if !net.IsZero() {
			report.MonthsToStabilize = int(remaining.Div(net).Abs().Ceil().IntPart())
		}
	}
	return report
}
