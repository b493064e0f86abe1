package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/model"
	"github.com/theirongolddev/finplan/internal/tui/components"
	"github.com/theirongolddev/finplan/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	// Row 1: Metric cards
	activeCount := 0
	for _, it := range a.items {
		if it.IsActive {
			activeCount++
		}
	}

	netDetail := "projected / month"
	if a.net.IsNegative() {
		netDetail = "running a deficit"
	}

	targetDetail := "no target set"
	if a.target.Total.IsPositive() {
		mode := "from goals"
		if a.target.CustomMode {
			mode = "custom target"
		}
		targetDetail = fmt.Sprintf("of %s (%s)", cli.FormatAmount(a.symbol, a.target.Total), mode)
	}

	cards := []struct{ Label, Value, Detail string }{
		{"Income", cli.FormatAmount(a.symbol, a.income), fmt.Sprintf("%d active items", activeCount)},
		{"Expenses", cli.FormatAmount(a.symbol, a.expenses), "recurring / month"},
		{"Net", cli.FormatSignedAmount(a.symbol, a.net), netDetail},
		{"Remaining", cli.FormatAmount(a.symbol, a.target.Remaining), targetDetail},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Balance projection chart
	if len(a.points) > 0 {
		vals := make([]float64, len(a.points))
		labels := make([]string, len(a.points))
		actual := make([]bool, len(a.points))
		for i, p := range a.points {
			v := p.Projected
			if p.Actual != nil {
				v = *p.Actual
				actual[i] = true
			}
			vals[i], _ = v.Float64()
			labels[i] = p.Month.Format("Jan")
		}
		chartInnerW := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard(
			"Balance Projection (12 months)",
			components.DivergingBarChart(vals, labels, actual, chartInnerW),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Expense breakdown + funding progress
	halves := components.LayoutRow(cw, 2)

	var catVals []float64
	var catLabels []string
	for _, ct := range a.byCat {
		if ct.Total.IsZero() {
			continue
		}
		v, _ := ct.Total.Float64()
		catVals = append(catVals, v)
		catLabels = append(catLabels, string(ct.Category))
	}
	catBody := "No active expenses yet."
	if len(catVals) > 0 {
		catBody = components.HorizontalBars(catVals, catLabels, t.Red, components.CardInnerWidth(halves[0]))
	}

	fundBody := a.renderFundingSummary(components.CardInnerWidth(halves[1]))

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Expenses by Category", catBody, cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Funding", fundBody, cw))
	} else {
		catCard := components.ContentCard("Expenses by Category", catBody, halves[0])
		fundCard := components.ContentCard("Funding", fundBody, halves[1])
		b.WriteString(components.CardRow([]string{catCard, fundCard}))
	}

	return b.String()
}

// renderFundingSummary shows target progress and the trend line.
func (a App) renderFundingSummary(innerW int) string {
	t := theme.Active

	labelStyle := newBgStyle(t.TextMuted)
	valueStyle := newBgStyle(t.TextPrimary)

	var b strings.Builder

	if a.target.Total.IsPositive() {
		ratio, _ := a.target.Financed.Div(a.target.Total).Float64()
		barW := innerW - 18
		if barW < 10 {
			barW = 10
		}
		b.WriteString(components.FundingBar("Target", ratio, 8, barW))
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Financed:  ") + valueStyle.Render(cli.FormatAmount(a.symbol, a.target.Financed)))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Remaining: ") + valueStyle.Render(cli.FormatAmount(a.symbol, a.target.Remaining)))
		b.WriteString("\n")
	} else {
		b.WriteString(labelStyle.Render("No funding target set."))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Add goals or set a custom target in Settings."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.renderTrendLine())

	return b.String()
}

// renderTrendLine formats the trend classification as a single line.
func (a App) renderTrendLine() string {
	t := theme.Active

	labelStyle := newBgStyle(t.TextMuted)

	if !a.trend.HasActuals {
		return labelStyle.Render("Trend: no reconciled months yet")
	}

	switch a.trend.Direction {
	case model.TrendPositive:
		return labelStyle.Render("Trend: ") + newBgStyle(t.GreenBright).Render("ahead of plan")
	case model.TrendNegative:
		return labelStyle.Render("Trend: ") + newBgStyle(t.Orange).Render("behind plan")
	default:
		line := labelStyle.Render("Trend: ") + newBgStyle(t.TextPrimary).Render("on plan")
		if a.trend.MonthsToStabilize > 0 {
			line += labelStyle.Render(fmt.Sprintf("  (%s to target)", cli.FormatMonths(a.trend.MonthsToStabilize)))
		}
		return line
	}
}
