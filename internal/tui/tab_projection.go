package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/tui/components"
	"github.com/theirongolddev/finplan/internal/tui/theme"
)

func (a App) renderProjectionTab(cw int) string {
	t := theme.Active

	labelStyle := newBgStyle(t.TextMuted)
	dimStyle := newBgStyle(t.TextDim)
	valueStyle := newBgStyle(t.TextPrimary)

	innerW := components.CardInnerWidth(cw)

	vals := make([]float64, len(a.points))
	labels := make([]string, len(a.points))
	actual := make([]bool, len(a.points))
	projVals := make([]float64, len(a.points))
	for i, p := range a.points {
		projVals[i], _ = p.Projected.Float64()
		v := p.Projected
		if p.Actual != nil {
			v = *p.Actual
			actual[i] = true
		}
		vals[i], _ = v.Float64()
		labels[i] = p.Month.Format("Jan 06")
	}

	var chart strings.Builder
	chart.WriteString(components.DivergingBarChart(vals, labels, actual, innerW))
	chart.WriteString("\n\n")
	chart.WriteString(labelStyle.Render("Projected: "))
	chart.WriteString(components.Sparkline(projVals, t.Blue))
	chart.WriteString(dimStyle.Render("  bright rows are reconciled months"))

	var detail strings.Builder
	detail.WriteString(labelStyle.Render("Net monthly balance: ") + valueStyle.Render(cli.FormatSignedAmount(a.symbol, a.net)))
	detail.WriteString("\n")
	last := a.points[len(a.points)-1]
	detail.WriteString(labelStyle.Render(fmt.Sprintf("Projected by %s:  ", cli.FormatMonth(last.Month))) +
		valueStyle.Render(cli.FormatSignedAmount(a.symbol, last.Projected)))
	detail.WriteString("\n\n")
	detail.WriteString(a.renderTrendLine())

	var b strings.Builder
	b.WriteString(components.ContentCard("Balance Projection", chart.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Outlook", detail.String(), cw))
	return b.String()
}
