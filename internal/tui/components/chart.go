package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finplan/internal/tui/theme"
)

// Sparkline renders a unicode sparkline from values. The series is
// normalized over its full range so negative balances still read correctly.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	low, high := values[0], values[0]
	for _, v := range values[1:] {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	span := high - low
	if span == 0 {
		span = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int((v - low) / span * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// DivergingBarChart renders one row per value: a signed horizontal bar
// around a center axis with the label and amount alongside. Positive
// values extend right in green, negative values left in red. Rows whose
// actual flag is set are drawn in a brighter shade.
func DivergingBarChart(values []float64, labels []string, actual []bool, width int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	maxAbs := 0.0
	for _, v := range values {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	labelW := 0
	for _, l := range labels {
		if len(l) > labelW {
			labelW = len(l)
		}
	}

	amountW := 0
	amounts := make([]string, len(values))
	for i, v := range values {
		amounts[i] = formatChartLabel(v)
		if len(amounts[i]) > amountW {
			amountW = len(amounts[i])
		}
	}

	halfWidth := (width - labelW - amountW - 5) / 2
	if halfWidth < 4 {
		halfWidth = 4
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, v := range values {
		posColor, negColor := t.Green, t.Red
		if len(actual) == len(values) && actual[i] {
			posColor, negColor = t.GreenBright, t.Orange
		}

		barLen := int(math.Abs(v) / maxAbs * float64(halfWidth))
		if barLen > halfWidth {
			barLen = halfWidth
		}

		label := labels[i]
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s ", labelW, label)))

		if v >= 0 {
			b.WriteString(spaceStyle.Render(strings.Repeat(" ", halfWidth)))
			b.WriteString(axisStyle.Render("┃"))
			barStyle := lipgloss.NewStyle().Foreground(posColor).Background(t.Surface)
			b.WriteString(barStyle.Render(strings.Repeat("█", barLen)))
			b.WriteString(spaceStyle.Render(strings.Repeat(" ", halfWidth-barLen)))
		} else {
			b.WriteString(spaceStyle.Render(strings.Repeat(" ", halfWidth-barLen)))
			barStyle := lipgloss.NewStyle().Foreground(negColor).Background(t.Surface)
			b.WriteString(barStyle.Render(strings.Repeat("█", barLen)))
			b.WriteString(axisStyle.Render("┃"))
			b.WriteString(spaceStyle.Render(strings.Repeat(" ", halfWidth)))
		}

		b.WriteString(spaceStyle.Render(" "))
		b.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, amounts[i])))
		if i < len(values)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// HorizontalBars renders labeled bars scaled to the largest value,
// for category breakdowns.
func HorizontalBars(values []float64, labels []string, color lipgloss.Color, width int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	labelW := 0
	for _, l := range labels {
		if len(l) > labelW {
			labelW = len(l)
		}
	}

	amountW := 0
	amounts := make([]string, len(values))
	for i, v := range values {
		amounts[i] = formatChartLabel(v)
		if len(amounts[i]) > amountW {
			amountW = len(amounts[i])
		}
	}

	barMax := width - labelW - amountW - 3
	if barMax < 1 {
		barMax = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var b strings.Builder
	for i, v := range values {
		barLen := int(v / maxVal * float64(barMax))
		if barLen > barMax {
			barLen = barMax
		}
		fmt.Fprintf(&b, "%s %s %s",
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, labels[i])),
			amountStyle.Render(fmt.Sprintf("%*s", amountW, amounts[i])),
			barStyle.Render(strings.Repeat("█", barLen)))
		if i < len(values)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatChartLabel(v float64) string {
	neg := v < 0
	a := math.Abs(v)

	var s string
	switch {
	case a >= 1e6:
		if a == math.Trunc(a/1e6)*1e6 {
			s = fmt.Sprintf("%.0fM", a/1e6)
		} else {
			s = fmt.Sprintf("%.1fM", a/1e6)
		}
	case a >= 1e3:
		if a == math.Trunc(a/1e3)*1e3 {
			s = fmt.Sprintf("%.0fk", a/1e3)
		} else {
			s = fmt.Sprintf("%.1fk", a/1e3)
		}
	default:
		s = fmt.Sprintf("%.0f", a)
	}

	if neg {
		return "-" + s
	}
	return s
}
