package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/store"
	"github.com/theirongolddev/finplan/internal/tui/components"
	"github.com/theirongolddev/finplan/internal/tui/theme"
)

// goalsState tracks the goals tab state.
type goalsState struct {
	cursor    int
	actionErr error
}

func (a App) updateGoalsKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.goalsTab.cursor < len(a.goals)-1 {
			a.goalsTab.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.goalsTab.cursor > 0 {
			a.goalsTab.cursor--
		}
		return a, nil, true
	case " ", "enter":
		if a.goalsTab.cursor >= 0 && a.goalsTab.cursor < len(a.goals) {
			a.toggleGoalCompleted(a.goalsTab.cursor)
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a *App) toggleGoalCompleted(idx int) {
	g := a.goals[idx]
	g.Completed = !g.Completed

	s, err := store.Open(a.dbPath)
	if err != nil {
		a.goalsTab.actionErr = err
		return
	}
	defer func() { _ = s.Close() }()

	if err := s.SaveGoal(g); err != nil {
		a.goalsTab.actionErr = err
		return
	}

	a.goalsTab.actionErr = nil
	a.goals[idx] = g
	a.recompute()
}

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active

	labelStyle := newBgStyle(t.TextMuted)
	dimStyle := newBgStyle(t.TextDim)
	valueStyle := newBgStyle(t.TextPrimary)
	greenStyle := newBgStyle(t.GreenBright)
	markerStyle := newBgStyle(t.AccentBright)

	innerW := components.CardInnerWidth(cw)

	var list strings.Builder
	if len(a.goals) == 0 {
		list.WriteString(labelStyle.Render("No goals yet."))
		list.WriteString("\n")
		list.WriteString(dimStyle.Render("Add one with: finplan goal add <name> <cost>"))
	} else {
		nameW := innerW / 2
		if nameW < 12 {
			nameW = 12
		}
		for i, g := range a.goals {
			marker := "  "
			if i == a.goalsTab.cursor {
				marker = markerStyle.Render("▸ ")
			} else {
				marker = newBgStyle(t.Surface).Render("  ")
			}

			check := dimStyle.Render("[ ]")
			nameStyle := valueStyle
			if g.Completed {
				check = greenStyle.Render("[x]")
				nameStyle = dimStyle
			}

			list.WriteString(marker)
			list.WriteString(check)
			list.WriteString(nameStyle.Render(fmt.Sprintf(" %-*s ", nameW, truncStr(g.Name, nameW))))
			list.WriteString(valueStyle.Render(cli.FormatAmount(a.symbol, g.Cost)))
			list.WriteString(dimStyle.Render("  added " + g.CreatedAt.Format("Jan 2006")))
			list.WriteString("\n")
		}
	}

	list.WriteString("\n")
	if a.goalsTab.actionErr != nil {
		list.WriteString(newBgStyle(t.Orange).Render(fmt.Sprintf("Save failed: %s", a.goalsTab.actionErr)))
		list.WriteString("\n")
	}
	list.WriteString(dimStyle.Render("[j/k] navigate  [Space] complete/reopen"))

	// Funding card: overall target progress plus per-goal count
	totals := struct {
		done, open int
	}{}
	for _, g := range a.goals {
		if g.Completed {
			totals.done++
		} else {
			totals.open++
		}
	}

	var fund strings.Builder
	if a.target.Total.IsPositive() {
		ratio, _ := a.target.Financed.Div(a.target.Total).Float64()
		barW := innerW - 16
		if barW < 10 {
			barW = 10
		}
		fund.WriteString(components.FundingBar("Funded", ratio, 6, barW))
		fund.WriteString("\n\n")
	}
	fund.WriteString(labelStyle.Render("Target:    ") + valueStyle.Render(cli.FormatAmount(a.symbol, a.target.Total)))
	fund.WriteString("\n")
	fund.WriteString(labelStyle.Render("Financed:  ") + valueStyle.Render(cli.FormatAmount(a.symbol, a.target.Financed)))
	fund.WriteString("\n")
	fund.WriteString(labelStyle.Render("Remaining: ") + valueStyle.Render(cli.FormatAmount(a.symbol, a.target.Remaining)))
	fund.WriteString("\n")
	fund.WriteString(labelStyle.Render(fmt.Sprintf("Goals:     %d open, %d completed", totals.open, totals.done)))
	if a.target.CustomMode {
		fund.WriteString("\n")
		fund.WriteString(dimStyle.Render("Custom target mode: goal completion does not count as financed."))
	}

	// Financing hint: months left at the current allocation
	if a.target.Remaining.IsPositive() && a.settings.MonthlyAllocation.IsPositive() {
		months := int(a.target.Remaining.Div(a.settings.MonthlyAllocation).Ceil().IntPart())
		done := time.Now().AddDate(0, months, 0)
		fund.WriteString("\n")
		fund.WriteString(labelStyle.Render(fmt.Sprintf("At %s/mo: funded in %s (%s)",
			cli.FormatAmount(a.symbol, a.settings.MonthlyAllocation),
			cli.FormatMonths(months),
			cli.FormatMonth(done))))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Goals", list.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Funding", fund.String(), cw))
	return b.String()
}
