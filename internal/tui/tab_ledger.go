package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/model"
	"github.com/theirongolddev/finplan/internal/store"
	"github.com/theirongolddev/finplan/internal/tui/components"
	"github.com/theirongolddev/finplan/internal/tui/theme"
)

// ledgerState tracks the recurring items tab state.
type ledgerState struct {
	cursor    int
	actionErr error
}

func (a App) updateLedgerKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.ledger.cursor < len(a.items)-1 {
			a.ledger.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.ledger.cursor > 0 {
			a.ledger.cursor--
		}
		return a, nil, true
	case " ", "enter":
		if a.ledger.cursor >= 0 && a.ledger.cursor < len(a.items) {
			a.toggleItemActive(a.ledger.cursor)
		}
		return a, nil, true
	}
	return a, nil, false
}

// toggleItemActive flips the selected item's active flag and persists
// it. The write is synchronous; SQLite keeps it well under a frame.
func (a *App) toggleItemActive(idx int) {
	it := a.items[idx]
	it.IsActive = !it.IsActive
	it.UpdatedAt = time.Now()

	s, err := store.Open(a.dbPath)
	if err != nil {
		a.ledger.actionErr = err
		return
	}
	defer func() { _ = s.Close() }()

	if err := s.SaveItem(it); err != nil {
		a.ledger.actionErr = err
		return
	}

	a.ledger.actionErr = nil
	a.items[idx] = it
	a.recompute()
}

func (a App) renderLedgerTab(cw, contentH int) string {
	t := theme.Active

	labelStyle := newBgStyle(t.TextMuted)
	dimStyle := newBgStyle(t.TextDim)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	innerW := components.CardInnerWidth(cw)

	if len(a.items) == 0 {
		body := labelStyle.Render("No recurring items yet.") + "\n" +
			dimStyle.Render("Add one with: finplan item add <name> <amount>")
		return components.ContentCard("Recurring Ledger", body, cw)
	}

	// Column layout: marker(2) name category kind amount status
	nameW := innerW / 3
	if nameW < 12 {
		nameW = 12
	}
	amountW := 12

	var b strings.Builder
	header := fmt.Sprintf("  %-*s %-12s %-8s %*s  %s", nameW, "NAME", "CATEGORY", "KIND", amountW, "AMOUNT", "STATUS")
	b.WriteString(dimStyle.Render(truncStr(header, innerW)))
	b.WriteString("\n")

	// Window the list so the cursor stays visible in short terminals
	maxRows := contentH - 8
	if maxRows < 3 {
		maxRows = 3
	}
	start := 0
	if a.ledger.cursor >= maxRows {
		start = a.ledger.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(a.items) {
		end = len(a.items)
	}

	for i := start; i < end; i++ {
		it := a.items[i]

		status := "active"
		if !it.IsActive {
			status = "paused"
		}

		amount := cli.FormatAmount(a.symbol, it.Amount)
		row := fmt.Sprintf("%-*s %-12s %-8s %*s  %s",
			nameW, truncStr(it.Name, nameW), it.Category, it.Kind, amountW, amount, status)

		if i == a.ledger.cursor {
			b.WriteString(markerStyle.Render("▸ "))
			b.WriteString(selectedStyle.Render(truncStr(row, innerW-2)))
		} else {
			b.WriteString(newBgStyle(t.Surface).Render("  "))
			b.WriteString(a.renderLedgerRow(it, row, innerW-2))
		}
		b.WriteString("\n")
	}

	if end < len(a.items) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(a.items)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Income %s  Expenses %s  Net %s",
		cli.FormatAmount(a.symbol, a.income),
		cli.FormatAmount(a.symbol, a.expenses),
		cli.FormatSignedAmount(a.symbol, a.net))))
	b.WriteString("\n")

	if a.ledger.actionErr != nil {
		b.WriteString(newBgStyle(t.Orange).Render(fmt.Sprintf("Save failed: %s", a.ledger.actionErr)))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("[j/k] navigate  [Space] pause/resume"))

	return components.ContentCard("Recurring Ledger", b.String(), cw)
}

// renderLedgerRow colors the row by flow direction, dimming paused items.
func (a App) renderLedgerRow(it model.RecurringItem, row string, limit int) string {
	t := theme.Active

	var style lipgloss.Style
	switch {
	case !it.IsActive:
		style = newBgStyle(t.TextDim)
	case it.Kind == model.KindIncome:
		style = newBgStyle(t.Green)
	default:
		style = newBgStyle(t.Red)
	}
	return style.Render(truncStr(row, limit))
}
