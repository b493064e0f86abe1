package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/model"
	"github.com/theirongolddev/finplan/internal/planner"
	"github.com/theirongolddev/finplan/internal/store"
	"github.com/theirongolddev/finplan/internal/tui/components"
	"github.com/theirongolddev/finplan/internal/tui/theme"

	"github.com/shopspring/decimal"
)

const (
	recFieldConfirmExpenses = iota
	recFieldConfirmIncome
	recFieldUnplannedExpenses
	recFieldUnplannedIncome
	reconcileFieldCount // sentinel
)

// reconcileState tracks the reconciliation tab state.
type reconcileState struct {
	month     time.Time
	record    model.MonthlyValidation
	cursor    int
	editing   bool
	input     textinput.Model
	actionErr error
	actionMsg string
}

func newReconcileState(validations []model.MonthlyValidation, now time.Time) reconcileState {
	month := model.NormalizeMonth(now)
	return reconcileState{
		month:  month,
		record: findValidation(validations, month),
	}
}

// refreshReconcileState reloads the viewed month's record after a data
// refresh while keeping cursor position and transient messages.
func refreshReconcileState(prev reconcileState, validations []model.MonthlyValidation) reconcileState {
	if prev.month.IsZero() {
		return newReconcileState(validations, time.Now())
	}
	prev.record = findValidation(validations, prev.month)
	return prev
}

// findValidation returns the stored record for month, or a fresh open
// record when the month was never touched.
func findValidation(validations []model.MonthlyValidation, month time.Time) model.MonthlyValidation {
	key := month.Format("2006-01")
	for _, v := range validations {
		if v.Month.Format("2006-01") == key {
			return v
		}
	}
	return model.MonthlyValidation{Month: month}
}

func (a App) updateReconcileKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.reconcile.cursor < reconcileFieldCount-1 {
			a.reconcile.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.reconcile.cursor > 0 {
			a.reconcile.cursor--
		}
		return a, nil, true
	case "[":
		a.reconcileSetMonth(a.reconcile.month.AddDate(0, -1, 0))
		return a, nil, true
	case "]":
		a.reconcileSetMonth(a.reconcile.month.AddDate(0, 1, 0))
		return a, nil, true
	case " ":
		switch a.reconcile.cursor {
		case recFieldConfirmExpenses:
			a.reconcile.record.ConfirmedExpenses = !a.reconcile.record.ConfirmedExpenses
			a.persistReconcileRecord("")
		case recFieldConfirmIncome:
			a.reconcile.record.ConfirmedIncome = !a.reconcile.record.ConfirmedIncome
			a.persistReconcileRecord("")
		}
		return a, nil, true
	case "enter":
		if a.reconcile.cursor == recFieldUnplannedExpenses || a.reconcile.cursor == recFieldUnplannedIncome {
			return a.reconcileStartEdit()
		}
		return a, nil, true
	case "v":
		a.reconcileValidate()
		return a, nil, true
	case "u":
		a.reconcileAmend()
		return a, nil, true
	}
	return a, nil, false
}

func (a *App) reconcileSetMonth(month time.Time) {
	a.reconcile.month = model.NormalizeMonth(month)
	a.reconcile.record = findValidation(a.validations, a.reconcile.month)
	a.reconcile.actionErr = nil
	a.reconcile.actionMsg = ""
}

func (a App) reconcileStartEdit() (tea.Model, tea.Cmd, bool) {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 20
	ti.Placeholder = "0"

	switch a.reconcile.cursor {
	case recFieldUnplannedExpenses:
		if !a.reconcile.record.UnplannedExpenses.IsZero() {
			ti.SetValue(a.reconcile.record.UnplannedExpenses.String())
		}
	case recFieldUnplannedIncome:
		if !a.reconcile.record.UnplannedIncome.IsZero() {
			ti.SetValue(a.reconcile.record.UnplannedIncome.String())
		}
	}

	ti.Focus()
	a.reconcile.editing = true
	a.reconcile.input = ti
	return a, ti.Cursor.BlinkCmd(), true
}

func (a App) updateReconcileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		val := strings.TrimSpace(a.reconcile.input.Value())
		if val == "" {
			val = "0"
		}
		d, err := decimal.NewFromString(val)
		if err != nil || d.IsNegative() {
			a.reconcile.actionErr = fmt.Errorf("amount must be a non-negative number")
			a.reconcile.editing = false
			return a, nil
		}
		switch a.reconcile.cursor {
		case recFieldUnplannedExpenses:
			a.reconcile.record.UnplannedExpenses = d
		case recFieldUnplannedIncome:
			a.reconcile.record.UnplannedIncome = d
		}
		a.reconcile.editing = false
		a.persistReconcileRecord("")
		return a, nil
	case "esc":
		a.reconcile.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.reconcile.input, cmd = a.reconcile.input.Update(msg)
	return a, cmd
}

// reconcileValidate locks the viewed month.
func (a *App) reconcileValidate() {
	rec := a.reconcile.record
	if err := planner.Validate(&rec, a.items, time.Now()); err != nil {
		if errors.Is(err, planner.ErrConfirmationsRequired) {
			a.reconcile.actionErr = fmt.Errorf("confirm both expenses and income first")
		} else {
			a.reconcile.actionErr = err
		}
		a.reconcile.actionMsg = ""
		return
	}
	a.reconcile.record = rec
	a.persistReconcileRecord("Month locked.")
}

// reconcileAmend recomputes a locked month's frozen totals.
func (a *App) reconcileAmend() {
	rec := a.reconcile.record
	if err := planner.Update(&rec, a.items, time.Now()); err != nil {
		if errors.Is(err, planner.ErrMonthNotLocked) {
			a.reconcile.actionErr = fmt.Errorf("month is not locked yet; validate it first")
		} else {
			a.reconcile.actionErr = err
		}
		a.reconcile.actionMsg = ""
		return
	}
	a.reconcile.record = rec
	a.persistReconcileRecord("Locked totals updated.")
}

func (a *App) persistReconcileRecord(okMsg string) {
	s, err := store.Open(a.dbPath)
	if err != nil {
		a.reconcile.actionErr = err
		return
	}
	defer func() { _ = s.Close() }()

	if err := s.UpsertValidation(a.reconcile.record); err != nil {
		a.reconcile.actionErr = err
		return
	}

	a.reconcile.actionErr = nil
	a.reconcile.actionMsg = okMsg

	validations, err := s.ListValidations()
	if err == nil {
		a.validations = validations
		a.recompute()
	}
}

func (a App) renderReconcileTab(cw int) string {
	t := theme.Active
	rec := a.reconcile.record

	labelStyle := newBgStyle(t.TextMuted)
	dimStyle := newBgStyle(t.TextDim)
	valueStyle := newBgStyle(t.TextPrimary)
	greenStyle := newBgStyle(t.GreenBright)
	orangeStyle := newBgStyle(t.Orange)
	markerStyle := newBgStyle(t.AccentBright)

	stateStr := orangeStyle.Render("OPEN")
	if rec.State() == model.StateLocked {
		stateStr = greenStyle.Render("LOCKED")
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("State: "))
	b.WriteString(stateStr)
	if rec.ValidatedAt != nil {
		b.WriteString(dimStyle.Render("  validated " + rec.ValidatedAt.Format("Jan 2, 2006 15:04")))
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Planned: %s income, %s expenses",
		cli.FormatAmount(a.symbol, a.income),
		cli.FormatAmount(a.symbol, a.expenses))))
	b.WriteString("\n\n")

	type row struct {
		label string
		value string
	}
	rows := []row{
		{"Expenses confirmed", yesNoMark(rec.ConfirmedExpenses)},
		{"Income confirmed", yesNoMark(rec.ConfirmedIncome)},
		{"Unplanned expenses", cli.FormatAmount(a.symbol, rec.UnplannedExpenses)},
		{"Unplanned income", cli.FormatAmount(a.symbol, rec.UnplannedIncome)},
	}

	for i, r := range rows {
		if a.reconcile.editing && i == a.reconcile.cursor {
			b.WriteString(markerStyle.Render("▸ "))
			b.WriteString(labelStyle.Render(fmt.Sprintf("%-20s ", r.label)))
			b.WriteString(a.reconcile.input.View())
			b.WriteString("\n")
			continue
		}
		if i == a.reconcile.cursor {
			b.WriteString(markerStyle.Render("▸ "))
		} else {
			b.WriteString(newBgStyle(t.Surface).Render("  "))
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-20s ", r.label)))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}

	if rec.State() == model.StateLocked {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Actual income:   ") + valueStyle.Render(cli.FormatAmount(a.symbol, rec.ActualTotalIncome)))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Actual expenses: ") + valueStyle.Render(cli.FormatAmount(a.symbol, rec.ActualTotalExpenses)))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Actual balance:  ") + valueStyle.Render(cli.FormatSignedAmount(a.symbol, rec.ActualBalance())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.reconcile.actionErr != nil {
		b.WriteString(orangeStyle.Render(a.reconcile.actionErr.Error()))
		b.WriteString("\n")
	} else if a.reconcile.actionMsg != "" {
		b.WriteString(greenStyle.Render(a.reconcile.actionMsg))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("[j/k] navigate  [Space] toggle  [Enter] edit  [v] validate  [u] amend  [[/]] month"))

	title := "Reconcile — " + cli.FormatMonth(a.reconcile.month)
	monthCard := components.ContentCard(title, b.String(), cw)

	// History card: locked months, most recent first
	var hist strings.Builder
	locked := 0
	for i := len(a.validations) - 1; i >= 0; i-- {
		v := a.validations[i]
		if v.State() != model.StateLocked {
			continue
		}
		locked++
		hist.WriteString(labelStyle.Render(fmt.Sprintf("%-10s ", cli.FormatMonth(v.Month))))
		hist.WriteString(valueStyle.Render(fmt.Sprintf("%12s in  %12s out  ",
			cli.FormatAmount(a.symbol, v.ActualTotalIncome),
			cli.FormatAmount(a.symbol, v.ActualTotalExpenses))))
		bal := v.ActualBalance()
		if bal.IsNegative() {
			hist.WriteString(newBgStyle(t.Red).Render(cli.FormatSignedAmount(a.symbol, bal)))
		} else {
			hist.WriteString(newBgStyle(t.Green).Render(cli.FormatSignedAmount(a.symbol, bal)))
		}
		hist.WriteString("\n")
	}
	if locked == 0 {
		hist.WriteString(dimStyle.Render("No locked months yet."))
	}

	return monthCard + "\n" + components.ContentCard("History", hist.String(), cw)
}

func yesNoMark(b bool) string {
	if b {
		return "[x] yes"
	}
	return "[ ] no"
}
