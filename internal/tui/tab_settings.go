package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/config"
	"github.com/theirongolddev/finplan/internal/store"
	"github.com/theirongolddev/finplan/internal/tui/components"
	"github.com/theirongolddev/finplan/internal/tui/theme"
)

const (
	settingsFieldCurrency = iota
	settingsFieldTheme
	settingsFieldSalaryDay
	settingsFieldTarget
	settingsFieldAllocation
	settingsFieldFunded
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 30
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settingsT.editing = true
	a.settingsT.saved = false

	ti := newSettingsInput()

	switch a.settingsT.cursor {
	case settingsFieldCurrency:
		ti.Placeholder = "$"
		ti.SetValue(cfg.General.CurrencySymbol)
	case settingsFieldTheme:
		ti.Placeholder = "flexoki-dark, catppuccin-mocha, tokyo-night, terminal"
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldSalaryDay:
		ti.Placeholder = "1 (day of month, 1-28)"
		ti.SetValue(strconv.Itoa(a.settings.SalaryPaymentDay))
	case settingsFieldTarget:
		ti.Placeholder = "0 to derive from goals"
		if a.settings.FundingTarget.IsPositive() {
			ti.SetValue(a.settings.FundingTarget.String())
		}
	case settingsFieldAllocation:
		ti.Placeholder = "monthly amount toward goals"
		if !a.settings.MonthlyAllocation.IsZero() {
			ti.SetValue(a.settings.MonthlyAllocation.String())
		}
	case settingsFieldFunded:
		ti.Placeholder = "amount already set aside"
		if !a.settings.AlreadyFunded.IsZero() {
			ti.SetValue(a.settings.AlreadyFunded.String())
		}
	}

	ti.Focus()
	a.settingsT.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settingsT.editing = false
		a.settingsT.saved = a.settingsT.saveErr == nil
		return a, nil
	case "esc":
		a.settingsT.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settingsT.input, cmd = a.settingsT.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settingsT.input.Value())

	settings := a.settings
	settingsChanged := false

	switch a.settingsT.cursor {
	case settingsFieldCurrency:
		if val != "" {
			cfg.General.CurrencySymbol = val
			a.symbol = val
		}
	case settingsFieldTheme:
		found := false
		for _, t := range theme.All {
			if t.Name == val {
				found = true
				break
			}
		}
		if found {
			cfg.Appearance.Theme = val
			theme.SetActive(val)
		}
	case settingsFieldSalaryDay:
		if d, err := strconv.Atoi(val); err == nil && d >= 1 && d <= 28 {
			settings.SalaryPaymentDay = d
			settingsChanged = true
		}
	case settingsFieldTarget:
		if val == "" {
			val = "0"
		}
		if d, err := decimal.NewFromString(val); err == nil && !d.IsNegative() {
			settings.FundingTarget = d
			settingsChanged = true
		}
	case settingsFieldAllocation:
		if val == "" {
			val = "0"
		}
		if d, err := decimal.NewFromString(val); err == nil && !d.IsNegative() {
			settings.MonthlyAllocation = d
			settingsChanged = true
		}
	case settingsFieldFunded:
		if val == "" {
			val = "0"
		}
		if d, err := decimal.NewFromString(val); err == nil && !d.IsNegative() {
			settings.AlreadyFunded = d
			settingsChanged = true
		}
	}

	if err := config.Save(cfg); err != nil {
		a.settingsT.saveErr = err
		return
	}

	if settingsChanged {
		s, err := store.Open(a.dbPath)
		if err != nil {
			a.settingsT.saveErr = err
			return
		}
		defer func() { _ = s.Close() }()

		if err := s.SaveSettings(settings); err != nil {
			a.settingsT.saveErr = err
			return
		}
		a.settings = settings
		a.recompute()
	}

	a.settingsT.saveErr = nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := newBgStyle(t.TextMuted)
	valueStyle := newBgStyle(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := newBgStyle(t.AccentBright)
	greenStyle := newBgStyle(t.GreenBright)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	targetDisplay := "(derived from goals)"
	if a.settings.FundingTarget.IsPositive() {
		targetDisplay = cli.FormatAmount(a.symbol, a.settings.FundingTarget)
	}

	fields := []field{
		{"Currency Symbol", cfg.General.CurrencySymbol},
		{"Theme", cfg.Appearance.Theme},
		{"Salary Payment Day", strconv.Itoa(a.settings.SalaryPaymentDay)},
		{"Funding Target", targetDisplay},
		{"Monthly Allocation", cli.FormatAmount(a.symbol, a.settings.MonthlyAllocation)},
		{"Already Funded", cli.FormatAmount(a.symbol, a.settings.AlreadyFunded)},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settingsT.editing && i == a.settingsT.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-20s ", f.label)))
			formBody.WriteString(a.settingsT.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settingsT.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-20s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(newBgStyle(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-20s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settingsT.saveErr != nil {
		warnStyle := newBgStyle(t.Orange)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settingsT.saveErr)))
	} else if a.settingsT.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// General info card
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Database:      ") + valueStyle.Render(a.dbPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Items loaded:  ") + valueStyle.Render(cli.FormatNumber(int64(len(a.items)))) + "\n")
	infoBody.WriteString(labelStyle.Render("Goals loaded:  ") + valueStyle.Render(cli.FormatNumber(int64(len(a.goals)))) + "\n")
	infoBody.WriteString(labelStyle.Render("Load time:     ") + valueStyle.Render(fmt.Sprintf("%.2fs", a.loadTime.Seconds())) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
