package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/config"
	"github.com/theirongolddev/finplan/internal/store"
	"github.com/theirongolddev/finplan/internal/tui/theme"
)

// setupValues holds the answers collected by the first-run setup form.
type setupValues struct {
	Currency   string
	SalaryDay  string
	Allocation string
	Theme      string
}

// newSetupForm builds the first-run setup wizard as a huh form.
func newSetupForm(dbPath string, vals *setupValues) *huh.Form {
	vals.Currency = "$"
	vals.SalaryDay = "1"
	vals.Theme = theme.Active.Name

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to finplan!").
				Description(fmt.Sprintf("Plan data will be stored in %s.\nLet's set up a few things.", dbPath)),

			huh.NewInput().
				Title("Currency symbol").
				Value(&vals.Currency).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("currency symbol cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Title("Salary payment day").
				Description("Day of month your salary arrives (1-28)").
				Value(&vals.SalaryDay).
				Validate(func(s string) error {
					d, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || d < 1 || d > 28 {
						return fmt.Errorf("enter a day between 1 and 28")
					}
					return nil
				}),

			huh.NewInput().
				Title("Monthly allocation").
				Description("Amount set aside toward goals each month (leave 0 to skip)").
				Value(&vals.Allocation).
				Placeholder("0").
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					d, err := decimal.NewFromString(s)
					if err != nil || d.IsNegative() {
						return fmt.Errorf("enter a non-negative amount")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	)
}

// saveSetupConfig persists the setup answers to the config file and the
// finance settings table. Best-effort: a failed save leaves the choices
// active for the current session.
func (a *App) saveSetupConfig() error {
	cfg, _ := config.Load()

	if c := strings.TrimSpace(a.setupVals.Currency); c != "" {
		cfg.General.CurrencySymbol = c
		a.symbol = c
	}
	if a.setupVals.Theme != "" {
		cfg.Appearance.Theme = a.setupVals.Theme
		theme.SetActive(a.setupVals.Theme)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	settings := a.settings
	if d, err := strconv.Atoi(strings.TrimSpace(a.setupVals.SalaryDay)); err == nil && d >= 1 && d <= 28 {
		settings.SalaryPaymentDay = d
	}
	if s := strings.TrimSpace(a.setupVals.Allocation); s != "" {
		if d, err := decimal.NewFromString(s); err == nil && !d.IsNegative() {
			settings.MonthlyAllocation = d
		}
	}

	s, err := store.Open(a.dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.SaveSettings(settings); err != nil {
		return err
	}
	a.settings = settings
	return nil
}
