// Package tui provides the interactive Bubble Tea dashboard for finplan.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/config"
	"github.com/theirongolddev/finplan/internal/model"
	"github.com/theirongolddev/finplan/internal/planner"
	"github.com/theirongolddev/finplan/internal/store"
	"github.com/theirongolddev/finplan/internal/tui/components"
	"github.com/theirongolddev/finplan/internal/tui/theme"
)

// DataLoadedMsg is sent when the initial plan data load finishes.
type DataLoadedMsg struct {
	Items       []model.RecurringItem
	Settings    model.FinanceSettings
	Goals       []model.Goal
	Validations []model.MonthlyValidation
	Err         error
	LoadTime    time.Duration
}

// RefreshDataMsg is sent when a background data refresh completes.
type RefreshDataMsg struct {
	Items       []model.RecurringItem
	Settings    model.FinanceSettings
	Goals       []model.Goal
	Validations []model.MonthlyValidation
	Err         error
	LoadTime    time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	items       []model.RecurringItem
	settings    model.FinanceSettings
	goals       []model.Goal
	validations []model.MonthlyValidation
	loaded      bool
	loadErr     error
	loadTime    time.Duration

	// Refresh state
	refreshing  bool
	lastRefresh time.Time

	// Pre-computed by recompute()
	income    decimal.Decimal
	expenses  decimal.Decimal
	net       decimal.Decimal
	target    planner.TargetResolution
	points    []model.ProjectionPoint
	trend     model.TrendReport
	byCat     []planner.CategoryTotal
	incomeCat []planner.CategoryTotal

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	ledger    ledgerState
	goalsTab  goalsState
	reconcile reconcileState
	settingsT settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading
	spinner spinner.Model

	dbPath string
	symbol string
}

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160

	minContentHeight = 5

	autoRefreshInterval = 30 * time.Second
)

const (
	tabOverview = iota
	tabLedger
	tabGoals
	tabReconcile
	tabProjection
	tabSettings
)

// loadConfigOrDefault loads config, returning defaults on error so the
// TUI can always start even if the config file is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(dbPath, symbol string) App {
	needSetup := !config.Exists()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		dbPath:    dbPath,
		symbol:    symbol,
		needSetup: needSetup,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dbPath),
		a.spinner.Tick,
		tickCmd(),
	)
}

func (a *App) recompute() {
	now := time.Now()

	a.income = planner.ActiveTotal(a.items, model.KindIncome)
	a.expenses = planner.ActiveTotal(a.items, model.KindExpense)
	a.net = planner.MonthlyNetBalance(a.items)
	a.target = planner.ResolveTarget(a.settings, model.SumGoals(a.goals))
	a.points = planner.Project(a.items, a.validations, now)
	a.trend = planner.ClassifyTrend(a.points, a.target.Remaining, a.net)
	a.byCat = planner.TotalsByCategory(a.items, model.KindExpense, model.Categories)
	a.incomeCat = planner.TotalsByCategory(a.items, model.KindIncome, model.Categories)

	// Clamp cursors to the new data bounds
	if a.ledger.cursor >= len(a.items) {
		a.ledger.cursor = len(a.items) - 1
	}
	if a.ledger.cursor < 0 {
		a.ledger.cursor = 0
	}
	if a.goalsTab.cursor >= len(a.goals) {
		a.goalsTab.cursor = len(a.goals) - 1
	}
	if a.goalsTab.cursor < 0 {
		a.goalsTab.cursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.listCursorMove(-1)
			return a, nil
		case tea.MouseButtonWheelDown:
			a.listCursorMove(1)
			return a, nil
		case tea.MouseButtonLeft:
			if msg.Y <= 1 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Text input modes intercept all keys
		if a.activeTab == tabReconcile && a.reconcile.editing {
			return a.updateReconcileInput(msg)
		}
		if a.activeTab == tabSettings && a.settingsT.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Per-tab keybindings
		switch a.activeTab {
		case tabLedger:
			if m, cmd, handled := a.updateLedgerKeys(key); handled {
				return m, cmd
			}
		case tabGoals:
			if m, cmd, handled := a.updateGoalsKeys(key); handled {
				return m, cmd
			}
		case tabReconcile:
			if m, cmd, handled := a.updateReconcileKeys(key); handled {
				return m, cmd
			}
		case tabSettings:
			switch key {
			case "j", "down":
				if a.settingsT.cursor < settingsFieldCount-1 {
					a.settingsT.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settingsT.cursor > 0 {
					a.settingsT.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Manual refresh
		if key == "R" && !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.dbPath)
		}

		// Tab navigation
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.items = msg.Items
		a.settings = msg.Settings
		a.goals = msg.Goals
		a.validations = msg.Validations
		a.loadErr = msg.Err
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = time.Now()
		a.reconcile = newReconcileState(a.validations, time.Now())
		a.recompute()

		// Activate first-run setup after data loads
		if a.needSetup {
			a.setupForm = newSetupForm(a.dbPath, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Err == nil {
			a.items = msg.Items
			a.settings = msg.Settings
			a.goals = msg.Goals
			a.validations = msg.Validations
			a.loadTime = msg.LoadTime
			a.reconcile = refreshReconcileState(a.reconcile, a.validations)
			a.recompute()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && !a.refreshing && time.Since(a.lastRefresh) >= autoRefreshInterval {
			a.refreshing = true
			cmds = append(cmds, refreshDataCmd(a.dbPath))
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

// listCursorMove moves the active tab's list cursor by delta, used by
// mouse wheel events.
func (a *App) listCursorMove(delta int) {
	switch a.activeTab {
	case tabLedger:
		a.ledger.cursor = clamp(a.ledger.cursor+delta, 0, len(a.items)-1)
	case tabGoals:
		a.goalsTab.cursor = clamp(a.goalsTab.cursor+delta, 0, len(a.goals)-1)
	case tabReconcile:
		a.reconcile.cursor = clamp(a.reconcile.cursor+delta, 0, reconcileFieldCount-1)
	case tabSettings:
		a.settingsT.cursor = clamp(a.settingsT.cursor+delta, 0, settingsFieldCount-1)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, refreshDataCmd(a.dbPath)
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finplan needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ finplan"))
	b.WriteString(subtitleStyle.Render(" · Personal Finance Planner"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading plan..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o l g r p x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-12s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"Space", "Toggle item / confirmation"},
		{"Enter", "Edit / Confirm"},
		{"Esc", "Back / Cancel"},
		{"v", "Validate month (reconcile tab)"},
		{"u", "Amend locked month (reconcile tab)"},
		{"R", "Refresh data"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-12s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// Header: tab bar + month pill
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pill := pillStyle.Render(" ") +
		pillAccentStyle.Render(cli.FormatMonth(time.Now()))
	if a.target.Remaining.IsPositive() {
		pill += pillStyle.Render(" │ ") +
			pillAccentStyle.Render(cli.FormatAmount(a.symbol, a.target.Remaining)+" to go")
	}
	pill += pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) +
		pillRowStyle.Render(pill)

	statusBar := components.RenderStatusBar(w, cli.FormatSignedAmount(a.symbol, a.net), a.refreshing)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabLedger:
		content = a.renderLedgerTab(cw, contentH)
	case tabGoals:
		content = a.renderGoalsTab(cw)
	case tabReconcile:
		content = a.renderReconcileTab(cw)
	case tabProjection:
		content = a.renderProjectionTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// newBgStyle is shorthand for card-surface text in the given color.
func newBgStyle(fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg).Background(theme.Active.Surface)
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadPlanData opens the store, reads everything the dashboard needs,
// and closes it again. The SQLite reads are fast enough that no
// per-file progress reporting is needed.
func loadPlanData(dbPath string) ([]model.RecurringItem, model.FinanceSettings, []model.Goal, []model.MonthlyValidation, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, model.DefaultSettings(), nil, nil, err
	}
	defer func() { _ = s.Close() }()

	items, err := s.ListItems()
	if err != nil {
		return nil, model.DefaultSettings(), nil, nil, err
	}
	settings, err := s.LoadSettings()
	if err != nil {
		return nil, model.DefaultSettings(), nil, nil, err
	}
	goals, err := s.ListGoals()
	if err != nil {
		return nil, settings, nil, nil, err
	}
	validations, err := s.ListValidations()
	if err != nil {
		return nil, settings, goals, nil, err
	}
	return items, settings, goals, validations, nil
}

func loadDataCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		items, settings, goals, validations, err := loadPlanData(dbPath)
		return DataLoadedMsg{
			Items:       items,
			Settings:    settings,
			Goals:       goals,
			Validations: validations,
			Err:         err,
			LoadTime:    time.Since(start),
		}
	}
}

func refreshDataCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		items, settings, goals, validations, err := loadPlanData(dbPath)
		return RefreshDataMsg{
			Items:       items,
			Settings:    settings,
			Goals:       goals,
			Validations: validations,
			Err:         err,
			LoadTime:    time.Since(start),
		}
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards and empty lines get proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space in the tab bar
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		if i < len(components.Tabs)-1 {
			pos += 2 // separator between tabs
		}
	}
	return -1
}
