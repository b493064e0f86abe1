package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finplan/internal/config"
	"github.com/theirongolddev/finplan/internal/model"
	"github.com/theirongolddev/finplan/internal/store"
)

var (
	flagDBPath   string
	flagCurrency string
)

var rootCmd = &cobra.Command{
	Use:   "finplan",
	Short: "Personal financial planning CLI",
	Long:  "Plan recurring budgets, finance savings goals, and reconcile each month against reality.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDBPath, "db", "d", "", "Path to the SQLite database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCurrency, "currency", "", "Currency symbol (overrides config)")
}

// planState is the shared data every command works from.
type planState struct {
	Config      config.Config
	Items       []model.RecurringItem
	Settings    model.FinanceSettings
	Goals       []model.Goal
	Validations []model.MonthlyValidation
}

// openStore resolves the database path from flags and config.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	if flagCurrency != "" {
		cfg.General.CurrencySymbol = flagCurrency
	}

	path := cfg.DatabasePath()
	if flagDBPath != "" {
		path = flagDBPath
	}

	s, err := store.Open(path)
	if err != nil {
		return nil, cfg, fmt.Errorf("opening database: %w", err)
	}
	return s, cfg, nil
}

// loadState is the shared loading path used by all commands.
func loadState(s *store.Store, cfg config.Config) (*planState, error) {
	items, err := s.ListItems()
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	settings, err := s.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	goals, err := s.ListGoals()
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	validations, err := s.ListValidations()
	if err != nil {
		return nil, fmt.Errorf("loading validations: %w", err)
	}

	return &planState{
		Config:      cfg,
		Items:       items,
		Settings:    settings,
		Goals:       goals,
		Validations: validations,
	}, nil
}

// withState opens the store, loads everything, and hands it to fn.
func withState(fn func(s *store.Store, st *planState) error) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	st, err := loadState(s, cfg)
	if err != nil {
		return err
	}
	return fn(s, st)
}

func currencySymbol(st *planState) string {
	return st.Config.General.CurrencySymbol
}
