package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/finplan/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to finplan!")
	fmt.Println()

	// 1. Currency symbol
	fmt.Println("  1. Currency symbol")
	fmt.Printf("     Current: %s\n", cfg.General.CurrencySymbol)
	fmt.Print("     > ")
	symbol, _ := reader.ReadString('\n')
	symbol = strings.TrimSpace(symbol)
	if symbol != "" {
		cfg.General.CurrencySymbol = symbol
	}
	fmt.Println()

	// 2. Theme
	fmt.Println("  2. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	themeChoice = strings.TrimSpace(themeChoice)
	switch themeChoice {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}
	fmt.Println()

	// Save config before touching the database
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	// 3. Finance settings
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	fs, err := s.LoadSettings()
	if err != nil {
		return err
	}

	fmt.Println("  3. Salary payment day (1-28)")
	fmt.Printf("     Current: %d\n", fs.SalaryPaymentDay)
	fmt.Print("     > ")
	dayStr, _ := reader.ReadString('\n')
	dayStr = strings.TrimSpace(dayStr)
	if dayStr != "" {
		day, err := strconv.Atoi(dayStr)
		if err != nil || day < 1 || day > 28 {
			return fmt.Errorf("salary day must be a number between 1 and 28")
		}
		fs.SalaryPaymentDay = day
	}
	fmt.Println()

	fmt.Println("  4. Monthly allocation toward goals (blank to skip)")
	fmt.Print("     > ")
	allocStr, _ := reader.ReadString('\n')
	allocStr = strings.TrimSpace(allocStr)
	if allocStr != "" {
		alloc, err := decimal.NewFromString(allocStr)
		if err != nil || alloc.IsNegative() {
			return fmt.Errorf("allocation must be a non-negative amount")
		}
		fs.MonthlyAllocation = alloc
	}

	if err := s.SaveSettings(fs); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `finplan setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
