package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/store"
)

var (
	flagSetSalaryDay  int
	flagSetTarget     string
	flagSetAllocation string
	flagSetFunded     string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change finance settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change finance settings",
	RunE:  runSettingsSet,
}

func init() {
	settingsSetCmd.Flags().IntVar(&flagSetSalaryDay, "salary-day", 0, "Day of month salary arrives (1-28)")
	settingsSetCmd.Flags().StringVar(&flagSetTarget, "target", "", "Custom funding target (0 to use goal costs)")
	settingsSetCmd.Flags().StringVar(&flagSetAllocation, "allocation", "", "Default monthly allocation for plans")
	settingsSetCmd.Flags().StringVar(&flagSetFunded, "funded", "", "Amount already funded toward goals")

	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	return withState(func(_ *store.Store, st *planState) error {
		sym := currencySymbol(st)
		fs := st.Settings

		mode := "goals"
		if fs.CustomMode() {
			mode = "custom"
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Finance Settings",
			Headers: []string{"Setting", "Value"},
			Rows: [][]string{
				{"Salary Payment Day", fmt.Sprintf("%d", fs.SalaryPaymentDay)},
				{"Funding Target", cli.FormatAmount(sym, fs.FundingTarget)},
				{"Target Mode", mode},
				{"Monthly Allocation", cli.FormatAmount(sym, fs.MonthlyAllocation)},
				{"Already Funded", cli.FormatAmount(sym, fs.AlreadyFunded)},
			},
		}))
		return nil
	})
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	return withState(func(s *store.Store, st *planState) error {
		fs := st.Settings

		if cmd.Flags().Changed("salary-day") {
			if flagSetSalaryDay < 1 || flagSetSalaryDay > 28 {
				return fmt.Errorf("salary day must be between 1 and 28")
			}
			fs.SalaryPaymentDay = flagSetSalaryDay
		}
		if flagSetTarget != "" {
			d, err := decimal.NewFromString(flagSetTarget)
			if err != nil {
				return fmt.Errorf("invalid --target %q: %w", flagSetTarget, err)
			}
			if d.IsNegative() {
				return fmt.Errorf("target must not be negative")
			}
			fs.FundingTarget = d
		}
		if flagSetAllocation != "" {
			d, err := decimal.NewFromString(flagSetAllocation)
			if err != nil {
				return fmt.Errorf("invalid --allocation %q: %w", flagSetAllocation, err)
			}
			if d.IsNegative() {
				return fmt.Errorf("allocation must not be negative")
			}
			fs.MonthlyAllocation = d
		}
		if flagSetFunded != "" {
			d, err := decimal.NewFromString(flagSetFunded)
			if err != nil {
				return fmt.Errorf("invalid --funded %q: %w", flagSetFunded, err)
			}
			if d.IsNegative() {
				return fmt.Errorf("funded amount must not be negative")
			}
			fs.AlreadyFunded = d
		}

		if err := s.SaveSettings(fs); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("  Settings saved.")
		return nil
	})
}
