package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/model"
	"github.com/theirongolddev/finplan/internal/planner"
	"github.com/theirongolddev/finplan/internal/store"
)

var (
	flagPlanMonths   int
	flagPlanMonthly  string
	flagPlanReserved string
	flagPlanDeadline int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Solve a financing plan for the remaining target",
	Long: `Solve the financing plan in either direction:
  --months   how much to set aside each month to finish in N months
  --monthly  how many months a fixed monthly amount takes (rounded up)`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().IntVar(&flagPlanMonths, "months", 0, "Solve for monthly amount over N months")
	planCmd.Flags().StringVar(&flagPlanMonthly, "monthly", "", "Solve for months given a monthly amount")
	planCmd.Flags().StringVar(&flagPlanReserved, "reserved", "", "Amount already set aside for this plan")
	planCmd.Flags().IntVar(&flagPlanDeadline, "deadline-months", 0, "Compare the plan against a deadline")
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	if flagPlanMonths != 0 && flagPlanMonthly != "" {
		return fmt.Errorf("use either --months or --monthly, not both")
	}

	return withState(func(_ *store.Store, st *planState) error {
		sym := currencySymbol(st)

		goals := model.SumGoals(st.Goals)
		target := planner.ResolveTarget(st.Settings, goals)

		reserved := decimal.Zero
		if flagPlanReserved != "" {
			var err error
			reserved, err = decimal.NewFromString(flagPlanReserved)
			if err != nil {
				return fmt.Errorf("invalid --reserved %q: %w", flagPlanReserved, err)
			}
		}
		amount := planner.AmountToFinance(target.Remaining, reserved)

		var (
			plan planner.FinancingPlan
			err  error
		)
		switch {
		case flagPlanMonthly != "":
			monthly, perr := decimal.NewFromString(flagPlanMonthly)
			if perr != nil {
				return fmt.Errorf("invalid --monthly %q: %w", flagPlanMonthly, perr)
			}
			plan, err = planner.FromAmount(amount, monthly)
		case flagPlanMonths != 0:
			plan, err = planner.FromMonths(amount, flagPlanMonths)
		case st.Settings.MonthlyAllocation.IsPositive():
			plan, err = planner.FromAmount(amount, st.Settings.MonthlyAllocation)
		default:
			return fmt.Errorf("pass --months or --monthly, or set a monthly allocation in settings")
		}
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("FINANCING PLAN"))
		fmt.Println()

		rows := [][]string{
			{"Target Remaining", cli.FormatAmount(sym, target.Remaining)},
			{"Reserved", cli.FormatAmount(sym, reserved)},
			{"To Finance", cli.FormatAmount(sym, amount)},
			{"---"},
			{"Duration", cli.FormatMonths(plan.Months)},
			{"Monthly Amount", cli.FormatAmount(sym, plan.MonthlyAmount)},
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Metric", "Value"},
			Rows:    rows,
		}))

		if flagPlanDeadline > 0 {
			deadline := flagPlanDeadline
			status := planner.CompareDeadline(plan.Months, &deadline)
			if status.OnTrack {
				fmt.Printf("\n  On track: finishes within %s\n", cli.FormatMonths(deadline))
			} else {
				fmt.Printf("\n  %s\n", cli.RenderWarn(fmt.Sprintf(
					"Off track: overruns the deadline by %s", cli.FormatMonths(status.OverrunMonths))))
			}
		}

		return nil
	})
}
