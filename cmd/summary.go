package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/model"
	"github.com/theirongolddev/finplan/internal/planner"
	"github.com/theirongolddev/finplan/internal/store"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly budget summary",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	return withState(func(_ *store.Store, st *planState) error {
		sym := currencySymbol(st)

		if len(st.Items) == 0 {
			fmt.Println("\n  No recurring items yet.")
			fmt.Println("  Add one with: finplan item add")
			return nil
		}

		income := planner.ActiveTotal(st.Items, model.KindIncome)
		expenses := planner.ActiveTotal(st.Items, model.KindExpense)
		net := planner.MonthlyNetBalance(st.Items)

		goals := model.SumGoals(st.Goals)
		target := planner.ResolveTarget(st.Settings, goals)

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTHLY BUDGET  %s", cli.FormatMonth(time.Now()))))
		fmt.Println()

		rows := [][]string{
			{"Income", cli.FormatAmount(sym, income)},
			{"Expenses", cli.FormatAmount(sym, expenses)},
			{"Net Balance", cli.FormatSignedAmount(sym, net)},
			{"---"},
			{"Funding Target", cli.FormatAmount(sym, target.Total)},
			{"Already Financed", cli.FormatAmount(sym, target.Financed)},
			{"Remaining", cli.FormatAmount(sym, target.Remaining)},
		}
		if target.CustomMode {
			rows = append(rows, []string{"Target Mode", "custom"})
		} else {
			rows = append(rows, []string{"Target Mode", "goals"})
		}

		table := cli.Table{
			Headers: []string{"Metric", "Value"},
			Rows:    rows,
		}
		fmt.Print(cli.RenderTable(table))

		// Category breakdown for expenses
		byCat := planner.TotalsByCategory(st.Items, model.KindExpense, model.Categories)
		var catRows [][]string
		for _, ct := range byCat {
			if ct.Total.IsZero() {
				continue
			}
			catRows = append(catRows, []string{string(ct.Category), cli.FormatAmount(sym, ct.Total)})
		}
		if len(catRows) > 0 {
			fmt.Println()
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "Expenses by Category",
				Headers: []string{"Category", "Total"},
				Rows:    catRows,
			}))
		}

		return nil
	})
}
