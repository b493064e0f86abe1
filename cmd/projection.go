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

var flagProjectionChart bool

var projectionCmd = &cobra.Command{
	Use:   "projection",
	Short: "Project the next 12 months of cumulative balance",
	RunE:  runProjection,
}

func init() {
	projectionCmd.Flags().BoolVar(&flagProjectionChart, "chart", false, "Render a bar chart instead of a table")
	rootCmd.AddCommand(projectionCmd)
}

func runProjection(_ *cobra.Command, _ []string) error {
	return withState(func(_ *store.Store, st *planState) error {
		sym := currencySymbol(st)
		now := time.Now()

		points := planner.Project(st.Items, st.Validations, now)

		fmt.Println()
		fmt.Println(cli.RenderTitle("12-MONTH PROJECTION"))
		fmt.Println()

		if flagProjectionChart {
			renderProjectionChart(sym, points)
		} else {
			renderProjectionTable(sym, points)
		}

		goals := model.SumGoals(st.Goals)
		target := planner.ResolveTarget(st.Settings, goals)
		net := planner.MonthlyNetBalance(st.Items)
		trend := planner.ClassifyTrend(points, target.Remaining, net)

		fmt.Println()
		switch trend.Direction {
		case model.TrendPositive:
			fmt.Println("  Trend: " + cli.RenderIncome("ahead of plan"))
		case model.TrendNegative:
			fmt.Println("  Trend: " + cli.RenderExpense("behind plan"))
		default:
			if trend.HasActuals {
				fmt.Println("  Trend: on plan")
			} else {
				fmt.Println("  Trend: " + cli.RenderMuted("no reconciled months yet"))
			}
			if trend.MonthsToStabilize > 0 {
				fmt.Printf("  Months to cover remaining target: %s\n", cli.FormatMonths(trend.MonthsToStabilize))
			}
		}

		return nil
	})
}

func renderProjectionTable(sym string, points []model.ProjectionPoint) {
	var rows [][]string
	for _, p := range points {
		actual := "-"
		if p.Actual != nil {
			actual = cli.FormatSignedAmount(sym, *p.Actual)
		}
		rows = append(rows, []string{
			cli.FormatMonth(p.Month),
			cli.FormatSignedAmount(sym, p.Projected),
			actual,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Projected", "Actual"},
		Rows:    rows,
	}))
}

func renderProjectionChart(sym string, points []model.ProjectionPoint) {
	var maxAbs float64
	vals := make([]float64, len(points))
	for i, p := range points {
		v, _ := p.Projected.Float64()
		if p.Actual != nil {
			v, _ = p.Actual.Float64()
		}
		vals[i] = v
		if a := v; a < 0 {
			a = -a
			if a > maxAbs {
				maxAbs = a
			}
		} else if v > maxAbs {
			maxAbs = v
		}
	}

	for i, p := range points {
		label := p.Month.Format("Jan 06")
		marker := " "
		if p.Actual != nil {
			marker = "*"
		}
		fmt.Printf("  %s %s %s %s\n",
			label, marker,
			cli.RenderDivergingBar(vals[i], maxAbs, 18),
			cli.FormatSignedAmount(sym, p.Projected))
	}
	fmt.Println()
	fmt.Println(cli.RenderMuted("  * reconciled month (actual balance shown)"))
	fmt.Printf("  %s\n", cli.RenderSparkline(vals))
}
