package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/model"
	"github.com/theirongolddev/finplan/internal/planner"
	"github.com/theirongolddev/finplan/internal/store"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage savings goals",
	RunE:  runGoalList,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with funding progress",
	RunE:  runGoalList,
}

var goalAddCmd = &cobra.Command{
	Use:   "add <name> <cost>",
	Short: "Add a savings goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalAdd,
}

var goalCompleteCmd = &cobra.Command{
	Use:   "complete <id-prefix>",
	Short: "Mark a goal completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalComplete,
}

var goalRemoveCmd = &cobra.Command{
	Use:   "remove <id-prefix>",
	Short: "Delete a goal permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalRemove,
}

func init() {
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalCompleteCmd)
	goalCmd.AddCommand(goalRemoveCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalList(_ *cobra.Command, _ []string) error {
	return withState(func(_ *store.Store, st *planState) error {
		sym := currencySymbol(st)

		if len(st.Goals) == 0 {
			fmt.Println("\n  No goals yet. Add one with: finplan goal add <name> <cost>")
			return nil
		}

		var rows [][]string
		for _, g := range st.Goals {
			status := "open"
			if g.Completed {
				status = "done"
			}
			rows = append(rows, []string{
				shortID(g.ID),
				g.Name,
				cli.FormatAmount(sym, g.Cost),
				status,
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Savings Goals",
			Headers: []string{"ID", "Name", "Cost", "Status"},
			Rows:    rows,
		}))

		totals := model.SumGoals(st.Goals)
		target := planner.ResolveTarget(st.Settings, totals)
		if target.Total.IsPositive() {
			ratio, _ := target.Financed.Div(target.Total).Float64()
			fmt.Printf("\n  Funding  %s\n", cli.RenderProgressBar(ratio, 30))
			fmt.Printf("  Remaining: %s\n", cli.FormatAmount(sym, target.Remaining))
		}
		return nil
	})
}

func runGoalAdd(_ *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("goal name is empty")
	}

	cost, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid cost %q: %w", args[1], err)
	}
	if cost.IsNegative() {
		return fmt.Errorf("cost must not be negative")
	}

	return withState(func(s *store.Store, st *planState) error {
		g := model.Goal{
			ID:        uuid.New(),
			Name:      name,
			Cost:      cost,
			CreatedAt: time.Now(),
		}
		if err := s.SaveGoal(g); err != nil {
			return fmt.Errorf("saving goal: %w", err)
		}
		fmt.Printf("  Added goal %q %s\n", g.Name, cli.FormatAmount(currencySymbol(st), g.Cost))
		return nil
	})
}

func runGoalComplete(_ *cobra.Command, args []string) error {
	return withState(func(s *store.Store, st *planState) error {
		g, err := findGoal(st.Goals, args[0])
		if err != nil {
			return err
		}
		g.Completed = true
		if err := s.SaveGoal(g); err != nil {
			return fmt.Errorf("saving goal: %w", err)
		}
		fmt.Printf("  Completed %q\n", g.Name)
		return nil
	})
}

func runGoalRemove(_ *cobra.Command, args []string) error {
	return withState(func(s *store.Store, st *planState) error {
		g, err := findGoal(st.Goals, args[0])
		if err != nil {
			return err
		}
		if err := s.DeleteGoal(g.ID); err != nil {
			return fmt.Errorf("deleting goal: %w", err)
		}
		fmt.Printf("  Removed %q\n", g.Name)
		return nil
	})
}

func findGoal(goals []model.Goal, ref string) (model.Goal, error) {
	ref = strings.TrimSpace(ref)
	var matches []model.Goal
	for _, g := range goals {
		if strings.HasPrefix(g.ID.String(), strings.ToLower(ref)) || g.Name == ref {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 0:
		return model.Goal{}, fmt.Errorf("no goal matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Goal{}, fmt.Errorf("%q is ambiguous (%d matches)", ref, len(matches))
	}
}
