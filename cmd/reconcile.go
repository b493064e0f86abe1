package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/model"
	"github.com/theirongolddev/finplan/internal/planner"
	"github.com/theirongolddev/finplan/internal/store"
)

var (
	flagRecMonth             string
	flagRecConfirmExpenses   bool
	flagRecConfirmIncome     bool
	flagRecUnplannedExpenses string
	flagRecUnplannedIncome   string
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a month against the planned budget",
	RunE:  runReconcileStatus,
}

var reconcileStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the month's reconciliation state",
	RunE:  runReconcileStatus,
}

var reconcileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record confirmations and unplanned amounts",
	RunE:  runReconcileSet,
}

var reconcileValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Lock the month and freeze its actual totals",
	RunE:  runReconcileValidate,
}

var reconcileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Re-freeze a locked month after amendments",
	RunE:  runReconcileUpdate,
}

var reconcileHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List all reconciled months",
	RunE:  runReconcileHistory,
}

func init() {
	reconcileCmd.PersistentFlags().StringVarP(&flagRecMonth, "month", "m", "", "Month as YYYY-MM (default: current month)")
	reconcileSetCmd.Flags().BoolVar(&flagRecConfirmExpenses, "confirm-expenses", false, "Confirm planned expenses happened")
	reconcileSetCmd.Flags().BoolVar(&flagRecConfirmIncome, "confirm-income", false, "Confirm planned income arrived")
	reconcileSetCmd.Flags().StringVar(&flagRecUnplannedExpenses, "unplanned-expenses", "", "Unplanned expense total")
	reconcileSetCmd.Flags().StringVar(&flagRecUnplannedIncome, "unplanned-income", "", "Unplanned income total")

	reconcileCmd.AddCommand(reconcileStatusCmd)
	reconcileCmd.AddCommand(reconcileSetCmd)
	reconcileCmd.AddCommand(reconcileValidateCmd)
	reconcileCmd.AddCommand(reconcileUpdateCmd)
	reconcileCmd.AddCommand(reconcileHistoryCmd)
	rootCmd.AddCommand(reconcileCmd)
}

func resolveMonth() (time.Time, error) {
	if flagRecMonth == "" {
		return model.NormalizeMonth(time.Now()), nil
	}
	t, err := time.Parse("2006-01", flagRecMonth)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (use YYYY-MM)", flagRecMonth)
	}
	return t, nil
}

// loadOrInitValidation fetches the month's record, starting an open one
// for a month never touched.
func loadOrInitValidation(s *store.Store, month time.Time) (model.MonthlyValidation, error) {
	v, err := s.GetValidation(month)
	if errors.Is(err, store.ErrNotFound) {
		return model.MonthlyValidation{Month: model.NormalizeMonth(month)}, nil
	}
	return v, err
}

func runReconcileStatus(_ *cobra.Command, _ []string) error {
	month, err := resolveMonth()
	if err != nil {
		return err
	}
	return withState(func(s *store.Store, st *planState) error {
		sym := currencySymbol(st)
		v, err := loadOrInitValidation(s, month)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("RECONCILIATION  %s", cli.FormatMonth(month))))
		fmt.Println()

		rows := [][]string{
			{"State", string(v.State())},
			{"Expenses Confirmed", yesNo(v.ConfirmedExpenses)},
			{"Income Confirmed", yesNo(v.ConfirmedIncome)},
			{"Unplanned Expenses", cli.FormatAmount(sym, v.UnplannedExpenses)},
			{"Unplanned Income", cli.FormatAmount(sym, v.UnplannedIncome)},
		}
		if v.State() == model.StateLocked {
			rows = append(rows,
				[]string{"---"},
				[]string{"Actual Income", cli.FormatAmount(sym, v.ActualTotalIncome)},
				[]string{"Actual Expenses", cli.FormatAmount(sym, v.ActualTotalExpenses)},
				[]string{"Actual Balance", cli.FormatSignedAmount(sym, v.ActualBalance())},
				[]string{"Validated At", v.ValidatedAt.Format("2006-01-02 15:04")},
			)
		} else {
			rows = append(rows,
				[]string{"---"},
				[]string{"Planned Income", cli.FormatAmount(sym, planner.ActiveTotal(st.Items, model.KindIncome))},
				[]string{"Planned Expenses", cli.FormatAmount(sym, planner.ActiveTotal(st.Items, model.KindExpense))},
			)
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Field", "Value"},
			Rows:    rows,
		}))
		return nil
	})
}

func runReconcileSet(cmd *cobra.Command, _ []string) error {
	month, err := resolveMonth()
	if err != nil {
		return err
	}
	return withState(func(s *store.Store, _ *planState) error {
		v, err := loadOrInitValidation(s, month)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("confirm-expenses") {
			v.ConfirmedExpenses = flagRecConfirmExpenses
		}
		if cmd.Flags().Changed("confirm-income") {
			v.ConfirmedIncome = flagRecConfirmIncome
		}
		if flagRecUnplannedExpenses != "" {
			d, err := decimal.NewFromString(flagRecUnplannedExpenses)
			if err != nil {
				return fmt.Errorf("invalid --unplanned-expenses %q: %w", flagRecUnplannedExpenses, err)
			}
			v.UnplannedExpenses = d
		}
		if flagRecUnplannedIncome != "" {
			d, err := decimal.NewFromString(flagRecUnplannedIncome)
			if err != nil {
				return fmt.Errorf("invalid --unplanned-income %q: %w", flagRecUnplannedIncome, err)
			}
			v.UnplannedIncome = d
		}

		if err := s.UpsertValidation(v); err != nil {
			return fmt.Errorf("saving validation: %w", err)
		}
		fmt.Printf("  Updated %s (%s)\n", cli.FormatMonth(month), v.State())
		if v.State() == model.StateLocked {
			fmt.Println("  The month is locked; run `finplan reconcile update` to re-freeze totals.")
		}
		return nil
	})
}

func runReconcileValidate(_ *cobra.Command, _ []string) error {
	month, err := resolveMonth()
	if err != nil {
		return err
	}
	return withState(func(s *store.Store, st *planState) error {
		v, err := loadOrInitValidation(s, month)
		if err != nil {
			return err
		}

		if err := planner.Validate(&v, st.Items, time.Now()); err != nil {
			if errors.Is(err, planner.ErrConfirmationsRequired) {
				return fmt.Errorf("confirm both expenses and income first: finplan reconcile set --confirm-expenses --confirm-income")
			}
			return err
		}
		if err := s.UpsertValidation(v); err != nil {
			return fmt.Errorf("saving validation: %w", err)
		}

		sym := currencySymbol(st)
		fmt.Printf("  Locked %s: income %s, expenses %s, balance %s\n",
			cli.FormatMonth(month),
			cli.FormatAmount(sym, v.ActualTotalIncome),
			cli.FormatAmount(sym, v.ActualTotalExpenses),
			cli.FormatSignedAmount(sym, v.ActualBalance()))
		return nil
	})
}

func runReconcileUpdate(_ *cobra.Command, _ []string) error {
	month, err := resolveMonth()
	if err != nil {
		return err
	}
	return withState(func(s *store.Store, st *planState) error {
		v, err := s.GetValidation(month)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%s has no validation record", cli.FormatMonth(month))
		}
		if err != nil {
			return err
		}

		if err := planner.Update(&v, st.Items, time.Now()); err != nil {
			if errors.Is(err, planner.ErrMonthNotLocked) {
				return fmt.Errorf("%s is not locked; run `finplan reconcile validate` first", cli.FormatMonth(month))
			}
			return err
		}
		if err := s.UpsertValidation(v); err != nil {
			return fmt.Errorf("saving validation: %w", err)
		}

		sym := currencySymbol(st)
		fmt.Printf("  Re-froze %s: income %s, expenses %s\n",
			cli.FormatMonth(month),
			cli.FormatAmount(sym, v.ActualTotalIncome),
			cli.FormatAmount(sym, v.ActualTotalExpenses))
		return nil
	})
}

func runReconcileHistory(_ *cobra.Command, _ []string) error {
	return withState(func(_ *store.Store, st *planState) error {
		sym := currencySymbol(st)

		var rows [][]string
		for _, v := range st.Validations {
			if v.State() != model.StateLocked {
				continue
			}
			rows = append(rows, []string{
				cli.FormatMonth(v.Month),
				cli.FormatAmount(sym, v.ActualTotalIncome),
				cli.FormatAmount(sym, v.ActualTotalExpenses),
				cli.FormatSignedAmount(sym, v.ActualBalance()),
			})
		}

		if len(rows) == 0 {
			fmt.Println("\n  No locked months yet.")
			return nil
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Reconciled Months",
			Headers: []string{"Month", "Income", "Expenses", "Balance"},
			Rows:    rows,
		}))
		return nil
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
