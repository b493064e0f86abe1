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
	"github.com/theirongolddev/finplan/internal/store"
)

var (
	flagItemKind     string
	flagItemCategory string
	flagItemInactive bool
	flagItemAll      bool
	flagItemName     string
	flagItemAmount   string
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage recurring income and expense items",
	RunE:  runItemList,
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring items",
	RunE:  runItemList,
}

var itemAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Add a recurring item",
	Args:  cobra.ExactArgs(2),
	RunE:  runItemAdd,
}

var itemSetCmd = &cobra.Command{
	Use:   "set <id-prefix>",
	Short: "Edit an item's name, amount, or category",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemSet,
}

var itemToggleCmd = &cobra.Command{
	Use:   "toggle <id-prefix>",
	Short: "Toggle an item active or paused",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemToggle,
}

var itemRemoveCmd = &cobra.Command{
	Use:   "remove <id-prefix>",
	Short: "Delete an item permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemRemove,
}

func init() {
	itemAddCmd.Flags().StringVarP(&flagItemKind, "kind", "k", "expense", "Item kind: expense or income")
	itemAddCmd.Flags().StringVarP(&flagItemCategory, "category", "c", "other", "Category name")
	itemAddCmd.Flags().BoolVar(&flagItemInactive, "paused", false, "Create the item paused")
	itemListCmd.Flags().BoolVarP(&flagItemAll, "all", "a", false, "Include paused items")
	itemSetCmd.Flags().StringVar(&flagItemName, "name", "", "New name")
	itemSetCmd.Flags().StringVar(&flagItemAmount, "amount", "", "New monthly amount")
	itemSetCmd.Flags().StringVarP(&flagItemCategory, "category", "c", "", "New category")

	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemSetCmd)
	itemCmd.AddCommand(itemToggleCmd)
	itemCmd.AddCommand(itemRemoveCmd)
	rootCmd.AddCommand(itemCmd)
}

func runItemList(_ *cobra.Command, _ []string) error {
	return withState(func(_ *store.Store, st *planState) error {
		sym := currencySymbol(st)

		var rows [][]string
		for _, it := range st.Items {
			if !it.IsActive && !flagItemAll {
				continue
			}
			status := "active"
			if !it.IsActive {
				status = "paused"
			}
			rows = append(rows, []string{
				shortID(it.ID),
				it.Name,
				string(it.Kind),
				string(it.Category),
				cli.FormatAmount(sym, it.Amount),
				status,
			})
		}

		if len(rows) == 0 {
			fmt.Println("\n  No recurring items. Add one with: finplan item add <name> <amount>")
			return nil
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Recurring Items",
			Headers: []string{"ID", "Name", "Kind", "Category", "Amount", "Status"},
			Rows:    rows,
		}))
		return nil
	})
}

func runItemAdd(_ *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("item name is empty")
	}
	if len(name) > model.MaxItemNameLen {
		return fmt.Errorf("item name exceeds %d characters", model.MaxItemNameLen)
	}

	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}

	kind, ok := model.ParseItemKind(flagItemKind)
	if !ok {
		return fmt.Errorf("unknown kind %q (use expense or income)", flagItemKind)
	}

	return withState(func(s *store.Store, st *planState) error {
		now := time.Now()
		it := model.RecurringItem{
			ID:        uuid.New(),
			Name:      name,
			Amount:    amount,
			Category:  model.ParseCategory(flagItemCategory),
			Kind:      kind,
			IsActive:  !flagItemInactive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.SaveItem(it); err != nil {
			return fmt.Errorf("saving item: %w", err)
		}
		fmt.Printf("  Added %s %q (%s) %s\n",
			it.Kind, it.Name, it.Category,
			cli.FormatAmount(currencySymbol(st), it.Amount))
		return nil
	})
}

func runItemSet(cmd *cobra.Command, args []string) error {
	return withState(func(s *store.Store, st *planState) error {
		it, err := findItem(st.Items, args[0])
		if err != nil {
			return err
		}

		changed := false
		if cmd.Flags().Changed("name") {
			name := strings.TrimSpace(flagItemName)
			if name == "" {
				return fmt.Errorf("item name is empty")
			}
			if len(name) > model.MaxItemNameLen {
				return fmt.Errorf("item name exceeds %d characters", model.MaxItemNameLen)
			}
			it.Name = name
			changed = true
		}
		if cmd.Flags().Changed("amount") {
			amount, err := decimal.NewFromString(flagItemAmount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", flagItemAmount, err)
			}
			if amount.IsNegative() {
				return fmt.Errorf("amount must not be negative")
			}
			it.Amount = amount
			changed = true
		}
		if cmd.Flags().Changed("category") {
			it.Category = model.ParseCategory(flagItemCategory)
			changed = true
		}

		if !changed {
			return fmt.Errorf("nothing to change: pass --name, --amount, or --category")
		}

		it.UpdatedAt = time.Now()
		if err := s.SaveItem(it); err != nil {
			return fmt.Errorf("saving item: %w", err)
		}
		fmt.Printf("  Updated %q (%s) %s\n",
			it.Name, it.Category,
			cli.FormatAmount(currencySymbol(st), it.Amount))
		return nil
	})
}

func runItemToggle(_ *cobra.Command, args []string) error {
	return withState(func(s *store.Store, st *planState) error {
		it, err := findItem(st.Items, args[0])
		if err != nil {
			return err
		}
		it.IsActive = !it.IsActive
		it.UpdatedAt = time.Now()
		if err := s.SaveItem(it); err != nil {
			return fmt.Errorf("saving item: %w", err)
		}
		status := "paused"
		if it.IsActive {
			status = "active"
		}
		fmt.Printf("  %q is now %s\n", it.Name, status)
		return nil
	})
}

func runItemRemove(_ *cobra.Command, args []string) error {
	return withState(func(s *store.Store, st *planState) error {
		it, err := findItem(st.Items, args[0])
		if err != nil {
			return err
		}
		if err := s.DeleteItem(it.ID); err != nil {
			return fmt.Errorf("deleting item: %w", err)
		}
		fmt.Printf("  Removed %q\n", it.Name)
		return nil
	})
}

// findItem resolves an item by ID prefix or exact name.
func findItem(items []model.RecurringItem, ref string) (model.RecurringItem, error) {
	ref = strings.TrimSpace(ref)
	var matches []model.RecurringItem
	for _, it := range items {
		if strings.HasPrefix(it.ID.String(), strings.ToLower(ref)) || it.Name == ref {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return model.RecurringItem{}, fmt.Errorf("no item matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.RecurringItem{}, fmt.Errorf("%q is ambiguous (%d matches)", ref, len(matches))
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
