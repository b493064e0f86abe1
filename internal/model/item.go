// Package model defines the plain data records the planner operates on.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemKind distinguishes the two directions of a recurring cash flow.
type ItemKind string

const (
	KindExpense ItemKind = "expense"
	KindIncome  ItemKind = "income"
)

// ParseItemKind returns the kind matching s, or false if unrecognized.
func ParseItemKind(s string) (ItemKind, bool) {
	switch ItemKind(s) {
	case KindExpense, KindIncome:
		return ItemKind(s), true
	}
	return "", false
}

// Category is a fixed budgeting category for recurring items.
type Category string

const (
	CategoryHousing    Category = "housing"
	CategoryUtilities  Category = "utilities"
	CategoryFood       Category = "food"
	CategoryTransport  Category = "transport"
	CategoryHealth     Category = "health"
	CategoryLeisure    Category = "leisure"
	CategorySalary     Category = "salary"
	CategoryInvestment Category = "investment"
	CategoryOther      Category = "other"
)

// Categories lists all known categories in display order.
var Categories = []Category{
	CategoryHousing,
	CategoryUtilities,
	CategoryFood,
	CategoryTransport,
	CategoryHealth,
	CategoryLeisure,
	CategorySalary,
	CategoryInvestment,
	CategoryOther,
}

// ParseCategory maps s to a known category, folding anything
// unrecognized into CategoryOther. The fallback is explicit rather than
// positional so callers never depend on list ordering.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryOther
}

// MaxItemNameLen is the operator-imposed limit on item names.
const MaxItemNameLen = 50

// RecurringItem is one repeating monthly income or expense line.
// Edits overwrite in place; there is no historical versioning.
type RecurringItem struct {
	ID        uuid.UUID
	Name      string
	Amount    decimal.Decimal
	Category  Category
	Kind      ItemKind
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
