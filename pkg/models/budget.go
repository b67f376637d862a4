package models

import (
	"fmt"
	"sort"

	"github.com/pocketledger/backend/pkg/validation"
	"github.com/shopspring/decimal"
)

// Budget is the spending ceiling for a period.
//
// Categories hold independent soft ceilings per category. They do not need
// to add up to Amount, see Unallocated.
type Budget struct {
	Amount     decimal.Decimal            `json:"amount" example:"2000"`
	Categories map[string]decimal.Decimal `json:"categories"`
}

// NewBudget returns a Budget without category ceilings.
func NewBudget(amount decimal.Decimal) Budget {
	return Budget{
		Amount:     amount,
		Categories: make(map[string]decimal.Decimal),
	}
}

// SetCategoryBudget sets the ceiling for a category, replacing any
// previous one.
func (b *Budget) SetCategoryBudget(category string, amount decimal.Decimal) error {
	category, err := validation.ValidateCategory(category)
	if err != nil {
		return err
	}

	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeCeiling, category)
	}

	if b.Categories == nil {
		b.Categories = make(map[string]decimal.Decimal)
	}
	b.Categories[category] = amount
	return nil
}

// CategoryBudget returns the ceiling for a category.
//
// A category without a ceiling returns 0. Absence is not an error.
func (b Budget) CategoryBudget(category string) decimal.Decimal {
	amount, ok := b.Categories[category]
	if !ok {
		return decimal.Zero
	}
	return amount
}

// HasCategoryBudget reports whether a ceiling is set for the category.
func (b Budget) HasCategoryBudget(category string) bool {
	_, ok := b.Categories[category]
	return ok
}

// TotalCategoryBudgets returns the sum of all category ceilings.
func (b Budget) TotalCategoryBudgets() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range b.Categories {
		total = total.Add(amount)
	}
	return total
}

// Unallocated is the part of Amount not assigned to any category. It is
// negative when the categories add up to more than Amount.
func (b Budget) Unallocated() decimal.Decimal {
	return b.Amount.Sub(b.TotalCategoryBudgets())
}

// CategoryNames returns the names of all categories with a ceiling,
// sorted alphabetically.
func (b Budget) CategoryNames() []string {
	names := make([]string, 0, len(b.Categories))
	for name := range b.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToRecord returns the plain mapping of the budget. Category ceilings are
// nested under the "categories" key.
func (b Budget) ToRecord() Record {
	categories := make(map[string]any, len(b.Categories))
	for name, amount := range b.Categories {
		categories[name] = amount
	}

	return Record{
		KeyAmount:     b.Amount,
		KeyCategories: categories,
	}
}

// BudgetFromRecord reconstructs a Budget from its record. A missing
// "categories" key yields a budget without category ceilings.
func BudgetFromRecord(r Record) (Budget, error) {
	amount, err := r.amount(KeyAmount)
	if err != nil {
		return Budget{}, err
	}

	b := NewBudget(amount)

	raw, ok := r[KeyCategories]
	if !ok || raw == nil {
		return b, nil
	}

	var categories map[string]any
	switch c := raw.(type) {
	case map[string]any:
		categories = c
	case Record:
		categories = c
	case map[string]decimal.Decimal:
		for name, amount := range c {
			b.Categories[name] = amount
		}
		return b, nil
	default:
		return Budget{}, fmt.Errorf("%w: %s is a %T, not a mapping", ErrInvalidRecord, KeyCategories, raw)
	}

	for name, v := range categories {
		amount, err := Decimal(v)
		if err != nil {
			return Budget{}, fmt.Errorf("%w: %s.%s: %w", ErrInvalidRecord, KeyCategories, name, err)
		}
		b.Categories[name] = amount
	}

	return b, nil
}
