package analysis

import (
	"github.com/pocketledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// Status classifies spending against a ceiling.
type Status string

const (
	StatusOK         Status = "ok"
	StatusWarning    Status = "warning"    // more than WarningThreshold percent used
	StatusExceeded   Status = "exceeded"   // spent more than the ceiling
	StatusUnbudgeted Status = "unbudgeted" // category without a ceiling
)

// WarningThreshold is the percentage of a ceiling above which spending is
// reported with StatusWarning.
var WarningThreshold = decimal.NewFromInt(80)

var hundred = decimal.NewFromInt(100)

// BudgetComparison compares a total against the overall budget.
type BudgetComparison struct {
	Budget     decimal.Decimal `json:"budget" example:"100"`
	Spent      decimal.Decimal `json:"spent" example:"85"`
	Remaining  decimal.Decimal `json:"remaining" example:"15"`
	Percentage decimal.Decimal `json:"percentage" example:"85"`
	Status     Status          `json:"status" example:"warning"`
}

// CompareBudget compares total against budget.
//
// The comparison is skipped, returning false, when no budget is given or its
// amount is not positive.
func CompareBudget(total decimal.Decimal, budget *models.Budget) (BudgetComparison, bool) {
	if budget == nil || !budget.Amount.IsPositive() {
		return BudgetComparison{}, false
	}

	remaining := budget.Amount.Sub(total)
	percentage := percentOf(total, budget.Amount)

	return BudgetComparison{
		Budget:     budget.Amount,
		Spent:      total,
		Remaining:  remaining,
		Percentage: percentage,
		Status:     classify(remaining, percentage),
	}, true
}

// CategoryReconciliation compares the spending in one category against its
// ceiling.
//
// Categories without a ceiling are treated as having a ceiling of 0 for
// Remaining. Their Percentage is not set since it would divide by zero.
type CategoryReconciliation struct {
	Category   string              `json:"category" example:"food"`
	Ceiling    decimal.Decimal     `json:"ceiling" example:"100"`
	Spent      decimal.Decimal     `json:"spent" example:"110"`
	Remaining  decimal.Decimal     `json:"remaining" example:"-10"`
	Percentage decimal.NullDecimal `json:"percentage" example:"110"`
	Status     Status              `json:"status" example:"exceeded"`
}

// ReconcileCategories compares every category of byCategory against the
// category ceilings of budget, in the order of the grouping.
func ReconcileCategories(byCategory Grouping, budget models.Budget) []CategoryReconciliation {
	result := make([]CategoryReconciliation, 0, len(byCategory))

	for _, group := range byCategory {
		ceiling := budget.CategoryBudget(group.Key)
		r := CategoryReconciliation{
			Category:  group.Key,
			Ceiling:   ceiling,
			Spent:     group.Amount,
			Remaining: ceiling.Sub(group.Amount),
			Status:    StatusUnbudgeted,
		}

		if ceiling.IsPositive() {
			percentage := percentOf(group.Amount, ceiling)
			r.Percentage = decimal.NewNullDecimal(percentage)
			r.Status = classify(r.Remaining, percentage)
		}

		result = append(result, r)
	}

	return result
}

func classify(remaining, percentage decimal.Decimal) Status {
	if remaining.IsNegative() {
		return StatusExceeded
	}

	if percentage.GreaterThan(WarningThreshold) {
		return StatusWarning
	}

	return StatusOK
}

// percentOf returns part as percentage of whole. whole must not be zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	return part.Mul(hundred).Div(whole)
}
