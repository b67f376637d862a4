package analysis

import (
	"github.com/pocketledger/backend/pkg/models"
)

// ExpenseAnalysis is the full analysis of a collection of expenses.
type ExpenseAnalysis struct {
	Summary
	ByDate      Grouping                 `json:"byDate"`
	HighestDate Group                    `json:"highestDate"` // The day with the highest spending
	ByCategory  Grouping                 `json:"byCategory"`
	TopCategory Group                    `json:"topCategory"` // The category with the highest spending
	Budget      *BudgetComparison        `json:"budget"`      // Not set when no budget is configured
	Categories  []CategoryReconciliation `json:"categories"`  // Empty when no budget is configured
}

// AnalyzeExpenses computes the ExpenseAnalysis. budget may be nil.
//
// For no expenses, ErrNothingToAnalyze is returned.
func AnalyzeExpenses(expenses []models.Expense, budget *models.Budget) (ExpenseAnalysis, error) {
	summary, err := Summarize(expenses)
	if err != nil {
		return ExpenseAnalysis{}, err
	}

	a := ExpenseAnalysis{
		Summary:    summary,
		ByDate:     GroupByDate(expenses),
		ByCategory: GroupByCategory(expenses),
		Categories: make([]CategoryReconciliation, 0),
	}

	// Both groupings are non-empty since there is at least one expense
	a.HighestDate, _ = a.ByDate.Max()
	a.TopCategory, _ = a.ByCategory.Max()

	if comparison, ok := CompareBudget(a.Total, budget); ok {
		a.Budget = &comparison
	}

	if budget != nil {
		a.Categories = ReconcileCategories(a.ByCategory, *budget)
	}

	return a, nil
}
