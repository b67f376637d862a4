package analysis

import (
	"github.com/pocketledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// Sentiment describes the sign of the net income.
type Sentiment string

const (
	SentimentPositive  Sentiment = "positive"
	SentimentNegative  Sentiment = "negative"
	SentimentBreakeven Sentiment = "breakeven"
)

// SentimentOf returns the Sentiment for a net amount.
func SentimentOf(net decimal.Decimal) Sentiment {
	switch net.Sign() {
	case 1:
		return SentimentPositive
	case -1:
		return SentimentNegative
	default:
		return SentimentBreakeven
	}
}

// Share is a group together with its percentage of the series total.
type Share struct {
	Key        string          `json:"key" example:"salary"`
	Amount     decimal.Decimal `json:"amount" example:"500"`
	Percentage decimal.Decimal `json:"percentage" example:"62.5"`
}

// Shares returns each group of g with its percentage of the grouping's own
// total. For a grouping that sums to zero, no shares are returned.
func Shares(g Grouping) []Share {
	shares := make([]Share, 0, len(g))

	total := g.Total()
	if total.IsZero() {
		return shares
	}

	for _, group := range g {
		shares = append(shares, Share{
			Key:        group.Key,
			Amount:     group.Amount,
			Percentage: percentOf(group.Amount, total),
		})
	}

	return shares
}

// FinanceAnalysis compares incomes and expenses.
type FinanceAnalysis struct {
	TotalIncome        decimal.Decimal   `json:"totalIncome" example:"800"`
	TotalExpenses      decimal.Decimal   `json:"totalExpenses" example:"200"`
	Net                decimal.Decimal   `json:"net" example:"600"`
	Sentiment          Sentiment         `json:"sentiment" example:"positive"`
	Budget             *BudgetComparison `json:"budget"` // Expenses compared to the budget. Not set when no budget is configured
	IncomeByCategory   []Share           `json:"incomeByCategory"`
	ExpensesByCategory []Share           `json:"expensesByCategory"`
}

// AnalyzeFinances computes the FinanceAnalysis. budget may be nil.
//
// ErrNothingToAnalyze is only returned if there are neither incomes nor
// expenses.
func AnalyzeFinances(incomes []models.Income, expenses []models.Expense, budget *models.Budget) (FinanceAnalysis, error) {
	if len(incomes) == 0 && len(expenses) == 0 {
		return FinanceAnalysis{}, ErrNothingToAnalyze
	}

	a := FinanceAnalysis{
		TotalIncome:        Total(incomes),
		TotalExpenses:      Total(expenses),
		IncomeByCategory:   Shares(GroupByCategory(incomes)),
		ExpensesByCategory: Shares(GroupByCategory(expenses)),
	}

	a.Net = a.TotalIncome.Sub(a.TotalExpenses)
	a.Sentiment = SentimentOf(a.Net)

	if comparison, ok := CompareBudget(a.TotalExpenses, budget); ok {
		a.Budget = &comparison
	}

	return a, nil
}
