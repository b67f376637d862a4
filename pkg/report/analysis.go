package report

import (
	"io"

	"github.com/pocketledger/backend/pkg/analysis"
)

// Subjects for NothingToAnalyze
const (
	SubjectExpenses  = "expenses"
	SubjectFinancial = "financial data"
)

// NothingToAnalyze renders the notice shown instead of an analysis when
// there is no data.
func NothingToAnalyze(w io.Writer, subject string) error {
	p := &printer{w: w}
	p.line("No %s to analyze.", subject)
	return p.err
}

// ExpenseAnalysis renders an expense analysis.
func ExpenseAnalysis(w io.Writer, a analysis.ExpenseAnalysis) error {
	p := &printer{w: w}

	p.blank()
	p.line("--- Expense Analysis ---")
	p.line("Total expenses: %s", Money(a.Total))
	p.line("Number of expenses: %d", a.Count)
	p.line("Average expense: %s", Money(a.Average))
	p.line("Date with highest expenses: %s (%s)", a.HighestDate.Key, Money(a.HighestDate.Amount))
	p.line("Top category: %s (%s)", a.TopCategory.Key, Money(a.TopCategory.Amount))

	if a.Budget != nil {
		p.blank()
		p.line("Budget status: %s remaining", Money(a.Budget.Remaining))
		p.line("Budget usage: %s", Percent(a.Budget.Percentage))

		switch a.Budget.Status {
		case analysis.StatusExceeded:
			p.line("Warning: You have exceeded your budget!")
		case analysis.StatusWarning:
			p.line("Warning: You have used more than %s of your budget!", analysis.WarningThreshold.String()+"%")
		}
	}

	if len(a.Categories) > 0 {
		p.blank()
		p.line("--- Category Budgets ---")
		for _, c := range a.Categories {
			categoryLine(p, c)
		}
	}

	return p.err
}

func categoryLine(p *printer, c analysis.CategoryReconciliation) {
	if c.Status == analysis.StatusUnbudgeted {
		p.line("%s: %s spent, no budget set", c.Category, Money(c.Spent))
		return
	}

	suffix := ""
	switch c.Status {
	case analysis.StatusExceeded:
		suffix = " - exceeded"
	case analysis.StatusWarning:
		suffix = " - warning"
	}

	p.line("%s: %s of %s spent, %s remaining (%s)%s",
		c.Category, Money(c.Spent), Money(c.Ceiling), Money(c.Remaining), Percent(c.Percentage.Decimal), suffix)
}

// Finances renders a finance analysis.
func Finances(w io.Writer, a analysis.FinanceAnalysis) error {
	p := &printer{w: w}

	p.blank()
	p.line("--- Financial Summary ---")
	p.line("Total Income: %s", Money(a.TotalIncome))
	p.line("Total Expenses: %s", Money(a.TotalExpenses))
	p.line("Net Income: %s", Money(a.Net))

	if a.Budget != nil {
		p.line("Monthly Budget: %s", Money(a.Budget.Budget))
		if a.Budget.Remaining.IsNegative() {
			p.line("Budget Exceeded by: %s", Money(a.Budget.Remaining.Abs()))
		} else {
			p.line("Remaining Budget: %s", Money(a.Budget.Remaining))
		}
		p.line("Percentage of Budget Used: %s", Percent(a.Budget.Percentage))
	}

	p.blank()
	p.line("--- Financial Insights ---")
	switch a.Sentiment {
	case analysis.SentimentPositive:
		p.line("You have a positive net income. Good job!")
	case analysis.SentimentNegative:
		p.line("You have a negative net income. Consider reducing expenses or increasing income.")
	default:
		p.line("Your income equals your expenses. Consider saving more.")
	}

	if a.Budget != nil && a.Budget.Status == analysis.StatusExceeded {
		p.line("You've exceeded your budget. Consider reducing expenses.")
	}

	shares(p, "Income by Category", a.IncomeByCategory)
	shares(p, "Expenses by Category", a.ExpensesByCategory)

	return p.err
}

func shares(p *printer, title string, s []analysis.Share) {
	if len(s) == 0 {
		return
	}

	p.blank()
	p.line("--- %s ---", title)
	for _, share := range s {
		p.line("%s: %s (%s)", share.Key, Money(share.Amount), Percent(share.Percentage))
	}
}
