package controllers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/analysis"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/report"
)

// RegisterReportRoutes registers the routes for plain text reports with
// the RouterGroup that is passed.
func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	for path, handler := range map[string]gin.HandlerFunc{
		"/expenses":         co.GetExpenseReport,
		"/incomes":          co.GetIncomeReport,
		"/budget":           co.GetBudgetReport,
		"/expense-analysis": co.GetExpenseAnalysisReport,
		"/finances":         co.GetFinanceReport,
	} {
		r.OPTIONS(path, co.OptionsReport)
		r.GET(path, handler)
	}
}

// OptionsReport returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Reports
//	@Success		204
//	@Router			/v1/reports/{report} [options]
func (co Controller) OptionsReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// text renders a report into the response.
func text(c *gin.Context, render func(w io.Writer) error) {
	var b bytes.Buffer
	if err := render(&b); err != nil {
		handleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", b.Bytes())
}

// GetExpenseReport renders the expense table
//
//	@Summary		Expense report
//	@Tags			Reports
//	@Produce		plain
//	@Success		200	{string}	string
//	@Router			/v1/reports/expenses [get]
func (co Controller) GetExpenseReport(c *gin.Context) {
	text(c, func(w io.Writer) error {
		return report.Expenses(w, co.Ledger.Expenses())
	})
}

// GetIncomeReport renders the income table
//
//	@Summary		Income report
//	@Tags			Reports
//	@Produce		plain
//	@Success		200	{string}	string
//	@Router			/v1/reports/incomes [get]
func (co Controller) GetIncomeReport(c *gin.Context) {
	text(c, func(w io.Writer) error {
		return report.Incomes(w, co.Ledger.Incomes())
	})
}

// GetBudgetReport renders the budget
//
//	@Summary		Budget report
//	@Tags			Reports
//	@Produce		plain
//	@Success		200	{string}	string
//	@Router			/v1/reports/budget [get]
func (co Controller) GetBudgetReport(c *gin.Context) {
	text(c, func(w io.Writer) error {
		return report.Budget(w, co.Ledger.Budget())
	})
}

// GetExpenseAnalysisReport renders the expense analysis
//
//	@Summary		Expense analysis report
//	@Tags			Reports
//	@Produce		plain
//	@Success		200	{string}	string
//	@Router			/v1/reports/expense-analysis [get]
func (co Controller) GetExpenseAnalysisReport(c *gin.Context) {
	text(c, func(w io.Writer) error {
		a, err := co.Ledger.AnalyzeExpenses()
		if errors.Is(err, analysis.ErrNothingToAnalyze) {
			return report.NothingToAnalyze(w, report.SubjectExpenses)
		} else if err != nil {
			return err
		}

		return report.ExpenseAnalysis(w, a)
	})
}

// GetFinanceReport renders the finance analysis
//
//	@Summary		Finance report
//	@Tags			Reports
//	@Produce		plain
//	@Success		200	{string}	string
//	@Router			/v1/reports/finances [get]
func (co Controller) GetFinanceReport(c *gin.Context) {
	text(c, func(w io.Writer) error {
		a, err := co.Ledger.AnalyzeFinances()
		if errors.Is(err, analysis.ErrNothingToAnalyze) {
			return report.NothingToAnalyze(w, report.SubjectFinancial)
		} else if err != nil {
			return err
		}

		return report.Finances(w, a)
	})
}
