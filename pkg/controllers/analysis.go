package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/analysis"
	"github.com/pocketledger/backend/pkg/httputil"
)

// RegisterAnalysisRoutes registers the routes for analyses with
// the RouterGroup that is passed.
func (co Controller) RegisterAnalysisRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/expenses", co.OptionsAnalysis)
	r.GET("/expenses", co.GetExpenseAnalysis)
	r.OPTIONS("/finances", co.OptionsAnalysis)
	r.GET("/finances", co.GetFinanceAnalysis)
}

// OptionsAnalysis returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Analysis
//	@Success		204
//	@Router			/v1/analysis/expenses [options]
//	@Router			/v1/analysis/finances [options]
func (co Controller) OptionsAnalysis(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetExpenseAnalysis analyzes the expenses
//
//	@Summary		Analyze expenses
//	@Description	Returns totals, groupings and the comparison against the budget
//	@Tags			Analysis
//	@Produce		json
//	@Success		200	{object}	ExpenseAnalysisResponse
//	@Router			/v1/analysis/expenses [get]
func (co Controller) GetExpenseAnalysis(c *gin.Context) {
	a, err := co.Ledger.AnalyzeExpenses()
	if errors.Is(err, analysis.ErrNothingToAnalyze) {
		c.JSON(http.StatusOK, ExpenseAnalysisResponse{Empty: true})
		return
	} else if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseAnalysisResponse{Data: &a})
}

// GetFinanceAnalysis compares incomes and expenses
//
//	@Summary		Analyze finances
//	@Description	Returns income and expense totals, the net income and the shares per category
//	@Tags			Analysis
//	@Produce		json
//	@Success		200	{object}	FinanceAnalysisResponse
//	@Router			/v1/analysis/finances [get]
func (co Controller) GetFinanceAnalysis(c *gin.Context) {
	a, err := co.Ledger.AnalyzeFinances()
	if errors.Is(err, analysis.ErrNothingToAnalyze) {
		c.JSON(http.StatusOK, FinanceAnalysisResponse{Empty: true})
		return
	} else if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, FinanceAnalysisResponse{Data: &a})
}
