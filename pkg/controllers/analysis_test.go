package controllers_test

import (
	"net/http"

	"github.com/pocketledger/backend/pkg/analysis"
	"github.com/pocketledger/backend/pkg/controllers"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAnalysisOptions() {
	for _, path := range []string{"/v1/analysis/expenses", "/v1/analysis/finances"} {
		r := suite.request(http.MethodOptions, path, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
	}
}

func (suite *TestSuiteStandard) TestAnalysisEmpty() {
	r := suite.request(http.MethodGet, "/v1/analysis/expenses", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var e controllers.ExpenseAnalysisResponse
	test.DecodeResponse(suite.T(), &r, &e)
	suite.Assert().True(e.Empty)
	suite.Assert().Nil(e.Data)

	r = suite.request(http.MethodGet, "/v1/analysis/finances", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var f controllers.FinanceAnalysisResponse
	test.DecodeResponse(suite.T(), &r, &f)
	suite.Assert().True(f.Empty)
	suite.Assert().Nil(f.Data)
}

func (suite *TestSuiteStandard) TestAnalysisExpenses() {
	suite.createExpense("2024-03-01", "30", "food", "Groceries")
	suite.createExpense("2024-03-01", "20", "transport", "Train")
	suite.createExpense("2024-03-02", "40", "food", "Restaurant")

	r := suite.request(http.MethodPut, "/v1/budget", `{"amount": "100", "categories": {"food": "60"}}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodGet, "/v1/analysis/expenses", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var e controllers.ExpenseAnalysisResponse
	test.DecodeResponse(suite.T(), &r, &e)
	suite.Assert().False(e.Empty)
	suite.Require().NotNil(e.Data)

	a := e.Data
	suite.Assert().True(decimal.NewFromInt(90).Equal(a.Total))
	suite.Assert().Equal(3, a.Count)
	suite.Assert().True(decimal.NewFromInt(30).Equal(a.Average))
	suite.Assert().Equal("2024-03-01", a.HighestDate.Key)
	suite.Assert().Equal("food", a.TopCategory.Key)
	suite.Assert().True(decimal.NewFromInt(70).Equal(a.TopCategory.Amount))

	suite.Require().NotNil(a.Budget)
	suite.Assert().Equal(analysis.StatusWarning, a.Budget.Status)
	suite.Assert().True(decimal.NewFromInt(10).Equal(a.Budget.Remaining))

	suite.Require().Len(a.Categories, 2)
	suite.Assert().Equal("food", a.Categories[0].Category)
	suite.Assert().Equal(analysis.StatusExceeded, a.Categories[0].Status)
	suite.Assert().Equal("transport", a.Categories[1].Category)
	suite.Assert().Equal(analysis.StatusUnbudgeted, a.Categories[1].Status)
}

func (suite *TestSuiteStandard) TestAnalysisFinances() {
	suite.createExpense("2024-03-01", "200", "rent", "March rent")

	r := suite.request(http.MethodPost, "/v1/incomes", map[string]string{"amount": "800", "category": "salary", "description": "March"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = suite.request(http.MethodGet, "/v1/analysis/finances", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var f controllers.FinanceAnalysisResponse
	test.DecodeResponse(suite.T(), &r, &f)
	suite.Require().NotNil(f.Data)

	a := f.Data
	suite.Assert().True(decimal.NewFromInt(800).Equal(a.TotalIncome))
	suite.Assert().True(decimal.NewFromInt(200).Equal(a.TotalExpenses))
	suite.Assert().True(decimal.NewFromInt(600).Equal(a.Net))
	suite.Assert().Equal(analysis.SentimentPositive, a.Sentiment)
	suite.Assert().Nil(a.Budget)
	suite.Require().Len(a.IncomeByCategory, 1)
	suite.Assert().True(decimal.NewFromInt(100).Equal(a.IncomeByCategory[0].Percentage))
}

func (suite *TestSuiteStandard) TestAnalysisFinancesIncomesOnly() {
	r := suite.request(http.MethodPost, "/v1/incomes", map[string]string{"amount": "50", "category": "gift", "description": "Birthday"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = suite.request(http.MethodGet, "/v1/analysis/finances", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var f controllers.FinanceAnalysisResponse
	test.DecodeResponse(suite.T(), &r, &f)
	suite.Assert().False(f.Empty)

	r = suite.request(http.MethodGet, "/v1/analysis/expenses", nil)
	var e controllers.ExpenseAnalysisResponse
	test.DecodeResponse(suite.T(), &r, &e)
	suite.Assert().True(e.Empty)
}
