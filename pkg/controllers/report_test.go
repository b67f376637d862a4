package controllers_test

import (
	"net/http"
	"strings"

	"github.com/pocketledger/backend/pkg/report"
	"github.com/pocketledger/backend/test"
)

func (suite *TestSuiteStandard) report(path string) string {
	r := suite.request(http.MethodGet, "/v1/reports"+path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Equal("text/plain; charset=utf-8", r.Header().Get("Content-Type"))

	return r.Body.String()
}

func (suite *TestSuiteStandard) TestReportsOptions() {
	for _, path := range []string{"/expenses", "/incomes", "/budget", "/expense-analysis", "/finances"} {
		r := suite.request(http.MethodOptions, "/v1/reports"+path, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"), path)
	}
}

func (suite *TestSuiteStandard) TestReportsEmpty() {
	tests := []struct {
		path     string
		expected string
	}{
		{"/expenses", "No expenses recorded yet.\n"},
		{"/incomes", "No incomes recorded yet.\n"},
		{"/budget", "No budget has been set.\n"},
		{"/expense-analysis", "No expenses to analyze.\n"},
		{"/finances", "No financial data to analyze.\n"},
	}

	for _, tt := range tests {
		suite.Run(tt.path, func() {
			suite.Assert().Equal(tt.expected, suite.report(tt.path))
		})
	}
}

func (suite *TestSuiteStandard) TestReportExpenses() {
	suite.createExpense("2024-03-01", "10", "food", "Bread")

	expected := strings.Join([]string{
		"",
		"--- Expenses Summary ---",
		report.Header,
		strings.Repeat("-", 75),
		"0     | 2024-03-01 | food        | Bread                      | $10.00",
		strings.Repeat("-", 75),
		"Total Expenses: $10.00",
		"",
	}, "\n")

	suite.Assert().Equal(expected, suite.report("/expenses"))
}

func (suite *TestSuiteStandard) TestReportBudget() {
	r := suite.request(http.MethodPut, "/v1/budget", `{"amount": "1000", "categories": {"rent": "600", "food": "250"}}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	expected := strings.Join([]string{
		"",
		"Current monthly budget: $1000.00",
		"",
		"Category Budgets:",
		"food: $250.00",
		"rent: $600.00",
		"Unallocated: $150.00",
		"",
	}, "\n")

	suite.Assert().Equal(expected, suite.report("/budget"))
}

func (suite *TestSuiteStandard) TestReportAnalyses() {
	suite.createExpense("2024-03-01", "90", "food", "Groceries")

	r := suite.request(http.MethodPut, "/v1/budget", map[string]string{"amount": "100"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	body := suite.report("/expense-analysis")
	suite.Assert().Contains(body, "Total expenses: $90.00")
	suite.Assert().Contains(body, "Budget status: $10.00 remaining")
	suite.Assert().Contains(body, "Warning: You have used more than 80% of your budget!")

	body = suite.report("/finances")
	suite.Assert().Contains(body, "Net Income: $-90.00")
	suite.Assert().Contains(body, "You have a negative net income.")
}
