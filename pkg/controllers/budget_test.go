package controllers_test

import (
	"net/http"

	"github.com/pocketledger/backend/pkg/controllers"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) getBudget() controllers.Budget {
	r := suite.request(http.MethodGet, "/v1/budget", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var b controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &b)
	return b.Data
}

func (suite *TestSuiteStandard) TestBudgetOptions() {
	r := suite.request(http.MethodOptions, "/v1/budget", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PUT, DELETE", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, "/v1/budget/categories/food", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, PUT", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestBudgetNotSet() {
	r := suite.request(http.MethodGet, "/v1/budget", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Equal("no budget has been set", test.DecodeError(suite.T(), r.Body.Bytes()))

	r = suite.request(http.MethodDelete, "/v1/budget", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodPut, "/v1/budget/categories/food", map[string]string{"amount": "100"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetSet() {
	r := suite.request(http.MethodPut, "/v1/budget", `{"amount": "2000", "categories": {"food": "400", "rent": 1000}}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var b controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &b)
	suite.Assert().True(decimal.NewFromInt(2000).Equal(b.Data.Amount))
	suite.Assert().True(decimal.NewFromInt(600).Equal(b.Data.Unallocated), b.Data.Unallocated.String())
	suite.Assert().True(decimal.NewFromInt(400).Equal(b.Data.Categories["food"]))

	budget := suite.getBudget()
	suite.Assert().Len(budget.Categories, 2)
	suite.Assert().True(decimal.NewFromInt(1000).Equal(budget.Categories["rent"]))
}

func (suite *TestSuiteStandard) TestBudgetSetReplacesCategories() {
	r := suite.request(http.MethodPut, "/v1/budget", `{"amount": "2000", "categories": {"food": "400"}}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodPut, "/v1/budget", `{"amount": "1000"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	budget := suite.getBudget()
	suite.Assert().True(decimal.NewFromInt(1000).Equal(budget.Amount))
	suite.Assert().Len(budget.Categories, 0)
}

func (suite *TestSuiteStandard) TestBudgetSetFails() {
	tests := []struct {
		name string
		body string
		err  string
	}{
		{"Amount not a number", `{"amount": "lots"}`, "Please enter a valid budget amount"},
		{"Amount zero", `{"amount": 0}`, "Budget amount must be greater than 0"},
		{"Ceiling zero", `{"amount": "100", "categories": {"food": "0"}}`, "Amount must be greater than 0"},
		{"Ceiling not a number", `{"amount": "100", "categories": {"food": "x"}}`, "Please enter a valid number"},
		{"Empty category", `{"amount": "100", "categories": {" ": "10"}}`, "Category cannot be empty"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPut, "/v1/budget", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
			suite.Assert().Equal(tt.err, test.DecodeError(suite.T(), r.Body.Bytes()))
		})
	}

	r := suite.request(http.MethodGet, "/v1/budget", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetCategory() {
	r := suite.request(http.MethodPut, "/v1/budget", map[string]string{"amount": "500"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodPut, "/v1/budget/categories/food", map[string]string{"amount": "200"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodPut, "/v1/budget/categories/food", map[string]string{"amount": "150"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var b controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &b)
	suite.Assert().True(decimal.NewFromInt(150).Equal(b.Data.Categories["food"]), "Ceiling has not been replaced")
	suite.Assert().True(decimal.NewFromInt(350).Equal(b.Data.Unallocated))

	r = suite.request(http.MethodPut, "/v1/budget/categories/fun", map[string]string{"amount": "-1"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Equal("Amount must be greater than 0", test.DecodeError(suite.T(), r.Body.Bytes()))

	suite.Assert().Len(suite.getBudget().Categories, 1)
}

func (suite *TestSuiteStandard) TestBudgetOverAllocated() {
	r := suite.request(http.MethodPut, "/v1/budget", `{"amount": "100", "categories": {"food": "80", "rent": "70"}}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.Assert().True(decimal.NewFromInt(-50).Equal(suite.getBudget().Unallocated))
}

func (suite *TestSuiteStandard) TestBudgetDelete() {
	r := suite.request(http.MethodPut, "/v1/budget", map[string]string{"amount": "500"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodDelete, "/v1/budget", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, "/v1/budget", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodDelete, "/v1/budget", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
