package controllers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/controllers"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createExpense(date, amount, category, description string) controllers.Entry {
	r := suite.request(http.MethodPost, "/v1/expenses", map[string]any{
		"date":        date,
		"amount":      amount,
		"category":    category,
		"description": description,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var e controllers.EntryResponse
	test.DecodeResponse(suite.T(), &r, &e)
	return e.Data
}

func (suite *TestSuiteStandard) listEntries(path string) []controllers.Entry {
	r := suite.request(http.MethodGet, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var l controllers.EntryListResponse
	test.DecodeResponse(suite.T(), &r, &l)
	return l.Data
}

func (suite *TestSuiteStandard) TestEntriesOptions() {
	for _, path := range []string{"/v1/expenses", "/v1/incomes"} {
		r := suite.request(http.MethodOptions, path, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

		r = suite.request(http.MethodOptions, path+"/0", nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, DELETE", r.Header().Get("allow"))
	}
}

func (suite *TestSuiteStandard) TestExpensesEmpty() {
	data := suite.listEntries("/v1/expenses")
	suite.Assert().NotNil(data)
	suite.Assert().Len(data, 0)
}

func (suite *TestSuiteStandard) TestExpensesCreate() {
	e := suite.createExpense("2024-03-20", "25.50", "  food ", "Weekly groceries")

	suite.Assert().Equal(0, e.Index)
	suite.Assert().Equal(types.NewDate(2024, 3, 20), e.Date)
	suite.Assert().True(decimal.NewFromFloat(25.5).Equal(e.Amount))
	suite.Assert().Equal("food", e.Category, "Category is not trimmed")
	suite.Assert().Equal("Weekly groceries", e.Description)

	e = suite.createExpense("", "3", "transport", "Bus")
	suite.Assert().Equal(1, e.Index)
	suite.Assert().Equal(test.Today(), e.Date, "Empty date is not replaced with today")

	data := suite.listEntries("/v1/expenses")
	suite.Require().Len(data, 2)
	suite.Assert().Equal("Weekly groceries", data[0].Description)
	suite.Assert().Equal("Bus", data[1].Description)
}

func (suite *TestSuiteStandard) TestExpensesCreateNumericAmount() {
	r := suite.request(http.MethodPost, "/v1/expenses", `{"amount": 12.75, "category": "food", "description": "Lunch"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var e controllers.EntryResponse
	test.DecodeResponse(suite.T(), &r, &e)
	suite.Assert().True(decimal.RequireFromString("12.75").Equal(e.Data.Amount))
}

func (suite *TestSuiteStandard) TestExpensesCreateFails() {
	tests := []struct {
		name string
		body any
		err  string
	}{
		{"Amount not a number", map[string]string{"amount": "abc", "category": "food", "description": "x"}, "Please enter a valid number"},
		{"Amount zero", map[string]string{"amount": "0", "category": "food", "description": "x"}, "Amount must be greater than 0"},
		{"Amount negative", map[string]any{"amount": -5, "category": "food", "description": "x"}, "Amount must be greater than 0"},
		{"Amount missing", map[string]string{"category": "food", "description": "x"}, "Please enter a valid number"},
		{"Invalid date", map[string]string{"date": "20-03-2024", "amount": "5", "category": "food", "description": "x"}, "Invalid date format. Please use YYYY-MM-DD format."},
		{"Impossible date", map[string]string{"date": "2024-02-30", "amount": "5", "category": "food", "description": "x"}, "Invalid date format. Please use YYYY-MM-DD format."},
		{"Empty category", map[string]string{"amount": "5", "category": "   ", "description": "x"}, "Category cannot be empty"},
		{"Empty description", map[string]string{"amount": "5", "category": "food", "description": ""}, "Description cannot be empty"},
		{"Description too long", map[string]string{"amount": "5", "category": "food", "description": strings.Repeat("a", 101)}, "Description must be less than 100 characters"},
		{"Empty body", "", "the request body must not be empty"},
		{"Broken JSON", `{"amount": "5"`, "the body of your request contains invalid or un-parseable data. Please check and try again"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodPost, test.BaseURL+"/v1/expenses", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}

	suite.Assert().Len(suite.listEntries("/v1/expenses"), 0, "Invalid expenses have been stored")
}

func (suite *TestSuiteStandard) TestExpensesCreateWrongType() {
	r := suite.request(http.MethodPost, "/v1/expenses", `{"amount": true, "category": "food", "description": "x"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestExpensesFilter() {
	suite.createExpense("2024-03-01", "10", "food", "Bread")
	suite.createExpense("2024-03-01", "20", "transport", "Train")
	suite.createExpense("2024-03-02", "30", "fun", "Cinema")

	data := suite.listEntries("/v1/expenses?category=f*")
	suite.Require().Len(data, 2)
	suite.Assert().Equal(0, data[0].Index)
	suite.Assert().Equal(2, data[1].Index, "Filtered entries must keep their index")

	data = suite.listEntries("/v1/expenses?category=transport")
	suite.Require().Len(data, 1)
	suite.Assert().Equal(1, data[0].Index)

	suite.Assert().Len(suite.listEntries("/v1/expenses?category=rent"), 0)
}

func (suite *TestSuiteStandard) TestExpensesDelete() {
	suite.createExpense("2024-03-01", "10", "food", "Bread")
	suite.createExpense("2024-03-01", "20", "transport", "Train")
	suite.createExpense("2024-03-02", "30", "fun", "Cinema")

	r := suite.request(http.MethodDelete, "/v1/expenses/1", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	data := suite.listEntries("/v1/expenses")
	suite.Require().Len(data, 2)
	suite.Assert().Equal("Bread", data[0].Description)
	suite.Assert().Equal(1, data[1].Index)
	suite.Assert().Equal("Cinema", data[1].Description, "Following expenses did not move down")
}

func (suite *TestSuiteStandard) TestExpensesDeleteFails() {
	suite.createExpense("2024-03-01", "10", "food", "Bread")

	tests := []struct {
		index  string
		status int
		err    string
	}{
		{"1", http.StatusNotFound, "Index out of range"},
		{"-1", http.StatusNotFound, "Index out of range"},
		{"abc", http.StatusBadRequest, "Please enter a valid number"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.index, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodDelete, test.BaseURL+"/v1/expenses/"+tt.index, nil)
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}

	suite.Assert().Len(suite.listEntries("/v1/expenses"), 1)
}

func (suite *TestSuiteStandard) TestIncomes() {
	r := suite.request(http.MethodPost, "/v1/incomes", controllers.EntryEditable{
		Date:        "2024-03-01",
		Amount:      "1500",
		Category:    "salary",
		Description: "March salary",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = suite.request(http.MethodPost, "/v1/incomes", controllers.EntryEditable{
		Amount:      "200",
		Category:    "freelance",
		Description: "Logo design",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	suite.Assert().Len(suite.listEntries("/v1/expenses"), 0, "Incomes leak into expenses")

	data := suite.listEntries("/v1/incomes?category=free*")
	suite.Require().Len(data, 1)
	suite.Assert().Equal(1, data[0].Index)
	suite.Assert().Equal(test.Today(), data[0].Date)

	r = suite.request(http.MethodDelete, "/v1/incomes/0", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	data = suite.listEntries("/v1/incomes")
	suite.Require().Len(data, 1)
	suite.Assert().Equal("Logo design", data[0].Description)

	r = suite.request(http.MethodDelete, "/v1/incomes/1", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestEntriesStoreError() {
	suite.CloseStore()

	r := suite.request(http.MethodPost, "/v1/expenses", map[string]string{"amount": "5", "category": "food", "description": "x"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), "an error occurred on the server during your request")

	suite.Assert().Len(suite.listEntries("/v1/expenses"), 0, "Expense was added although it could not be stored")
}
