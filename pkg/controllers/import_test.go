package controllers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path"

	"github.com/pocketledger/backend/pkg/controllers"
	"github.com/pocketledger/backend/test"
)

func (suite *TestSuiteStandard) loadTestFile(filePath string) (*bytes.Buffer, map[string]string) {
	path := path.Join("../../testdata/importer", filePath)
	body := new(bytes.Buffer)

	mw := multipart.NewWriter(body)

	file, err := os.Open(path)
	if err != nil {
		suite.Assert().Fail(err.Error())
	}
	defer file.Close()

	w, err := mw.CreateFormFile("file", filePath)
	if err != nil {
		suite.Assert().Fail(err.Error())
	}

	if _, err := io.Copy(w, file); err != nil {
		suite.Assert().Fail(err.Error())
	}

	mw.Close()

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}

func (suite *TestSuiteStandard) upload(path, file string) httptest.ResponseRecorder {
	body, headers := suite.loadTestFile(file)
	return test.Request(suite.T(), suite.controller, http.MethodPost, test.BaseURL+path, body, headers)
}

func (suite *TestSuiteStandard) TestImportOptions() {
	for _, path := range []string{"/v1/import", "/v1/import/preview"} {
		r := suite.request(http.MethodOptions, path, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, POST", r.Header().Get("allow"))
	}
}

func (suite *TestSuiteStandard) TestImportPreview() {
	suite.createExpense("2024-03-01", "45.2", "food", "Groceries")

	r := suite.upload("/v1/import/preview", "entries.csv")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var p controllers.ImportPreviewResponse
	test.DecodeResponse(suite.T(), &r, &p)
	suite.Require().Len(p.Data, 3)
	suite.Assert().True(p.Data[0].Duplicate, "Existing expense is not detected as duplicate")
	suite.Assert().False(p.Data[1].Duplicate)

	suite.Assert().Len(suite.listEntries("/v1/expenses"), 1, "Preview must not import anything")
}

func (suite *TestSuiteStandard) TestImport() {
	r := suite.upload("/v1/import", "entries.csv")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var i controllers.ImportResponse
	test.DecodeResponse(suite.T(), &r, &i)
	suite.Assert().Equal(controllers.ImportResult{Expenses: 2, Incomes: 1, Skipped: 0}, i.Data)

	expenses := suite.listEntries("/v1/expenses")
	suite.Require().Len(expenses, 2)
	suite.Assert().Equal("Train, return ticket", expenses[1].Description)
	suite.Assert().Len(suite.listEntries("/v1/incomes"), 1)

	// Importing again without skipping duplicates adds everything again
	r = suite.upload("/v1/import", "entries.csv")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	suite.Assert().Len(suite.listEntries("/v1/expenses"), 4)

	r = suite.upload("/v1/import?skipDuplicates=true", "entries.csv")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	test.DecodeResponse(suite.T(), &r, &i)
	suite.Assert().Equal(controllers.ImportResult{Expenses: 0, Incomes: 0, Skipped: 3}, i.Data)
	suite.Assert().Len(suite.listEntries("/v1/expenses"), 4)
}

func (suite *TestSuiteStandard) TestImportFails() {
	tests := []struct {
		file string
		err  string
	}{
		{"error-both-amounts.csv", "error in line 3 of the CSV: both outflow and inflow are set for the entry"},
		{"error-amount.csv", "error in line 2 of the CSV: Please enter a valid number"},
		{"error-columns.csv", "the file is not a valid CSV file"},
	}

	for _, tt := range tests {
		suite.Run(tt.file, func() {
			r := suite.upload("/v1/import", tt.file)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
			suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), tt.err)
		})
	}

	suite.Assert().Len(suite.listEntries("/v1/expenses"), 0, "Invalid files must not import anything")
}

func (suite *TestSuiteStandard) TestImportWrongFile() {
	body, headers := suite.loadTestFile("entries.csv")
	headers["Content-Type"] = "application/json"

	r := test.Request(suite.T(), suite.controller, http.MethodPost, test.BaseURL+"/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Equal("you must send a file to this endpoint", test.DecodeError(suite.T(), r.Body.Bytes()))

	r = suite.request(http.MethodPost, "/v1/import", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
