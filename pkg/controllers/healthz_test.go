package controllers_test

import (
	"net/http"

	"github.com/pocketledger/backend/test"
)

func (suite *TestSuiteStandard) TestHealthz() {
	r := suite.request(http.MethodOptions, "/healthz", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))

	r = suite.request(http.MethodGet, "/healthz", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestHealthzFail() {
	suite.CloseStore()

	r := suite.request(http.MethodGet, "/healthz", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
