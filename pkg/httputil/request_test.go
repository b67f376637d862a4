package httputil_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func bind(t *testing.T, body string) (bindTarget, error) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var target bindTarget
	err := httputil.BindData(c, &target)
	return target, err
}

func TestBindData(t *testing.T) {
	target, err := bind(t, `{"name": "food", "count": 2}`)
	assert.NoError(t, err)
	assert.Equal(t, bindTarget{Name: "food", Count: 2}, target)
}

func TestBindDataEmptyBody(t *testing.T) {
	_, err := bind(t, "")
	assert.ErrorIs(t, err, httputil.ErrRequestBodyEmpty)
}

func TestBindDataInvalidBody(t *testing.T) {
	_, err := bind(t, `{"name": `)
	assert.ErrorIs(t, err, httputil.ErrInvalidBody)
}

func TestBindDataTypeError(t *testing.T) {
	_, err := bind(t, `{"count": "two"}`)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, httputil.ErrInvalidBody)
}

func TestBaseURL(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(string(httputil.ContextURL), "https://example.com/api")

	assert.Equal(t, "https://example.com/api", httputil.BaseURL(c))
}
