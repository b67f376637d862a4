package httputil

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"Amount must be a positive number"`
}

// NewError responds with status and the error message in the body.
func NewError(c *gin.Context, status int, err error) {
	c.JSON(status, HTTPError{
		Error: err.Error(),
	})
}

// ErrorHandler responds with the error and status.
//
// Server errors are logged with the request ID. Their message is replaced
// since it is of no use to the client.
func ErrorHandler(c *gin.Context, status int, err error) {
	if status < http.StatusInternalServerError {
		NewError(c, status, err)
		return
	}

	requestID := requestid.Get(c)
	log.Error().Str("request-id", requestID).Msgf("%T: %v", err, err.Error())
	NewError(c, status, fmt.Errorf("an error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestID))
}
