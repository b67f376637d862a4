// Package controllers implements the HTTP API on top of a ledger.
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/importer"
	"github.com/pocketledger/backend/pkg/ledger"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/storage"
	"github.com/pocketledger/backend/pkg/validation"
)

// Controller holds the ledger all handlers operate on.
type Controller struct {
	Ledger *ledger.Ledger
}

// status returns the HTTP status for an error.
func status(err error) int {
	switch {
	case errors.Is(err, validation.ErrIndexOutOfRange), errors.Is(err, storage.ErrNoBudget):
		return http.StatusNotFound
	case validation.IsValidationError(err),
		errors.Is(err, models.ErrNegativeCeiling),
		errors.Is(err, httputil.ErrInvalidBody),
		errors.Is(err, httputil.ErrRequestBodyEmpty),
		errors.Is(err, errNoFilePost),
		errors.Is(err, errWrongFileSuffix),
		errors.Is(err, importer.ErrFormat),
		errors.Is(err, importer.ErrNoDate),
		errors.Is(err, importer.ErrNoAmount),
		errors.Is(err, importer.ErrBothAmounts),
		errors.As(err, new(*json.UnmarshalTypeError)):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleError responds with the status for err.
func handleError(c *gin.Context, err error) {
	httputil.ErrorHandler(c, status(err), err)
}
