package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/importer"
)

type ImportQuery struct {
	SkipDuplicates bool `form:"skipDuplicates"` // Do not import rows equal to an existing entry
}

type ImportPreviewResponse struct {
	Data []importer.Row `json:"data"` // The parsed rows
}

type ImportResult struct {
	Expenses int `json:"expenses" example:"12"` // Number of imported expenses
	Incomes  int `json:"incomes" example:"1"`   // Number of imported incomes
	Skipped  int `json:"skipped" example:"2"`   // Number of duplicates that have not been imported
}

type ImportResponse struct {
	Data ImportResult `json:"data"`
}

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func (co Controller) RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsImport)
	r.POST("", co.Import)
	r.OPTIONS("/preview", co.OptionsImport)
	r.POST("/preview", co.ImportPreview)
}

// OptionsImport returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Import
//	@Success		204
//	@Router			/v1/import [options]
//	@Router			/v1/import/preview [options]
func (co Controller) OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	return formFile.Open()
}

// parseUpload parses the uploaded CSV and marks rows that already exist.
func (co Controller) parseUpload(c *gin.Context) ([]importer.Row, error) {
	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := importer.Parse(f)
	if err != nil {
		return nil, err
	}

	importer.MarkDuplicates(rows, co.Ledger.Expenses(), co.Ledger.Incomes())
	return rows, nil
}

// ImportPreview parses a CSV file without importing it
//
//	@Summary		Preview import
//	@Description	Parses a CSV file with the columns Date,Category,Description,Outflow,Inflow and returns the rows.
//	@Description	Rows equal to an existing entry are marked as duplicates.
//	@Tags			Import
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		200		{object}	ImportPreviewResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Param			file	formData	file	true	"File to import"
//	@Router			/v1/import/preview [post]
func (co Controller) ImportPreview(c *gin.Context) {
	rows, err := co.parseUpload(c)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ImportPreviewResponse{Data: rows})
}

// Import imports a CSV file
//
//	@Summary		Import
//	@Description	Appends all rows of a CSV file with the columns Date,Category,Description,Outflow,Inflow.
//	@Description	Outflows are imported as expenses, inflows as incomes. Nothing is imported if any row is invalid.
//	@Tags			Import
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		201				{object}	ImportResponse
//	@Failure		400				{object}	httputil.HTTPError
//	@Failure		500				{object}	httputil.HTTPError
//	@Param			file			formData	file	true	"File to import"
//	@Param			skipDuplicates	query		bool	false	"Skip rows equal to an existing entry"
//	@Router			/v1/import [post]
func (co Controller) Import(c *gin.Context) {
	var query ImportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.ErrorHandler(c, http.StatusBadRequest, err)
		return
	}

	rows, err := co.parseUpload(c)
	if err != nil {
		handleError(c, err)
		return
	}

	expenses, incomes := importer.Split(rows, query.SkipDuplicates)
	if err := co.Ledger.Append(expenses, incomes); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{Data: ImportResult{
		Expenses: len(expenses),
		Incomes:  len(incomes),
		Skipped:  len(rows) - len(expenses) - len(incomes),
	}})
}
