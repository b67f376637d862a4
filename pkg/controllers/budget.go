package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/storage"
	"github.com/pocketledger/backend/pkg/validation"
)

// RegisterBudgetRoutes registers the routes for the budget with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsBudget)
		r.GET("", co.GetBudget)
		r.PUT("", co.SetBudget)
		r.DELETE("", co.DeleteBudget)
	}

	// Category ceilings
	{
		r.OPTIONS("/categories/:category", co.OptionsCategoryBudget)
		r.PUT("/categories/:category", co.SetCategoryBudget)
	}
}

// OptionsBudget returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budget
//	@Success		204
//	@Router			/v1/budget [options]
func (co Controller) OptionsBudget(c *gin.Context) {
	httputil.OptionsGetPutDelete(c)
}

// OptionsCategoryBudget returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budget
//	@Success		204
//	@Param			category	path	string	true	"Name of the category"
//	@Router			/v1/budget/categories/{category} [options]
func (co Controller) OptionsCategoryBudget(c *gin.Context) {
	httputil.OptionsPut(c)
}

// GetBudget returns the budget
//
//	@Summary		Get budget
//	@Description	Returns the budget with all category ceilings
//	@Tags			Budget
//	@Produce		json
//	@Success		200	{object}	BudgetResponse
//	@Failure		404	{object}	httputil.HTTPError
//	@Router			/v1/budget [get]
func (co Controller) GetBudget(c *gin.Context) {
	b := co.Ledger.Budget()
	if b == nil {
		handleError(c, storage.ErrNoBudget)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(*b)})
}

// SetBudget sets the budget
//
//	@Summary		Set budget
//	@Description	Replaces the budget including all category ceilings
//	@Tags			Budget
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BudgetResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Router			/v1/budget [put]
func (co Controller) SetBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		handleError(c, err)
		return
	}

	amount, err := validation.ValidateBudgetAmount(string(editable.Amount))
	if err != nil {
		handleError(c, err)
		return
	}

	b := models.NewBudget(amount)
	for category, raw := range editable.Categories {
		ceiling, err := validation.ValidateAmount(string(raw))
		if err != nil {
			handleError(c, err)
			return
		}

		if err := b.SetCategoryBudget(category, ceiling); err != nil {
			handleError(c, err)
			return
		}
	}

	if err := co.Ledger.SetBudget(b); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(b)})
}

// DeleteBudget removes the budget
//
//	@Summary		Delete budget
//	@Description	Removes the budget and all category ceilings
//	@Tags			Budget
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/budget [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	if err := co.Ledger.RemoveBudget(); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetCategoryBudget sets the ceiling for one category
//
//	@Summary		Set category ceiling
//	@Description	Sets the ceiling for a category on the existing budget
//	@Tags			Budget
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	BudgetResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			category	path		string					true	"Name of the category"
//	@Param			ceiling		body		CategoryBudgetEditable	true	"Ceiling"
//	@Router			/v1/budget/categories/{category} [put]
func (co Controller) SetCategoryBudget(c *gin.Context) {
	var editable CategoryBudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		handleError(c, err)
		return
	}

	ceiling, err := validation.ValidateAmount(string(editable.Amount))
	if err != nil {
		handleError(c, err)
		return
	}

	b, err := co.Ledger.SetCategoryBudget(c.Param("category"), ceiling)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(b)})
}
