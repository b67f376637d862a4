package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/validation"
	"github.com/ryanuber/go-glob"
)

// collection gives uniform access to the expenses or incomes of the ledger.
type collection struct {
	list   func() []models.Entry
	add    func(date, amount, category, description string) (int, models.Entry, error)
	delete func(index int) (models.Entry, error)
}

func fields[F models.Flow](flows []F) []models.Entry {
	entries := make([]models.Entry, 0, len(flows))
	for _, f := range flows {
		entries = append(entries, f.Fields())
	}
	return entries
}

func (co Controller) expenses() collection {
	return collection{
		list: func() []models.Entry {
			return fields(co.Ledger.Expenses())
		},
		add: func(date, amount, category, description string) (int, models.Entry, error) {
			i, e, err := co.Ledger.AddExpense(date, amount, category, description)
			return i, e.Entry, err
		},
		delete: func(index int) (models.Entry, error) {
			e, err := co.Ledger.DeleteExpense(index)
			return e.Entry, err
		},
	}
}

func (co Controller) incomes() collection {
	return collection{
		list: func() []models.Entry {
			return fields(co.Ledger.Incomes())
		},
		add: func(date, amount, category, description string) (int, models.Entry, error) {
			i, e, err := co.Ledger.AddIncome(date, amount, category, description)
			return i, e.Entry, err
		},
		delete: func(index int) (models.Entry, error) {
			e, err := co.Ledger.DeleteIncome(index)
			return e.Entry, err
		},
	}
}

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsEntryList)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpense)
	}

	// Expense at index
	{
		r.OPTIONS("/:index", co.OptionsEntryDetail)
		r.DELETE("/:index", co.DeleteExpense)
	}
}

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func (co Controller) RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsEntryList)
		r.GET("", co.GetIncomes)
		r.POST("", co.CreateIncome)
	}

	// Income at index
	{
		r.OPTIONS("/:index", co.OptionsEntryDetail)
		r.DELETE("/:index", co.DeleteIncome)
	}
}

// OptionsEntryList returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses, Incomes
//	@Success		204
//	@Router			/v1/expenses [options]
//	@Router			/v1/incomes [options]
func (co Controller) OptionsEntryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsEntryDetail returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses, Incomes
//	@Success		204
//	@Param			index	path	int	true	"Index of the entry"
//	@Router			/v1/expenses/{index} [options]
//	@Router			/v1/incomes/{index} [options]
func (co Controller) OptionsEntryDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// GetExpenses returns all expenses
//
//	@Summary		Get expenses
//	@Description	Returns all expenses in the order they were added
//	@Tags			Expenses
//	@Produce		json
//	@Success		200			{object}	EntryListResponse
//	@Param			category	query		string	false	"Glob pattern for the category"
//	@Router			/v1/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	getEntries(c, co.expenses())
}

// GetIncomes returns all incomes
//
//	@Summary		Get incomes
//	@Description	Returns all incomes in the order they were added
//	@Tags			Incomes
//	@Produce		json
//	@Success		200			{object}	EntryListResponse
//	@Param			category	query		string	false	"Glob pattern for the category"
//	@Router			/v1/incomes [get]
func (co Controller) GetIncomes(c *gin.Context) {
	getEntries(c, co.incomes())
}

func getEntries(c *gin.Context, col collection) {
	var filter EntryQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.ShouldBindQuery(&filter)

	data := make([]Entry, 0)
	for i, e := range col.list() {
		// Indices are kept when filtering so that they can be used for deletion
		if filter.Category != "" && !glob.Glob(filter.Category, e.Category) {
			continue
		}
		data = append(data, Entry{Index: i, Entry: e})
	}

	c.JSON(http.StatusOK, EntryListResponse{Data: data})
}

// CreateExpense adds an expense
//
//	@Summary		Create expense
//	@Description	Validates the expense and appends it to the expenses
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	EntryResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			expense	body		EntryEditable	true	"Expense"
//	@Router			/v1/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	createEntry(c, co.expenses())
}

// CreateIncome adds an income
//
//	@Summary		Create income
//	@Description	Validates the income and appends it to the incomes
//	@Tags			Incomes
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	EntryResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			income	body		EntryEditable	true	"Income"
//	@Router			/v1/incomes [post]
func (co Controller) CreateIncome(c *gin.Context) {
	createEntry(c, co.incomes())
}

func createEntry(c *gin.Context, col collection) {
	var editable EntryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		handleError(c, err)
		return
	}

	index, e, err := col.add(editable.Date, string(editable.Amount), editable.Category, editable.Description)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, EntryResponse{Data: Entry{Index: index, Entry: e}})
}

// DeleteExpense deletes an expense
//
//	@Summary		Delete expense
//	@Description	Deletes the expense at the index. All following expenses move down by one
//	@Tags			Expenses
//	@Success		204
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			index	path		int	true	"Index of the expense"
//	@Router			/v1/expenses/{index} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	deleteEntry(c, co.expenses())
}

// DeleteIncome deletes an income
//
//	@Summary		Delete income
//	@Description	Deletes the income at the index. All following incomes move down by one
//	@Tags			Incomes
//	@Success		204
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			index	path		int	true	"Index of the income"
//	@Router			/v1/incomes/{index} [delete]
func (co Controller) DeleteIncome(c *gin.Context) {
	deleteEntry(c, co.incomes())
}

func deleteEntry(c *gin.Context, col collection) {
	// The range is checked again by the ledger, the collection may have
	// changed in between
	index, err := validation.ValidateIndex(c.Param("index"), len(col.list()))
	if err != nil {
		handleError(c, err)
		return
	}

	if _, err := col.delete(index); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
