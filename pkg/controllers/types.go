package controllers

import (
	"bytes"
	"encoding/json"

	"github.com/pocketledger/backend/pkg/analysis"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// RawAmount is an amount as sent by the client. It accepts JSON numbers and
// strings and keeps the literal text, validation happens in the ledger.
type RawAmount string

func (a *RawAmount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = RawAmount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = RawAmount(n.String())
	return nil
}

// Entry is an expense or income with its current position.
type Entry struct {
	Index int `json:"index" example:"0"` // Position in the collection. Changes when entries before it are deleted
	models.Entry
}

// EntryEditable holds the fields to create an expense or income from.
type EntryEditable struct {
	Date        string    `json:"date" example:"2025-02-08"`                   // YYYY-MM-DD. Empty for today
	Amount      RawAmount `json:"amount" swaggertype:"string" example:"12.50"` // Must be greater than 0
	Category    string    `json:"category" example:"food"`
	Description string    `json:"description" example:"Groceries"` // At most 100 characters
}

type EntryQueryFilter struct {
	Category string `form:"category" example:"f*"` // Glob pattern matched against the category
}

type EntryListResponse struct {
	Data []Entry `json:"data"` // List of entries
}

type EntryResponse struct {
	Data Entry `json:"data"` // Data for the entry
}

// BudgetEditable holds the fields to set the budget from.
type BudgetEditable struct {
	Amount     RawAmount            `json:"amount" swaggertype:"string" example:"2000"` // Must be greater than 0
	Categories map[string]RawAmount `json:"categories"`                                 // Ceilings per category
}

type CategoryBudgetEditable struct {
	Amount RawAmount `json:"amount" swaggertype:"string" example:"400"`
}

// Budget is the budget with the part not allocated to any category.
type Budget struct {
	models.Budget
	Unallocated decimal.Decimal `json:"unallocated" example:"600"` // Budget amount minus all category ceilings. Negative when over-allocated
}

func newBudget(b models.Budget) Budget {
	return Budget{
		Budget:      b,
		Unallocated: b.Unallocated(),
	}
}

type BudgetResponse struct {
	Data Budget `json:"data"` // Data for the budget
}

type ExpenseAnalysisResponse struct {
	Data  *analysis.ExpenseAnalysis `json:"data"`  // The analysis. null when there are no expenses
	Empty bool                      `json:"empty"` // true when there is nothing to analyze
}

type FinanceAnalysisResponse struct {
	Data  *analysis.FinanceAnalysis `json:"data"`  // The analysis. null when there are neither incomes nor expenses
	Empty bool                      `json:"empty"` // true when there is nothing to analyze
}
