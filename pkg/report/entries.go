package report

import (
	"io"
	"strings"

	"github.com/pocketledger/backend/pkg/analysis"
	"github.com/pocketledger/backend/pkg/models"
)

// Header is the column header of entry tables.
const Header = "Index | Date       | Category    | Description                | Amount"

var rule = strings.Repeat("-", 75)

// Entries renders flows as a table, numbered from 0 in collection order,
// followed by the total.
//
// Columns are padded to a minimum width. Longer values widen their row
// instead of being cut.
func Entries[F models.Flow](w io.Writer, title, empty, totalLabel string, flows []F) error {
	p := &printer{w: w}

	if len(flows) == 0 {
		p.line("%s", empty)
		return p.err
	}

	p.blank()
	p.line("--- %s ---", title)
	p.line("%s", Header)
	p.line("%s", rule)

	for i, f := range flows {
		e := f.Fields()
		p.line("%-6d| %s | %-10s  | %-25s  | %s", i, e.Date, e.Category, e.Description, Money(e.Amount))
	}

	p.line("%s", rule)
	p.line("%s: %s", totalLabel, Money(analysis.Total(flows)))

	return p.err
}

// Expenses renders the expense table.
func Expenses(w io.Writer, expenses []models.Expense) error {
	return Entries(w, "Expenses Summary", "No expenses recorded yet.", "Total Expenses", expenses)
}

// Incomes renders the income table.
func Incomes(w io.Writer, incomes []models.Income) error {
	return Entries(w, "Income Summary", "No incomes recorded yet.", "Total Income", incomes)
}
