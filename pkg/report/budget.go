package report

import (
	"io"

	"github.com/pocketledger/backend/pkg/models"
)

// Budget renders the budget with its category ceilings in alphabetical
// order. budget may be nil.
func Budget(w io.Writer, budget *models.Budget) error {
	p := &printer{w: w}

	if budget == nil {
		p.line("No budget has been set.")
		return p.err
	}

	p.blank()
	p.line("Current monthly budget: %s", Money(budget.Amount))

	if len(budget.Categories) == 0 {
		return p.err
	}

	p.blank()
	p.line("Category Budgets:")
	for _, name := range budget.CategoryNames() {
		p.line("%s: %s", name, Money(budget.Categories[name]))
	}
	p.line("Unallocated: %s", Money(budget.Unallocated()))

	return p.err
}
