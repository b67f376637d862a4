package importer

import "github.com/pocketledger/backend/pkg/models"

type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Row is an entry parsed from an import file.
type Row struct {
	Line      int          `json:"line" example:"2"`                                                            // Line in the file
	Kind      Kind         `json:"kind" example:"expense"`                                                      // expense for outflows, income for inflows
	Entry     models.Entry `json:"entry"`                                                                       // The parsed entry
	Hash      string       `json:"hash" example:"d41d8cd98f00b204e9800998ecf8427ed41d8cd98f00b204e9800998ecf8427e"` // Content hash of the entry
	Duplicate bool         `json:"duplicate" example:"false"`                                                   // An equal entry already exists
}

// Split returns the expenses and incomes of the rows, skipping duplicates
// if skipDuplicates is set. Order is kept within each kind.
func Split(rows []Row, skipDuplicates bool) ([]models.Expense, []models.Income) {
	expenses := make([]models.Expense, 0)
	incomes := make([]models.Income, 0)

	for _, r := range rows {
		if skipDuplicates && r.Duplicate {
			continue
		}

		if r.Kind == KindExpense {
			expenses = append(expenses, models.Expense{Entry: r.Entry})
		} else {
			incomes = append(incomes, models.Income{Entry: r.Entry})
		}
	}

	return expenses, incomes
}
