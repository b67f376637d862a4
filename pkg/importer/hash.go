package importer

import (
	"crypto/sha256"
	"fmt"

	"github.com/pocketledger/backend/pkg/models"
)

// Hash identifies an entry by its content. Entries with equal fields have
// equal hashes, amounts are compared by value.
//
// Every field is prefixed with its length, so text containing the
// separator cannot shift content between fields.
func Hash(e models.Entry) string {
	h := sha256.New()
	for _, field := range []string{e.Date.String(), e.Amount.String(), e.Category, e.Description} {
		fmt.Fprintf(h, "%d:%s,", len(field), field)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func hashes[F models.Flow](flows []F) map[string]bool {
	h := make(map[string]bool, len(flows))
	for _, f := range flows {
		h[Hash(f.Fields())] = true
	}
	return h
}

// MarkDuplicates flags all rows that match an existing entry of the same
// kind.
func MarkDuplicates(rows []Row, expenses []models.Expense, incomes []models.Income) {
	existing := map[Kind]map[string]bool{
		KindExpense: hashes(expenses),
		KindIncome:  hashes(incomes),
	}

	for i := range rows {
		rows[i].Duplicate = existing[rows[i].Kind][rows[i].Hash]
	}
}
