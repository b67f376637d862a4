// Package analysis folds collections of expenses and incomes into summaries.
//
// All functions are pure: they work on the snapshot they are given and never
// modify it.
package analysis

import (
	"github.com/pocketledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// Group is the summed amount for one key of a grouping.
type Group struct {
	Key    string          `json:"key" example:"food"`
	Amount decimal.Decimal `json:"amount" example:"110"`
}

// Grouping holds one Group per distinct key, in the order in which each key
// first occurs in the input.
type Grouping []Group

// GroupBy sums the amounts of flows per key.
func GroupBy[F models.Flow](flows []F, key func(models.Entry) string) Grouping {
	positions := make(map[string]int)
	groups := make(Grouping, 0)

	for _, f := range flows {
		e := f.Fields()
		k := key(e)

		i, ok := positions[k]
		if !ok {
			i = len(groups)
			positions[k] = i
			groups = append(groups, Group{Key: k, Amount: decimal.Zero})
		}

		groups[i].Amount = groups[i].Amount.Add(e.Amount)
	}

	return groups
}

// GroupByDate sums the amounts of flows per calendar day.
func GroupByDate[F models.Flow](flows []F) Grouping {
	return GroupBy(flows, func(e models.Entry) string {
		return e.Date.String()
	})
}

// GroupByCategory sums the amounts of flows per category.
func GroupByCategory[F models.Flow](flows []F) Grouping {
	return GroupBy(flows, func(e models.Entry) string {
		return e.Category
	})
}

// Get returns the amount for key, 0 if the key is not part of the grouping.
func (g Grouping) Get(key string) decimal.Decimal {
	for _, group := range g {
		if group.Key == key {
			return group.Amount
		}
	}
	return decimal.Zero
}

// Max returns the group with the highest amount.
//
// On ties, the group whose key occurred first in the input wins. The
// boolean is false for an empty grouping.
func (g Grouping) Max() (Group, bool) {
	if len(g) == 0 {
		return Group{}, false
	}

	highest := g[0]
	for _, group := range g[1:] {
		if group.Amount.GreaterThan(highest.Amount) {
			highest = group
		}
	}

	return highest, true
}

// Total returns the sum of all groups.
func (g Grouping) Total() decimal.Decimal {
	total := decimal.Zero
	for _, group := range g {
		total = total.Add(group.Amount)
	}
	return total
}

// Total returns the sum of all amounts, 0 for no flows.
func Total[F models.Flow](flows []F) decimal.Decimal {
	total := decimal.Zero
	for _, f := range flows {
		total = total.Add(f.Fields().Amount)
	}
	return total
}

// Count returns the number of flows.
func Count[F models.Flow](flows []F) int {
	return len(flows)
}

// Average returns the mean amount of flows.
func Average[F models.Flow](flows []F) (decimal.Decimal, error) {
	if len(flows) == 0 {
		return decimal.Zero, ErrNothingToAnalyze
	}

	return Total(flows).Div(decimal.NewFromInt(int64(Count(flows)))), nil
}

// Summary holds the basic statistics for a collection.
type Summary struct {
	Total   decimal.Decimal `json:"total" example:"60"`
	Count   int             `json:"count" example:"3"`
	Average decimal.Decimal `json:"average" example:"20"`
}

// Summarize computes total, count and average of flows.
func Summarize[F models.Flow](flows []F) (Summary, error) {
	average, err := Average(flows)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Total:   Total(flows),
		Count:   Count(flows),
		Average: average,
	}, nil
}
