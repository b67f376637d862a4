package models

import (
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/validation"
	"github.com/shopspring/decimal"
)

// Entry holds the fields shared by expenses and incomes.
type Entry struct {
	Date        types.Date      `json:"date" example:"2024-03-20"`
	Amount      decimal.Decimal `json:"amount" example:"25.5"`
	Category    string          `json:"category" example:"food"`
	Description string          `json:"description" example:"Weekly groceries"`
}

// Fields returns the entry itself. It makes every type embedding an
// Entry a Flow.
func (e Entry) Fields() Entry {
	return e
}

// ToRecord returns the plain mapping of the entry.
func (e Entry) ToRecord() Record {
	return Record{
		KeyDate:        e.Date.String(),
		KeyAmount:      e.Amount,
		KeyCategory:    e.Category,
		KeyDescription: e.Description,
	}
}

// Flow is a movement of money, either an Expense or an Income.
type Flow interface {
	Fields() Entry
}

// Expense is money spent.
type Expense struct {
	Entry
}

// Income is money received, e.g. salary, freelance work or investment returns.
type Income struct {
	Entry
}

// NewExpense returns an Expense for already validated values.
func NewExpense(date types.Date, amount decimal.Decimal, category, description string) Expense {
	return Expense{Entry{Date: date, Amount: amount, Category: category, Description: description}}
}

// NewIncome returns an Income for already validated values.
func NewIncome(date types.Date, amount decimal.Decimal, category, description string) Income {
	return Income{Entry{Date: date, Amount: amount, Category: category, Description: description}}
}

// ParseExpense validates raw input and returns the Expense for it.
// An empty date is replaced with the result of today.
func ParseExpense(date, amount, category, description string, today func() types.Date) (Expense, error) {
	e, err := parseEntry(date, amount, category, description, today)
	if err != nil {
		return Expense{}, err
	}
	return Expense{e}, nil
}

// ParseIncome validates raw input and returns the Income for it.
// An empty date is replaced with the result of today.
func ParseIncome(date, amount, category, description string, today func() types.Date) (Income, error) {
	e, err := parseEntry(date, amount, category, description, today)
	if err != nil {
		return Income{}, err
	}
	return Income{e}, nil
}

// ExpenseFromRecord reconstructs an Expense from its record.
func ExpenseFromRecord(r Record) (Expense, error) {
	e, err := EntryFromRecord(r)
	if err != nil {
		return Expense{}, err
	}
	return Expense{e}, nil
}

// IncomeFromRecord reconstructs an Income from its record.
func IncomeFromRecord(r Record) (Income, error) {
	e, err := EntryFromRecord(r)
	if err != nil {
		return Income{}, err
	}
	return Income{e}, nil
}

func parseEntry(date, amount, category, description string, today func() types.Date) (Entry, error) {
	d, err := validation.ParseDate(date, today)
	if err != nil {
		return Entry{}, err
	}

	a, err := validation.ValidateAmount(amount)
	if err != nil {
		return Entry{}, err
	}

	c, err := validation.ValidateCategory(category)
	if err != nil {
		return Entry{}, err
	}

	desc, err := validation.ValidateDescription(description)
	if err != nil {
		return Entry{}, err
	}

	return Entry{Date: d, Amount: a, Category: c, Description: desc}, nil
}

// EntryFromRecord reconstructs the fields shared by expenses and incomes.
func EntryFromRecord(r Record) (Entry, error) {
	date, err := r.date(KeyDate)
	if err != nil {
		return Entry{}, err
	}

	amount, err := r.amount(KeyAmount)
	if err != nil {
		return Entry{}, err
	}

	category, err := r.text(KeyCategory)
	if err != nil {
		return Entry{}, err
	}

	description, err := r.text(KeyDescription)
	if err != nil {
		return Entry{}, err
	}

	return Entry{Date: date, Amount: amount, Category: category, Description: description}, nil
}
